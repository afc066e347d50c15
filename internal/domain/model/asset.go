package model

import (
	"strings"
	"time"
)

// AssetCategory is a closed set; unrecognized values are rejected at the
// service boundary.
type AssetCategory string

const (
	Category3DModel     AssetCategory = "3D Model"
	Category2DSprite    AssetCategory = "2D Sprite"
	CategoryTilemap     AssetCategory = "Tilemap"
	CategoryTexture     AssetCategory = "Texture"
	CategoryMusic       AssetCategory = "Music"
	CategorySoundEffect AssetCategory = "Sound Effect"
	CategoryScript      AssetCategory = "Script"
	CategoryOther       AssetCategory = "Other"
)

var assetCategories = map[AssetCategory]struct{}{
	Category3DModel:     {},
	Category2DSprite:    {},
	CategoryTilemap:     {},
	CategoryTexture:     {},
	CategoryMusic:       {},
	CategorySoundEffect: {},
	CategoryScript:      {},
	CategoryOther:       {},
}

func (c AssetCategory) Valid() bool {
	_, ok := assetCategories[c]
	return ok
}

type Asset struct {
	ID               string        `json:"id"`
	OwnerID          string        `json:"owner_id"`
	Name             string        `json:"name"`
	Category         AssetCategory `json:"category"`
	LicenseType      string        `json:"license_type"`
	SourceURL        string        `json:"source_url"`
	Description      *string       `json:"description,omitempty"`
	Tags             []string      `json:"tags"`
	FilePath         *string       `json:"file_path"`
	OriginalFilename *string       `json:"original_filename,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// SplitTags turns a comma-separated tag string into an ordered list:
// entries are trimmed, empties dropped, order preserved.
func SplitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags is the inverse of SplitTags, used for the text storage column.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// HasAnyTag reports whether the asset carries at least one of the wanted
// tags, compared case-insensitively token by token.
func (a *Asset) HasAnyTag(wanted []string) bool {
	for _, w := range wanted {
		for _, t := range a.Tags {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}
