package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"simple", "metal,rust,pbr", []string{"metal", "rust", "pbr"}},
		{"spaces trimmed", "metal, rust, pbr", []string{"metal", "rust", "pbr"}},
		{"empty entries dropped", "metal,,rust, ,", []string{"metal", "rust"}},
		{"order preserved", "z,a,m", []string{"z", "a", "m"}},
		{"empty string", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTags(tt.raw))
		})
	}
}

func TestJoinTagsRoundTrip(t *testing.T) {
	tags := []string{"metal", "rust", "pbr"}
	assert.Equal(t, tags, SplitTags(JoinTags(tags)))
}

func TestHasAnyTag(t *testing.T) {
	asset := &Asset{Tags: []string{"Fantasy", "medieval"}}

	assert.True(t, asset.HasAnyTag([]string{"fantasy"}), "match is case-insensitive")
	assert.True(t, asset.HasAnyTag([]string{"scifi", "MEDIEVAL"}))
	assert.False(t, asset.HasAnyTag([]string{"scifi"}))
	assert.False(t, asset.HasAnyTag([]string{"fant"}), "tokens match exactly, not by substring")
	assert.False(t, (&Asset{}).HasAnyTag([]string{"fantasy"}))
}

func TestAssetCategoryValid(t *testing.T) {
	for _, c := range []AssetCategory{
		Category3DModel, Category2DSprite, CategoryTilemap, CategoryTexture,
		CategoryMusic, CategorySoundEffect, CategoryScript, CategoryOther,
	} {
		assert.True(t, c.Valid(), string(c))
	}

	assert.False(t, AssetCategory("Textures").Valid())
	assert.False(t, AssetCategory("").Valid())
	assert.False(t, AssetCategory("texture").Valid(), "categories are case-sensitive")
}
