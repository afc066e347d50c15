package service

import (
	"context"
	"fmt"
	"io"

	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/common"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/domain/model"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/domain/repository"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/platform/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

type AssetService struct {
	assetRepo repository.AssetRepository
	files     storage.FileStore
}

func NewAssetService(assetRepo repository.AssetRepository, files storage.FileStore) *AssetService {
	return &AssetService{assetRepo: assetRepo, files: files}
}

// Upload is a pending file attachment taken from a multipart request.
type Upload struct {
	Filename string
	Content  io.Reader
}

type CreateAssetRequest struct {
	Name        string `validate:"required"`
	Category    string `validate:"required"`
	LicenseType string `validate:"required"`
	SourceURL   string `validate:"required,url"`
	Description *string
	Tags        string // comma-separated
}

// UpdateAssetRequest carries only the fields present in the request; nil
// fields keep their stored value.
type UpdateAssetRequest struct {
	Name        *string
	Category    *string
	LicenseType *string
	SourceURL   *string `validate:"omitempty,url"`
	Description *string
	Tags        *string
}

func (s *AssetService) Create(ctx context.Context, ownerID string, req CreateAssetRequest, upload *Upload) (*model.Asset, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	category := model.AssetCategory(req.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("unrecognized category %q: %w", req.Category, common.ErrValidation)
	}

	asset := &model.Asset{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        req.Name,
		Category:    category,
		LicenseType: req.LicenseType,
		SourceURL:   req.SourceURL,
		Description: req.Description,
		Tags:        model.SplitTags(req.Tags),
	}

	// The file is stored before the row is inserted; on insert failure the
	// stored object is removed so no orphan is left behind.
	if upload != nil {
		storedName, err := s.files.Save(ctx, upload.Filename, upload.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store uploaded file: %w", err)
		}
		asset.FilePath = &storedName
		asset.OriginalFilename = &upload.Filename
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		if asset.FilePath != nil {
			s.removeStoredFile(ctx, *asset.FilePath)
		}
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return asset, nil
}

func (s *AssetService) List(ctx context.Context, ownerID, categoryFilter, tagsFilter string) ([]model.Asset, error) {
	category := model.AssetCategory(categoryFilter)
	if categoryFilter != "" && !category.Valid() {
		return nil, fmt.Errorf("unrecognized category %q: %w", categoryFilter, common.ErrValidation)
	}

	assets, err := s.assetRepo.ListByOwner(ctx, ownerID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	if tagsFilter != "" {
		wanted := model.SplitTags(tagsFilter)
		filtered := []model.Asset{}
		for _, a := range assets {
			if a.HasAnyTag(wanted) {
				filtered = append(filtered, a)
			}
		}
		assets = filtered
	}
	return assets, nil
}

func (s *AssetService) Get(ctx context.Context, ownerID, id string) (*model.Asset, error) {
	return s.assetRepo.FindByID(ctx, ownerID, id)
}

func (s *AssetService) Update(ctx context.Context, ownerID, id string, req UpdateAssetRequest, upload *Upload) (*model.Asset, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if req.Category != nil && !model.AssetCategory(*req.Category).Valid() {
		return nil, fmt.Errorf("unrecognized category %q: %w", *req.Category, common.ErrValidation)
	}

	asset, err := s.assetRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Category != nil {
		asset.Category = model.AssetCategory(*req.Category)
	}
	if req.LicenseType != nil {
		asset.LicenseType = *req.LicenseType
	}
	if req.SourceURL != nil {
		asset.SourceURL = *req.SourceURL
	}
	if req.Description != nil {
		asset.Description = req.Description
	}
	if req.Tags != nil {
		asset.Tags = model.SplitTags(*req.Tags)
	}

	oldFile := asset.FilePath
	if upload != nil {
		storedName, err := s.files.Save(ctx, upload.Filename, upload.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store uploaded file: %w", err)
		}
		asset.FilePath = &storedName
		asset.OriginalFilename = &upload.Filename
	}

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		if upload != nil && asset.FilePath != nil {
			s.removeStoredFile(ctx, *asset.FilePath)
		}
		return nil, err
	}

	// The old file is only removed once the new one is stored and the row
	// committed; removal failure leaves an orphan, which is logged.
	if upload != nil && oldFile != nil {
		s.removeStoredFile(ctx, *oldFile)
	}
	return asset, nil
}

func (s *AssetService) Delete(ctx context.Context, ownerID, id string) error {
	asset, err := s.assetRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := s.assetRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	// Best-effort cleanup: the row is already gone, a failed file removal is
	// logged but does not fail the request.
	if asset.FilePath != nil {
		s.removeStoredFile(ctx, *asset.FilePath)
	}
	return nil
}

// GetFile returns the stored file content and the name to present to the
// caller (the original upload filename when known).
func (s *AssetService) GetFile(ctx context.Context, ownerID, id string) (io.ReadCloser, string, error) {
	asset, err := s.assetRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, "", err
	}
	if asset.FilePath == nil {
		return nil, "", common.ErrNotFound
	}

	content, err := s.files.Open(ctx, *asset.FilePath)
	if err != nil {
		return nil, "", err
	}

	filename := *asset.FilePath
	if asset.OriginalFilename != nil {
		filename = *asset.OriginalFilename
	}
	return content, filename, nil
}

// GetFilePreview returns the same bytes as GetFile; the handler serves them
// inline instead of as an attachment. No server-side content-type
// enforcement: non-image files degrade on the client.
func (s *AssetService) GetFilePreview(ctx context.Context, ownerID, id string) (io.ReadCloser, string, error) {
	return s.GetFile(ctx, ownerID, id)
}

func (s *AssetService) removeStoredFile(ctx context.Context, storedName string) {
	if err := s.files.Remove(ctx, storedName); err != nil {
		logrus.WithError(err).WithField("file", storedName).Warn("failed to remove stored file")
	}
}
