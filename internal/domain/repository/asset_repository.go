package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/common"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/domain/model"
)

// AssetRepository persists asset records. Every operation is scoped to the
// owning user: a row owned by someone else behaves exactly like a missing
// row (common.ErrNotFound).
type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	FindByID(ctx context.Context, ownerID, id string) (*model.Asset, error)
	ListByOwner(ctx context.Context, ownerID string, category model.AssetCategory) ([]model.Asset, error)
	Update(ctx context.Context, asset *model.Asset) error
	Delete(ctx context.Context, ownerID, id string) error
}

type pgAssetRepository struct {
	db *sql.DB
}

func NewPgAssetRepository(db *sql.DB) AssetRepository {
	return &pgAssetRepository{db: db}
}

const assetColumns = `id, owner_id, name, category, license_type, source_url,
	description, tags, file_path, original_filename, created_at, updated_at`

func (r *pgAssetRepository) Create(ctx context.Context, a *model.Asset) error {
	query := `INSERT INTO assets (id, owner_id, name, category, license_type, source_url, description, tags, file_path, original_filename)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.OwnerID, a.Name, a.Category, a.LicenseType, a.SourceURL,
		a.Description, model.JoinTags(a.Tags), a.FilePath, a.OriginalFilename,
	)
	if err != nil {
		return fmt.Errorf("pgAssetRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAssetRepository) FindByID(ctx context.Context, ownerID, id string) (*model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 AND owner_id = $2`
	asset, err := scanAsset(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAssetRepository.FindByID: %w", err)
	}
	return asset, nil
}

func (r *pgAssetRepository) ListByOwner(ctx context.Context, ownerID string, category model.AssetCategory) ([]model.Asset, error) {
	var query strings.Builder
	query.WriteString(`SELECT ` + assetColumns + ` FROM assets WHERE owner_id = $1`)

	args := []interface{}{ownerID}
	if category != "" {
		query.WriteString(fmt.Sprintf(" AND category = $%d", len(args)+1))
		args = append(args, category)
	}
	query.WriteString(" ORDER BY created_at")

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("pgAssetRepository.ListByOwner: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("pgAssetRepository.ListByOwner: scan: %w", err)
		}
		assets = append(assets, *asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAssetRepository.ListByOwner: rows: %w", err)
	}
	return assets, nil
}

func (r *pgAssetRepository) Update(ctx context.Context, a *model.Asset) error {
	query := `UPDATE assets SET
	            name = $1, category = $2, license_type = $3, source_url = $4,
	            description = $5, tags = $6, file_path = $7, original_filename = $8,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $9 AND owner_id = $10`
	res, err := r.db.ExecContext(ctx, query,
		a.Name, a.Category, a.LicenseType, a.SourceURL,
		a.Description, model.JoinTags(a.Tags), a.FilePath, a.OriginalFilename,
		a.ID, a.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("pgAssetRepository.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgAssetRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("pgAssetRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAsset(row rowScanner) (*model.Asset, error) {
	asset := &model.Asset{}
	var tags string
	err := row.Scan(
		&asset.ID, &asset.OwnerID, &asset.Name, &asset.Category, &asset.LicenseType, &asset.SourceURL,
		&asset.Description, &tags, &asset.FilePath, &asset.OriginalFilename,
		&asset.CreatedAt, &asset.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	asset.Tags = model.SplitTags(tags)
	return asset, nil
}
