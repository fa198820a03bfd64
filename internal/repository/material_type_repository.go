package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rguhub/catalog-api/internal/models"
)

// MaterialTypeRepository handles persistence for material categories.
type MaterialTypeRepository struct {
	db *sqlx.DB
}

// NewMaterialTypeRepository creates a new repository instance.
func NewMaterialTypeRepository(db *sqlx.DB) *MaterialTypeRepository {
	return &MaterialTypeRepository{db: db}
}

// List returns all material types ordered by name.
func (r *MaterialTypeRepository) List(ctx context.Context) ([]models.MaterialType, error) {
	const query = `SELECT id, name, slug, description, icon, color, created_at, updated_at FROM material_types ORDER BY name`
	var types []models.MaterialType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("list material types: %w", err)
	}
	return types, nil
}

// FindByID returns a material type by id.
func (r *MaterialTypeRepository) FindByID(ctx context.Context, id string) (*models.MaterialType, error) {
	const query = `SELECT id, name, slug, description, icon, color, created_at, updated_at FROM material_types WHERE id = $1`
	var mt models.MaterialType
	if err := r.db.GetContext(ctx, &mt, query, id); err != nil {
		return nil, err
	}
	return &mt, nil
}

// FindBySlug returns a material type by slug, or nil when absent.
func (r *MaterialTypeRepository) FindBySlug(ctx context.Context, slug string) (*models.MaterialType, error) {
	const query = `SELECT id, name, slug, description, icon, color, created_at, updated_at FROM material_types WHERE slug = $1`
	var mt models.MaterialType
	if err := r.db.GetContext(ctx, &mt, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find material type by slug: %w", err)
	}
	return &mt, nil
}

// Create persists a new material type. Name and slug are unique.
func (r *MaterialTypeRepository) Create(ctx context.Context, mt *models.MaterialType) error {
	if mt.ID == "" {
		mt.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if mt.CreatedAt.IsZero() {
		mt.CreatedAt = now
	}
	mt.UpdatedAt = now

	const query = `INSERT INTO material_types (id, name, slug, description, icon, color, created_at, updated_at) VALUES (:id, :name, :slug, :description, :icon, :color, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, mt); err != nil {
		return mapConstraintErr("create material type", err)
	}
	return nil
}
