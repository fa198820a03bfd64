package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rguhub/catalog-api/internal/models"
)

const materialColumns = `m.id, m.subject_id, m.material_type_id, m.title, m.file_path, m.url, m.description, m.year, m.month, m.is_active, m.created_at,
	s.code AS subject_code,
	s.name AS subject_name,
	mt.name AS type_name,
	mt.slug AS type_slug`

const materialJoins = `FROM materials m
	JOIN subjects s ON s.id = m.subject_id
	LEFT JOIN material_types mt ON mt.id = m.material_type_id`

// MaterialRepository handles persistence for study materials.
type MaterialRepository struct {
	db *sqlx.DB
}

// NewMaterialRepository creates a new repository instance.
func NewMaterialRepository(db *sqlx.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// List returns materials matching the filter, newest papers first.
func (r *MaterialRepository) List(ctx context.Context, filter models.MaterialFilter) ([]models.MaterialRow, error) {
	base := materialJoins + " WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.SubjectSlug != "" {
		conditions = append(conditions, fmt.Sprintf("s.slug = $%d", len(args)+1))
		args = append(args, filter.SubjectSlug)
	}
	if filter.TypeSlug != "" {
		conditions = append(conditions, fmt.Sprintf("mt.slug = $%d", len(args)+1))
		args = append(args, filter.TypeSlug)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY m.year DESC NULLS LAST, m.created_at DESC", materialColumns, base)
	var materials []models.MaterialRow
	if err := r.db.SelectContext(ctx, &materials, query, args...); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return materials, nil
}

// FindByID returns a joined material row by id.
func (r *MaterialRepository) FindByID(ctx context.Context, id string) (*models.MaterialRow, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE m.id = $1", materialColumns, materialJoins)
	var material models.MaterialRow
	if err := r.db.GetContext(ctx, &material, query, id); err != nil {
		return nil, err
	}
	return &material, nil
}

// Create persists a new material. CreatedAt is set once here and never
// touched by updates.
func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) error {
	if material.ID == "" {
		material.ID = uuid.NewString()
	}
	if material.CreatedAt.IsZero() {
		material.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO materials (id, subject_id, material_type_id, title, file_path, url, description, year, month, is_active, created_at) VALUES (:id, :subject_id, :material_type_id, :title, :file_path, :url, :description, :year, :month, :is_active, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, material); err != nil {
		return mapConstraintErr("create material", err)
	}
	return nil
}

// Update modifies a material record, leaving created_at untouched.
func (r *MaterialRepository) Update(ctx context.Context, material *models.Material) error {
	const query = `UPDATE materials SET subject_id = :subject_id, material_type_id = :material_type_id, title = :title, file_path = :file_path, url = :url, description = :description, year = :year, month = :month, is_active = :is_active WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, material); err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// Delete removes a material record.
func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM materials WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}

// ListUnclassified returns materials with no material type assigned, the
// input set for the classifier backfill.
func (r *MaterialRepository) ListUnclassified(ctx context.Context) ([]models.Material, error) {
	const query = `SELECT id, subject_id, material_type_id, title, file_path, url, description, year, month, is_active, created_at FROM materials WHERE material_type_id IS NULL ORDER BY created_at`
	var materials []models.Material
	if err := r.db.SelectContext(ctx, &materials, query); err != nil {
		return nil, fmt.Errorf("list unclassified materials: %w", err)
	}
	return materials, nil
}

// SetClassification persists the fields the classifier fills in.
func (r *MaterialRepository) SetClassification(ctx context.Context, material *models.Material) error {
	const query = `UPDATE materials SET material_type_id = :material_type_id, year = :year, month = :month WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, material); err != nil {
		return fmt.Errorf("classify material: %w", err)
	}
	return nil
}

// ListLatest returns the most recently created materials.
func (r *MaterialRepository) ListLatest(ctx context.Context, limit int) ([]models.Material, error) {
	const query = `SELECT id, subject_id, material_type_id, title, file_path, url, description, year, month, is_active, created_at FROM materials ORDER BY created_at DESC LIMIT $1`
	var materials []models.Material
	if err := r.db.SelectContext(ctx, &materials, query, limit); err != nil {
		return nil, fmt.Errorf("list latest materials: %w", err)
	}
	return materials, nil
}
