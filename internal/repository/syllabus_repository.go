package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rguhub/catalog-api/internal/models"
)

// SyllabusRepository handles persistence for curriculum versions.
type SyllabusRepository struct {
	db *sqlx.DB
}

// NewSyllabusRepository creates a new repository instance.
func NewSyllabusRepository(db *sqlx.DB) *SyllabusRepository {
	return &SyllabusRepository{db: db}
}

// List returns syllabi, optionally restricted to one program.
func (r *SyllabusRepository) List(ctx context.Context, filter models.SyllabusFilter) ([]models.Syllabus, error) {
	query := `SELECT id, program_id, name, effective_from, effective_to, created_at, updated_at FROM syllabi`
	var args []interface{}
	if filter.ProgramID != "" {
		query += ` WHERE program_id = $1`
		args = append(args, filter.ProgramID)
	}
	query += ` ORDER BY name`

	var syllabi []models.Syllabus
	if err := r.db.SelectContext(ctx, &syllabi, query, args...); err != nil {
		return nil, fmt.Errorf("list syllabi: %w", err)
	}
	return syllabi, nil
}

// FindByID returns a syllabus by id.
func (r *SyllabusRepository) FindByID(ctx context.Context, id string) (*models.Syllabus, error) {
	const query = `SELECT id, program_id, name, effective_from, effective_to, created_at, updated_at FROM syllabi WHERE id = $1`
	var syllabus models.Syllabus
	if err := r.db.GetContext(ctx, &syllabus, query, id); err != nil {
		return nil, err
	}
	return &syllabus, nil
}

// Create persists a new syllabus. (program, name) is unique.
func (r *SyllabusRepository) Create(ctx context.Context, syllabus *models.Syllabus) error {
	if syllabus.ID == "" {
		syllabus.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if syllabus.CreatedAt.IsZero() {
		syllabus.CreatedAt = now
	}
	syllabus.UpdatedAt = now

	const query = `INSERT INTO syllabi (id, program_id, name, effective_from, effective_to, created_at, updated_at) VALUES (:id, :program_id, :name, :effective_from, :effective_to, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, syllabus); err != nil {
		return mapConstraintErr("create syllabus", err)
	}
	return nil
}

// Delete removes a syllabus and cascades to its terms.
func (r *SyllabusRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM syllabi WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete syllabus: %w", err)
	}
	return nil
}
