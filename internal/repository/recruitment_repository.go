package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rguhub/catalog-api/internal/models"
)

const recruitmentColumns = `r.id, r.program_id, r.company_name, r.position, r.location, r.job_type, r.description, r.requirements, r.salary, r.deadline, r.apply_link, r.posted_on,
	p.name AS program_name`

const recruitmentJoins = `FROM recruitments r
	JOIN programs p ON p.id = r.program_id`

// RecruitmentRepository handles persistence for job postings.
type RecruitmentRepository struct {
	db *sqlx.DB
}

// NewRecruitmentRepository creates a new repository instance.
func NewRecruitmentRepository(db *sqlx.DB) *RecruitmentRepository {
	return &RecruitmentRepository{db: db}
}

// List returns postings newest first, optionally filtered by program short
// name (case-insensitive).
func (r *RecruitmentRepository) List(ctx context.Context, filter models.RecruitmentFilter) ([]models.RecruitmentRow, error) {
	base := recruitmentJoins + " WHERE 1=1"
	var args []interface{}
	if filter.Program != "" {
		base += " AND LOWER(p.short_name) = LOWER($1)"
		args = append(args, filter.Program)
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY r.posted_on DESC", recruitmentColumns, base)
	var postings []models.RecruitmentRow
	if err := r.db.SelectContext(ctx, &postings, query, args...); err != nil {
		return nil, fmt.Errorf("list recruitments: %w", err)
	}
	return postings, nil
}

// FindByID returns a posting by id.
func (r *RecruitmentRepository) FindByID(ctx context.Context, id string) (*models.RecruitmentRow, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE r.id = $1", recruitmentColumns, recruitmentJoins)
	var posting models.RecruitmentRow
	if err := r.db.GetContext(ctx, &posting, query, id); err != nil {
		return nil, err
	}
	return &posting, nil
}

// Create persists a new posting. PostedOn is set once here.
func (r *RecruitmentRepository) Create(ctx context.Context, posting *models.Recruitment) error {
	if posting.ID == "" {
		posting.ID = uuid.NewString()
	}
	if posting.PostedOn.IsZero() {
		posting.PostedOn = time.Now().UTC()
	}

	const query = `INSERT INTO recruitments (id, program_id, company_name, position, location, job_type, description, requirements, salary, deadline, apply_link, posted_on) VALUES (:id, :program_id, :company_name, :position, :location, :job_type, :description, :requirements, :salary, :deadline, :apply_link, :posted_on)`
	if _, err := r.db.NamedExecContext(ctx, query, posting); err != nil {
		return mapConstraintErr("create recruitment", err)
	}
	return nil
}

// Delete removes a posting.
func (r *RecruitmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recruitments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete recruitment: %w", err)
	}
	return nil
}

// ListLatest returns the most recently posted jobs.
func (r *RecruitmentRepository) ListLatest(ctx context.Context, limit int) ([]models.Recruitment, error) {
	const query = `SELECT id, program_id, company_name, position, location, job_type, description, requirements, salary, deadline, apply_link, posted_on FROM recruitments ORDER BY posted_on DESC LIMIT $1`
	var postings []models.Recruitment
	if err := r.db.SelectContext(ctx, &postings, query, limit); err != nil {
		return nil, fmt.Errorf("list latest recruitments: %w", err)
	}
	return postings, nil
}
