package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rguhub/catalog-api/internal/models"
	"github.com/rguhub/catalog-api/pkg/slug"
)

const subjectColumns = `s.id, s.term_id, s.code, s.name, s.subject_type, s.slug, s.created_at, s.updated_at,
	t.slug AS term_slug,
	(SELECT COUNT(*) FROM materials m WHERE m.subject_id = s.id) AS materials_count`

const subjectJoins = `FROM subjects s
	JOIN terms t ON t.id = s.term_id
	JOIN syllabi sy ON sy.id = t.syllabus_id
	JOIN programs p ON p.id = sy.program_id`

// SubjectRepository handles persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns subjects matching the resolved predicate, joined with their
// term slug and material count.
func (r *SubjectRepository) List(ctx context.Context, pred models.SubjectPredicate) ([]models.SubjectRow, error) {
	base := subjectJoins + " WHERE 1=1"
	var conditions []string
	var args []interface{}

	if pred.Course != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(p.short_name) = LOWER($%d)", len(args)+1))
		args = append(args, pred.Course)
	}
	if pred.ByTerm {
		conditions = append(conditions, fmt.Sprintf("t.term_type = $%d", len(args)+1))
		args = append(args, pred.TermType)
		conditions = append(conditions, fmt.Sprintf("t.term_number = $%d", len(args)+1))
		args = append(args, pred.TermNumber)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY p.short_name, sy.name, t.term_number, s.code", subjectColumns, base)
	var subjects []models.SubjectRow
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID returns a subject row by id.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.SubjectRow, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE s.id = $1", subjectColumns, subjectJoins)
	var subject models.SubjectRow
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// SlugContext resolves the hierarchy levels used to build a subject slug.
// A term that cannot be resolved yields a zero context rather than an error,
// so slug assignment degrades to fewer components.
func (r *SubjectRepository) SlugContext(ctx context.Context, termID string) (slug.SubjectContext, error) {
	const query = `SELECT p.short_name, t.term_number
		FROM terms t
		JOIN syllabi sy ON sy.id = t.syllabus_id
		JOIN programs p ON p.id = sy.program_id
		WHERE t.id = $1`

	var row struct {
		ShortName  string `db:"short_name"`
		TermNumber int    `db:"term_number"`
	}
	if err := r.db.GetContext(ctx, &row, query, termID); err != nil {
		if err == sql.ErrNoRows {
			return slug.SubjectContext{}, nil
		}
		return slug.SubjectContext{}, fmt.Errorf("resolve slug context: %w", err)
	}
	return slug.SubjectContext{
		ProgramShortName: row.ShortName,
		TermNumber:       row.TermNumber,
		HasTermNumber:    true,
	}, nil
}

// ExistsBySlug checks slug uniqueness across all subjects.
func (r *SubjectRepository) ExistsBySlug(ctx context.Context, slugValue string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM subjects WHERE slug = $1"
	args := []interface{}{slugValue}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}

	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check subject slug: %w", err)
	}
	return true, nil
}

// Create persists a new subject. Unique violations (slug, or code within a
// term) surface as ErrUniqueViolation so the caller can retry with the next
// slug candidate.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = now
	}
	subject.UpdatedAt = now

	const query = `INSERT INTO subjects (id, term_id, code, name, subject_type, slug, created_at, updated_at) VALUES (:id, :term_id, :code, :name, :subject_type, :slug, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return mapConstraintErr("create subject", err)
	}
	return nil
}

// Delete removes a subject and cascades to its materials.
func (r *SubjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return nil
}
