package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rguhub/catalog-api/internal/models"
	appErrors "github.com/rguhub/catalog-api/pkg/errors"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func subjectRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "term_id", "code", "name", "subject_type", "slug", "created_at", "updated_at", "term_slug", "materials_count"}).
		AddRow("s1", "t1", "ANAT-101", "Human Anatomy", "THEORY", "bn-1-anat-101", now, now, "first-semester", 4)
}

func TestSubjectRepositoryListAppliesPredicate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("LOWER(p.short_name) = LOWER($1) AND t.term_type = $2 AND t.term_number = $3")).
		WithArgs("BN", models.TermTypeSemester, 3).
		WillReturnRows(subjectRows())

	subjects, err := repo.List(context.Background(), models.SubjectPredicate{
		Course:     "BN",
		ByTerm:     true,
		TermType:   models.TermTypeSemester,
		TermNumber: 3,
	})
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "first-semester", subjects[0].TermSlug)
	assert.Equal(t, 4, subjects[0].MaterialsCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryListUnfiltered(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(`FROM subjects s`).WillReturnRows(subjectRows())

	subjects, err := repo.List(context.Background(), models.SubjectPredicate{})
	require.NoError(t, err)
	assert.Len(t, subjects, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryExistsBySlug(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM subjects WHERE slug = $1 LIMIT 1")).
		WithArgs("bn-1-anat-101").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsBySlug(context.Background(), "bn-1-anat-101", "")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM subjects WHERE slug = $1 LIMIT 1")).
		WithArgs("bn-1-free").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	exists, err = repo.ExistsBySlug(context.Background(), "bn-1-free", "")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryCreateMapsUniqueViolation(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectExec("INSERT INTO subjects").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "subjects_slug_key"})

	err := repo.Create(context.Background(), &models.Subject{
		TermID:      "t1",
		Code:        "ANAT-101",
		Name:        "Human Anatomy",
		SubjectType: models.SubjectTypeTheory,
		Slug:        "bn-1-anat-101",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUniqueViolation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositorySlugContextDegradesWhenTermMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT p.short_name, t.term_number")).
		WithArgs("missing-term").
		WillReturnRows(sqlmock.NewRows([]string{"short_name", "term_number"}))

	ctx, err := repo.SlugContext(context.Background(), "missing-term")
	require.NoError(t, err)
	assert.Empty(t, ctx.ProgramShortName)
	assert.False(t, ctx.HasTermNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}
