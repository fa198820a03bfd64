package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rguhub/catalog-api/internal/models"
)

func materialRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "subject_id", "material_type_id", "title", "file_path", "url", "description", "year", "month", "is_active", "created_at", "subject_code", "subject_name", "type_name", "type_slug"}).
		AddRow("m1", "s1", "mt1", "Anatomy PYQ 2023", "s1/anatomy.pdf", "http://localhost/files/s1/anatomy.pdf", "", 2023, "May", true, now, "ANAT-101", "Human Anatomy", "Past Papers", "pyq")
}

func TestMaterialRepositoryListFiltersBySlugs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("s.slug = $1 AND mt.slug = $2")).
		WithArgs("bn-1-anat-101", "pyq").
		WillReturnRows(materialRows())

	materials, err := repo.List(context.Background(), models.MaterialFilter{
		SubjectSlug: "bn-1-anat-101",
		TypeSlug:    "pyq",
	})
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, "ANAT-101", materials[0].SubjectCode)
	require.NotNil(t, materials[0].TypeSlug)
	assert.Equal(t, "pyq", *materials[0].TypeSlug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialRepositoryListOrdersNewestPapersFirst(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY m.year DESC NULLS LAST, m.created_at DESC")).
		WillReturnRows(materialRows())

	_, err := repo.List(context.Background(), models.MaterialFilter{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialRepositoryListUnclassified(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "subject_id", "material_type_id", "title", "file_path", "url", "description", "year", "month", "is_active", "created_at"}).
		AddRow("m1", "s1", nil, "Untitled upload", "", "", "", nil, nil, true, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE material_type_id IS NULL")).WillReturnRows(rows)

	materials, err := repo.ListUnclassified(context.Background())
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Nil(t, materials[0].MaterialTypeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialRepositorySetClassification(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectExec("UPDATE materials SET material_type_id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	typeID := "mt1"
	year := 2023
	err := repo.SetClassification(context.Background(), &models.Material{
		ID:             "m1",
		MaterialTypeID: &typeID,
		Year:           &year,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialRepositoryListLatestAppliesLimit(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT $1")).
		WithArgs(6).
		WillReturnRows(sqlmock.NewRows([]string{"id", "subject_id", "material_type_id", "title", "file_path", "url", "description", "year", "month", "is_active", "created_at"}))

	materials, err := repo.ListLatest(context.Background(), 6)
	require.NoError(t, err)
	assert.Empty(t, materials)
	assert.NoError(t, mock.ExpectationsWereMet())
}
