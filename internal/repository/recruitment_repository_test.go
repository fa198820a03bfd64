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

func recruitmentRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "program_id", "company_name", "position", "location", "job_type",
		"description", "requirements", "salary", "deadline", "apply_link", "posted_on",
		"program_name",
	}).AddRow("r1", "p1", "City Hospital", "Staff Nurse", "Bengaluru", "FT",
		"", "", nil, nil, "https://example.com/apply", now, "B.Sc Nursing")
}

func TestRecruitmentRepositoryListFiltersProgramCaseInsensitively(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRecruitmentRepository(db)

	// Lower- and upper-case program values hit the same LOWER() comparison.
	for _, program := range []string{"bn", "BN"} {
		mock.ExpectQuery(regexp.QuoteMeta("LOWER(p.short_name) = LOWER($1)")).
			WithArgs(program).
			WillReturnRows(recruitmentRows())

		postings, err := repo.List(context.Background(), models.RecruitmentFilter{Program: program})
		require.NoError(t, err)
		require.Len(t, postings, 1)
		assert.Equal(t, "Staff Nurse", postings[0].Position)
		assert.Equal(t, "B.Sc Nursing", postings[0].ProgramName)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecruitmentRepositoryListLatestAppliesLimit(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRecruitmentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "program_id", "company_name", "position", "location", "job_type",
		"description", "requirements", "salary", "deadline", "apply_link", "posted_on",
	}).AddRow("r1", "p1", "City Hospital", "Staff Nurse", "Bengaluru", "FT",
		"", "", nil, nil, "https://example.com/apply", now)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY posted_on DESC LIMIT $1")).
		WithArgs(6).
		WillReturnRows(rows)

	postings, err := repo.ListLatest(context.Background(), 6)
	require.NoError(t, err)
	assert.Len(t, postings, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
