package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rguhub/catalog-api/internal/models"
	appErrors "github.com/rguhub/catalog-api/pkg/errors"
	"github.com/rguhub/catalog-api/pkg/slug"
)

type fakeSubjectRepo struct {
	taken        map[string]bool
	slugCtx      slug.SubjectContext
	created      []models.Subject
	conflictOnce map[string]bool
	lastPred     *models.SubjectPredicate
	rows         []models.SubjectRow
	listCalls    int
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{
		taken:        map[string]bool{},
		conflictOnce: map[string]bool{},
	}
}

func (f *fakeSubjectRepo) List(ctx context.Context, pred models.SubjectPredicate) ([]models.SubjectRow, error) {
	f.listCalls++
	f.lastPred = &pred
	return f.rows, nil
}

func (f *fakeSubjectRepo) FindByID(ctx context.Context, id string) (*models.SubjectRow, error) {
	for _, s := range f.created {
		if s.ID == id {
			return &models.SubjectRow{Subject: s, TermSlug: "third-semester"}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeSubjectRepo) SlugContext(ctx context.Context, termID string) (slug.SubjectContext, error) {
	return f.slugCtx, nil
}

func (f *fakeSubjectRepo) ExistsBySlug(ctx context.Context, slugValue string, excludeID string) (bool, error) {
	return f.taken[slugValue], nil
}

func (f *fakeSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	if f.conflictOnce[subject.Slug] {
		delete(f.conflictOnce, subject.Slug)
		return fmt.Errorf("create subject: %w", appErrors.ErrUniqueViolation)
	}
	if subject.ID == "" {
		subject.ID = fmt.Sprintf("subject-%d", len(f.created)+1)
	}
	f.taken[subject.Slug] = true
	f.created = append(f.created, *subject)
	return nil
}

func (f *fakeSubjectRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeTermRepo struct {
	missing bool
}

func (f *fakeTermRepo) List(ctx context.Context, filter models.TermFilter) ([]models.Term, error) {
	return nil, nil
}

func (f *fakeTermRepo) FindByID(ctx context.Context, id string) (*models.Term, error) {
	if f.missing {
		return nil, sql.ErrNoRows
	}
	return &models.Term{ID: id, TermNumber: 3, TermType: models.TermTypeSemester}, nil
}

func (f *fakeTermRepo) Create(ctx context.Context, term *models.Term) error {
	return nil
}

func (f *fakeTermRepo) Delete(ctx context.Context, id string) error {
	return nil
}

const testTermID = "0b6f9f2e-4a41-4a6e-bd1e-111111111111"

func newSubjectService(repo *fakeSubjectRepo) *SubjectService {
	return NewSubjectService(repo, &fakeTermRepo{}, nil, zap.NewNop())
}

func TestSubjectServiceCreateAssignsHierarchySlug(t *testing.T) {
	repo := newFakeSubjectRepo()
	repo.slugCtx = slug.SubjectContext{ProgramShortName: "BN", TermNumber: 3, HasTermNumber: true}
	svc := newSubjectService(repo)

	created, err := svc.Create(context.Background(), CreateSubjectRequest{
		TermID:      testTermID,
		Code:        "ANAT-101",
		Name:        "Human Anatomy",
		SubjectType: "THEORY",
	})
	require.NoError(t, err)
	assert.Equal(t, "bn-3-anat-101", created.Slug)
}

func TestSubjectServiceCreateResolvesCollisions(t *testing.T) {
	repo := newFakeSubjectRepo()
	repo.slugCtx = slug.SubjectContext{ProgramShortName: "BN", TermNumber: 3, HasTermNumber: true}
	repo.taken["bn-3-anat-101"] = true
	repo.taken["bn-3-anat-101-2"] = true
	svc := newSubjectService(repo)

	created, err := svc.Create(context.Background(), CreateSubjectRequest{
		TermID:      testTermID,
		Code:        "ANAT-101",
		Name:        "Human Anatomy",
		SubjectType: "THEORY",
	})
	require.NoError(t, err)
	assert.Equal(t, "bn-3-anat-101-3", created.Slug)
}

func TestSubjectServiceCreateRetriesOnConcurrentInsert(t *testing.T) {
	repo := newFakeSubjectRepo()
	repo.slugCtx = slug.SubjectContext{ProgramShortName: "BN", TermNumber: 3, HasTermNumber: true}
	// Pre-check passes but the insert races another writer.
	repo.conflictOnce["bn-3-anat-101"] = true
	svc := newSubjectService(repo)

	created, err := svc.Create(context.Background(), CreateSubjectRequest{
		TermID:      testTermID,
		Code:        "ANAT-101",
		Name:        "Human Anatomy",
		SubjectType: "THEORY",
	})
	require.NoError(t, err)
	assert.Equal(t, "bn-3-anat-101-2", created.Slug)
}

func TestSubjectServiceCreateExplicitSlugConflicts(t *testing.T) {
	repo := newFakeSubjectRepo()
	repo.taken["my-slug"] = true
	svc := newSubjectService(repo)

	_, err := svc.Create(context.Background(), CreateSubjectRequest{
		TermID:      testTermID,
		Code:        "ANAT-101",
		Name:        "Human Anatomy",
		SubjectType: "THEORY",
		Slug:        "my-slug",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestSubjectServiceListFailsClosedOnBadSem(t *testing.T) {
	repo := newFakeSubjectRepo()
	repo.rows = []models.SubjectRow{{Subject: models.Subject{ID: "s1"}}}
	svc := newSubjectService(repo)

	subjects, err := svc.List(context.Background(), models.SubjectFilter{Course: "BN", Sem: "abc"})
	require.NoError(t, err)
	assert.Empty(t, subjects)
	assert.Zero(t, repo.listCalls, "no query should run for an unparseable filter")
}

func TestSubjectServiceListFailsClosedOnNonPositiveYear(t *testing.T) {
	repo := newFakeSubjectRepo()
	svc := newSubjectService(repo)

	subjects, err := svc.List(context.Background(), models.SubjectFilter{Course: "BN", Year: "0"})
	require.NoError(t, err)
	assert.Empty(t, subjects)
	assert.Zero(t, repo.listCalls)
}

func TestSubjectServiceListSemWinsOverYear(t *testing.T) {
	repo := newFakeSubjectRepo()
	svc := newSubjectService(repo)

	_, err := svc.List(context.Background(), models.SubjectFilter{Course: "BN", Sem: "2", Year: "1"})
	require.NoError(t, err)
	require.NotNil(t, repo.lastPred)
	assert.Equal(t, models.TermTypeSemester, repo.lastPred.TermType)
	assert.Equal(t, 2, repo.lastPred.TermNumber)
}

func TestResolvePredicate(t *testing.T) {
	tests := []struct {
		name   string
		filter models.SubjectFilter
		want   models.SubjectPredicate
		ok     bool
	}{
		{
			name:   "empty filter matches everything",
			filter: models.SubjectFilter{},
			want:   models.SubjectPredicate{},
			ok:     true,
		},
		{
			name:   "course only",
			filter: models.SubjectFilter{Course: "BN"},
			want:   models.SubjectPredicate{Course: "BN"},
			ok:     true,
		},
		{
			name:   "semester filter",
			filter: models.SubjectFilter{Course: "BN", Sem: "4"},
			want:   models.SubjectPredicate{Course: "BN", ByTerm: true, TermType: models.TermTypeSemester, TermNumber: 4},
			ok:     true,
		},
		{
			name:   "year filter",
			filter: models.SubjectFilter{Course: "BPT", Year: "2"},
			want:   models.SubjectPredicate{Course: "BPT", ByTerm: true, TermType: models.TermTypeYear, TermNumber: 2},
			ok:     true,
		},
		{
			name:   "term filters ignored without course",
			filter: models.SubjectFilter{Sem: "abc", Year: "xyz"},
			want:   models.SubjectPredicate{},
			ok:     true,
		},
		{
			name:   "negative sem fails closed",
			filter: models.SubjectFilter{Course: "BN", Sem: "-1"},
			ok:     false,
		},
		{
			name:   "non-numeric year fails closed",
			filter: models.SubjectFilter{Course: "BN", Year: "second"},
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolvePredicate(tt.filter)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
