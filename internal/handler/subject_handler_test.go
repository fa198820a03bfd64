package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rguhub/catalog-api/internal/models"
	"github.com/rguhub/catalog-api/internal/service"
	"github.com/rguhub/catalog-api/pkg/slug"
)

type subjectRepoStub struct {
	rows      []models.SubjectRow
	listCalls int
}

func (s *subjectRepoStub) List(ctx context.Context, pred models.SubjectPredicate) ([]models.SubjectRow, error) {
	s.listCalls++
	return s.rows, nil
}

func (s *subjectRepoStub) FindByID(ctx context.Context, id string) (*models.SubjectRow, error) {
	for _, row := range s.rows {
		if row.ID == id {
			return &row, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *subjectRepoStub) SlugContext(ctx context.Context, termID string) (slug.SubjectContext, error) {
	return slug.SubjectContext{}, nil
}

func (s *subjectRepoStub) ExistsBySlug(ctx context.Context, slugValue string, excludeID string) (bool, error) {
	return false, nil
}

func (s *subjectRepoStub) Create(ctx context.Context, subject *models.Subject) error {
	return nil
}

func (s *subjectRepoStub) Delete(ctx context.Context, id string) error {
	return nil
}

type termRepoStub struct{}

func (termRepoStub) List(ctx context.Context, filter models.TermFilter) ([]models.Term, error) {
	return nil, nil
}

func (termRepoStub) FindByID(ctx context.Context, id string) (*models.Term, error) {
	return &models.Term{ID: id}, nil
}

func (termRepoStub) Create(ctx context.Context, term *models.Term) error {
	return nil
}

func (termRepoStub) Delete(ctx context.Context, id string) error {
	return nil
}

func newSubjectRouter(repo *subjectRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewSubjectService(repo, termRepoStub{}, nil, zap.NewNop())
	h := NewSubjectHandler(svc)

	r := gin.New()
	r.GET("/subjects", h.List)
	r.GET("/subjects/:id", h.Get)
	return r
}

func TestSubjectHandlerListBadSemReturnsEmptyList(t *testing.T) {
	repo := &subjectRepoStub{rows: []models.SubjectRow{{Subject: models.Subject{ID: "s1"}}}}
	router := newSubjectRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/subjects?course=BN&sem=abc", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []models.SubjectRow `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Data)
	assert.Zero(t, repo.listCalls)
}

func TestSubjectHandlerListPassesFilterThrough(t *testing.T) {
	repo := &subjectRepoStub{rows: []models.SubjectRow{{Subject: models.Subject{ID: "s1", Code: "ANAT-101"}}}}
	router := newSubjectRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/subjects?course=bn&sem=3", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []models.SubjectRow `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "ANAT-101", body.Data[0].Code)
	assert.Equal(t, 1, repo.listCalls)
}

func TestSubjectHandlerGetNotFound(t *testing.T) {
	router := newSubjectRouter(&subjectRepoStub{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/subjects/unknown", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}
