package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rguhub/catalog-api/internal/dto"
	"github.com/rguhub/catalog-api/internal/models"
	"github.com/rguhub/catalog-api/internal/service"
)

type latestMaterialsStub struct {
	items []models.Material
}

func (s latestMaterialsStub) ListLatest(ctx context.Context, limit int) ([]models.Material, error) {
	return s.items, nil
}

type latestRecruitmentsStub struct {
	items []models.Recruitment
}

func (s latestRecruitmentsStub) ListLatest(ctx context.Context, limit int) ([]models.Recruitment, error) {
	return s.items, nil
}

func TestUpdatesHandlerLatest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC)
	svc := service.NewUpdatesService(
		latestMaterialsStub{items: []models.Material{{Title: "Anatomy notes", CreatedAt: now}}},
		latestRecruitmentsStub{items: []models.Recruitment{{Position: "Staff Nurse", CompanyName: "City Hospital", PostedOn: now.Add(-time.Hour)}}},
		nil,
		0,
		zap.NewNop(),
	)
	h := NewUpdatesHandler(svc)

	r := gin.New()
	r.GET("/latest-updates", h.Latest)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/latest-updates", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []dto.UpdateItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, dto.UpdateKindMaterial, body.Data[0].Type)
	assert.Equal(t, "Anatomy notes", body.Data[0].Title)
	assert.Equal(t, dto.UpdateKindRecruitment, body.Data[1].Type)
}
