package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rguhub/catalog-api/internal/dto"
	"github.com/rguhub/catalog-api/internal/models"
)

type fakeLatestMaterials struct {
	items []models.Material
}

func (f *fakeLatestMaterials) ListLatest(ctx context.Context, limit int) ([]models.Material, error) {
	if len(f.items) > limit {
		return f.items[:limit], nil
	}
	return f.items, nil
}

type fakeLatestRecruitments struct {
	items []models.Recruitment
}

func (f *fakeLatestRecruitments) ListLatest(ctx context.Context, limit int) ([]models.Recruitment, error) {
	if len(f.items) > limit {
		return f.items[:limit], nil
	}
	return f.items, nil
}

func at(day int) time.Time {
	return time.Date(2026, time.August, day, 12, 0, 0, 0, time.UTC)
}

func TestUpdatesLatestMergesNewestFirst(t *testing.T) {
	materials := &fakeLatestMaterials{items: []models.Material{
		{Title: "Anatomy notes", CreatedAt: at(10)},
		{Title: "Physiology PYQ", CreatedAt: at(5)},
	}}
	recruitments := &fakeLatestRecruitments{items: []models.Recruitment{
		{Position: "Staff Nurse", CompanyName: "City Hospital", PostedOn: at(8)},
	}}
	svc := NewUpdatesService(materials, recruitments, nil, 0, zap.NewNop())

	items, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Anatomy notes", items[0].Title)
	assert.Equal(t, dto.UpdateKindRecruitment, items[1].Type)
	assert.Equal(t, "Staff Nurse at City Hospital", items[1].Title)
	assert.Equal(t, "Physiology PYQ", items[2].Title)
}

func TestUpdatesLatestTruncatesToSix(t *testing.T) {
	materials := &fakeLatestMaterials{}
	for day := 1; day <= 10; day++ {
		materials.items = append(materials.items, models.Material{Title: "m", CreatedAt: at(day)})
	}
	recruitments := &fakeLatestRecruitments{}
	for day := 11; day <= 20; day++ {
		recruitments.items = append(recruitments.items, models.Recruitment{Position: "r", CompanyName: "c", PostedOn: at(day)})
	}
	svc := NewUpdatesService(materials, recruitments, nil, 0, zap.NewNop())

	items, err := svc.Latest(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, updatesLimit)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt), "feed must be ordered newest first")
	}
}

func TestUpdatesLatestMaterialWinsTimestampTie(t *testing.T) {
	ts := at(15)
	materials := &fakeLatestMaterials{items: []models.Material{
		{Title: "Shared moment material", CreatedAt: ts},
	}}
	recruitments := &fakeLatestRecruitments{items: []models.Recruitment{
		{Position: "Shared moment posting", CompanyName: "x", PostedOn: ts},
	}}
	svc := NewUpdatesService(materials, recruitments, nil, 0, zap.NewNop())

	items, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, dto.UpdateKindMaterial, items[0].Type)
	assert.Equal(t, dto.UpdateKindRecruitment, items[1].Type)
}

func TestUpdatesLatestEmptySources(t *testing.T) {
	svc := NewUpdatesService(&fakeLatestMaterials{}, &fakeLatestRecruitments{}, nil, 0, zap.NewNop())

	items, err := svc.Latest(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}
