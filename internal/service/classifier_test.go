package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rguhub/catalog-api/internal/models"
	"github.com/rguhub/catalog-api/pkg/jobs"
)

type fakeClassifierMaterials struct {
	pending    []models.Material
	classified []models.Material
}

func (f *fakeClassifierMaterials) ListUnclassified(ctx context.Context) ([]models.Material, error) {
	return f.pending, nil
}

func (f *fakeClassifierMaterials) SetClassification(ctx context.Context, material *models.Material) error {
	f.classified = append(f.classified, *material)
	return nil
}

type fakeTypeRepo struct {
	bySlug map[string]string
}

func (f *fakeTypeRepo) List(ctx context.Context) ([]models.MaterialType, error) {
	return nil, nil
}

func (f *fakeTypeRepo) FindByID(ctx context.Context, id string) (*models.MaterialType, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeTypeRepo) FindBySlug(ctx context.Context, slug string) (*models.MaterialType, error) {
	id, ok := f.bySlug[slug]
	if !ok {
		return nil, nil
	}
	return &models.MaterialType{ID: id, Slug: slug}, nil
}

func (f *fakeTypeRepo) Create(ctx context.Context, mt *models.MaterialType) error {
	return nil
}

func newClassifier(materials *fakeClassifierMaterials) *ClassifierService {
	types := &fakeTypeRepo{bySlug: map[string]string{
		"pyq":           "type-pyq",
		"notes":         "type-notes",
		"question-bank": "type-qb",
		"syllabus":      "type-syllabus",
		"practical":     "type-practical",
	}}
	return NewClassifierService(materials, types, nil, nil, jobs.QueueConfig{}, zap.NewNop())
}

func TestClassifierPastPaperOutranksNotes(t *testing.T) {
	materials := &fakeClassifierMaterials{pending: []models.Material{
		{ID: "m1", Title: "PYQ Notes 2023"},
	}}
	svc := newClassifier(materials)

	updated, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	require.Len(t, materials.classified, 1)
	got := materials.classified[0]
	require.NotNil(t, got.MaterialTypeID)
	assert.Equal(t, "type-pyq", *got.MaterialTypeID)
	require.NotNil(t, got.Year)
	assert.Equal(t, 2023, *got.Year)
}

func TestClassifierExtractsMonthFromTitle(t *testing.T) {
	materials := &fakeClassifierMaterials{pending: []models.Material{
		{ID: "m1", Title: "Previous year question paper NOVEMBER 2022"},
	}}
	svc := newClassifier(materials)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, materials.classified, 1)
	got := materials.classified[0]
	require.NotNil(t, got.Month)
	assert.Equal(t, "November", *got.Month)
	require.NotNil(t, got.Year)
	assert.Equal(t, 2022, *got.Year)
}

func TestClassifierMatchesDescriptionToo(t *testing.T) {
	materials := &fakeClassifierMaterials{pending: []models.Material{
		{ID: "m1", Title: "Pathology", Description: "Scanned question bank with answers"},
	}}
	svc := newClassifier(materials)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, materials.classified, 1)
	assert.Equal(t, "type-qb", *materials.classified[0].MaterialTypeID)
}

func TestClassifierDefaultsToNotes(t *testing.T) {
	materials := &fakeClassifierMaterials{pending: []models.Material{
		{ID: "m1", Title: "Cardiology overview"},
	}}
	svc := newClassifier(materials)

	updated, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, "type-notes", *materials.classified[0].MaterialTypeID)
}

func TestClassifierRunsAreIdempotent(t *testing.T) {
	materials := &fakeClassifierMaterials{}
	svc := newClassifier(materials)

	updated, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, updated)

	// A second run over the now-empty pending set touches nothing.
	updated, err = svc.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Empty(t, materials.classified)
}

func TestClassifierFallsThroughToLaterRuleWhenTargetMissing(t *testing.T) {
	materials := &fakeClassifierMaterials{pending: []models.Material{
		{ID: "m1", Title: "Syllabus question bank"},
	}}
	types := &fakeTypeRepo{bySlug: map[string]string{
		"notes":         "type-notes",
		"question-bank": "type-qb",
	}}
	svc := NewClassifierService(materials, types, nil, nil, jobs.QueueConfig{}, zap.NewNop())

	updated, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	require.Len(t, materials.classified, 1)
	assert.Equal(t, "type-qb", *materials.classified[0].MaterialTypeID)
}

func TestClassifierFallsThroughToDefaultWhenTargetMissing(t *testing.T) {
	materials := &fakeClassifierMaterials{pending: []models.Material{
		{ID: "m1", Title: "Syllabus 2024"},
	}}
	types := &fakeTypeRepo{bySlug: map[string]string{"notes": "type-notes"}}
	svc := NewClassifierService(materials, types, nil, nil, jobs.QueueConfig{}, zap.NewNop())

	updated, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	require.Len(t, materials.classified, 1)
	assert.Equal(t, "type-notes", *materials.classified[0].MaterialTypeID)
}

func TestClassifierLeavesMaterialWhenNoCategoryKnown(t *testing.T) {
	materials := &fakeClassifierMaterials{pending: []models.Material{
		{ID: "m1", Title: "Syllabus 2024"},
	}}
	types := &fakeTypeRepo{bySlug: map[string]string{}}
	svc := NewClassifierService(materials, types, nil, nil, jobs.QueueConfig{}, zap.NewNop())

	updated, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Empty(t, materials.classified)
}
