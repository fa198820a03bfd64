package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rguhub/catalog-api/internal/dto"
	"github.com/rguhub/catalog-api/internal/models"
	appErrors "github.com/rguhub/catalog-api/pkg/errors"
)

// updatesLimit bounds both the per-source fetch and the merged feed.
const updatesLimit = 6

const updatesCacheKey = "catalog:latest_updates"

type latestMaterialLister interface {
	ListLatest(ctx context.Context, limit int) ([]models.Material, error)
}

type latestRecruitmentLister interface {
	ListLatest(ctx context.Context, limit int) ([]models.Recruitment, error)
}

// UpdatesService builds the merged latest-updates feed served on the
// portal's landing page.
type UpdatesService struct {
	materials    latestMaterialLister
	recruitments latestRecruitmentLister
	cache        *CacheService
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewUpdatesService creates a new updates service.
func NewUpdatesService(materials latestMaterialLister, recruitments latestRecruitmentLister, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *UpdatesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpdatesService{
		materials:    materials,
		recruitments: recruitments,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Latest returns at most six entries merged from the newest materials and
// job postings, newest first. When both sources carry the same timestamp the
// material entry sorts first; the sort is stable so same-kind entries keep
// their source order.
func (s *UpdatesService) Latest(ctx context.Context) ([]dto.UpdateItem, error) {
	if s.cache != nil {
		var cached []dto.UpdateItem
		if hit, _ := s.cache.Get(ctx, updatesCacheKey, &cached); hit {
			return cached, nil
		}
	}

	materials, err := s.materials.ListLatest(ctx, updatesLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load latest materials")
	}
	recruitments, err := s.recruitments.ListLatest(ctx, updatesLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load latest recruitments")
	}

	items := make([]dto.UpdateItem, 0, len(materials)+len(recruitments))
	for _, m := range materials {
		items = append(items, dto.UpdateItem{
			Type:      dto.UpdateKindMaterial,
			Title:     m.Title,
			CreatedAt: m.CreatedAt,
		})
	}
	for _, r := range recruitments {
		items = append(items, dto.UpdateItem{
			Type:      dto.UpdateKindRecruitment,
			Title:     r.Position + " at " + r.CompanyName,
			CreatedAt: r.PostedOn,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > updatesLimit {
		items = items[:updatesLimit]
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, updatesCacheKey, items, s.cacheTTL); err != nil {
			s.logger.Debug("latest updates not cached", zap.Error(err))
		}
	}
	return items, nil
}
