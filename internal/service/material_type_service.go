package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rguhub/catalog-api/internal/models"
	appErrors "github.com/rguhub/catalog-api/pkg/errors"
	"github.com/rguhub/catalog-api/pkg/slug"
)

type materialTypeRepository interface {
	List(ctx context.Context) ([]models.MaterialType, error)
	FindByID(ctx context.Context, id string) (*models.MaterialType, error)
	FindBySlug(ctx context.Context, slug string) (*models.MaterialType, error)
	Create(ctx context.Context, mt *models.MaterialType) error
}

// CreateMaterialTypeRequest captures fields for creating material types.
// Slug is optional and derived from the name when absent.
type CreateMaterialTypeRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// MaterialTypeService handles material category workflows.
type MaterialTypeService struct {
	repo      materialTypeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMaterialTypeService creates a new material type service.
func NewMaterialTypeService(repo materialTypeRepository, validate *validator.Validate, logger *zap.Logger) *MaterialTypeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaterialTypeService{repo: repo, validator: validate, logger: logger}
}

// List returns all material types.
func (s *MaterialTypeService) List(ctx context.Context) ([]models.MaterialType, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list material types")
	}
	return types, nil
}

// Get returns a material type by identifier.
func (s *MaterialTypeService) Get(ctx context.Context, id string) (*models.MaterialType, error) {
	mt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "material type not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material type")
	}
	return mt, nil
}

// Create adds a new material type.
func (s *MaterialTypeService) Create(ctx context.Context, req CreateMaterialTypeRequest) (*models.MaterialType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid material type payload")
	}

	typeSlug := slug.Make(req.Slug)
	if typeSlug == "" {
		typeSlug = slug.Make(req.Name)
	}

	mt := &models.MaterialType{
		Name:        strings.TrimSpace(req.Name),
		Slug:        typeSlug,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	}

	if err := s.repo.Create(ctx, mt); err != nil {
		if errors.Is(err, appErrors.ErrUniqueViolation) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "material type name or slug already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create material type")
	}
	s.logger.Info("material type created", zap.String("slug", mt.Slug))
	return mt, nil
}
