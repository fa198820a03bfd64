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

type termRepository interface {
	List(ctx context.Context, filter models.TermFilter) ([]models.Term, error)
	FindByID(ctx context.Context, id string) (*models.Term, error)
	Create(ctx context.Context, term *models.Term) error
	Delete(ctx context.Context, id string) error
}

// CreateTermRequest captures fields for creating terms.
type CreateTermRequest struct {
	SyllabusID string `json:"syllabus_id" validate:"required,uuid"`
	TermNumber int    `json:"term_number" validate:"required,gt=0"`
	TermType   string `json:"term_type" validate:"required,oneof=SEMESTER YEAR"`
	Name       string `json:"name" validate:"required"`
	Slug       string `json:"slug"`
}

// TermService handles term administration workflows.
type TermService struct {
	repo      termRepository
	syllabi   syllabusRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTermService creates a new term service.
func NewTermService(repo termRepository, syllabi syllabusRepository, validate *validator.Validate, logger *zap.Logger) *TermService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TermService{repo: repo, syllabi: syllabi, validator: validate, logger: logger}
}

// List returns terms, optionally restricted to one syllabus, ordered by
// term number.
func (s *TermService) List(ctx context.Context, filter models.TermFilter) ([]models.Term, error) {
	terms, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list terms")
	}
	return terms, nil
}

// Get returns a term by identifier.
func (s *TermService) Get(ctx context.Context, id string) (*models.Term, error) {
	term, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load term")
	}
	return term, nil
}

// Create adds a term under an existing syllabus. The slug defaults to a
// slugified name when not supplied.
func (s *TermService) Create(ctx context.Context, req CreateTermRequest) (*models.Term, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid term payload")
	}

	if _, err := s.syllabi.FindByID(ctx, req.SyllabusID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "syllabus not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load syllabus")
	}

	termSlug := slug.Make(req.Slug)
	if termSlug == "" {
		termSlug = slug.Make(req.Name)
	}

	term := &models.Term{
		SyllabusID: req.SyllabusID,
		TermNumber: req.TermNumber,
		TermType:   models.TermType(req.TermType),
		Name:       strings.TrimSpace(req.Name),
		Slug:       termSlug,
	}

	if err := s.repo.Create(ctx, term); err != nil {
		if errors.Is(err, appErrors.ErrUniqueViolation) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "term number or slug already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create term")
	}
	return term, nil
}

// Delete removes a term; the store cascades to its subjects and materials.
func (s *TermService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load term")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete term")
	}
	s.logger.Info("term deleted", zap.String("term_id", id))
	return nil
}
