package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rguhub/catalog-api/internal/models"
	appErrors "github.com/rguhub/catalog-api/pkg/errors"
)

type syllabusRepository interface {
	List(ctx context.Context, filter models.SyllabusFilter) ([]models.Syllabus, error)
	FindByID(ctx context.Context, id string) (*models.Syllabus, error)
	Create(ctx context.Context, syllabus *models.Syllabus) error
	Delete(ctx context.Context, id string) error
}

// CreateSyllabusRequest captures fields for creating syllabi.
type CreateSyllabusRequest struct {
	ProgramID     string     `json:"program_id" validate:"required,uuid"`
	Name          string     `json:"name" validate:"required"`
	EffectiveFrom *time.Time `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to"`
}

// SyllabusService handles syllabus administration workflows.
type SyllabusService struct {
	repo      syllabusRepository
	programs  programRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSyllabusService creates a new syllabus service.
func NewSyllabusService(repo syllabusRepository, programs programRepository, validate *validator.Validate, logger *zap.Logger) *SyllabusService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyllabusService{repo: repo, programs: programs, validator: validate, logger: logger}
}

// List returns syllabi, optionally restricted to one program.
func (s *SyllabusService) List(ctx context.Context, filter models.SyllabusFilter) ([]models.Syllabus, error) {
	syllabi, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list syllabi")
	}
	return syllabi, nil
}

// Get returns a syllabus by identifier.
func (s *SyllabusService) Get(ctx context.Context, id string) (*models.Syllabus, error) {
	syllabus, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "syllabus not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load syllabus")
	}
	return syllabus, nil
}

// Create adds a syllabus version under an existing program.
func (s *SyllabusService) Create(ctx context.Context, req CreateSyllabusRequest) (*models.Syllabus, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid syllabus payload")
	}

	if _, err := s.programs.FindByID(ctx, req.ProgramID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program")
	}

	syllabus := &models.Syllabus{
		ProgramID:     req.ProgramID,
		Name:          strings.TrimSpace(req.Name),
		EffectiveFrom: req.EffectiveFrom,
		EffectiveTo:   req.EffectiveTo,
	}

	if err := s.repo.Create(ctx, syllabus); err != nil {
		if errors.Is(err, appErrors.ErrUniqueViolation) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "syllabus name already exists for this program")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create syllabus")
	}
	return syllabus, nil
}

// Delete removes a syllabus; the store cascades to its terms and below.
func (s *SyllabusService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "syllabus not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load syllabus")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete syllabus")
	}
	s.logger.Info("syllabus deleted", zap.String("syllabus_id", id))
	return nil
}
