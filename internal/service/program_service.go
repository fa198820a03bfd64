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
)

type programRepository interface {
	List(ctx context.Context) ([]models.Program, error)
	FindByID(ctx context.Context, id string) (*models.Program, error)
	Create(ctx context.Context, program *models.Program) error
	Delete(ctx context.Context, id string) error
}

// CreateProgramRequest captures fields for creating programs.
type CreateProgramRequest struct {
	Name          string `json:"name" validate:"required"`
	ShortName     string `json:"short_name" validate:"required"`
	DurationYears int    `json:"duration_years" validate:"required,gt=0"`
}

// ProgramService handles program administration workflows.
type ProgramService struct {
	repo      programRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProgramService creates a new program service.
func NewProgramService(repo programRepository, validate *validator.Validate, logger *zap.Logger) *ProgramService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramService{repo: repo, validator: validate, logger: logger}
}

// List returns all programs.
func (s *ProgramService) List(ctx context.Context) ([]models.Program, error) {
	programs, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list programs")
	}
	return programs, nil
}

// Get returns a program by identifier.
func (s *ProgramService) Get(ctx context.Context, id string) (*models.Program, error) {
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program")
	}
	return program, nil
}

// Create adds a new program. Name and short name are unique.
func (s *ProgramService) Create(ctx context.Context, req CreateProgramRequest) (*models.Program, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid program payload")
	}

	program := &models.Program{
		Name:          strings.TrimSpace(req.Name),
		ShortName:     strings.TrimSpace(req.ShortName),
		DurationYears: req.DurationYears,
	}

	if err := s.repo.Create(ctx, program); err != nil {
		if errors.Is(err, appErrors.ErrUniqueViolation) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "program name or short name already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create program")
	}
	return program, nil
}

// Delete removes a program; the store cascades to syllabi, terms, subjects
// and materials unconditionally.
func (s *ProgramService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete program")
	}
	s.logger.Info("program deleted", zap.String("program_id", id))
	return nil
}
