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

type recruitmentRepository interface {
	List(ctx context.Context, filter models.RecruitmentFilter) ([]models.RecruitmentRow, error)
	FindByID(ctx context.Context, id string) (*models.RecruitmentRow, error)
	Create(ctx context.Context, posting *models.Recruitment) error
	Delete(ctx context.Context, id string) error
}

// CreateRecruitmentRequest captures fields for publishing job postings.
type CreateRecruitmentRequest struct {
	ProgramID    string     `json:"program_id" validate:"required,uuid"`
	CompanyName  string     `json:"company_name" validate:"required"`
	Position     string     `json:"position" validate:"required"`
	Location     string     `json:"location" validate:"required"`
	JobType      string     `json:"job_type" validate:"required,oneof=FT PT IN"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Salary       *string    `json:"salary"`
	Deadline     *time.Time `json:"deadline"`
	ApplyLink    string     `json:"apply_link" validate:"required,url"`
}

// RecruitmentService handles job posting workflows.
type RecruitmentService struct {
	repo      recruitmentRepository
	programs  programRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRecruitmentService creates a new recruitment service.
func NewRecruitmentService(repo recruitmentRepository, programs programRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RecruitmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecruitmentService{repo: repo, programs: programs, cache: cache, validator: validate, logger: logger}
}

// List returns postings newest first, optionally restricted to a program
// short name (case-insensitive).
func (s *RecruitmentService) List(ctx context.Context, filter models.RecruitmentFilter) ([]models.RecruitmentRow, error) {
	postings, err := s.repo.List(ctx, models.RecruitmentFilter{Program: strings.TrimSpace(filter.Program)})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list recruitments")
	}
	if postings == nil {
		postings = []models.RecruitmentRow{}
	}
	return postings, nil
}

// Get returns a posting by identifier.
func (s *RecruitmentService) Get(ctx context.Context, id string) (*models.RecruitmentRow, error) {
	posting, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "recruitment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recruitment")
	}
	return posting, nil
}

// Create publishes a posting under an existing program.
func (s *RecruitmentService) Create(ctx context.Context, req CreateRecruitmentRequest) (*models.RecruitmentRow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid recruitment payload")
	}

	if _, err := s.programs.FindByID(ctx, req.ProgramID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program")
	}

	posting := &models.Recruitment{
		ProgramID:    req.ProgramID,
		CompanyName:  strings.TrimSpace(req.CompanyName),
		Position:     strings.TrimSpace(req.Position),
		Location:     strings.TrimSpace(req.Location),
		JobType:      models.JobType(req.JobType),
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       req.Salary,
		Deadline:     req.Deadline,
		ApplyLink:    req.ApplyLink,
	}

	if err := s.repo.Create(ctx, posting); err != nil {
		if errors.Is(err, appErrors.ErrUniqueViolation) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "recruitment already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create recruitment")
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, updatesCacheKey)
	}
	return s.Get(ctx, posting.ID)
}

// Delete removes a posting.
func (s *RecruitmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "recruitment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recruitment")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete recruitment")
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, updatesCacheKey)
	}
	s.logger.Info("recruitment deleted", zap.String("recruitment_id", id))
	return nil
}
