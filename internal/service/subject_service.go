package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rguhub/catalog-api/internal/models"
	appErrors "github.com/rguhub/catalog-api/pkg/errors"
	"github.com/rguhub/catalog-api/pkg/slug"
)

// slugMaxAttempts bounds the collision retry loop so a pathological slug
// space cannot spin forever.
const slugMaxAttempts = 50

type subjectRepository interface {
	List(ctx context.Context, pred models.SubjectPredicate) ([]models.SubjectRow, error)
	FindByID(ctx context.Context, id string) (*models.SubjectRow, error)
	SlugContext(ctx context.Context, termID string) (slug.SubjectContext, error)
	ExistsBySlug(ctx context.Context, slugValue string, excludeID string) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
}

// CreateSubjectRequest captures fields for creating subjects. Slug is
// optional; when empty it is derived from the subject's place in the
// hierarchy.
type CreateSubjectRequest struct {
	TermID      string `json:"term_id" validate:"required,uuid"`
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	SubjectType string `json:"subject_type" validate:"required,oneof=THEORY PRACTICAL CLINICAL"`
	Slug        string `json:"slug"`
}

// SubjectService handles subject listing, lookup and creation, including
// slug assignment.
type SubjectService struct {
	repo      subjectRepository
	terms     termRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService creates a new subject service.
func NewSubjectService(repo subjectRepository, terms termRepository, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, terms: terms, validator: validate, logger: logger}
}

// resolvePredicate turns raw query parameters into a relational predicate.
// Term filters only apply alongside course; without it the full collection
// is served. Unparseable or non-positive sem/year values fail closed: the
// second return is false and the caller serves an empty list instead of
// ignoring the filter. When both sem and year are sent, sem wins.
func resolvePredicate(filter models.SubjectFilter) (models.SubjectPredicate, bool) {
	pred := models.SubjectPredicate{Course: strings.TrimSpace(filter.Course)}
	if pred.Course == "" {
		return models.SubjectPredicate{}, true
	}

	raw, termType := "", models.TermTypeSemester
	switch {
	case strings.TrimSpace(filter.Sem) != "":
		raw, termType = strings.TrimSpace(filter.Sem), models.TermTypeSemester
	case strings.TrimSpace(filter.Year) != "":
		raw, termType = strings.TrimSpace(filter.Year), models.TermTypeYear
	default:
		return pred, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return models.SubjectPredicate{}, false
	}
	pred.ByTerm = true
	pred.TermType = termType
	pred.TermNumber = n
	return pred, true
}

// List returns subjects matching the raw filter. Malformed numeric filters
// yield an empty list, not an error.
func (s *SubjectService) List(ctx context.Context, filter models.SubjectFilter) ([]models.SubjectRow, error) {
	pred, ok := resolvePredicate(filter)
	if !ok {
		s.logger.Debug("subject filter failed closed",
			zap.String("sem", filter.Sem),
			zap.String("year", filter.Year))
		return []models.SubjectRow{}, nil
	}

	subjects, err := s.repo.List(ctx, pred)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	if subjects == nil {
		subjects = []models.SubjectRow{}
	}
	return subjects, nil
}

// Get returns a subject by identifier.
func (s *SubjectService) Get(ctx context.Context, id string) (*models.SubjectRow, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

// Create adds a subject under an existing term. When no slug is supplied the
// base is derived from program short name, term number and code, and
// collisions are resolved by appending "-2", "-3" and so on. A concurrent
// insert of the same candidate surfaces as a unique violation, which advances
// the suffix rather than failing the save.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*models.SubjectRow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	if _, err := s.terms.FindByID(ctx, req.TermID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load term")
	}

	base := slug.Make(req.Slug)
	explicit := base != ""
	if !explicit {
		slugCtx, err := s.repo.SlugContext(ctx, req.TermID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve subject slug")
		}
		base = slug.ForSubject(slugCtx, req.Code, req.Name)
	}

	subject := &models.Subject{
		TermID:      req.TermID,
		Code:        strings.TrimSpace(req.Code),
		Name:        strings.TrimSpace(req.Name),
		SubjectType: models.SubjectType(req.SubjectType),
	}

	for attempt := 1; attempt <= slugMaxAttempts; attempt++ {
		candidate := slug.WithSuffix(base, attempt)

		taken, err := s.repo.ExistsBySlug(ctx, candidate, "")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject slug")
		}
		if taken {
			if explicit {
				return nil, appErrors.Clone(appErrors.ErrConflict, "subject slug already exists")
			}
			continue
		}

		subject.Slug = candidate
		err = s.repo.Create(ctx, subject)
		if err == nil {
			return s.Get(ctx, subject.ID)
		}
		if errors.Is(err, appErrors.ErrUniqueViolation) {
			if explicit || attempt == slugMaxAttempts {
				return nil, appErrors.Clone(appErrors.ErrConflict, "subject slug or code already exists")
			}
			s.logger.Debug("subject slug collision, retrying",
				zap.String("candidate", candidate),
				zap.Int("attempt", attempt))
			subject.ID = ""
			continue
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}

	return nil, appErrors.Clone(appErrors.ErrConflict, "could not assign a unique subject slug")
}

// Delete removes a subject; the store cascades to its materials.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	s.logger.Info("subject deleted", zap.String("subject_id", id))
	return nil
}
