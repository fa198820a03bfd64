package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rguhub/catalog-api/internal/models"
	appErrors "github.com/rguhub/catalog-api/pkg/errors"
	"github.com/rguhub/catalog-api/pkg/jobs"
)

const classifyJobType = "classify_materials"

// defaultTypeSlug is assigned when no rule keyword matches.
const defaultTypeSlug = "notes"

var (
	yearPattern  = regexp.MustCompile(`(\d{4})`)
	monthPattern = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
)

// ClassifierRule maps keywords to a material type. Rules are evaluated in
// order and the first match wins, so more specific categories come first.
type ClassifierRule struct {
	TypeSlug string
	Keywords []string
	// Extract pulls extra fields (exam year and month) out of the title.
	Extract func(title string) (*int, *string)
}

// DefaultClassifierRules returns the rule table used in production. Past
// papers outrank notes so "PYQ Notes 2023" lands in past papers, and the
// extractor tags the paper's year and month.
func DefaultClassifierRules() []ClassifierRule {
	return []ClassifierRule{
		{TypeSlug: "pyq", Keywords: []string{"pyq", "question paper", "exam", "previous year"}, Extract: extractYearMonth},
		{TypeSlug: "notes", Keywords: []string{"notes", "unit", "chapter", "handout"}},
		{TypeSlug: "question-bank", Keywords: []string{"question bank", "mcq", "practice questions"}},
		{TypeSlug: "syllabus", Keywords: []string{"syllabus", "curriculum"}},
		{TypeSlug: "practical", Keywords: []string{"practical", "lab", "clinical", "manual", "guide"}},
	}
}

func extractYearMonth(title string) (*int, *string) {
	var year *int
	var month *string
	if m := yearPattern.FindStringSubmatch(title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			year = &n
		}
	}
	if m := monthPattern.FindStringSubmatch(title); m != nil {
		name := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
		month = &name
	}
	return year, month
}

type classifierMaterialRepository interface {
	ListUnclassified(ctx context.Context) ([]models.Material, error)
	SetClassification(ctx context.Context, material *models.Material) error
}

// ClassifierService backfills material types for materials uploaded without
// one. Runs execute on an in-memory job queue so the trigger endpoint
// returns immediately.
type ClassifierService struct {
	materials classifierMaterialRepository
	types     materialTypeRepository
	rules     []ClassifierRule
	metrics   *MetricsService
	logger    *zap.Logger
	queue     *jobs.Queue
}

// NewClassifierService creates the classifier and its backing queue.
func NewClassifierService(
	materials classifierMaterialRepository,
	types materialTypeRepository,
	rules []ClassifierRule,
	metrics *MetricsService,
	queueCfg jobs.QueueConfig,
	logger *zap.Logger,
) *ClassifierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(rules) == 0 {
		rules = DefaultClassifierRules()
	}
	s := &ClassifierService{
		materials: materials,
		types:     types,
		rules:     rules,
		metrics:   metrics,
		logger:    logger,
	}
	if queueCfg.Logger == nil {
		queueCfg.Logger = logger
	}
	s.queue = jobs.NewQueue("classifier", s.handleJob, queueCfg)
	return s
}

// Start launches the queue workers.
func (s *ClassifierService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the queue workers.
func (s *ClassifierService) Stop() {
	s.queue.Stop()
}

// Schedule enqueues a backfill run.
func (s *ClassifierService) Schedule() error {
	job := jobs.Job{ID: uuid.NewString(), Type: classifyJobType}
	if err := s.queue.Enqueue(job); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to schedule classifier run")
	}
	return nil
}

func (s *ClassifierService) handleJob(ctx context.Context, job jobs.Job) error {
	updated, err := s.Run(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("classifier run finished",
		zap.String("job_id", job.ID),
		zap.Int("updated", updated))
	return nil
}

// Run classifies every material missing a type and reports how many were
// updated. It is idempotent: already-classified materials are never touched,
// so repeated runs converge.
func (s *ClassifierService) Run(ctx context.Context) (int, error) {
	pending, err := s.materials.ListUnclassified(ctx)
	if err != nil {
		return 0, fmt.Errorf("load unclassified materials: %w", err)
	}

	typeIDs, err := s.resolveTypeIDs(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range pending {
		material := &pending[i]
		rule, ok := s.match(material.Title, material.Description, typeIDs)
		if !ok {
			s.logger.Warn("no known material type for material", zap.String("material_id", material.ID))
			continue
		}

		typeID := typeIDs[rule.TypeSlug]
		material.MaterialTypeID = &typeID
		if rule.Extract != nil {
			year, month := rule.Extract(material.Title)
			if year != nil {
				material.Year = year
			}
			if month != nil {
				material.Month = month
			}
		}

		if err := s.materials.SetClassification(ctx, material); err != nil {
			return updated, fmt.Errorf("classify material %s: %w", material.ID, err)
		}
		updated++
	}

	if s.metrics != nil {
		s.metrics.RecordClassifierRun(updated)
	}
	return updated, nil
}

// match returns the first rule whose keyword appears in the material text
// and whose target category exists. A rule pointing at a missing category
// falls through to the later rules, then to the default. The second return
// is false only when even the default category is unknown, in which case the
// material is left untouched.
func (s *ClassifierService) match(title, description string, typeIDs map[string]string) (ClassifierRule, bool) {
	text := strings.ToLower(title + " " + description)
	for _, rule := range s.rules {
		if _, known := typeIDs[rule.TypeSlug]; !known {
			continue
		}
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule, true
			}
		}
	}
	if _, known := typeIDs[defaultTypeSlug]; known {
		return ClassifierRule{TypeSlug: defaultTypeSlug}, true
	}
	return ClassifierRule{}, false
}

func (s *ClassifierService) resolveTypeIDs(ctx context.Context) (map[string]string, error) {
	slugs := map[string]struct{}{defaultTypeSlug: {}}
	for _, rule := range s.rules {
		slugs[rule.TypeSlug] = struct{}{}
	}

	ids := make(map[string]string, len(slugs))
	for slug := range slugs {
		mt, err := s.types.FindBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("resolve material type %s: %w", slug, err)
		}
		if mt != nil {
			ids[slug] = mt.ID
		}
	}
	return ids, nil
}
