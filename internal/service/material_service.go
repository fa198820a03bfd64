package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rguhub/catalog-api/internal/dto"
	"github.com/rguhub/catalog-api/internal/models"
	appErrors "github.com/rguhub/catalog-api/pkg/errors"
	"github.com/rguhub/catalog-api/pkg/storage"
)

type materialRepository interface {
	List(ctx context.Context, filter models.MaterialFilter) ([]models.MaterialRow, error)
	FindByID(ctx context.Context, id string) (*models.MaterialRow, error)
	Create(ctx context.Context, material *models.Material) error
	Update(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id string) error
}

type blobStore interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

// MaterialStorageConfig carries the upload policy the service enforces.
type MaterialStorageConfig struct {
	PublicBaseURL    string
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
	UploadRetries    int
}

// CreateMaterialRequest captures fields for creating link-only materials,
// where the resource lives at an external URL instead of local storage.
type CreateMaterialRequest struct {
	SubjectID      string  `json:"subject_id" validate:"required,uuid"`
	MaterialTypeID *string `json:"material_type_id" validate:"omitempty,uuid"`
	Title          string  `json:"title" validate:"required"`
	URL            string  `json:"url" validate:"required,url"`
	Description    string  `json:"description"`
	Year           *int    `json:"year" validate:"omitempty,gt=0"`
	Month          *string `json:"month"`
}

// UploadMaterialRequest captures the multipart form fields accompanying a
// file upload. Title is optional and auto-filled from the file name.
type UploadMaterialRequest struct {
	SubjectID      string
	MaterialTypeID *string
	Title          string
	Description    string
}

// UpdateMaterialRequest captures the mutable material fields. Pointer fields
// left nil keep their stored value; file path and creation time are never
// client-writable. Updates are metadata-only: replacing the stored file is
// delete and re-upload.
type UpdateMaterialRequest struct {
	MaterialTypeID *string `json:"material_type_id" validate:"omitempty,uuid"`
	Title          *string `json:"title"`
	URL            *string `json:"url" validate:"omitempty,url"`
	Description    *string `json:"description"`
	Year           *int    `json:"year" validate:"omitempty,gt=0"`
	Month          *string `json:"month"`
	IsActive       *bool   `json:"is_active"`
}

// MaterialDownload bundles an open file handle with the metadata a handler
// needs to serve it.
type MaterialDownload struct {
	File     *os.File
	Filename string
	Material dto.MaterialItem
}

// MaterialService handles study material workflows: listing, uploads,
// signed downloads and deletion.
type MaterialService struct {
	repo      materialRepository
	subjects  subjectRepository
	types     materialTypeRepository
	store     blobStore
	signer    *storage.SignedURLSigner
	cache     *CacheService
	metrics   *MetricsService
	cfg       MaterialStorageConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMaterialService creates a new material service.
func NewMaterialService(
	repo materialRepository,
	subjects subjectRepository,
	types materialTypeRepository,
	store blobStore,
	signer *storage.SignedURLSigner,
	cache *CacheService,
	metrics *MetricsService,
	cfg MaterialStorageConfig,
	validate *validator.Validate,
	logger *zap.Logger,
) *MaterialService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.UploadRetries <= 0 {
		cfg.UploadRetries = 3
	}
	return &MaterialService{
		repo:      repo,
		subjects:  subjects,
		types:     types,
		store:     store,
		signer:    signer,
		cache:     cache,
		metrics:   metrics,
		cfg:       cfg,
		validator: validate,
		logger:    logger,
	}
}

// List returns materials matching the filter in the flattened response shape.
func (s *MaterialService) List(ctx context.Context, filter models.MaterialFilter) ([]dto.MaterialItem, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list materials")
	}
	return dto.MaterialItemsFromRows(rows), nil
}

// Get returns a material by identifier.
func (s *MaterialService) Get(ctx context.Context, id string) (*dto.MaterialItem, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
	}
	item := dto.MaterialItemFromRow(*row)
	return &item, nil
}

// Create adds a link-only material pointing at an external URL.
func (s *MaterialService) Create(ctx context.Context, req CreateMaterialRequest) (*dto.MaterialItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid material payload")
	}
	if err := s.checkReferences(ctx, req.SubjectID, req.MaterialTypeID); err != nil {
		return nil, err
	}

	material := &models.Material{
		SubjectID:      req.SubjectID,
		MaterialTypeID: req.MaterialTypeID,
		Title:          strings.TrimSpace(req.Title),
		URL:            req.URL,
		Description:    req.Description,
		Year:           req.Year,
		Month:          req.Month,
		IsActive:       true,
	}

	if err := s.repo.Create(ctx, material); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create material")
	}

	s.invalidateUpdates(ctx)
	return s.Get(ctx, material.ID)
}

// Upload stores the file and creates the material record. Storage writes are
// retried a bounded number of times; exhausting the retries surfaces as a
// storage error rather than an internal one, so clients can distinguish a
// bad upload from a broken API.
func (s *MaterialService) Upload(ctx context.Context, req UploadMaterialRequest, header *multipart.FileHeader) (*dto.MaterialItem, error) {
	if req.SubjectID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject_id is required")
	}
	if header == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	if s.cfg.MaxFileSizeBytes > 0 && header.Size > s.cfg.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds maximum size of %d bytes", s.cfg.MaxFileSizeBytes))
	}
	if !s.mimeAllowed(header.Header.Get("Content-Type")) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file type not allowed")
	}
	if err := s.checkReferences(ctx, req.SubjectID, req.MaterialTypeID); err != nil {
		return nil, err
	}

	data, err := readMultipartFile(header)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read uploaded file")
	}

	relPath := filepath.ToSlash(filepath.Join(req.SubjectID, uuid.NewString()+"_"+sanitizeFilename(header.Filename)))
	if err := s.saveWithRetry(relPath, data); err != nil {
		if s.metrics != nil {
			s.metrics.RecordUploadFailure()
		}
		s.logger.Error("material upload failed", zap.String("path", relPath), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to store uploaded file")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = titleFromFilename(header.Filename)
	}

	material := &models.Material{
		SubjectID:      req.SubjectID,
		MaterialTypeID: req.MaterialTypeID,
		Title:          title,
		FilePath:       relPath,
		URL:            s.publicURL(relPath),
		Description:    req.Description,
		IsActive:       true,
	}

	if err := s.repo.Create(ctx, material); err != nil {
		if cleanupErr := s.store.Delete(relPath); cleanupErr != nil {
			s.logger.Warn("orphaned upload not removed", zap.String("path", relPath), zap.Error(cleanupErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create material")
	}

	s.invalidateUpdates(ctx)
	s.logger.Info("material uploaded",
		zap.String("material_id", material.ID),
		zap.String("subject_id", material.SubjectID),
		zap.Int64("size_bytes", header.Size))
	return s.Get(ctx, material.ID)
}

// Update applies partial changes to a material. CreatedAt and the stored
// file path are left untouched.
func (s *MaterialService) Update(ctx context.Context, id string, req UpdateMaterialRequest) (*dto.MaterialItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid material payload")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
	}

	material := row.Material
	if req.MaterialTypeID != nil {
		if *req.MaterialTypeID == "" {
			material.MaterialTypeID = nil
		} else {
			if _, err := s.types.FindByID(ctx, *req.MaterialTypeID); err != nil {
				if err == sql.ErrNoRows {
					return nil, appErrors.Clone(appErrors.ErrNotFound, "material type not found")
				}
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material type")
			}
			material.MaterialTypeID = req.MaterialTypeID
		}
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		material.Title = strings.TrimSpace(*req.Title)
	}
	if req.URL != nil {
		material.URL = *req.URL
	}
	if req.Description != nil {
		material.Description = *req.Description
	}
	if req.Year != nil {
		material.Year = req.Year
	}
	if req.Month != nil {
		material.Month = req.Month
	}
	if req.IsActive != nil {
		material.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, &material); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update material")
	}

	s.invalidateUpdates(ctx)
	return s.Get(ctx, id)
}

// SignedDownloadURL issues a time-limited token for fetching a stored file.
func (s *MaterialService) SignedDownloadURL(ctx context.Context, id string) (string, time.Time, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", time.Time{}, appErrors.Clone(appErrors.ErrNotFound, "material not found")
		}
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
	}
	if row.FilePath == "" {
		return "", time.Time{}, appErrors.Clone(appErrors.ErrValidation, "material has no stored file")
	}

	token, expiresAt, err := s.signer.Generate(row.ID, row.FilePath)
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download url")
	}
	return token, expiresAt, nil
}

// Download validates the token and opens the referenced file. The caller is
// responsible for closing the handle.
func (s *MaterialService) Download(ctx context.Context, token string) (*MaterialDownload, error) {
	materialID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid download token")
	}

	row, err := s.repo.FindByID(ctx, materialID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
	}
	if row.FilePath == "" || row.FilePath != relPath {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "file not found for material")
	}

	file, err := s.store.Open(row.FilePath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to open stored file")
	}

	return &MaterialDownload{
		File:     file,
		Filename: filepath.Base(row.FilePath),
		Material: dto.MaterialItemFromRow(*row),
	}, nil
}

// Delete removes the material record and its stored file, if any.
func (s *MaterialService) Delete(ctx context.Context, id string) error {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "material not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete material")
	}
	if row.FilePath != "" {
		if err := s.store.Delete(row.FilePath); err != nil {
			s.logger.Warn("stored file not removed", zap.String("path", row.FilePath), zap.Error(err))
		}
	}

	s.invalidateUpdates(ctx)
	s.logger.Info("material deleted", zap.String("material_id", id))
	return nil
}

func (s *MaterialService) checkReferences(ctx context.Context, subjectID string, typeID *string) error {
	if _, err := s.subjects.FindByID(ctx, subjectID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	if typeID != nil && *typeID != "" {
		if _, err := s.types.FindByID(ctx, *typeID); err != nil {
			if err == sql.ErrNoRows {
				return appErrors.Clone(appErrors.ErrNotFound, "material type not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load material type")
		}
	}
	return nil
}

func (s *MaterialService) saveWithRetry(relPath string, data []byte) error {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.UploadRetries; attempt++ {
		if _, lastErr = s.store.Save(relPath, data); lastErr == nil {
			return nil
		}
		s.logger.Warn("storage write failed",
			zap.String("path", relPath),
			zap.Int("attempt", attempt),
			zap.Error(lastErr))
	}
	return lastErr
}

func (s *MaterialService) mimeAllowed(contentType string) bool {
	if len(s.cfg.AllowedMIMEs) == 0 {
		return true
	}
	mime := contentType
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	mime = strings.TrimSpace(strings.ToLower(mime))
	for _, allowed := range s.cfg.AllowedMIMEs {
		if strings.EqualFold(strings.TrimSpace(allowed), mime) {
			return true
		}
	}
	return false
}

func (s *MaterialService) publicURL(relPath string) string {
	base := strings.TrimRight(s.cfg.PublicBaseURL, "/")
	if base == "" {
		return "/" + relPath
	}
	return base + "/" + relPath
}

func (s *MaterialService) invalidateUpdates(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, updatesCacheKey)
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close() //nolint:errcheck
	return io.ReadAll(file)
}

// sanitizeFilename keeps the stored name shell and URL safe.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

// titleFromFilename derives a readable title from the original file name.
func titleFromFilename(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Untitled material"
	}
	return base
}
