package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rguhub/catalog-api/api/swagger"
	"github.com/rguhub/catalog-api/internal/handler"
	"github.com/rguhub/catalog-api/internal/middleware"
	"github.com/rguhub/catalog-api/internal/repository"
	"github.com/rguhub/catalog-api/internal/service"
	"github.com/rguhub/catalog-api/pkg/cache"
	"github.com/rguhub/catalog-api/pkg/config"
	"github.com/rguhub/catalog-api/pkg/database"
	"github.com/rguhub/catalog-api/pkg/jobs"
	"github.com/rguhub/catalog-api/pkg/logger"
	corsmiddleware "github.com/rguhub/catalog-api/pkg/middleware/cors"
	reqidmiddleware "github.com/rguhub/catalog-api/pkg/middleware/requestid"
	"github.com/rguhub/catalog-api/pkg/storage"
)

// @title rguHub Catalog API
// @version 1.0.0
// @description Content catalog backend for the student resource portal
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	// Redis is optional: the feed falls back to the database when absent.
	var cacheRepo *repository.CacheRepository
	if cfg.Updates.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, updates cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	store, err := storage.NewLocalStorage(cfg.Storage.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare material storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Storage.SignedURLSecret, cfg.Storage.SignedURLTTL)

	validate := validator.New()
	metrics := service.NewMetricsService()

	programRepo := repository.NewProgramRepository(db)
	syllabusRepo := repository.NewSyllabusRepository(db)
	termRepo := repository.NewTermRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	typeRepo := repository.NewMaterialTypeRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	recruitmentRepo := repository.NewRecruitmentRepository(db)

	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Updates.CacheTTL, logr, true)
	}

	programSvc := service.NewProgramService(programRepo, validate, logr)
	syllabusSvc := service.NewSyllabusService(syllabusRepo, programRepo, validate, logr)
	termSvc := service.NewTermService(termRepo, syllabusRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, termRepo, validate, logr)
	typeSvc := service.NewMaterialTypeService(typeRepo, validate, logr)
	materialSvc := service.NewMaterialService(
		materialRepo,
		subjectRepo,
		typeRepo,
		store,
		signer,
		cacheSvc,
		metrics,
		service.MaterialStorageConfig{
			PublicBaseURL:    cfg.Storage.PublicBaseURL,
			MaxFileSizeBytes: cfg.Storage.MaxFileSizeBytes,
			AllowedMIMEs:     cfg.Storage.AllowedMIMEs,
			UploadRetries:    cfg.Storage.UploadRetries,
		},
		validate,
		logr,
	)
	recruitmentSvc := service.NewRecruitmentService(recruitmentRepo, programRepo, cacheSvc, validate, logr)
	updatesSvc := service.NewUpdatesService(materialRepo, recruitmentRepo, cacheSvc, cfg.Updates.CacheTTL, logr)
	classifierSvc := service.NewClassifierService(
		materialRepo,
		typeRepo,
		service.DefaultClassifierRules(),
		metrics,
		jobs.QueueConfig{
			MaxRetries: cfg.Classifier.WorkerRetries,
			RetryDelay: cfg.Classifier.RetryDelay,
			Logger:     logr,
		},
		logr,
	)
	classifierSvc.Start(ctx)
	defer classifierSvc.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	handler.Register(r, cfg.APIPrefix, handler.Set{
		Programs:      handler.NewProgramHandler(programSvc),
		Syllabi:       handler.NewSyllabusHandler(syllabusSvc),
		Terms:         handler.NewTermHandler(termSvc),
		Subjects:      handler.NewSubjectHandler(subjectSvc),
		MaterialTypes: handler.NewMaterialTypeHandler(typeSvc),
		Materials:     handler.NewMaterialHandler(materialSvc, classifierSvc),
		Recruitments:  handler.NewRecruitmentHandler(recruitmentSvc),
		Updates:       handler.NewUpdatesHandler(updatesSvc),
		Metrics:       handler.NewMetricsHandler(metrics, db),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
