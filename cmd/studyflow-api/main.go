package main

import (
	"context"
	"errors"
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
	"go.uber.org/zap"

	_ "github.com/noah-isme/studyflow-api/api/swagger"
	"github.com/noah-isme/studyflow-api/internal/handler"
	"github.com/noah-isme/studyflow-api/internal/middleware"
	"github.com/noah-isme/studyflow-api/internal/repository"
	"github.com/noah-isme/studyflow-api/internal/service"
	"github.com/noah-isme/studyflow-api/pkg/cache"
	"github.com/noah-isme/studyflow-api/pkg/config"
	"github.com/noah-isme/studyflow-api/pkg/database"
	"github.com/noah-isme/studyflow-api/pkg/export"
	"github.com/noah-isme/studyflow-api/pkg/jobs"
	"github.com/noah-isme/studyflow-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/studyflow-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/studyflow-api/pkg/middleware/requestid"
	"github.com/noah-isme/studyflow-api/pkg/storage"
)

// @title StudyFlow API
// @version 1.0.0
// @description Revision planner: subjects, exam countdowns, safety scores and exports
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, checks, closeStore, err := openStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()

	loc := cfg.Planner.Location()
	validate := validator.New()
	metrics := service.NewMetricsService()

	subjectRepo := repository.NewSubjectRepository(store, cfg.Store.SubjectsKey, logr)
	preferenceRepo := repository.NewPreferenceRepository(store, cfg.Store.ThemeKey)

	subjectSvc := service.NewSubjectService(subjectRepo, validate, metrics, logr)
	planningSvc := service.NewPlanningService(subjectRepo, loc, metrics, logr)
	preferenceSvc := service.NewPreferenceService(preferenceRepo, validate, logr)

	handlers := handler.Handlers{
		Subjects:    handler.NewSubjectHandler(subjectSvc),
		Planning:    handler.NewPlanningHandler(planningSvc),
		Preferences: handler.NewPreferenceHandler(preferenceSvc),
		Metrics:     handler.NewMetricsHandler(metrics, checks),
	}

	if cfg.Exports.Enabled {
		queue, exportHandler, err := setupExports(ctx, cfg, planningSvc, validate, metrics, loc, logr)
		if err != nil {
			logr.Fatal("failed to set up exports", zap.Error(err))
		}
		defer queue.Stop()
		handlers.Exports = exportHandler
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	handler.RegisterRoutes(r, cfg.APIPrefix, handlers)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr), zap.String("env", cfg.Env),
			zap.String("store", cfg.Store.Driver), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (repository.KeyValueStore, map[string]handler.ReadinessCheck, func(), error) {
	noop := func() {}
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logr.Warn("memory store selected, subjects are lost on restart")
		return repository.NewMemoryStore(), nil, noop, nil
	case config.StoreDriverRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, noop, err
		}
		checks := map[string]handler.ReadinessCheck{
			"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
		}
		return repository.NewRedisStore(client), checks, func() { _ = client.Close() }, nil
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, noop, err
		}
		store := repository.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, noop, err
		}
		checks := map[string]handler.ReadinessCheck{
			"postgres": db.PingContext,
		}
		return store, checks, func() { _ = db.Close() }, nil
	case config.StoreDriverFile, "":
		files, err := storage.NewLocalStorage(cfg.Store.Dir)
		if err != nil {
			return nil, nil, noop, err
		}
		return repository.NewFileStore(files, "kv"), nil, noop, nil
	default:
		return nil, nil, noop, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func setupExports(ctx context.Context, cfg *config.Config, planning *service.PlanningService, validate *validator.Validate, metrics *service.MetricsService, loc *time.Location, logr *zap.Logger) (*jobs.Queue, *handler.ExportHandler, error) {
	files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return nil, nil, err
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exporter := service.NewExportService(planning, files, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
		Location:  loc,
	}, logr, export.NewCSVExporter(), export.NewPDFExporter())

	jobRepo := repository.NewExportJobRepository()
	worker := service.NewExportWorker(jobRepo, exporter, metrics, logr)
	queue := jobs.NewQueue("planning-exports", worker.Handle, jobs.QueueConfig{
		Workers:     cfg.Exports.WorkerConcurrency,
		MaxRetries:  cfg.Exports.WorkerRetries,
		RetryDelay:  2 * time.Second,
		OnExhausted: worker.HandleExhausted,
		Logger:      logr,
	})
	queue.Start(ctx)

	jobSvc := service.NewExportJobService(jobRepo, queue, exporter, validate, logr, service.ExportJobServiceConfig{
		ResultTTL:       cfg.Exports.SignedURLTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
	})
	jobSvc.StartCleanup(ctx)

	return queue, handler.NewExportHandler(jobSvc), nil
}
