package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smart-class/classroom-service/internal/cache"
	"github.com/smart-class/classroom-service/internal/config"
	"github.com/smart-class/classroom-service/internal/handlers"
	"github.com/smart-class/classroom-service/internal/repositories/postgres"
	"github.com/smart-class/classroom-service/internal/services"
	"github.com/smart-class/classroom-service/internal/utils"
	"github.com/smart-class/classroom-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogLogger := logger.(*utils.SlogLogger).GetSlogLogger()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	var cacheService cache.CacheService
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, running without cache", "error", err)
		cacheService = cache.NoopCache{}
	} else {
		cacheService = cache.NewRedisCache(redisClient, slogLogger)
		defer redisClient.Close()
	}

	publisher := config.CreateEventPublisher(cfg.Events, slogLogger)
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	validator := utils.NewValidator()
	policy := services.IncentivePolicy{LatePenalty: cfg.LatePenalty}

	submissionService := services.NewSubmissionService(repo, publisher, policy, slogLogger, validator)
	svcs := handlers.Services{
		Assignment: services.NewAssignmentService(repo, publisher, cacheService, slogLogger, validator),
		Submission: submissionService,
		Student:    services.NewStudentService(repo, publisher, slogLogger, validator),
		Ledger:     services.NewLedgerService(repo, publisher, slogLogger),
		Class:      services.NewClassService(repo, cacheService, slogLogger),
		Report:     services.NewReportService(repo, slogLogger),
		Export:     services.NewExportService(repo, submissionService, slogLogger),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(svcs, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
