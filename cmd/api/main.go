package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talentio/profilehub/internal/api"
	"github.com/talentio/profilehub/internal/config"
	"github.com/talentio/profilehub/internal/enrich"
	"github.com/talentio/profilehub/internal/logger"
	"github.com/talentio/profilehub/internal/repository"
	"github.com/talentio/profilehub/internal/service"
	"github.com/talentio/profilehub/internal/source"
	"github.com/talentio/profilehub/internal/source/instagram"
	"github.com/talentio/profilehub/internal/source/linkedin"
	"github.com/talentio/profilehub/internal/source/resume"
	"github.com/talentio/profilehub/internal/source/website"
	"github.com/talentio/profilehub/internal/storage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		File:        cfg.Log.File,
		ServiceName: "profilehub-api",
	})
	logger.SetDefaultLogger(appLogger)

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)

	// Initialize storage (supports memory, MinIO, R2, S3)
	objectStorage, err := storage.NewStorage(&storage.S3Config{
		Type:      storage.StorageType(cfg.Storage.Type),
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize storage")
	}

	ctx := context.Background()
	if s3, ok := objectStorage.(*storage.S3Storage); ok {
		if err := s3.EnsureBucket(ctx); err != nil {
			appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
		}
	}

	// Initialize enrichment client
	enricher := enrich.NewClient(&enrich.Config{
		Provider:     cfg.AI.Provider,
		Model:        cfg.AI.Model,
		APIKey:       cfg.AI.APIKey,
		BaseURL:      cfg.AI.BaseURL,
		RateLimitRPS: cfg.AI.RateLimitRPS,
	})

	// Register source adapters
	registry := source.NewRegistry(
		linkedin.NewAdapter(),
		instagram.NewAdapter(),
		website.NewAdapter(),
		resume.NewAdapter(objectStorage),
	)

	// Initialize build pipeline
	builder := service.NewBuilderService(
		registry,
		enricher,
		profileRepo,
		&service.BuildConfig{
			FetchTimeout:  cfg.Pipeline.FetchTimeout,
			EnrichTimeout: cfg.Pipeline.EnrichTimeout,
		},
	)

	// Set up router
	router := api.SetupRouter(builder, enricher, objectStorage, appLogger, &cfg.Server)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
	appLogger.Info("Server stopped")
}
