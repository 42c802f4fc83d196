package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/talentio/profilehub/internal/config"
	"github.com/talentio/profilehub/internal/domain"
	"github.com/talentio/profilehub/internal/enrich"
	aimock "github.com/talentio/profilehub/internal/enrich/mock"
	"github.com/talentio/profilehub/internal/logger"
	"github.com/talentio/profilehub/internal/repository"
	"github.com/talentio/profilehub/internal/service"
	"github.com/talentio/profilehub/internal/source"
	"github.com/talentio/profilehub/internal/source/instagram"
	"github.com/talentio/profilehub/internal/source/linkedin"
	"github.com/talentio/profilehub/internal/source/mock"
	"github.com/talentio/profilehub/internal/source/resume"
	"github.com/talentio/profilehub/internal/source/website"
	"github.com/talentio/profilehub/internal/storage"
)

// build is the one-off pipeline runner: builds a single profile from the
// command line and prints the merged result as JSON.
func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "profilehub-build",
	})
	logger.SetDefaultLogger(appLogger)

	// Parse command line flags
	identity := flag.String("identity", "", "Profile identity, a new one is generated when empty")
	sources := flag.String("sources", "", "Comma-separated kind=locator pairs, e.g. linkedin=https://...,resume=resumes/x.txt")
	offline := flag.Bool("offline", false, "Serve canned source data instead of fetching, no network needed")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	refs, err := parseSources(*sources)
	if err != nil {
		appLogger.WithError(err).Fatal("Invalid -sources flag")
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}
	profileRepo := repository.NewProfileRepository(db)

	// Initialize storage
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

	// Initialize enrichment client
	var enricher enrich.Enricher = enrich.NewClient(&enrich.Config{
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
	if *offline {
		registry = offlineRegistry()
		enricher = aimock.New()
	}

	builder := service.NewBuilderService(
		registry,
		enricher,
		profileRepo,
		&service.BuildConfig{
			FetchTimeout:  cfg.Pipeline.FetchTimeout,
			EnrichTimeout: cfg.Pipeline.EnrichTimeout,
		},
	)

	profile, err := builder.Build(context.Background(), *identity, refs)
	if err != nil {
		appLogger.WithError(err).Fatal("Build failed")
	}

	out, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to encode profile")
	}
	fmt.Fprintln(os.Stdout, string(out))
}

// offlineRegistry serves canned records for every kind, for demos and
// pipeline checks without network or storage.
func offlineRegistry() *source.Registry {
	return source.NewRegistry(
		mock.New(domain.KindLinkedIn, domain.SourceRecord{
			Name:       "Maya Chen",
			Profession: "Creative Director & Photographer",
			Location:   "Brooklyn, NY",
			Experience: []string{"Freelance portrait photographer, 5 years"},
			Skills:     []string{"Photography", "Art Direction"},
		}),
		mock.New(domain.KindInstagram, domain.SourceRecord{
			Captions: []string{"Golden hour #photography #portrait"},
			Media: []domain.MediaRef{
				{URL: "https://cdn.example.com/golden-hour.jpg", Caption: "Golden hour #photography", Format: "jpeg"},
			},
		}),
		mock.New(domain.KindWebsite, domain.SourceRecord{
			Bio: "Portrait and event photography in Brooklyn.",
		}),
		mock.New(domain.KindResume, domain.SourceRecord{
			Email: "maya@example.com",
			Phone: "+1 555 0100",
		}),
	)
}

// parseSources turns "kind=locator,kind=locator" into source references.
func parseSources(raw string) ([]domain.SourceReference, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("at least one kind=locator pair is required")
	}

	var refs []domain.SourceReference
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kind, locator, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("malformed pair %q, expected kind=locator", pair)
		}
		refs = append(refs, domain.SourceReference{
			Kind:    domain.SourceKind(strings.TrimSpace(kind)),
			Locator: strings.TrimSpace(locator),
		})
	}
	return refs, nil
}
