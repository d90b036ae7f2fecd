// Command sitegen renders the full static site of one business into an
// output directory, ready to upload to any static host.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"vitrine/config"
	"vitrine/internal/domain/repository"
	"vitrine/internal/domain/service"
	"vitrine/internal/generator"
	"vitrine/internal/infra/blob"
	logs "vitrine/internal/infra/log"
	"vitrine/internal/infra/persistence"
	"vitrine/internal/infra/persistence/firestore"
	"vitrine/internal/infra/persistence/memory"
	"vitrine/internal/renderer"
)

func main() {
	businessID := flag.String("business-id", "", "ID of the business to generate (required)")
	businessType := flag.String("type", "", "business type of the profile, e.g. restaurant (required)")
	output := flag.String("output", "", "output directory (default ./generated-sites/site-<business-id>)")
	templates := flag.String("templates", "", "templates directory (default from config)")
	configEnv := flag.String("config", "config", "config name, loads <name>.yaml from the search path")
	flag.Parse()

	if *businessID == "" || *businessType == "" {
		fmt.Fprintln(os.Stderr, "sitegen: --business-id and --type are required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*businessID, *businessType, *output, *templates, *configEnv); err != nil {
		fmt.Fprintf(os.Stderr, "sitegen: %v\n", err)
		os.Exit(1)
	}
}

func run(businessID, businessType, output, templates, configEnv string) error {
	ctx := context.Background()

	cfg, err := loadConfig(configEnv)
	if err != nil {
		return err
	}
	if templates != "" {
		cfg.Generator.TemplatesDir = templates
	}
	if output == "" {
		output = cfg.Generator.OutputDir + "/site-" + businessID
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return err
	}

	store, closeStore, err := openDocumentStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	images, closeImages, err := openImageResolver(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeImages()

	siteRenderer, err := renderer.New(images, logger)
	if err != nil {
		return err
	}

	gen := generator.New(generator.Params{
		Profiles: persistence.NewProfileRepository(store),
		Renderer: siteRenderer,
		Config:   cfg,
		Logger:   logger,
	})

	start := time.Now()
	manifest, err := gen.Generate(ctx, businessID, businessType, output)
	if err != nil {
		return err
	}

	logger.Info("Site generated",
		slog.String("businessId", manifest.BusinessID),
		slog.String("output", output),
		slog.Duration("elapsed", time.Since(start)),
	)

	return nil
}

// loadConfig loads the named YAML config; a missing file falls back to an
// in-memory stack so local fixtures can be generated without any setup.
func loadConfig(configEnv string) (*config.Config, error) {
	cfg, err := config.LoadWithEnv[config.Config](configEnv, "config", "../config", "../../config")
	if err != nil {
		cfg = &config.Config{}
	}
	cfg.ApplyDefaults()

	return cfg, nil
}

func openDocumentStore(ctx context.Context, cfg *config.Config) (repository.DocumentStore, func() error, error) {
	if cfg.Firestore == nil || cfg.Firestore.Provider == "" || cfg.Firestore.Provider == "memory" {
		return memory.New(), func() error { return nil }, nil
	}

	return firestore.New(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsPath)
}

func openImageResolver(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.ImageResolver, func() error, error) {
	bucketURL := "mem://"
	signedURLTTL := 15 * time.Minute
	var placeholder string
	if cfg.Blob != nil {
		if cfg.Blob.BucketURL != "" {
			bucketURL = cfg.Blob.BucketURL
		}
		signedURLTTL = cfg.Blob.SignedURLTTL
		placeholder = cfg.Blob.PlaceholderURL
	}

	store, closeStore, err := blob.New(ctx, bucketURL, signedURLTTL)
	if err != nil {
		return nil, nil, err
	}

	return blob.NewImageResolver(store, signedURLTTL, placeholder, logger), closeStore, nil
}
