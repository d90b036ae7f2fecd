package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"vitrine/config"
	"vitrine/internal/delivery"
	"vitrine/internal/delivery/http"
	"vitrine/internal/delivery/http/middleware"
	"vitrine/internal/delivery/http/router/handler"
	"vitrine/internal/domain/repository"
	"vitrine/internal/domain/service"
	"vitrine/internal/infra/auth"
	"vitrine/internal/infra/blob"
	logs "vitrine/internal/infra/log"
	"vitrine/internal/infra/persistence"
	"vitrine/internal/infra/persistence/firestore"
	"vitrine/internal/infra/persistence/memory"
	"vitrine/internal/infra/pubsub"
	"vitrine/internal/renderer"
	"vitrine/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		newDocumentStore,
	)
}

// newDocumentStore selects the document store backend; "memory" keeps
// everything in-process for local development.
func newDocumentStore(lc fx.Lifecycle, ctx context.Context, cfg *config.Config) (repository.DocumentStore, error) {
	if cfg.Firestore == nil || cfg.Firestore.Provider == "" || cfg.Firestore.Provider == "memory" {
		return memory.New(), nil
	}

	store, closeStore, err := firestore.New(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create firestore document store")
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closeStore()
		},
	})

	return store, nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.NewProfileRepository,
			persistence.NewMessageRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			newBlobStore,
			newImageResolver,
			pubsub.NewEventPublisher,
			renderer.New,
		),
	)
}

// newBlobStore opens the image bucket. Without configuration it falls back to
// an in-memory bucket, which is enough for local development.
func newBlobStore(lc fx.Lifecycle, ctx context.Context, cfg *config.Config) (service.BlobStore, error) {
	bucketURL := "mem://"
	signedURLTTL := 15 * time.Minute
	if cfg.Blob != nil {
		if cfg.Blob.BucketURL != "" {
			bucketURL = cfg.Blob.BucketURL
		}
		signedURLTTL = cfg.Blob.SignedURLTTL
	}

	store, closeStore, err := blob.New(ctx, bucketURL, signedURLTTL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open blob bucket %s", bucketURL)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closeStore()
		},
	})

	return store, nil
}

func newImageResolver(store service.BlobStore, cfg *config.Config, logger *slog.Logger) service.ImageResolver {
	urlTTL := 15 * time.Minute
	var placeholder string
	if cfg.Blob != nil {
		urlTTL = cfg.Blob.SignedURLTTL
		placeholder = cfg.Blob.PlaceholderURL
	}

	return blob.NewImageResolver(store, urlTTL, placeholder, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewEditorService,
			impl.NewRenderService,
			impl.NewMessageService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewProfileHandler,
			handler.NewMessageHandler,
			handler.NewSiteHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
