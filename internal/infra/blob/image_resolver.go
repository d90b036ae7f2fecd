package blob

import (
	"context"
	"log/slog"
	"time"

	"vitrine/internal/domain/service"
	"vitrine/internal/infra/cache"
)

type cachedResolver struct {
	store       service.BlobStore
	urls        *cache.TTL[string]
	placeholder string
	logger      *slog.Logger
}

// NewImageResolver wraps a BlobStore with a short-lived URL cache and a
// placeholder fallback, so rendering never fails on a broken image reference.
func NewImageResolver(store service.BlobStore, urlTTL time.Duration, placeholderURL string, logger *slog.Logger) service.ImageResolver {
	return &cachedResolver{
		store:       store,
		urls:        cache.NewTTL[string](urlTTL),
		placeholder: placeholderURL,
		logger:      logger,
	}
}

func (r *cachedResolver) ResolveImage(ctx context.Context, ref string) string {
	if ref == "" {
		return r.placeholder
	}

	if url, ok := r.urls.Get(ref); ok {
		return url
	}

	url, err := r.store.Resolve(ctx, ref)
	if err != nil {
		r.logger.Warn("image resolution failed, using placeholder",
			slog.String("ref", ref), slog.Any("error", err))

		return r.placeholder
	}
	r.urls.Set(ref, url)

	return url
}
