package blob

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBucketStore_UploadAndDelete(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := NewWithBucket(bucket, 15*time.Minute)
	ctx := context.Background()

	ref, err := store.Upload(ctx, "le-bistro/hero.jpg", []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "blob://le-bistro/hero.jpg", ref)

	exists, err := bucket.Exists(ctx, "le-bistro/hero.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, ref))
	exists, err = bucket.Exists(ctx, "le-bistro/hero.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBucketStore_MalformedRef(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := NewWithBucket(bucket, 15*time.Minute)

	_, err := store.Resolve(context.Background(), "not-a-ref")
	assert.Error(t, err)

	err = store.Delete(context.Background(), "blob://")
	assert.Error(t, err)
}

func TestImageResolver_PlaceholderFallback(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := NewImageResolver(NewWithBucket(bucket, time.Minute), time.Minute, "/img/placeholder.png", logger)

	// Empty and unresolvable references both degrade to the placeholder.
	assert.Equal(t, "/img/placeholder.png", resolver.ResolveImage(context.Background(), ""))
	assert.Equal(t, "/img/placeholder.png", resolver.ResolveImage(context.Background(), "bad-ref"))
}