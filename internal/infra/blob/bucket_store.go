// Package blob implements the image store on a gocloud.dev bucket, so the
// same code runs against GCS in production and a local directory in
// development.
package blob

import (
	"context"
	"strings"
	"time"

	"vitrine/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/blob"

	// Bucket URL drivers.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

const refScheme = "blob://"

type bucketStore struct {
	bucket       *blob.Bucket
	signedURLTTL time.Duration
}

// New opens the bucket named by a gocloud URL ("gs://...", "file://...",
// "mem://") and returns a BlobStore over it, plus a close function for the
// lifecycle hook.
func New(ctx context.Context, bucketURL string, signedURLTTL time.Duration) (service.BlobStore, func() error, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	return &bucketStore{bucket: bucket, signedURLTTL: signedURLTTL}, bucket.Close, nil
}

// NewWithBucket wraps an already-open bucket. Used by tests with memblob.
func NewWithBucket(bucket *blob.Bucket, signedURLTTL time.Duration) service.BlobStore {
	return &bucketStore{bucket: bucket, signedURLTTL: signedURLTTL}
}

func (s *bucketStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, path, data, opts); err != nil {
		return "", errors.Wrapf(err, "failed to upload blob %s", path)
	}

	return refScheme + path, nil
}

func (s *bucketStore) Resolve(ctx context.Context, ref string) (string, error) {
	key, err := refKey(ref)
	if err != nil {
		return "", err
	}

	url, err := s.bucket.SignedURL(ctx, key, &blob.SignedURLOptions{Expiry: s.signedURLTTL})
	if err != nil {
		return "", errors.Wrapf(err, "failed to sign URL for blob %s", key)
	}

	return url, nil
}

func (s *bucketStore) Delete(ctx context.Context, ref string) error {
	key, err := refKey(ref)
	if err != nil {
		return err
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrapf(err, "failed to delete blob %s", key)
	}

	return nil
}

func refKey(ref string) (string, error) {
	key, ok := strings.CutPrefix(ref, refScheme)
	if !ok || key == "" {
		return "", errors.Errorf("malformed blob reference %q", ref)
	}

	return key, nil
}
