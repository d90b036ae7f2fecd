// Package service declares the domain-level collaborator interfaces
// implemented by the infrastructure layer.
package service

import "context"

// BlobStore abstracts the image bucket. Upload returns an opaque reference
// ("blob://<key>") that is persisted as-is; it is resolved to a fetchable URL
// only at render time, because resolved URLs expire and may be regenerated.
type BlobStore interface {
	// Upload stores the bytes under a caller-chosen path and returns the
	// opaque reference.
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)

	// Resolve turns an opaque reference into a fetchable URL. It may fail;
	// callers fall back to a placeholder image.
	Resolve(ctx context.Context, ref string) (string, error)

	// Delete removes the blob behind the reference. Best-effort: failures are
	// logged, never surfaced to the caller's main flow.
	Delete(ctx context.Context, ref string) error
}

// ImageResolver is the render-time view of the blob store: resolution
// results are cached for the lifetime of a page load and failures degrade to
// the placeholder URL instead of omitting the element.
type ImageResolver interface {
	// ResolveImage never fails; it returns the placeholder URL when the
	// reference cannot be resolved.
	ResolveImage(ctx context.Context, ref string) string
}
