// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"encoding/json"

	"vitrine/internal/domain/entity"
)

// --- Input DTOs ---

// CreateProfileInput defines the data required to create a business profile.
type CreateProfileInput struct {
	BusinessID   string
	BusinessType string
	OwnerID      string
}

// SaveSectionInput defines one section-scoped write. Payload is the raw JSON
// body of the section being saved; its shape depends on SectionKey.
type SaveSectionInput struct {
	BusinessID string
	OwnerID    string
	SectionKey string
	Payload    json.RawMessage
	RequestID  string
}

// Image attachment targets.
const (
	ImageTargetHero    = "hero"
	ImageTargetGallery = "gallery"
)

// AttachImageInput defines one image upload bound to a profile field.
type AttachImageInput struct {
	BusinessID  string
	OwnerID     string
	Target      string // hero or gallery
	Filename    string
	ContentType string
	Data        []byte
}

// EditorUsecase defines the dashboard-facing profile operations. This is the
// contract the delivery layer depends on.
type EditorUsecase interface {
	// CreateProfile creates the default-empty profile for a new business.
	CreateProfile(ctx context.Context, input CreateProfileInput) (*entity.BusinessProfile, error)

	// GetProfile loads one profile, served from a short-lived read cache.
	GetProfile(ctx context.Context, businessID string) (*entity.BusinessProfile, error)

	// SaveSection validates and merge-patches a single section. Nothing is
	// persisted when validation fails.
	SaveSection(ctx context.Context, input SaveSectionInput) (*entity.BusinessProfile, error)

	// AttachImage uploads the bytes and binds the resulting reference to the
	// target field. Returns the opaque blob reference.
	AttachImage(ctx context.Context, input AttachImageInput) (string, error)

	// MarkDirty records unsaved local edits for one section of a business.
	MarkDirty(businessID, sectionKey string)

	// IsDirty reports whether the section has edits not yet saved.
	IsDirty(businessID, sectionKey string) bool
}
