package repository

import (
	"context"
	"errors"

	"vitrine/internal/domain/entity"
)

// Domain-specific persistence errors, mapped by the application layer onto
// the user-facing taxonomy.
var (
	ErrProfileNotFound = errors.New("business profile not found")
	ErrProfileExists   = errors.New("business id already taken")
)

// ProfileRepository defines the standard operations for business-profile
// persistence. The application layer depends on this interface, not the
// concrete implementation.
type ProfileRepository interface {
	// FindByID retrieves a single profile by business id.
	FindByID(ctx context.Context, businessID string) (*entity.BusinessProfile, error)

	// FindByOwner retrieves the profile owned by the given identity, if any.
	FindByOwner(ctx context.Context, ownerID string) (*entity.BusinessProfile, error)

	// Create persists a new profile. ErrProfileExists when the id is taken.
	Create(ctx context.Context, profile *entity.BusinessProfile) error

	// UpdateSection merge-patches the given dotted field paths of one profile
	// document. It never replaces the whole document.
	UpdateSection(ctx context.Context, businessID string, fields map[string]any) error

	// Subscribe delivers the profile now and after every change.
	Subscribe(ctx context.Context, businessID string, onChange func(*entity.BusinessProfile)) (Subscription, error)
}

// ContactMessage is one feedback-form submission forwarded to the message
// store. Delivery beyond the write acknowledgment is not guaranteed.
type ContactMessage struct {
	ID         string
	BusinessID string
	Name       string
	Email      string
	Subject    string
	Message    string
	ReceivedAt int64
}

// MessageRepository stores contact-form submissions.
type MessageRepository interface {
	Add(ctx context.Context, msg *ContactMessage) error
}
