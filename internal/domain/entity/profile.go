package entity

import (
	"regexp"
	"time"

	"github.com/pkg/errors"
)

// businessIDPattern constrains the public identifier that becomes part of
// every generated site URL.
var businessIDPattern = regexp.MustCompile(`^[a-z0-9_-]{3,50}$`)

// ValidateBusinessID checks the creation-time format rule for business ids.
func ValidateBusinessID(id string) error {
	if !businessIDPattern.MatchString(id) {
		return errors.Errorf("business id %q must match [a-z0-9_-]{3,50}", id)
	}

	return nil
}

// BusinessProfile is the canonical content document for one tenant business.
// BusinessID, BusinessType and OwnerID are fixed at creation; everything else
// is mutated section-by-section through merge-patch updates.
type BusinessProfile struct {
	BusinessID   string       `json:"businessId"`
	BusinessType BusinessType `json:"businessType"`
	OwnerID      string       `json:"ownerId"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`

	BasicInfo BasicInfo      `json:"basicInfo"`
	Hero      Hero           `json:"hero"`
	Gallery   []GalleryImage `json:"gallery"`

	// Sections holds the type-specific content sections. Only keys listed in
	// the catalog entry for BusinessType may ever be populated.
	Sections map[SectionKey]*Section `json:"sections"`

	// Widgets holds booking-widget settings, keyed by a kind from the catalog
	// entry's widget set.
	Widgets map[WidgetKind]*WidgetSettings `json:"widgets"`
}

// BasicInfo carries the identity and contact block shared by every type.
type BasicInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Hours       WeekHours `json:"hours"`
}

// Hero is the landing banner. ImageRef is an opaque blob reference resolved
// to a fetchable URL only at render time.
type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTAText  string `json:"ctaText"`
	ImageRef string `json:"imageRef,omitempty"`
}

// GalleryImage is one entry of the ordered gallery.
type GalleryImage struct {
	ImageRef string `json:"imageRef"`
	AltText  string `json:"altText,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// Section returns the named content section, nil when absent.
func (p *BusinessProfile) Section(key SectionKey) *Section {
	if p.Sections == nil {
		return nil
	}

	return p.Sections[key]
}

// Widget returns the settings for a kind, nil when absent.
func (p *BusinessProfile) Widget(kind WidgetKind) *WidgetSettings {
	if p.Widgets == nil {
		return nil
	}

	return p.Widgets[kind]
}
