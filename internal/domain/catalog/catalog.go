// Package catalog is the static registry mapping a business type to its page
// set, navigation sections, widget kinds and theme palette. It is pure
// configuration data, immutable for the process lifetime.
package catalog

import (
	"vitrine/internal/domain/entity"

	"github.com/pkg/errors"
)

// Page keys shared by the generator, the renderer and the templates.
const (
	PageHome     = "home"
	PageMenu     = "menu"
	PageServices = "services"
	PageProducts = "products"
	PageContact  = "contact"
	PageBooking  = "booking"
)

// Theme holds the three CSS custom-property colors of a site.
type Theme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// Entry describes everything derived from a business type: which pages the
// generated site has, which sections the dashboard edits, which widget kinds
// may be enabled, and the color palette.
type Entry struct {
	DisplayName string
	Pages       []string
	NavSections []string
	SectionKeys []entity.SectionKey
	WidgetKinds []entity.WidgetKind
	Theme       Theme
}

// PageTitles maps page keys to display titles. A key missing here degrades
// to a visible placeholder in generated pages rather than failing generation.
var PageTitles = map[string]string{
	PageHome:     "Home",
	PageMenu:     "Menu",
	PageServices: "Services",
	PageProducts: "Products",
	PageContact:  "Contact",
	PageBooking:  "Booking",
}

var entries = map[entity.BusinessType]Entry{
	entity.TypeRestaurant: {
		DisplayName: "Restaurant",
		Pages:       []string{PageHome, PageMenu, PageContact, PageBooking},
		NavSections: []string{"menu", "order", "info", "contact"},
		SectionKeys: []entity.SectionKey{entity.SectionDailyMenu, entity.SectionMainMenu, entity.SectionDrinksMenu},
		WidgetKinds: []entity.WidgetKind{entity.WidgetGloriaFood},
		Theme:       Theme{Primary: "#d4842c", Secondary: "#2c1810", Accent: "#ff6b35"},
	},
	entity.TypeHairdresser: {
		DisplayName: "Hair salon",
		Pages:       []string{PageHome, PageServices, PageContact, PageBooking},
		NavSections: []string{"services", "appointment", "info", "contact"},
		SectionKeys: []entity.SectionKey{entity.SectionServices, entity.SectionTeam, entity.SectionTestimonials, entity.SectionAbout},
		WidgetKinds: []entity.WidgetKind{entity.WidgetFresha},
		Theme:       Theme{Primary: "#e91e63", Secondary: "#1a1a1a", Accent: "#ffc107"},
	},
	entity.TypeIndependent: {
		DisplayName: "Independent professional",
		Pages:       []string{PageHome, PageServices, PageContact, PageBooking},
		NavSections: []string{"services", "booking", "about", "contact"},
		SectionKeys: []entity.SectionKey{entity.SectionServices, entity.SectionTestimonials, entity.SectionAbout},
		WidgetKinds: []entity.WidgetKind{entity.WidgetFresha, entity.WidgetCalendly},
		Theme:       Theme{Primary: "#4caf50", Secondary: "#2e7d32", Accent: "#ff9800"},
	},
	entity.TypeRetail: {
		DisplayName: "Shop",
		Pages:       []string{PageHome, PageProducts, PageContact},
		NavSections: []string{"products", "info", "contact"},
		SectionKeys: []entity.SectionKey{entity.SectionProducts},
		WidgetKinds: []entity.WidgetKind{},
		Theme:       Theme{Primary: "#2196f3", Secondary: "#1976d2", Accent: "#ff5722"},
	},
}

// Lookup resolves the catalog entry for a business type. An unknown type is
// a configuration error the caller must treat as fatal, never as a default.
func Lookup(businessType entity.BusinessType) (Entry, error) {
	entry, ok := entries[businessType]
	if !ok {
		return Entry{}, errors.Errorf("no catalog entry for business type %q", businessType)
	}

	return entry, nil
}

// HasPage reports whether the entry's page list contains the key.
func (e Entry) HasPage(key string) bool {
	for _, page := range e.Pages {
		if page == key {
			return true
		}
	}

	return false
}

// HasSection reports whether the entry allows the content section key.
func (e Entry) HasSection(key entity.SectionKey) bool {
	for _, section := range e.SectionKeys {
		if section == key {
			return true
		}
	}

	return false
}

// HasWidgetKind reports whether the entry allows the widget kind.
func (e Entry) HasWidgetKind(kind entity.WidgetKind) bool {
	for _, known := range e.WidgetKinds {
		if known == kind {
			return true
		}
	}

	return false
}

// ContentPage returns the page key that lists this type's primary content
// (menu, services or products) and true when the type has one.
func (e Entry) ContentPage() (string, bool) {
	for _, page := range e.Pages {
		switch page {
		case PageMenu, PageServices, PageProducts:
			return page, true
		}
	}

	return "", false
}
