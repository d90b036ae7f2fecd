package entity

// SectionKey names an independently saved subtree of a business profile.
type SectionKey string

const (
	SectionBasicInfo SectionKey = "basicInfo"
	SectionHero      SectionKey = "hero"
	SectionGallery   SectionKey = "gallery"

	// Restaurant content sections.
	SectionDailyMenu  SectionKey = "dailyMenu"
	SectionMainMenu   SectionKey = "mainMenu"
	SectionDrinksMenu SectionKey = "drinksMenu"

	// Hairdresser / independent content sections.
	SectionServices     SectionKey = "services"
	SectionTeam         SectionKey = "team"
	SectionTestimonials SectionKey = "testimonials"
	SectionAbout        SectionKey = "about"

	// Retail content sections.
	SectionProducts SectionKey = "products"
)

// Layout describes the shape of a content section's item tree.
type Layout int

const (
	// LayoutFlat sections hold a single ordered item list.
	LayoutFlat Layout = iota
	// LayoutCategorized sections group items under named categories.
	LayoutCategorized
)

// contentLayouts maps every content section key to its layout. Keys absent
// here (basicInfo, hero, gallery, widget entries) are not content sections.
var contentLayouts = map[SectionKey]Layout{
	SectionDailyMenu:    LayoutFlat,
	SectionMainMenu:     LayoutCategorized,
	SectionDrinksMenu:   LayoutCategorized,
	SectionServices:     LayoutCategorized,
	SectionTeam:         LayoutFlat,
	SectionTestimonials: LayoutFlat,
	SectionAbout:        LayoutFlat,
	SectionProducts:     LayoutCategorized,
}

// IsContent reports whether the key names a type-specific content section.
func (k SectionKey) IsContent() bool {
	_, ok := contentLayouts[k]

	return ok
}

// Layout returns the item tree shape for a content section key.
// The second return is false for non-content keys.
func (k SectionKey) Layout() (Layout, bool) {
	layout, ok := contentLayouts[k]

	return layout, ok
}

func (k SectionKey) String() string {
	return string(k)
}

// Item is a single entry of a content section. Only the fields meaningful
// for the hosting section kind are populated: menu and product items carry
// price, service items may add duration, team members carry speciality and
// bio, testimonials carry author and quote.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Speciality  string `json:"speciality,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Author      string `json:"author,omitempty"`
	Quote       string `json:"quote,omitempty"`
	ImageRef    string `json:"imageRef,omitempty"`
}

// Category groups items under a display name. Item order is display order
// and is never reordered implicitly.
type Category struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Section is the tagged content-section value: flat sections use Items,
// categorized sections use Categories. The unused branch stays nil.
type Section struct {
	Enabled    bool       `json:"enabled"`
	Items      []Item     `json:"items,omitempty"`
	Categories []Category `json:"categories,omitempty"`
}

// EmptySection returns the default value for a content section key.
func EmptySection(key SectionKey) *Section {
	layout, ok := contentLayouts[key]
	if !ok {
		return &Section{}
	}
	if layout == LayoutCategorized {
		return &Section{Enabled: false, Categories: []Category{}}
	}

	return &Section{Enabled: false, Items: []Item{}}
}

// FirstPopulated returns the first category that actually has items, or nil.
func (s *Section) FirstPopulated() *Category {
	if s == nil || !s.Enabled {
		return nil
	}
	for i := range s.Categories {
		if len(s.Categories[i].Items) > 0 {
			return &s.Categories[i]
		}
	}

	return nil
}

// HasContent reports whether the section is enabled and holds at least one item.
func (s *Section) HasContent() bool {
	if s == nil || !s.Enabled {
		return false
	}
	if len(s.Items) > 0 {
		return true
	}

	return s.FirstPopulated() != nil
}
