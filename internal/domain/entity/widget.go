package entity

// WidgetKind identifies a third-party booking/ordering integration.
// The embed snippets themselves are opaque vendor code; the platform only
// stores their configuration and injects their mount markup.
type WidgetKind string

const (
	WidgetGloriaFood WidgetKind = "gloriafood"
	WidgetFresha     WidgetKind = "fresha"
	WidgetCalendly   WidgetKind = "calendly"
)

// WidgetKinds lists the universal widget-kind enum in registration order.
func WidgetKinds() []WidgetKind {
	return []WidgetKind{WidgetGloriaFood, WidgetFresha, WidgetCalendly}
}

// KnownWidgetKind reports whether the kind belongs to the universal enum.
func KnownWidgetKind(kind WidgetKind) bool {
	for _, known := range WidgetKinds() {
		if kind == known {
			return true
		}
	}

	return false
}

func (k WidgetKind) String() string {
	return string(k)
}

// WidgetSettings holds the per-business configuration of one widget kind.
// When Enabled is false the kind-specific fields may be empty.
type WidgetSettings struct {
	Enabled bool `json:"enabled"`

	// GloriaFood: vendor restaurant id and the embed snippet pasted by the owner.
	RestaurantID string `json:"restaurantId,omitempty"`
	// Fresha: vendor business reference.
	BusinessRef string `json:"businessRef,omitempty"`
	// GloriaFood / Fresha: raw embed snippet supplied by the vendor console.
	WidgetCode string `json:"widgetCode,omitempty"`
	// Calendly: scheduling page URL.
	URL string `json:"url,omitempty"`
}
