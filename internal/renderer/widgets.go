package renderer

import "vitrine/internal/domain/entity"

// Vendor script URLs, from each integration's embed instructions.
const (
	gloriafoodScriptURL = "https://www.gloriafood.com/ordering-widget/js/onlineordering.min.js"
	freshaScriptURL     = "https://widget.fresha.com/widget.js"
	calendlyScriptURL   = "https://assets.calendly.com/assets/external/widget.js"
)

// widgetRenderer turns one enabled widget's settings into its embed markup:
// the mount container plus the vendor script tag.
type widgetRenderer func(settings *entity.WidgetSettings) string

func widgetRegistry() map[entity.WidgetKind]widgetRenderer {
	return map[entity.WidgetKind]widgetRenderer{
		entity.WidgetGloriaFood: gloriafoodEmbed,
		entity.WidgetFresha:     freshaEmbed,
		entity.WidgetCalendly:   calendlyEmbed,
	}
}

// EmbedMarkup returns the embed markup for an enabled widget kind. The
// static-site generator shares it for booking-page injection.
func EmbedMarkup(kind entity.WidgetKind, settings *entity.WidgetSettings) string {
	render, ok := widgetRegistry()[kind]
	if !ok || settings == nil || !settings.Enabled {
		return ""
	}

	return render(settings)
}

// gloriafoodEmbed mounts the GloriaFood ordering widget. An owner-pasted
// embed snippet wins over the restaurant-id attribute form.
func gloriafoodEmbed(settings *entity.WidgetSettings) string {
	if settings.WidgetCode != "" {
		return settings.WidgetCode + "\n"
	}

	return "<div class=\"widget widget-gloriafood\" data-restaurant=\"" + esc(settings.RestaurantID) + "\"></div>\n" +
		"<script src=\"" + gloriafoodScriptURL + "\" async></script>\n"
}

func freshaEmbed(settings *entity.WidgetSettings) string {
	if settings.WidgetCode != "" {
		return settings.WidgetCode + "\n"
	}

	return "<div class=\"widget widget-fresha\" data-business=\"" + esc(settings.BusinessRef) + "\"></div>\n" +
		"<script src=\"" + freshaScriptURL + "\" async></script>\n"
}

func calendlyEmbed(settings *entity.WidgetSettings) string {
	return "<div class=\"widget widget-calendly calendly-inline-widget\" data-url=\"" + esc(settings.URL) + "\"></div>\n" +
		"<script src=\"" + calendlyScriptURL + "\" async></script>\n"
}
