// Package renderer produces request-time HTML pages from a profile snapshot.
// Rendering is pure for a given snapshot: every degraded case (missing image,
// unparseable hours, empty section) falls back to placeholder markup instead
// of failing the page.
package renderer

import (
	"context"
	"html"
	"log/slog"
	"strings"
	"time"

	"vitrine/internal/domain/catalog"
	"vitrine/internal/domain/entity"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/domain/service"

	"github.com/pkg/errors"
)

// Renderer renders the public pages of one business site.
type Renderer struct {
	images   service.ImageResolver
	logger   *slog.Logger
	sections map[entity.SectionKey]sectionRenderer
	widgets  map[entity.WidgetKind]widgetRenderer
	now      func() time.Time
}

// New constructs a Renderer. The widget registry is checked against the
// universal kind enum at construction, so an unregistered kind is caught at
// startup rather than on the first booking-page request.
func New(images service.ImageResolver, logger *slog.Logger) (*Renderer, error) {
	widgets := widgetRegistry()
	for kind := range widgets {
		if !entity.KnownWidgetKind(kind) {
			return nil, errors.Errorf("widget renderer registered for unknown kind %q", kind)
		}
	}
	for _, kind := range entity.WidgetKinds() {
		if _, ok := widgets[kind]; !ok {
			return nil, errors.Errorf("no widget renderer registered for kind %q", kind)
		}
	}

	return &Renderer{
		images:   images,
		logger:   logger,
		sections: sectionRegistry(),
		widgets:  widgets,
		now:      time.Now,
	}, nil
}

// PageKeyFromPath maps a request path relative to the site root onto a page
// key. The root and index.html resolve to home; a trailing ".html" is
// stripped so generated-site URLs keep working.
func PageKeyFromPath(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return catalog.PageHome
	}
	if slash := strings.IndexByte(trimmed, '/'); slash >= 0 {
		trimmed = trimmed[:slash]
	}
	trimmed = strings.TrimSuffix(trimmed, ".html")
	if trimmed == "" || trimmed == "index" {
		return catalog.PageHome
	}

	return trimmed
}

// Page renders one full page of the business site.
func (r *Renderer) Page(ctx context.Context, profile *entity.BusinessProfile, entry catalog.Entry, pageKey string) (string, error) {
	body, err := r.Body(ctx, profile, entry, pageKey)
	if err != nil {
		return "", err
	}

	return r.document(profile, entry, pageKey, body), nil
}

// Body renders the main content of one page without the document shell. The
// static-site generator uses it to fill page templates.
func (r *Renderer) Body(ctx context.Context, profile *entity.BusinessProfile, entry catalog.Entry, pageKey string) (string, error) {
	if !entry.HasPage(pageKey) {
		return "", domainerrors.ErrNotFound.WithDetails("page " + pageKey + " does not exist for this site")
	}

	switch pageKey {
	case catalog.PageHome:
		return r.homePage(ctx, profile, entry), nil
	case catalog.PageMenu, catalog.PageServices, catalog.PageProducts:
		return r.contentPage(ctx, profile, entry, pageKey), nil
	case catalog.PageContact:
		return r.contactPage(profile), nil
	case catalog.PageBooking:
		return r.bookingPage(profile, entry), nil
	default:
		return r.contentPage(ctx, profile, entry, pageKey), nil
	}
}

// TemplateBody renders page content for the static-site generator. It
// matches Body except on a booking page with an enabled widget: there the
// embed is owned by the template's widget placeholder, so the body carries
// only the heading. Rendering it through Body too would put the embed on the
// page twice.
func (r *Renderer) TemplateBody(ctx context.Context, profile *entity.BusinessProfile, entry catalog.Entry, pageKey string) (string, error) {
	if pageKey == catalog.PageBooking && entry.HasPage(pageKey) && r.bookingEmbed(profile, entry) != "" {
		return "<section class=\"booking\">\n<h2>Booking</h2>\n</section>\n", nil
	}

	return r.Body(ctx, profile, entry, pageKey)
}

// document wraps page content with the shared head, nav and footer.
func (r *Renderer) document(profile *entity.BusinessProfile, entry catalog.Entry, pageKey, body string) string {
	title := esc(profile.BasicInfo.Name)
	if title == "" {
		title = esc(entry.DisplayName)
	}
	if pageTitle, ok := catalog.PageTitles[pageKey]; ok && pageKey != catalog.PageHome {
		title += " — " + esc(pageTitle)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString("<title>" + title + "</title>\n")
	b.WriteString("<style>:root{--primary-color:" + entry.Theme.Primary +
		";--secondary-color:" + entry.Theme.Secondary +
		";--accent-color:" + entry.Theme.Accent + ";}</style>\n")
	b.WriteString("</head>\n<body data-business-type=\"" + esc(profile.BusinessType.String()) + "\">\n")
	b.WriteString(r.nav(profile, entry, pageKey))
	b.WriteString("<main class=\"page page-" + esc(pageKey) + "\">\n")
	b.WriteString(body)
	b.WriteString("</main>\n")
	b.WriteString(r.footer(profile))
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

func (r *Renderer) nav(profile *entity.BusinessProfile, entry catalog.Entry, current string) string {
	var b strings.Builder
	b.WriteString("<nav class=\"nav\">\n<span class=\"nav-brand\">" + esc(profile.BasicInfo.Name) + "</span>\n<ul>\n")
	for _, page := range entry.Pages {
		title := catalog.PageTitles[page]
		if title == "" {
			title = page
		}
		class := ""
		if page == current {
			class = " class=\"active\""
		}
		href := "/" + page
		if page == catalog.PageHome {
			href = "/"
		}
		b.WriteString("<li><a href=\"" + href + "\"" + class + ">" + esc(title) + "</a></li>\n")
	}
	b.WriteString("</ul>\n</nav>\n")

	return b.String()
}

func (r *Renderer) footer(profile *entity.BusinessProfile) string {
	info := profile.BasicInfo

	var b strings.Builder
	b.WriteString("<footer class=\"footer\">\n")
	if info.Name != "" {
		b.WriteString("<p class=\"footer-name\">" + esc(info.Name) + "</p>\n")
	}
	if info.Address != "" {
		b.WriteString("<p class=\"footer-address\">" + esc(info.Address) + "</p>\n")
	}
	if info.Phone != "" {
		b.WriteString("<p class=\"footer-phone\">" + esc(info.Phone) + "</p>\n")
	}
	if info.Email != "" {
		b.WriteString("<p class=\"footer-email\">" + esc(info.Email) + "</p>\n")
	}
	b.WriteString("</footer>\n")

	return b.String()
}

// homePage renders hero, gallery and a short preview of the first populated
// content section.
func (r *Renderer) homePage(ctx context.Context, profile *entity.BusinessProfile, entry catalog.Entry) string {
	var b strings.Builder

	hero := profile.Hero
	heroTitle := hero.Title
	if heroTitle == "" {
		heroTitle = profile.BasicInfo.Name
	}
	b.WriteString("<section class=\"hero\">\n")
	if hero.ImageRef != "" {
		b.WriteString("<img class=\"hero-image\" src=\"" + esc(r.images.ResolveImage(ctx, hero.ImageRef)) + "\" alt=\"" + esc(heroTitle) + "\">\n")
	}
	b.WriteString("<h1>" + esc(heroTitle) + "</h1>\n")
	if hero.Subtitle != "" {
		b.WriteString("<p class=\"hero-subtitle\">" + esc(hero.Subtitle) + "</p>\n")
	}
	if contentPage, ok := entry.ContentPage(); ok {
		cta := hero.CTAText
		if cta == "" {
			cta = catalog.PageTitles[contentPage]
		}
		b.WriteString("<a class=\"hero-cta\" href=\"/" + contentPage + "\">" + esc(cta) + "</a>\n")
	}
	b.WriteString("</section>\n")

	if len(profile.Gallery) > 0 {
		b.WriteString("<section class=\"gallery\">\n")
		for _, image := range profile.Gallery {
			b.WriteString("<figure><img src=\"" + esc(r.images.ResolveImage(ctx, image.ImageRef)) + "\" alt=\"" + esc(image.AltText) + "\">")
			if image.Caption != "" {
				b.WriteString("<figcaption>" + esc(image.Caption) + "</figcaption>")
			}
			b.WriteString("</figure>\n")
		}
		b.WriteString("</section>\n")
	}

	b.WriteString(r.homePreview(profile, entry))

	return b.String()
}

const previewItemLimit = 3

// homePreview shows the first few items of the first populated content
// section, linking to the full page.
func (r *Renderer) homePreview(profile *entity.BusinessProfile, entry catalog.Entry) string {
	contentPage, ok := entry.ContentPage()
	if !ok {
		return ""
	}

	for _, key := range entry.SectionKeys {
		section := profile.Section(key)
		if !section.HasContent() {
			continue
		}

		items := section.Items
		if len(items) == 0 {
			if category := section.FirstPopulated(); category != nil {
				items = category.Items
			}
		}
		if len(items) > previewItemLimit {
			items = items[:previewItemLimit]
		}

		var b strings.Builder
		b.WriteString("<section class=\"preview\">\n<h2>" + esc(catalog.PageTitles[contentPage]) + "</h2>\n<ul>\n")
		for _, item := range items {
			b.WriteString("<li>" + esc(item.Name))
			if item.Price != "" {
				b.WriteString(" <span class=\"price\">" + formatPrice(item.Price) + "</span>")
			}
			b.WriteString("</li>\n")
		}
		b.WriteString("</ul>\n<a class=\"preview-link\" href=\"/" + contentPage + "\">" + esc(catalog.PageTitles[contentPage]) + "</a>\n</section>\n")

		return b.String()
	}

	return ""
}

// contentPage renders every enabled content section belonging to the page.
func (r *Renderer) contentPage(ctx context.Context, profile *entity.BusinessProfile, entry catalog.Entry, pageKey string) string {
	var b strings.Builder
	rendered := false

	for _, key := range entry.SectionKeys {
		section := profile.Section(key)
		if !section.HasContent() {
			continue
		}
		render, ok := r.sections[key]
		if !ok {
			r.logger.Warn("no renderer for section, skipping", slog.String("section", key.String()))

			continue
		}
		b.WriteString(render(ctx, r.images, key, section))
		rendered = true
	}

	if !rendered {
		title := catalog.PageTitles[pageKey]
		if title == "" {
			title = pageKey
		}

		return "<section class=\"empty\"><h2>" + esc(title) + "</h2><p>Content not yet available.</p></section>\n"
	}

	return b.String()
}

func (r *Renderer) contactPage(profile *entity.BusinessProfile) string {
	info := profile.BasicInfo

	var b strings.Builder
	b.WriteString("<section class=\"contact-info\">\n<h2>Contact</h2>\n")
	if info.Address != "" {
		b.WriteString("<p class=\"address\">" + esc(info.Address) + "</p>\n")
	}
	if info.Phone != "" {
		b.WriteString("<p class=\"phone\"><a href=\"tel:" + esc(info.Phone) + "\">" + esc(info.Phone) + "</a></p>\n")
	}
	if info.Email != "" {
		b.WriteString("<p class=\"email\"><a href=\"mailto:" + esc(info.Email) + "\">" + esc(info.Email) + "</a></p>\n")
	}
	b.WriteString(r.hoursBlock(info.Hours))
	b.WriteString("</section>\n")
	b.WriteString(contactForm(profile.BusinessID))

	return b.String()
}

// hoursBlock lists the weekly hours verbatim and, when the current day's
// entry parses, an open/closed badge. Unknown stays silent.
func (r *Renderer) hoursBlock(hours entity.WeekHours) string {
	if !hours.HasAny() {
		return ""
	}

	var b strings.Builder
	b.WriteString("<div class=\"hours\">\n<h3>Opening hours</h3>\n<ul>\n")
	for _, day := range entity.WeekdayKeys() {
		value := hours[day]
		if value == "" {
			value = "—"
		}
		b.WriteString("<li><span class=\"day\">" + esc(day) + "</span> <span class=\"times\">" + esc(value) + "</span></li>\n")
	}
	b.WriteString("</ul>\n")

	switch hours.OpenAt(r.now()) {
	case entity.StatusOpen:
		b.WriteString("<p class=\"open-now open\">Open now</p>\n")
	case entity.StatusClosed:
		b.WriteString("<p class=\"open-now closed\">Currently closed</p>\n")
	case entity.StatusUnknown:
		// No badge when the hours text cannot be interpreted.
	}
	b.WriteString("</div>\n")

	return b.String()
}

func contactForm(businessID string) string {
	action := "/profiles/" + esc(businessID) + "/messages"

	return "<section class=\"contact-form\">\n<h3>Send us a message</h3>\n" +
		"<form method=\"post\" action=\"" + action + "\">\n" +
		"<input type=\"text\" name=\"name\" placeholder=\"Your name\" required>\n" +
		"<input type=\"email\" name=\"email\" placeholder=\"Your email\">\n" +
		"<input type=\"text\" name=\"subject\" placeholder=\"Subject\">\n" +
		"<textarea name=\"message\" placeholder=\"Your message\" required></textarea>\n" +
		"<button type=\"submit\">Send</button>\n" +
		"</form>\n</section>\n"
}

// bookingPage renders the single enabled widget's embed, or a coming-soon
// block when none is configured.
func (r *Renderer) bookingPage(profile *entity.BusinessProfile, entry catalog.Entry) string {
	if embed := r.bookingEmbed(profile, entry); embed != "" {
		return "<section class=\"booking\">\n" + embed + "</section>\n"
	}

	return "<section class=\"booking booking-empty\"><h2>Booking</h2><p>Online booking coming soon.</p></section>\n"
}

// bookingEmbed returns the embed markup of the first enabled widget in the
// entry's kind order, or "" when no widget is enabled.
func (r *Renderer) bookingEmbed(profile *entity.BusinessProfile, entry catalog.Entry) string {
	for _, kind := range entry.WidgetKinds {
		settings := profile.Widget(kind)
		if settings == nil || !settings.Enabled {
			continue
		}

		return r.widgets[kind](settings)
	}

	return ""
}

func esc(s string) string {
	return html.EscapeString(s)
}
