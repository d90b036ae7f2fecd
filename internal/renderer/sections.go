package renderer

import (
	"context"
	"strings"

	"vitrine/internal/domain/entity"
	"vitrine/internal/domain/service"
)

// sectionRenderer turns one content section into HTML. Implementations skip
// empty categories and never fail; a section with nothing to show renders to
// an empty string.
type sectionRenderer func(ctx context.Context, images service.ImageResolver, key entity.SectionKey, section *entity.Section) string

// sectionRegistry maps every content section key onto its renderer. The
// variant set is closed: menu-like and product-like items show prices,
// service items add durations, team members show speciality and bio,
// testimonials show the quote, about is plain text.
func sectionRegistry() map[entity.SectionKey]sectionRenderer {
	return map[entity.SectionKey]sectionRenderer{
		entity.SectionDailyMenu:    renderPriced,
		entity.SectionMainMenu:     renderPriced,
		entity.SectionDrinksMenu:   renderPriced,
		entity.SectionProducts:     renderPriced,
		entity.SectionServices:     renderServices,
		entity.SectionTeam:         renderTeam,
		entity.SectionTestimonials: renderTestimonials,
		entity.SectionAbout:        renderAbout,
	}
}

var sectionTitles = map[entity.SectionKey]string{
	entity.SectionDailyMenu:    "Today's menu",
	entity.SectionMainMenu:     "Menu",
	entity.SectionDrinksMenu:   "Drinks",
	entity.SectionProducts:     "Products",
	entity.SectionServices:     "Services",
	entity.SectionTeam:         "Our team",
	entity.SectionTestimonials: "Testimonials",
	entity.SectionAbout:        "About",
}

func sectionHeader(b *strings.Builder, key entity.SectionKey) {
	title := sectionTitles[key]
	if title == "" {
		title = key.String()
	}
	b.WriteString("<section class=\"section section-" + esc(key.String()) + "\">\n<h2>" + esc(title) + "</h2>\n")
}

// formatPrice appends the currency suffix to a stored price. Prices are kept
// as bare number strings; the dashboard and the rendered pages both attach
// the euro sign at display time.
func formatPrice(price string) string {
	return esc(price) + "€"
}

// eachItemGroup walks flat items as one anonymous group and categorized
// items per category, skipping categories without items.
func eachItemGroup(section *entity.Section, fn func(categoryName string, items []entity.Item)) {
	if len(section.Items) > 0 {
		fn("", section.Items)

		return
	}
	for _, category := range section.Categories {
		if len(category.Items) == 0 {
			continue
		}
		fn(category.Name, category.Items)
	}
}

func renderPriced(ctx context.Context, images service.ImageResolver, key entity.SectionKey, section *entity.Section) string {
	var b strings.Builder
	sectionHeader(&b, key)
	eachItemGroup(section, func(categoryName string, items []entity.Item) {
		if categoryName != "" {
			b.WriteString("<h3 class=\"category\">" + esc(categoryName) + "</h3>\n")
		}
		b.WriteString("<ul class=\"items\">\n")
		for _, item := range items {
			b.WriteString("<li class=\"item\"><span class=\"item-name\">" + esc(item.Name) + "</span>")
			if item.Description != "" {
				b.WriteString("<span class=\"item-description\">" + esc(item.Description) + "</span>")
			}
			if item.Price != "" {
				b.WriteString("<span class=\"price\">" + formatPrice(item.Price) + "</span>")
			}
			if item.ImageRef != "" {
				b.WriteString("<img src=\"" + esc(images.ResolveImage(ctx, item.ImageRef)) + "\" alt=\"" + esc(item.Name) + "\">")
			}
			b.WriteString("</li>\n")
		}
		b.WriteString("</ul>\n")
	})
	b.WriteString("</section>\n")

	return b.String()
}

func renderServices(ctx context.Context, images service.ImageResolver, key entity.SectionKey, section *entity.Section) string {
	var b strings.Builder
	sectionHeader(&b, key)
	eachItemGroup(section, func(categoryName string, items []entity.Item) {
		if categoryName != "" {
			b.WriteString("<h3 class=\"category\">" + esc(categoryName) + "</h3>\n")
		}
		b.WriteString("<ul class=\"services\">\n")
		for _, item := range items {
			b.WriteString("<li class=\"service\"><span class=\"item-name\">" + esc(item.Name) + "</span>")
			if item.Description != "" {
				b.WriteString("<span class=\"item-description\">" + esc(item.Description) + "</span>")
			}
			if item.Duration != "" {
				b.WriteString("<span class=\"duration\">" + esc(item.Duration) + "</span>")
			}
			if item.Price != "" {
				b.WriteString("<span class=\"price\">" + formatPrice(item.Price) + "</span>")
			}
			b.WriteString("</li>\n")
		}
		b.WriteString("</ul>\n")
	})
	b.WriteString("</section>\n")

	return b.String()
}

func renderTeam(ctx context.Context, images service.ImageResolver, key entity.SectionKey, section *entity.Section) string {
	var b strings.Builder
	sectionHeader(&b, key)
	b.WriteString("<ul class=\"team\">\n")
	for _, member := range section.Items {
		b.WriteString("<li class=\"member\">")
		if member.ImageRef != "" {
			b.WriteString("<img src=\"" + esc(images.ResolveImage(ctx, member.ImageRef)) + "\" alt=\"" + esc(member.Name) + "\">")
		}
		b.WriteString("<span class=\"member-name\">" + esc(member.Name) + "</span>")
		if member.Speciality != "" {
			b.WriteString("<span class=\"speciality\">" + esc(member.Speciality) + "</span>")
		}
		if member.Bio != "" {
			b.WriteString("<p class=\"bio\">" + esc(member.Bio) + "</p>")
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n</section>\n")

	return b.String()
}

func renderTestimonials(_ context.Context, _ service.ImageResolver, key entity.SectionKey, section *entity.Section) string {
	var b strings.Builder
	sectionHeader(&b, key)
	for _, item := range section.Items {
		quote := item.Quote
		if quote == "" {
			quote = item.Description
		}
		author := item.Author
		if author == "" {
			author = item.Name
		}
		b.WriteString("<blockquote class=\"testimonial\"><p>" + esc(quote) + "</p>")
		if author != "" {
			b.WriteString("<cite>" + esc(author) + "</cite>")
		}
		b.WriteString("</blockquote>\n")
	}
	b.WriteString("</section>\n")

	return b.String()
}

func renderAbout(_ context.Context, _ service.ImageResolver, key entity.SectionKey, section *entity.Section) string {
	var b strings.Builder
	sectionHeader(&b, key)
	for _, item := range section.Items {
		if item.Name != "" {
			b.WriteString("<h3>" + esc(item.Name) + "</h3>\n")
		}
		if item.Description != "" {
			b.WriteString("<p>" + esc(item.Description) + "</p>\n")
		}
	}
	b.WriteString("</section>\n")

	return b.String()
}
