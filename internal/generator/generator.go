// Package generator writes a static site for one business: the catalog's
// pages filled from templates, a themed stylesheet and a machine-readable
// manifest. Output is deterministic for a fixed profile, clock and version.
package generator

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"vitrine/config"
	"vitrine/internal/domain/catalog"
	"vitrine/internal/domain/entity"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/domain/repository"
	"vitrine/internal/renderer"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Substitution tokens understood by page templates. Unknown tokens are left
// verbatim so a template typo stays visible instead of vanishing silently.
const (
	TokenBusinessID     = "{{BUSINESS_ID}}"
	TokenBusinessType   = "{{BUSINESS_TYPE}}"
	TokenPageTitle      = "{{PAGE_TITLE}}"
	TokenThemePrimary   = "{{THEME_PRIMARY}}"
	TokenThemeSecondary = "{{THEME_SECONDARY}}"
	TokenThemeAccent    = "{{THEME_ACCENT}}"
	TokenPageContent    = "{{PAGE_CONTENT}}"
)

const widgetPlaceholderPrefix = "<!-- widget:"

var (
	primaryColorPattern   = regexp.MustCompile(`--primary-color: #[a-fA-F0-9]{6};`)
	secondaryColorPattern = regexp.MustCompile(`--secondary-color: #[a-fA-F0-9]{6};`)
	accentColorPattern    = regexp.MustCompile(`--accent-color: #[a-fA-F0-9]{6};`)
)

// Manifest is the config/site-config.json document describing one generated
// site.
type Manifest struct {
	BusinessID   string        `json:"businessId"`
	BusinessType string        `json:"businessType"`
	Theme        catalog.Theme `json:"theme"`
	WidgetKinds  []string      `json:"widgetKinds"`
	GeneratedAt  string        `json:"generatedAt"`
	Version      string        `json:"version"`
}

// Generator produces static sites from live profile data.
type Generator struct {
	profiles     repository.ProfileRepository
	renderer     *renderer.Renderer
	templatesDir string
	version      string
	logger       *slog.Logger
	now          func() time.Time
}

// Params holds dependencies for Generator, injected by Fx.
type Params struct {
	fx.In

	Profiles repository.ProfileRepository
	Renderer *renderer.Renderer
	Config   *config.Config
	Logger   *slog.Logger
}

// New constructs a Generator from configuration.
func New(params Params) *Generator {
	templatesDir := "./templates"
	version := "1.0.0"
	if params.Config != nil && params.Config.Generator != nil {
		if params.Config.Generator.TemplatesDir != "" {
			templatesDir = params.Config.Generator.TemplatesDir
		}
		if params.Config.Generator.Version != "" {
			version = params.Config.Generator.Version
		}
	}

	return &Generator{
		profiles:     params.Profiles,
		renderer:     params.Renderer,
		templatesDir: templatesDir,
		version:      version,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// WithClock fixes the generation timestamp. Identical inputs then produce
// byte-identical output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now

	return g
}

// Generate writes the full site for one business into outputDir, overwriting
// managed files wholesale. businessType must match the stored profile.
func (g *Generator) Generate(ctx context.Context, businessID, businessType, outputDir string) (*Manifest, error) {
	parsedType, err := entity.ParseBusinessType(businessType)
	if err != nil {
		return nil, domainerrors.ErrUnknownBusinessType.WithDetails(err.Error())
	}
	entry, err := catalog.Lookup(parsedType)
	if err != nil {
		return nil, domainerrors.ErrUnknownBusinessType.WithDetails(err.Error())
	}

	profile, err := g.profiles.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}

		return nil, domainerrors.ErrTransientStore.WithDetails(err.Error())
	}
	if profile.BusinessType != parsedType {
		return nil, domainerrors.ErrConfiguration.WithDetails(
			"stored profile has type " + profile.BusinessType.String() + ", not " + businessType)
	}

	if err := g.makeTree(outputDir); err != nil {
		return nil, err
	}

	for _, page := range entry.Pages {
		if err := g.generatePage(ctx, profile, entry, page, outputDir); err != nil {
			return nil, err
		}
	}

	if err := g.generateCSS(entry, outputDir); err != nil {
		return nil, err
	}

	manifest := g.buildManifest(businessID, parsedType, entry)
	if err := writeManifest(manifest, outputDir); err != nil {
		return nil, err
	}

	g.logger.Info("site generated",
		slog.String("business_id", businessID),
		slog.String("business_type", businessType),
		slog.Int("pages", len(entry.Pages)),
	)

	return manifest, nil
}

func (g *Generator) makeTree(outputDir string) error {
	for _, dir := range []string{"", "css", "js", filepath.Join("assets", "images"), "config"} {
		if err := os.MkdirAll(filepath.Join(outputDir, dir), 0o755); err != nil {
			return errors.Wrap(err, "failed to create output directory")
		}
	}

	return nil
}

// generatePage fills one page template and writes <page>.html (index.html
// for home). A missing page template degrades to the generic template, then
// to a built-in fallback; the page is always written. A template that exists
// but cannot be read aborts the run.
func (g *Generator) generatePage(ctx context.Context, profile *entity.BusinessProfile, entry catalog.Entry, page, outputDir string) error {
	template, err := g.loadTemplate(page)
	if err != nil {
		return err
	}

	body, err := g.renderer.TemplateBody(ctx, profile, entry, page)
	if err != nil {
		return err
	}

	content := g.substitute(template, profile, entry, page, body)
	content = injectWidgets(content, profile, entry, page)

	filename := page + ".html"
	if page == catalog.PageHome {
		filename = "index.html"
	}

	if err := os.WriteFile(filepath.Join(outputDir, filename), []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", filename)
	}

	return nil
}

// loadTemplate resolves the page template. Absent files degrade down the
// chain; any other read failure is a fatal configuration error, since
// continuing would silently generate the site from the wrong template.
func (g *Generator) loadTemplate(page string) (string, error) {
	for _, name := range []string{page + ".html", "generic.html"} {
		raw, err := os.ReadFile(filepath.Join(g.templatesDir, name))
		if err == nil {
			return string(raw), nil
		}
		if !os.IsNotExist(err) {
			return "", domainerrors.ErrConfiguration.WithDetails(
				"template " + name + " is unreadable: " + err.Error())
		}
	}

	g.logger.Warn("no template found, using built-in fallback", slog.String("page", page))

	return fallbackTemplate, nil
}

// fallbackTemplate keeps generation alive when the templates directory is
// missing or incomplete. It carries the widget placeholders so a degraded
// booking page still mounts its embed; other pages have them stripped.
const fallbackTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{PAGE_TITLE}}</title>
<link rel="stylesheet" href="css/style.css">
</head>
<body data-business-id="{{BUSINESS_ID}}" data-business-type="{{BUSINESS_TYPE}}">
{{PAGE_CONTENT}}
<!-- widget:gloriafood -->
<!-- widget:fresha -->
<!-- widget:calendly -->
</body>
</html>
`

// substitute performs the single-pass token replacement. strings.Replacer
// touches each token occurrence exactly once, so substituted values are
// never re-scanned for tokens.
func (g *Generator) substitute(template string, profile *entity.BusinessProfile, entry catalog.Entry, page, body string) string {
	title := catalog.PageTitles[page]
	if title == "" {
		title = page
	}

	replacer := strings.NewReplacer(
		TokenBusinessID, profile.BusinessID,
		TokenBusinessType, profile.BusinessType.String(),
		TokenPageTitle, title,
		TokenThemePrimary, entry.Theme.Primary,
		TokenThemeSecondary, entry.Theme.Secondary,
		TokenThemeAccent, entry.Theme.Accent,
		TokenPageContent, body,
	)

	return replacer.Replace(template)
}

// injectWidgets resolves `<!-- widget:KIND -->` placeholders. Only the
// booking page may carry an embed, and only the first enabled kind of the
// entry's ordered set is injected; every other placeholder is removed.
func injectWidgets(content string, profile *entity.BusinessProfile, entry catalog.Entry, page string) string {
	var injected entity.WidgetKind
	if page == catalog.PageBooking {
		for _, kind := range entry.WidgetKinds {
			settings := profile.Widget(kind)
			if settings != nil && settings.Enabled {
				injected = kind

				break
			}
		}
	}

	for _, kind := range entity.WidgetKinds() {
		placeholder := widgetPlaceholderPrefix + kind.String() + " -->"
		replacement := ""
		if kind == injected {
			replacement = renderer.EmbedMarkup(kind, profile.Widget(kind))
		}
		content = strings.ReplaceAll(content, placeholder, replacement)
	}

	return content
}

// generateCSS writes the themed stylesheet: the shared template with its
// color custom properties rewritten to the entry's palette.
func (g *Generator) generateCSS(entry catalog.Entry, outputDir string) error {
	css := fallbackCSS
	raw, err := os.ReadFile(filepath.Join(g.templatesDir, "css", "style.css"))
	switch {
	case err == nil:
		css = string(raw)
	case os.IsNotExist(err):
		g.logger.Warn("stylesheet template missing, using built-in fallback", slog.Any("error", err))
	default:
		return domainerrors.ErrConfiguration.WithDetails(
			"stylesheet template is unreadable: " + err.Error())
	}

	css = primaryColorPattern.ReplaceAllString(css, "--primary-color: "+entry.Theme.Primary+";")
	css = secondaryColorPattern.ReplaceAllString(css, "--secondary-color: "+entry.Theme.Secondary+";")
	css = accentColorPattern.ReplaceAllString(css, "--accent-color: "+entry.Theme.Accent+";")

	if err := os.WriteFile(filepath.Join(outputDir, "css", "style.css"), []byte(css), 0o644); err != nil {
		return errors.Wrap(err, "failed to write stylesheet")
	}

	return nil
}

const fallbackCSS = `:root {
  --primary-color: #000000;
  --secondary-color: #000000;
  --accent-color: #000000;
}
`

func (g *Generator) buildManifest(businessID string, businessType entity.BusinessType, entry catalog.Entry) *Manifest {
	kinds := make([]string, 0, len(entry.WidgetKinds))
	for _, kind := range entry.WidgetKinds {
		kinds = append(kinds, kind.String())
	}

	return &Manifest{
		BusinessID:   businessID,
		BusinessType: businessType.String(),
		Theme:        entry.Theme,
		WidgetKinds:  kinds,
		GeneratedAt:  g.now().UTC().Format(time.RFC3339),
		Version:      g.version,
	}
}

func writeManifest(manifest *Manifest, outputDir string) error {
	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode site manifest")
	}
	raw = append(raw, '\n')

	if err := os.WriteFile(filepath.Join(outputDir, "config", "site-config.json"), raw, 0o644); err != nil {
		return errors.Wrap(err, "failed to write site manifest")
	}

	return nil
}
