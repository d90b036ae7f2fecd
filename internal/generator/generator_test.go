package generator

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vitrine/config"
	"vitrine/internal/domain/entity"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/domain/repository"
	"vitrine/internal/infra/persistence"
	"vitrine/internal/infra/persistence/memory"
	"vitrine/internal/renderer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver struct{}

func (staticResolver) ResolveImage(_ context.Context, ref string) string {
	return "/assets/images/" + ref
}

var fixedClock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestGenerator(t *testing.T, repo repository.ProfileRepository, templatesDir string) *Generator {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, err := renderer.New(staticResolver{}, logger)
	require.NoError(t, err)

	return New(Params{
		Profiles: repo,
		Renderer: r,
		Config: &config.Config{Generator: &config.GeneratorConfig{
			TemplatesDir: templatesDir,
			Version:      "1.0.0",
		}},
		Logger: logger,
	}).WithClock(func() time.Time { return fixedClock })
}

func seedRestaurant(t *testing.T, repo repository.ProfileRepository) {
	t.Helper()

	require.NoError(t, repo.Create(context.Background(), &entity.BusinessProfile{
		BusinessID:   "le-bistro",
		BusinessType: entity.TypeRestaurant,
		OwnerID:      "owner-1",
		BasicInfo:    entity.BasicInfo{Name: "Le Bistro", Hours: entity.EmptyWeekHours()},
		Hero:         entity.Hero{Title: "Le Bistro", CTAText: "See the menu"},
		Sections: map[entity.SectionKey]*entity.Section{
			entity.SectionDailyMenu: {
				Enabled: true,
				Items: []entity.Item{
					{Name: "Soupe", Price: "6"},
					{Name: "Quiche", Price: "9"},
				},
			},
		},
		Widgets: map[entity.WidgetKind]*entity.WidgetSettings{
			entity.WidgetGloriaFood: {Enabled: true, RestaurantID: "r-123"},
		},
	}))
}

func readOutput(t *testing.T, outputDir, name string) string {
	t.Helper()

	raw, err := os.ReadFile(filepath.Join(outputDir, name))
	require.NoError(t, err)

	return string(raw)
}

func TestGenerator_EndToEnd(t *testing.T) {
	repo := persistence.NewProfileRepository(memory.New())
	seedRestaurant(t, repo)
	g := newTestGenerator(t, repo, t.TempDir())
	outputDir := t.TempDir()

	manifest, err := g.Generate(context.Background(), "le-bistro", "restaurant", outputDir)
	require.NoError(t, err)

	index := readOutput(t, outputDir, "index.html")
	assert.Contains(t, index, "Le Bistro")

	menu := readOutput(t, outputDir, "menu.html")
	assert.Contains(t, menu, "Soupe")
	// the currency suffix is attached at render time; the store keeps "6"
	assert.Contains(t, menu, "6€")

	css := readOutput(t, outputDir, filepath.Join("css", "style.css"))
	assert.Contains(t, css, "--primary-color: #d4842c;")
	assert.Contains(t, css, "--accent-color: #ff6b35;")

	// pages the catalog does not list are not written
	_, err = os.Stat(filepath.Join(outputDir, "services.html"))
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, "le-bistro", manifest.BusinessID)
	assert.Equal(t, []string{"gloriafood"}, manifest.WidgetKinds)
	assert.Equal(t, "2025-06-01T12:00:00Z", manifest.GeneratedAt)

	var stored Manifest
	require.NoError(t, json.Unmarshal([]byte(readOutput(t, outputDir, filepath.Join("config", "site-config.json"))), &stored))
	assert.Equal(t, *manifest, stored)
}

func TestGenerator_Idempotent(t *testing.T) {
	repo := persistence.NewProfileRepository(memory.New())
	seedRestaurant(t, repo)
	g := newTestGenerator(t, repo, t.TempDir())

	first := t.TempDir()
	second := t.TempDir()
	_, err := g.Generate(context.Background(), "le-bistro", "restaurant", first)
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), "le-bistro", "restaurant", second)
	require.NoError(t, err)

	for _, name := range []string{
		"index.html", "menu.html", "contact.html", "booking.html",
		filepath.Join("css", "style.css"),
		filepath.Join("config", "site-config.json"),
	} {
		assert.Equal(t, readOutput(t, first, name), readOutput(t, second, name), name)
	}
}

func TestGenerator_TemplateTokens(t *testing.T) {
	repo := persistence.NewProfileRepository(memory.New())
	seedRestaurant(t, repo)

	templatesDir := t.TempDir()
	template := `<html><head><title>{{PAGE_TITLE}} | {{BUSINESS_ID}}</title></head>` +
		`<body data-theme="{{THEME_PRIMARY}}">{{PAGE_CONTENT}}{{UNKNOWN_TOKEN}}</body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, "menu.html"), []byte(template), 0o644))

	g := newTestGenerator(t, repo, templatesDir)
	outputDir := t.TempDir()
	_, err := g.Generate(context.Background(), "le-bistro", "restaurant", outputDir)
	require.NoError(t, err)

	menu := readOutput(t, outputDir, "menu.html")
	assert.Contains(t, menu, "<title>Menu | le-bistro</title>")
	assert.Contains(t, menu, `data-theme="#d4842c"`)
	assert.Contains(t, menu, "Soupe")
	// unmatched tokens stay verbatim
	assert.Contains(t, menu, "{{UNKNOWN_TOKEN}}")
}

func TestGenerator_WidgetInjection(t *testing.T) {
	repo := persistence.NewProfileRepository(memory.New())
	seedRestaurant(t, repo)

	templatesDir := t.TempDir()
	placeholders := "<!-- widget:gloriafood -->\n<!-- widget:fresha -->\n<!-- widget:calendly -->\n"
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, "booking.html"),
		[]byte("<body>"+placeholders+"</body>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, "menu.html"),
		[]byte("<body>"+placeholders+"</body>"), 0o644))

	g := newTestGenerator(t, repo, templatesDir)
	outputDir := t.TempDir()
	_, err := g.Generate(context.Background(), "le-bistro", "restaurant", outputDir)
	require.NoError(t, err)

	booking := readOutput(t, outputDir, "booking.html")
	assert.Contains(t, booking, "data-restaurant=\"r-123\"")
	assert.NotContains(t, booking, "widget:fresha")
	assert.NotContains(t, booking, "widget:calendly")
	assert.NotContains(t, booking, "fresha.com")

	// widgets never mount outside the booking page
	menu := readOutput(t, outputDir, "menu.html")
	assert.NotContains(t, menu, "data-restaurant")
	assert.NotContains(t, menu, "widget:")
}

// The templates shipped in the repo carry both {{PAGE_CONTENT}} and the
// widget placeholder block; the enabled widget must still mount exactly once.
func TestGenerator_ShippedTemplatesSingleEmbed(t *testing.T) {
	repo := persistence.NewProfileRepository(memory.New())
	seedRestaurant(t, repo)

	g := newTestGenerator(t, repo, filepath.Join("..", "..", "templates"))
	outputDir := t.TempDir()
	_, err := g.Generate(context.Background(), "le-bistro", "restaurant", outputDir)
	require.NoError(t, err)

	booking := readOutput(t, outputDir, "booking.html")
	assert.Equal(t, 1, strings.Count(booking, `data-restaurant="r-123"`), booking)
	assert.NotContains(t, booking, "widget:")

	menu := readOutput(t, outputDir, "menu.html")
	assert.Contains(t, menu, "6€")
}

func TestGenerator_UnreadableTemplateFatal(t *testing.T) {
	repo := persistence.NewProfileRepository(memory.New())
	seedRestaurant(t, repo)

	// menu.html exists but cannot be read as a file; this is not the
	// missing-template degrade path and must abort the run.
	templatesDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(templatesDir, "menu.html"), 0o755))

	g := newTestGenerator(t, repo, templatesDir)
	_, err := g.Generate(context.Background(), "le-bistro", "restaurant", t.TempDir())
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFIGURATION_ERROR", appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "unreadable")
}

func TestGenerator_WidgetDisabledRemoved(t *testing.T) {
	store := memory.New()
	repo := persistence.NewProfileRepository(store)
	seedRestaurant(t, repo)
	require.NoError(t, store.Update(context.Background(), "businesses", "le-bistro", map[string]any{
		"widgets.gloriafood.enabled": false,
	}))

	templatesDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(templatesDir, "booking.html"),
		[]byte("<body><!-- widget:gloriafood --></body>"), 0o644))

	g := newTestGenerator(t, repo, templatesDir)
	outputDir := t.TempDir()
	_, err := g.Generate(context.Background(), "le-bistro", "restaurant", outputDir)
	require.NoError(t, err)

	booking := readOutput(t, outputDir, "booking.html")
	assert.NotContains(t, booking, "widget:gloriafood")
	assert.NotContains(t, booking, "data-restaurant")
}

func TestGenerator_UnknownType(t *testing.T) {
	repo := persistence.NewProfileRepository(memory.New())
	g := newTestGenerator(t, repo, t.TempDir())

	_, err := g.Generate(context.Background(), "le-bistro", "bakery", t.TempDir())
	assert.Error(t, err)
}

func TestGenerator_TypeMismatch(t *testing.T) {
	repo := persistence.NewProfileRepository(memory.New())
	seedRestaurant(t, repo)
	g := newTestGenerator(t, repo, t.TempDir())

	_, err := g.Generate(context.Background(), "le-bistro", "retail", t.TempDir())
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details(), "restaurant")
}

func TestGenerator_MissingProfile(t *testing.T) {
	repo := persistence.NewProfileRepository(memory.New())
	g := newTestGenerator(t, repo, t.TempDir())

	_, err := g.Generate(context.Background(), "ghost", "restaurant", t.TempDir())
	assert.Error(t, err)
}
