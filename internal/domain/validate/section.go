// Package validate normalizes and validates section payloads before they are
// persisted. A successful result carries exactly one normalized value plus
// the merge-patch field map for the persistence layer.
package validate

import (
	"encoding/json"
	"strings"

	"vitrine/internal/domain/catalog"
	"vitrine/internal/domain/entity"
	domainerrors "vitrine/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const widgetKeyPrefix = "widgets."

var fieldValidator = validator.New(validator.WithRequiredStructEnabled())

// Normalized is the tagged result of a section validation: exactly one of
// the value fields is set, matching Key.
type Normalized struct {
	Key entity.SectionKey

	BasicInfo  *entity.BasicInfo
	Hero       *entity.Hero
	Gallery    []entity.GalleryImage
	Content    *entity.Section
	WidgetKind entity.WidgetKind
	Widget     *entity.WidgetSettings
}

// PatchFields returns the dotted field paths for the merge-patch update.
func (n *Normalized) PatchFields() map[string]any {
	switch {
	case n.BasicInfo != nil:
		return map[string]any{"basicInfo": n.BasicInfo}
	case n.Hero != nil:
		return map[string]any{"hero": n.Hero}
	case n.Gallery != nil:
		return map[string]any{"gallery": n.Gallery}
	case n.Content != nil:
		return map[string]any{"sections." + n.Key.String(): n.Content}
	case n.Widget != nil:
		return map[string]any{"widgets." + n.WidgetKind.String(): n.Widget}
	default:
		return nil
	}
}

// Section validates one section payload for the given business type and
// returns its normalized value. The section key is either "basicInfo",
// "hero", "gallery", a content-section key from the type's catalog entry, or
// "widgets.<kind>".
func Section(sectionKey string, payload json.RawMessage, businessType entity.BusinessType) (*Normalized, error) {
	entry, err := catalog.Lookup(businessType)
	if err != nil {
		return nil, domainerrors.ErrUnknownBusinessType.WithDetails(err.Error())
	}

	if kind, ok := strings.CutPrefix(sectionKey, widgetKeyPrefix); ok {
		return widgetEntry(entity.WidgetKind(kind), payload, entry)
	}

	key := entity.SectionKey(sectionKey)
	switch key {
	case entity.SectionBasicInfo:
		return basicInfo(payload)
	case entity.SectionHero:
		return hero(payload)
	case entity.SectionGallery:
		return gallery(payload)
	default:
		return contentSection(key, payload, entry)
	}
}

// basicInfoInput mirrors entity.BasicInfo with the legacy dashboard's length
// limits attached.
type basicInfoInput struct {
	Name        string            `json:"name" validate:"max=100"`
	Description string            `json:"description" validate:"max=500"`
	Address     string            `json:"address" validate:"max=300"`
	Phone       string            `json:"phone" validate:"max=30"`
	Email       string            `json:"email" validate:"omitempty,email"`
	Hours       map[string]string `json:"hours"`
}

func basicInfo(payload json.RawMessage) (*Normalized, error) {
	var input basicInfoInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}
	if err := fieldValidator.Struct(&input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	// Hours values are deliberately lenient free text: every known weekday
	// key is kept verbatim, unknown keys are dropped, missing days become
	// blank. Parseability only matters to the open-now query.
	hours := entity.EmptyWeekHours()
	for _, day := range entity.WeekdayKeys() {
		if value, ok := input.Hours[day]; ok {
			hours[day] = strings.TrimSpace(value)
		}
	}

	return &Normalized{
		Key: entity.SectionBasicInfo,
		BasicInfo: &entity.BasicInfo{
			Name:        strings.TrimSpace(input.Name),
			Description: strings.TrimSpace(input.Description),
			Address:     strings.TrimSpace(input.Address),
			Phone:       strings.TrimSpace(input.Phone),
			Email:       strings.TrimSpace(input.Email),
			Hours:       hours,
		},
	}, nil
}

type heroInput struct {
	Title    string `json:"title" validate:"max=150"`
	Subtitle string `json:"subtitle" validate:"max=300"`
	CTAText  string `json:"ctaText" validate:"max=50"`
	ImageRef string `json:"imageRef"`
}

func hero(payload json.RawMessage) (*Normalized, error) {
	var input heroInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}
	if err := fieldValidator.Struct(&input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return &Normalized{
		Key: entity.SectionHero,
		Hero: &entity.Hero{
			Title:    strings.TrimSpace(input.Title),
			Subtitle: strings.TrimSpace(input.Subtitle),
			CTAText:  strings.TrimSpace(input.CTAText),
			ImageRef: input.ImageRef,
		},
	}, nil
}

type galleryImageInput struct {
	ImageRef string `json:"imageRef" validate:"required"`
	AltText  string `json:"altText" validate:"max=150"`
	Caption  string `json:"caption" validate:"max=300"`
}

func gallery(payload json.RawMessage) (*Normalized, error) {
	var input []galleryImageInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	images := make([]entity.GalleryImage, 0, len(input))
	for i, image := range input {
		if err := fieldValidator.Struct(&image); err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails(errors.Wrapf(err, "gallery[%d]", i).Error())
		}
		images = append(images, entity.GalleryImage{
			ImageRef: image.ImageRef,
			AltText:  strings.TrimSpace(image.AltText),
			Caption:  strings.TrimSpace(image.Caption),
		})
	}

	return &Normalized{Key: entity.SectionGallery, Gallery: images}, nil
}

func contentSection(key entity.SectionKey, payload json.RawMessage, entry catalog.Entry) (*Normalized, error) {
	layout, isContent := key.Layout()
	if !isContent || !entry.HasSection(key) {
		return nil, domainerrors.ErrValidationFailed.WithDetails(
			"section " + key.String() + " is not available for this business type")
	}

	var section entity.Section
	if err := json.Unmarshal(payload, &section); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	switch layout {
	case entity.LayoutFlat:
		if len(section.Categories) > 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails(
				"section " + key.String() + " holds a flat item list, not categories")
		}
		if section.Items == nil {
			section.Items = []entity.Item{}
		}
		if err := checkItems(section.Items); err != nil {
			return nil, err
		}

	case entity.LayoutCategorized:
		if len(section.Items) > 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails(
				"section " + key.String() + " holds categories, not a flat item list")
		}
		if section.Categories == nil {
			section.Categories = []entity.Category{}
		}
		seen := make(map[string]bool, len(section.Categories))
		for i := range section.Categories {
			category := &section.Categories[i]
			category.Name = strings.TrimSpace(category.Name)
			if category.Name == "" {
				return nil, domainerrors.ErrValidationFailed.WithDetails("category name is required")
			}
			// Case-sensitive uniqueness: "Entrées" and "entrées" are distinct.
			if seen[category.Name] {
				return nil, domainerrors.ErrDuplicateCategory.WithDetails("duplicate category " + category.Name)
			}
			seen[category.Name] = true
			if category.Items == nil {
				category.Items = []entity.Item{}
			}
			if err := checkItems(category.Items); err != nil {
				return nil, err
			}
		}
	}

	return &Normalized{Key: key, Content: &section}, nil
}

func checkItems(items []entity.Item) error {
	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
		if items[i].Name == "" {
			return domainerrors.ErrValidationFailed.WithDetails("item name is required")
		}
	}

	return nil
}

type widgetInput struct {
	Enabled      bool   `json:"enabled"`
	RestaurantID string `json:"restaurantId"`
	BusinessRef  string `json:"businessRef"`
	WidgetCode   string `json:"widgetCode"`
	URL          string `json:"url" validate:"omitempty,url"`
}

func widgetEntry(kind entity.WidgetKind, payload json.RawMessage, entry catalog.Entry) (*Normalized, error) {
	if !entity.KnownWidgetKind(kind) || !entry.HasWidgetKind(kind) {
		return nil, domainerrors.ErrInvalidWidgetConfig.WithDetails(
			"widget " + kind.String() + " is not available for this business type")
	}

	var input widgetInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return nil, domainerrors.ErrInvalidWidgetConfig.WithDetails(err.Error())
	}
	if err := fieldValidator.Struct(&input); err != nil {
		return nil, domainerrors.ErrInvalidWidgetConfig.WithDetails(err.Error())
	}

	// enabled=false permits empty kind-specific fields; enabled=true requires
	// whatever the embed needs to mount.
	if input.Enabled {
		switch kind {
		case entity.WidgetCalendly:
			if input.URL == "" || !strings.HasPrefix(input.URL, "http") {
				return nil, domainerrors.ErrInvalidWidgetConfig.WithDetails("calendly requires a scheduling page URL")
			}
		case entity.WidgetGloriaFood:
			if input.WidgetCode == "" && input.RestaurantID == "" {
				return nil, domainerrors.ErrInvalidWidgetConfig.WithDetails("gloriafood requires a restaurant id or embed code")
			}
		case entity.WidgetFresha:
			if input.WidgetCode == "" && input.BusinessRef == "" {
				return nil, domainerrors.ErrInvalidWidgetConfig.WithDetails("fresha requires a business reference or embed code")
			}
		}
	}

	return &Normalized{
		Key:        entity.SectionKey(widgetKeyPrefix + kind.String()),
		WidgetKind: kind,
		Widget: &entity.WidgetSettings{
			Enabled:      input.Enabled,
			RestaurantID: strings.TrimSpace(input.RestaurantID),
			BusinessRef:  strings.TrimSpace(input.BusinessRef),
			WidgetCode:   input.WidgetCode,
			URL:          strings.TrimSpace(input.URL),
		},
	}, nil
}
