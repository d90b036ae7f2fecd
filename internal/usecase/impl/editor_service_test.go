package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"vitrine/config"
	"vitrine/internal/domain/entity"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/infra/persistence"
	"vitrine/internal/infra/persistence/memory"
	"vitrine/internal/mocks"
	"vitrine/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testClock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type editorFixture struct {
	service usecase.EditorUsecase
	blob    *mocks.BlobStore
	store   *memory.DocumentStore
}

func newEditorFixture(t *testing.T) *editorFixture {
	t.Helper()

	store := memory.New()
	blob := new(mocks.BlobStore)

	service := NewEditorService(EditorServiceParams{
		ProfileRepo: persistence.NewProfileRepository(store),
		BlobStore:   blob,
		Publisher:   mocks.NoopPublisher{},
		Config:      &config.Config{Cache: &config.CacheConfig{ProfileTTL: 5 * time.Minute}},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	service.(*editorService).now = func() time.Time { return testClock }

	return &editorFixture{service: service, blob: blob, store: store}
}

func (f *editorFixture) createRestaurant(t *testing.T) *entity.BusinessProfile {
	t.Helper()

	profile, err := f.service.CreateProfile(context.Background(), usecase.CreateProfileInput{
		BusinessID:   "le-bistro",
		BusinessType: "restaurant",
		OwnerID:      "owner-1",
	})
	require.NoError(t, err)

	return profile
}

func TestEditorService_CreateProfile_Defaults(t *testing.T) {
	f := newEditorFixture(t)

	profile := f.createRestaurant(t)

	assert.Equal(t, entity.TypeRestaurant, profile.BusinessType)
	assert.Equal(t, "owner-1", profile.OwnerID)
	assert.Equal(t, testClock, profile.CreatedAt)
	assert.Equal(t, "Learn more", profile.Hero.CTAText)

	// every catalog section key exists but is disabled
	require.Contains(t, profile.Sections, entity.SectionDailyMenu)
	require.Contains(t, profile.Sections, entity.SectionMainMenu)
	require.Contains(t, profile.Sections, entity.SectionDrinksMenu)
	assert.NotContains(t, profile.Sections, entity.SectionServices)
	for _, section := range profile.Sections {
		assert.False(t, section.Enabled)
	}

	require.Contains(t, profile.Widgets, entity.WidgetGloriaFood)
	assert.False(t, profile.Widgets[entity.WidgetGloriaFood].Enabled)
}

func TestEditorService_CreateProfile_InvalidID(t *testing.T) {
	f := newEditorFixture(t)

	cases := []string{"ab", "Le-Bistro", "le bistro", "le.bistro", ""}
	for _, id := range cases {
		_, err := f.service.CreateProfile(context.Background(), usecase.CreateProfileInput{
			BusinessID:   id,
			BusinessType: "restaurant",
			OwnerID:      "owner-1",
		})
		assert.ErrorContains(t, err, domainerrors.ErrInvalidBusinessID.Message(), "id %q", id)
	}
}

func TestEditorService_CreateProfile_UnknownType(t *testing.T) {
	f := newEditorFixture(t)

	_, err := f.service.CreateProfile(context.Background(), usecase.CreateProfileInput{
		BusinessID:   "le-bistro",
		BusinessType: "bakery",
		OwnerID:      "owner-1",
	})
	assert.ErrorContains(t, err, domainerrors.ErrUnknownBusinessType.Message())
}

func TestEditorService_CreateProfile_Duplicate(t *testing.T) {
	f := newEditorFixture(t)
	f.createRestaurant(t)

	_, err := f.service.CreateProfile(context.Background(), usecase.CreateProfileInput{
		BusinessID:   "le-bistro",
		BusinessType: "restaurant",
		OwnerID:      "owner-2",
	})
	assert.ErrorContains(t, err, domainerrors.ErrProfileAlreadyExists.Message())
}

func TestEditorService_GetProfile_CachesReads(t *testing.T) {
	f := newEditorFixture(t)
	f.createRestaurant(t)
	ctx := context.Background()

	first, err := f.service.GetProfile(ctx, "le-bistro")
	require.NoError(t, err)

	// a write bypassing the service is invisible until the cache expires
	require.NoError(t, f.store.Update(ctx, "businesses", "le-bistro", map[string]any{
		"basicInfo.name": "Changed Behind The Cache",
	}))

	second, err := f.service.GetProfile(ctx, "le-bistro")
	require.NoError(t, err)
	assert.Equal(t, first.BasicInfo.Name, second.BasicInfo.Name)
}

func TestEditorService_GetProfile_NotFound(t *testing.T) {
	f := newEditorFixture(t)

	_, err := f.service.GetProfile(context.Background(), "missing")
	assert.ErrorContains(t, err, domainerrors.ErrProfileNotFound.Message())
}

func TestEditorService_SaveSection_BasicInfo(t *testing.T) {
	f := newEditorFixture(t)
	f.createRestaurant(t)

	payload := json.RawMessage(`{
		"name": "Le Bistro",
		"description": "Cuisine de saison",
		"phone": "+33 1 23 45 67 89",
		"hours": {"monday": "09:00-18:00", "sunday": "fermé"}
	}`)

	updated, err := f.service.SaveSection(context.Background(), usecase.SaveSectionInput{
		BusinessID: "le-bistro",
		OwnerID:    "owner-1",
		SectionKey: "basicInfo",
		Payload:    payload,
	})
	require.NoError(t, err)

	assert.Equal(t, "Le Bistro", updated.BasicInfo.Name)
	assert.Equal(t, "09:00-18:00", updated.BasicInfo.Hours["monday"])
	assert.Equal(t, "fermé", updated.BasicInfo.Hours["sunday"])
	assert.Equal(t, testClock, updated.UpdatedAt)
	// the hero seeded at creation survives a basicInfo patch
	assert.Equal(t, "Learn more", updated.Hero.CTAText)
}

func TestEditorService_SaveSection_ContentSection(t *testing.T) {
	f := newEditorFixture(t)
	f.createRestaurant(t)

	payload := json.RawMessage(`{
		"enabled": true,
		"items": [{"name": "Soupe", "price": "6"}, {"name": "Quiche", "price": "9"}]
	}`)

	updated, err := f.service.SaveSection(context.Background(), usecase.SaveSectionInput{
		BusinessID: "le-bistro",
		OwnerID:    "owner-1",
		SectionKey: "dailyMenu",
		Payload:    payload,
	})
	require.NoError(t, err)

	section := updated.Section(entity.SectionDailyMenu)
	require.NotNil(t, section)
	assert.True(t, section.Enabled)
	require.Len(t, section.Items, 2)
	assert.Equal(t, "Soupe", section.Items[0].Name)
}

func TestEditorService_SaveSection_NotOwner(t *testing.T) {
	f := newEditorFixture(t)
	f.createRestaurant(t)

	_, err := f.service.SaveSection(context.Background(), usecase.SaveSectionInput{
		BusinessID: "le-bistro",
		OwnerID:    "intruder",
		SectionKey: "basicInfo",
		Payload:    json.RawMessage(`{"name": "Hacked"}`),
	})
	assert.ErrorContains(t, err, domainerrors.ErrNotOwner.Message())
}

func TestEditorService_SaveSection_ValidationLeavesStoreUntouched(t *testing.T) {
	f := newEditorFixture(t)
	f.createRestaurant(t)
	ctx := context.Background()

	payload := json.RawMessage(`{
		"enabled": true,
		"categories": [
			{"name": "Entrées", "items": [{"name": "Salade"}]},
			{"name": "Entrées", "items": [{"name": "Autre"}]}
		]
	}`)

	_, err := f.service.SaveSection(ctx, usecase.SaveSectionInput{
		BusinessID: "le-bistro",
		OwnerID:    "owner-1",
		SectionKey: "mainMenu",
		Payload:    payload,
	})
	assert.ErrorContains(t, err, domainerrors.ErrDuplicateCategory.Message())

	stored, err := f.service.GetProfile(ctx, "le-bistro")
	require.NoError(t, err)
	assert.False(t, stored.Section(entity.SectionMainMenu).Enabled)
	assert.Empty(t, stored.Section(entity.SectionMainMenu).Categories)
}

func TestEditorService_SaveSection_WidgetEntry(t *testing.T) {
	f := newEditorFixture(t)
	f.createRestaurant(t)

	updated, err := f.service.SaveSection(context.Background(), usecase.SaveSectionInput{
		BusinessID: "le-bistro",
		OwnerID:    "owner-1",
		SectionKey: "widgets.gloriafood",
		Payload:    json.RawMessage(`{"enabled": true, "restaurantId": "r-123"}`),
	})
	require.NoError(t, err)

	widget := updated.Widget(entity.WidgetGloriaFood)
	require.NotNil(t, widget)
	assert.True(t, widget.Enabled)
	assert.Equal(t, "r-123", widget.RestaurantID)
}

func TestEditorService_SaveSection_PublishesEvent(t *testing.T) {
	store := memory.New()
	publisher := new(mocks.EventPublisher)
	publisher.On("PublishContentEvent", mock.Anything, mock.Anything).Return(nil)

	service := NewEditorService(EditorServiceParams{
		ProfileRepo: persistence.NewProfileRepository(store),
		BlobStore:   new(mocks.BlobStore),
		Publisher:   publisher,
		Config:      &config.Config{},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	_, err := service.CreateProfile(context.Background(), usecase.CreateProfileInput{
		BusinessID:   "le-bistro",
		BusinessType: "restaurant",
		OwnerID:      "owner-1",
	})
	require.NoError(t, err)

	_, err = service.SaveSection(context.Background(), usecase.SaveSectionInput{
		BusinessID: "le-bistro",
		OwnerID:    "owner-1",
		SectionKey: "basicInfo",
		Payload:    json.RawMessage(`{"name": "Le Bistro"}`),
	})
	require.NoError(t, err)

	publisher.AssertNumberOfCalls(t, "PublishContentEvent", 2)
}

func TestEditorService_AttachImage_Hero(t *testing.T) {
	f := newEditorFixture(t)
	f.createRestaurant(t)

	f.blob.On("Upload", mock.Anything, mock.Anything, []byte("jpeg"), "image/jpeg").
		Return("blob://le-bistro/hero/key.jpg", nil)

	ref, err := f.service.AttachImage(context.Background(), usecase.AttachImageInput{
		BusinessID:  "le-bistro",
		OwnerID:     "owner-1",
		Target:      usecase.ImageTargetHero,
		Filename:    "hero.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg"),
	})
	require.NoError(t, err)
	assert.Equal(t, "blob://le-bistro/hero/key.jpg", ref)

	profile, err := f.service.GetProfile(context.Background(), "le-bistro")
	require.NoError(t, err)
	assert.Equal(t, ref, profile.Hero.ImageRef)
}

func TestEditorService_AttachImage_GalleryAppends(t *testing.T) {
	f := newEditorFixture(t)
	f.createRestaurant(t)

	f.blob.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("blob://le-bistro/gallery/key.jpg", nil).Twice()

	for range 2 {
		_, err := f.service.AttachImage(context.Background(), usecase.AttachImageInput{
			BusinessID:  "le-bistro",
			OwnerID:     "owner-1",
			Target:      usecase.ImageTargetGallery,
			Filename:    "room.jpg",
			ContentType: "image/jpeg",
			Data:        []byte("jpeg"),
		})
		require.NoError(t, err)
	}

	profile, err := f.service.GetProfile(context.Background(), "le-bistro")
	require.NoError(t, err)
	assert.Len(t, profile.Gallery, 2)
}

func TestEditorService_AttachImage_BadTarget(t *testing.T) {
	f := newEditorFixture(t)
	f.createRestaurant(t)

	_, err := f.service.AttachImage(context.Background(), usecase.AttachImageInput{
		BusinessID: "le-bistro",
		OwnerID:    "owner-1",
		Target:     "logo",
		Data:       []byte("x"),
	})
	assert.ErrorContains(t, err, "hero or gallery")
}

func TestEditorService_DirtyFlags(t *testing.T) {
	f := newEditorFixture(t)
	f.createRestaurant(t)

	f.service.MarkDirty("le-bistro", "basicInfo")
	f.service.MarkDirty("le-bistro", "dailyMenu")
	assert.True(t, f.service.IsDirty("le-bistro", "basicInfo"))
	assert.True(t, f.service.IsDirty("le-bistro", "dailyMenu"))

	_, err := f.service.SaveSection(context.Background(), usecase.SaveSectionInput{
		BusinessID: "le-bistro",
		OwnerID:    "owner-1",
		SectionKey: "basicInfo",
		Payload:    json.RawMessage(`{"name": "Le Bistro"}`),
	})
	require.NoError(t, err)

	// only the saved section's flag clears
	assert.False(t, f.service.IsDirty("le-bistro", "basicInfo"))
	assert.True(t, f.service.IsDirty("le-bistro", "dailyMenu"))
}
