// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"path"
	"sync"
	"time"

	"vitrine/config"
	"vitrine/internal/domain/catalog"
	"vitrine/internal/domain/entity"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/domain/repository"
	"vitrine/internal/domain/service"
	"vitrine/internal/domain/validate"
	"vitrine/internal/infra/cache"
	"vitrine/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// defaultCTAText seeds the hero call-to-action of a fresh profile.
const defaultCTAText = "Learn more"

// editSession tracks section-scoped unsaved-edit flags per business. The
// flag is process-local dashboard state, never persisted.
type editSession struct {
	mu    sync.Mutex
	dirty map[string]map[string]bool
}

func newEditSession() *editSession {
	return &editSession{dirty: make(map[string]map[string]bool)}
}

func (s *editSession) markDirty(businessID, sectionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty[businessID] == nil {
		s.dirty[businessID] = make(map[string]bool)
	}
	s.dirty[businessID][sectionKey] = true
}

func (s *editSession) isDirty(businessID, sectionKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dirty[businessID][sectionKey]
}

// clear resets one section's flag only; other sections keep their pending
// edits across a save.
func (s *editSession) clear(businessID, sectionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.dirty[businessID], sectionKey)
}

// editorService implements the EditorUsecase interface.
type editorService struct {
	profileRepo repository.ProfileRepository
	blobStore   service.BlobStore
	publisher   service.EventPublisher
	profiles    *cache.TTL[*entity.BusinessProfile]
	session     *editSession
	logger      *slog.Logger
	now         func() time.Time
}

// EditorServiceParams holds dependencies for EditorService, injected by Fx.
type EditorServiceParams struct {
	fx.In

	ProfileRepo repository.ProfileRepository
	BlobStore   service.BlobStore
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewEditorService is the constructor for editorService.
func NewEditorService(params EditorServiceParams) usecase.EditorUsecase {
	profileTTL := 5 * time.Minute
	if params.Config != nil && params.Config.Cache != nil && params.Config.Cache.ProfileTTL > 0 {
		profileTTL = params.Config.Cache.ProfileTTL
	}

	return &editorService{
		profileRepo: params.ProfileRepo,
		blobStore:   params.BlobStore,
		publisher:   params.Publisher,
		profiles:    cache.NewTTL[*entity.BusinessProfile](profileTTL),
		session:     newEditSession(),
		logger:      params.Logger,
		now:         time.Now,
	}
}

// CreateProfile creates the default-empty profile document for a new
// business. The id, type and owner are fixed for the profile's lifetime.
func (srv *editorService) CreateProfile(ctx context.Context, input usecase.CreateProfileInput) (*entity.BusinessProfile, error) {
	if err := entity.ValidateBusinessID(input.BusinessID); err != nil {
		return nil, domainerrors.ErrInvalidBusinessID.WithDetails(err.Error())
	}

	businessType, err := entity.ParseBusinessType(input.BusinessType)
	if err != nil {
		return nil, domainerrors.ErrUnknownBusinessType.WithDetails(err.Error())
	}

	entry, err := catalog.Lookup(businessType)
	if err != nil {
		return nil, domainerrors.ErrUnknownBusinessType.WithDetails(err.Error())
	}

	if input.OwnerID == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("owner id is required")
	}

	profile := defaultProfile(input.BusinessID, businessType, input.OwnerID, entry, srv.now())

	if err := srv.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrProfileExists) {
			return nil, domainerrors.ErrProfileAlreadyExists
		}

		return nil, domainerrors.ErrTransientStore.WithDetails(err.Error())
	}

	srv.profiles.Set(profile.BusinessID, profile)
	srv.publish(ctx, &service.ContentEvent{
		Type:       service.EventProfileCreated,
		BusinessID: profile.BusinessID,
		OccurredAt: srv.now(),
	})

	srv.logger.Info("business profile created",
		slog.String("business_id", profile.BusinessID),
		slog.String("business_type", businessType.String()),
	)

	return profile, nil
}

// defaultProfile builds the empty per-type document: every catalog section
// key present but disabled, every allowed widget kind present but disabled.
func defaultProfile(businessID string, businessType entity.BusinessType, ownerID string, entry catalog.Entry, now time.Time) *entity.BusinessProfile {
	sections := make(map[entity.SectionKey]*entity.Section, len(entry.SectionKeys))
	for _, key := range entry.SectionKeys {
		sections[key] = entity.EmptySection(key)
	}

	widgets := make(map[entity.WidgetKind]*entity.WidgetSettings, len(entry.WidgetKinds))
	for _, kind := range entry.WidgetKinds {
		widgets[kind] = &entity.WidgetSettings{Enabled: false}
	}

	return &entity.BusinessProfile{
		BusinessID:   businessID,
		BusinessType: businessType,
		OwnerID:      ownerID,
		CreatedAt:    now,
		UpdatedAt:    now,
		BasicInfo:    entity.BasicInfo{Hours: entity.EmptyWeekHours()},
		Hero:         entity.Hero{CTAText: defaultCTAText},
		Gallery:      []entity.GalleryImage{},
		Sections:     sections,
		Widgets:      widgets,
	}
}

// GetProfile loads one profile through the read cache.
func (srv *editorService) GetProfile(ctx context.Context, businessID string) (*entity.BusinessProfile, error) {
	if profile, ok := srv.profiles.Get(businessID); ok {
		return profile, nil
	}

	profile, err := srv.profileRepo.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}

		return nil, domainerrors.ErrTransientStore.WithDetails(err.Error())
	}

	srv.profiles.Set(businessID, profile)

	return profile, nil
}

// SaveSection validates one section payload and merge-patches exactly that
// section plus updatedAt. A validation failure leaves the store untouched.
func (srv *editorService) SaveSection(ctx context.Context, input usecase.SaveSectionInput) (*entity.BusinessProfile, error) {
	profile, err := srv.authorize(ctx, input.BusinessID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	normalized, err := validate.Section(input.SectionKey, input.Payload, profile.BusinessType)
	if err != nil {
		return nil, err
	}

	fields := normalized.PatchFields()
	fields["updatedAt"] = srv.now()

	if err := srv.profileRepo.UpdateSection(ctx, input.BusinessID, fields); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}

		return nil, domainerrors.ErrTransientStore.WithDetails(err.Error())
	}

	srv.profiles.Invalidate(input.BusinessID)
	srv.session.clear(input.BusinessID, input.SectionKey)

	srv.publish(ctx, &service.ContentEvent{
		Type:       service.EventSectionUpdated,
		BusinessID: input.BusinessID,
		SectionKey: input.SectionKey,
		RequestID:  input.RequestID,
		OccurredAt: srv.now(),
	})

	updated, err := srv.profileRepo.FindByID(ctx, input.BusinessID)
	if err != nil {
		return nil, domainerrors.ErrTransientStore.WithDetails(err.Error())
	}
	srv.profiles.Set(input.BusinessID, updated)

	return updated, nil
}

// AttachImage uploads the image first, then binds the reference. A reference
// replaced on the hero is left orphaned in the bucket; cleanup is a separate
// operational concern.
func (srv *editorService) AttachImage(ctx context.Context, input usecase.AttachImageInput) (string, error) {
	profile, err := srv.authorize(ctx, input.BusinessID, input.OwnerID)
	if err != nil {
		return "", err
	}

	if input.Target != usecase.ImageTargetHero && input.Target != usecase.ImageTargetGallery {
		return "", domainerrors.ErrValidationFailed.WithDetails("image target must be hero or gallery")
	}
	if len(input.Data) == 0 {
		return "", domainerrors.ErrValidationFailed.WithDetails("image data is empty")
	}

	key := path.Join(input.BusinessID, input.Target, uuid.NewString()+"-"+path.Base(input.Filename))
	ref, err := srv.blobStore.Upload(ctx, key, input.Data, input.ContentType)
	if err != nil {
		return "", domainerrors.ErrTransientBlob.WithDetails(err.Error())
	}

	fields := map[string]any{"updatedAt": srv.now()}
	switch input.Target {
	case usecase.ImageTargetHero:
		fields["hero.imageRef"] = ref
	case usecase.ImageTargetGallery:
		gallery := append(profile.Gallery, entity.GalleryImage{ImageRef: ref, AltText: input.Filename})
		fields["gallery"] = gallery
	}

	if err := srv.profileRepo.UpdateSection(ctx, input.BusinessID, fields); err != nil {
		return "", domainerrors.ErrTransientStore.WithDetails(err.Error())
	}

	srv.profiles.Invalidate(input.BusinessID)
	srv.publish(ctx, &service.ContentEvent{
		Type:       service.EventSectionUpdated,
		BusinessID: input.BusinessID,
		SectionKey: input.Target,
		OccurredAt: srv.now(),
	})

	return ref, nil
}

// MarkDirty records unsaved edits for one section.
func (srv *editorService) MarkDirty(businessID, sectionKey string) {
	srv.session.markDirty(businessID, sectionKey)
}

// IsDirty reports whether a section has unsaved edits.
func (srv *editorService) IsDirty(businessID, sectionKey string) bool {
	return srv.session.isDirty(businessID, sectionKey)
}

// authorize loads the profile and checks write ownership.
func (srv *editorService) authorize(ctx context.Context, businessID, ownerID string) (*entity.BusinessProfile, error) {
	if ownerID == "" {
		return nil, domainerrors.ErrUnauthorized
	}

	profile, err := srv.profileRepo.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}

		return nil, domainerrors.ErrTransientStore.WithDetails(err.Error())
	}

	if profile.OwnerID != ownerID {
		return nil, domainerrors.ErrNotOwner
	}

	return profile, nil
}

// publish sends a content event; failures are logged, never surfaced, so a
// broken event pipeline cannot fail an already-persisted write.
func (srv *editorService) publish(ctx context.Context, event *service.ContentEvent) {
	if err := srv.publisher.PublishContentEvent(ctx, event); err != nil {
		srv.logger.Warn("content event publish failed",
			slog.String("type", event.Type),
			slog.String("business_id", event.BusinessID),
			slog.Any("error", err),
		)
	}
}
