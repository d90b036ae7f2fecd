// Package persistence implements the domain repositories on top of the
// DocumentStore port, so the same code serves Firestore and the in-memory
// store.
package persistence

import (
	"context"
	"encoding/json"

	"vitrine/internal/domain/entity"
	"vitrine/internal/domain/repository"

	"github.com/pkg/errors"
)

type profileRepository struct {
	store repository.DocumentStore
}

// NewProfileRepository creates a ProfileRepository persisting profiles as
// documents in the businesses collection, keyed by business ID.
func NewProfileRepository(store repository.DocumentStore) repository.ProfileRepository {
	return &profileRepository{store: store}
}

func (r *profileRepository) FindByID(ctx context.Context, businessID string) (*entity.BusinessProfile, error) {
	doc, err := r.store.Get(ctx, repository.CollectionBusinesses, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to load business profile")
	}

	return documentToProfile(doc)
}

func (r *profileRepository) FindByOwner(ctx context.Context, ownerID string) (*entity.BusinessProfile, error) {
	docs, err := r.store.Query(ctx, repository.CollectionBusinesses, []repository.Filter{
		{Path: "ownerId", Value: ownerID},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to query business profiles by owner")
	}
	if len(docs) == 0 {
		return nil, repository.ErrProfileNotFound
	}

	return documentToProfile(docs[0])
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.BusinessProfile) error {
	if _, err := r.store.Get(ctx, repository.CollectionBusinesses, profile.BusinessID); err == nil {
		return repository.ErrProfileExists
	} else if !errors.Is(err, repository.ErrDocumentNotFound) {
		return errors.Wrap(err, "failed to check business profile existence")
	}

	doc, err := profileToDocument(profile)
	if err != nil {
		return err
	}

	if err := r.store.Create(ctx, repository.CollectionBusinesses, profile.BusinessID, doc); err != nil {
		return errors.Wrap(err, "failed to create business profile")
	}

	return nil
}

func (r *profileRepository) UpdateSection(ctx context.Context, businessID string, fields map[string]any) error {
	normalized, err := normalizeFields(fields)
	if err != nil {
		return err
	}

	if err := r.store.Update(ctx, repository.CollectionBusinesses, businessID, normalized); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return repository.ErrProfileNotFound
		}

		return errors.Wrap(err, "failed to update business profile")
	}

	return nil
}

func (r *profileRepository) Subscribe(ctx context.Context, businessID string, onChange func(*entity.BusinessProfile)) (repository.Subscription, error) {
	return r.store.Subscribe(ctx, repository.CollectionBusinesses, businessID, func(doc repository.Document) {
		profile, err := documentToProfile(doc)
		if err != nil {
			return
		}
		onChange(profile)
	})
}

// normalizeFields converts typed patch values to plain JSON values so the
// stored field names follow the entity's json tags in every store.
func normalizeFields(fields map[string]any) (map[string]any, error) {
	normalized := make(map[string]any, len(fields))
	for path, value := range fields {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode patch field %s", path)
		}

		var plain any
		if err := json.Unmarshal(raw, &plain); err != nil {
			return nil, errors.Wrapf(err, "failed to encode patch field %s", path)
		}
		normalized[path] = plain
	}

	return normalized, nil
}

// profileToDocument converts through JSON so the stored field names match the
// entity's json tags, which the dotted patch paths also use.
func profileToDocument(profile *entity.BusinessProfile) (repository.Document, error) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode business profile")
	}

	var doc repository.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to encode business profile")
	}

	return doc, nil
}

func documentToProfile(doc repository.Document) (*entity.BusinessProfile, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode business profile")
	}

	var profile entity.BusinessProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, errors.Wrap(err, "failed to decode business profile")
	}

	return &profile, nil
}
