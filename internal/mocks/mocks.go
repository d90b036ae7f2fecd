// Package mocks provides hand-written testify doubles for the domain ports.
package mocks

import (
	"context"

	"vitrine/internal/domain/entity"
	"vitrine/internal/domain/repository"
	"vitrine/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// ProfileRepository is a mock of repository.ProfileRepository.
type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) FindByID(ctx context.Context, businessID string) (*entity.BusinessProfile, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.BusinessProfile), args.Error(1)
}

func (m *ProfileRepository) FindByOwner(ctx context.Context, ownerID string) (*entity.BusinessProfile, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.BusinessProfile), args.Error(1)
}

func (m *ProfileRepository) Create(ctx context.Context, profile *entity.BusinessProfile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

func (m *ProfileRepository) UpdateSection(ctx context.Context, businessID string, fields map[string]any) error {
	args := m.Called(ctx, businessID, fields)

	return args.Error(0)
}

func (m *ProfileRepository) Subscribe(ctx context.Context, businessID string, onChange func(*entity.BusinessProfile)) (repository.Subscription, error) {
	args := m.Called(ctx, businessID, onChange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(repository.Subscription), args.Error(1)
}

// MessageRepository is a mock of repository.MessageRepository.
type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Add(ctx context.Context, msg *repository.ContactMessage) error {
	args := m.Called(ctx, msg)

	return args.Error(0)
}

// BlobStore is a mock of service.BlobStore.
type BlobStore struct {
	mock.Mock
}

func (m *BlobStore) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, path, data, contentType)

	return args.String(0), args.Error(1)
}

func (m *BlobStore) Resolve(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)

	return args.String(0), args.Error(1)
}

func (m *BlobStore) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)

	return args.Error(0)
}

// EventPublisher is a mock of service.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishContentEvent(ctx context.Context, event *service.ContentEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *EventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// NoopPublisher satisfies service.EventPublisher without expectations, for
// tests that do not care about events.
type NoopPublisher struct{}

func (NoopPublisher) PublishContentEvent(context.Context, *service.ContentEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
