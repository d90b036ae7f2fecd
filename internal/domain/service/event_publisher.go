package service

import (
	"context"
	"time"
)

// Content event types published on successful writes.
const (
	EventSectionUpdated  = "profile.section.updated"
	EventProfileCreated  = "profile.created"
	EventMessageReceived = "contact.message.received"
)

// ContentEvent describes one persisted content change. Consumers (e.g. a
// regeneration worker) use it to rebuild static sites or invalidate caches
// in other processes; this core only guarantees in-process invalidation.
type ContentEvent struct {
	Type       string    `json:"type"`
	BusinessID string    `json:"businessId"`
	SectionKey string    `json:"sectionKey,omitempty"`
	RequestID  string    `json:"requestId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher publishes content events. Publishing failures never fail
// the write that triggered them.
type EventPublisher interface {
	PublishContentEvent(ctx context.Context, event *ContentEvent) error
	Close() error
}
