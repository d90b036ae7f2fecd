// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"
)

// Collection names used by the platform.
const (
	CollectionBusinesses = "businesses"
	CollectionUsers      = "users"
	CollectionMessages   = "messages"
)

// ErrDocumentNotFound is returned when a document id does not exist.
var ErrDocumentNotFound = errors.New("document not found")

// Document is one stored document, decoded into plain Go values.
type Document map[string]any

// Filter is a single equality predicate on a (possibly dotted) field path.
type Filter struct {
	Path  string
	Value any
}

// Subscription is a handle on a document change feed.
type Subscription interface {
	// Unsubscribe stops delivery. Safe to call more than once.
	Unsubscribe()
}

// DocumentStore is the narrow key-value document interface the core consumes.
// Firestore backs it in production; an in-memory store backs tests and local
// development.
type DocumentStore interface {
	// Get retrieves a document by id, ErrDocumentNotFound when absent.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Set writes the full document at id, creating or replacing it.
	Set(ctx context.Context, collection, id string, doc Document) error

	// Create writes the document only if the id is not yet taken.
	Create(ctx context.Context, collection, id string, doc Document) error

	// Update merge-patches the named field paths. Paths use dotted notation
	// ("basicInfo.name"); untouched siblings are preserved.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Query returns the documents matching every filter.
	Query(ctx context.Context, collection string, filters []Filter) ([]Document, error)

	// Subscribe delivers the current document and every subsequent change
	// until the subscription is cancelled or ctx ends.
	Subscribe(ctx context.Context, collection, id string, onChange func(Document)) (Subscription, error)
}
