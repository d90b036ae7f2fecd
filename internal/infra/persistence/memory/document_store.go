// Package memory implements the DocumentStore port in process memory. It
// backs tests and local development; production uses the Firestore store.
package memory

import (
	"context"
	"strings"
	"sync"

	"vitrine/internal/domain/repository"

	"github.com/pkg/errors"
)

// DocumentStore is a concurrency-safe in-memory document store with the same
// merge-patch and subscription semantics as the Firestore implementation.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]repository.Document
	watchers    map[string][]*subscription
}

// New creates an empty store.
func New() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string]map[string]repository.Document),
		watchers:    make(map[string][]*subscription),
	}
}

type subscription struct {
	store    *DocumentStore
	key      string
	onChange func(repository.Document)
	once     sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.store.mu.Lock()
		defer s.store.mu.Unlock()

		watchers := s.store.watchers[s.key]
		for i, w := range watchers {
			if w == s {
				s.store.watchers[s.key] = append(watchers[:i], watchers[i+1:]...)

				break
			}
		}
	})
}

func (m *DocumentStore) Get(_ context.Context, collection, id string) (repository.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.collections[collection][id]
	if !ok {
		return nil, repository.ErrDocumentNotFound
	}

	return deepCopy(doc), nil
}

func (m *DocumentStore) Set(_ context.Context, collection, id string, doc repository.Document) error {
	m.mu.Lock()
	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]repository.Document)
	}
	m.collections[collection][id] = deepCopy(doc)
	m.mu.Unlock()

	m.notify(collection, id)

	return nil
}

// Create holds the write lock across the exists check and the insert, so
// concurrent Creates for one id resolve to exactly one winner, matching
// Firestore's atomic Create.
func (m *DocumentStore) Create(_ context.Context, collection, id string, doc repository.Document) error {
	m.mu.Lock()
	if _, exists := m.collections[collection][id]; exists {
		m.mu.Unlock()

		return errors.Errorf("document %s/%s already exists", collection, id)
	}
	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]repository.Document)
	}
	m.collections[collection][id] = deepCopy(doc)
	m.mu.Unlock()

	m.notify(collection, id)

	return nil
}

func (m *DocumentStore) Update(_ context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	doc, ok := m.collections[collection][id]
	if !ok {
		m.mu.Unlock()

		return repository.ErrDocumentNotFound
	}

	for path, value := range fields {
		setPath(doc, strings.Split(path, "."), value)
	}
	m.mu.Unlock()

	m.notify(collection, id)

	return nil
}

func (m *DocumentStore) Query(_ context.Context, collection string, filters []repository.Filter) ([]repository.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []repository.Document
	for _, doc := range m.collections[collection] {
		if matchesAll(doc, filters) {
			matched = append(matched, deepCopy(doc))
		}
	}

	return matched, nil
}

func (m *DocumentStore) Subscribe(ctx context.Context, collection, id string, onChange func(repository.Document)) (repository.Subscription, error) {
	key := collection + "/" + id
	sub := &subscription{store: m, key: key, onChange: onChange}

	m.mu.Lock()
	m.watchers[key] = append(m.watchers[key], sub)
	current, exists := m.collections[collection][id]
	if exists {
		current = deepCopy(current)
	}
	m.mu.Unlock()

	if exists {
		onChange(current)
	}

	go func() {
		<-ctx.Done()
		sub.Unsubscribe()
	}()

	return sub, nil
}

func (m *DocumentStore) notify(collection, id string) {
	key := collection + "/" + id

	m.mu.RLock()
	doc := deepCopy(m.collections[collection][id])
	watchers := append([]*subscription(nil), m.watchers[key]...)
	m.mu.RUnlock()

	for _, w := range watchers {
		w.onChange(deepCopy(doc))
	}
}

func matchesAll(doc repository.Document, filters []repository.Filter) bool {
	for _, f := range filters {
		if getPath(doc, strings.Split(f.Path, ".")) != f.Value {
			return false
		}
	}

	return true
}

func setPath(doc map[string]any, path []string, value any) {
	if len(path) == 1 {
		doc[path[0]] = value

		return
	}

	child, ok := doc[path[0]].(map[string]any)
	if !ok {
		child = make(map[string]any)
		doc[path[0]] = child
	}
	setPath(child, path[1:], value)
}

func getPath(doc map[string]any, path []string) any {
	if len(path) == 0 {
		return nil
	}
	if len(path) == 1 {
		return doc[path[0]]
	}

	child, ok := doc[path[0]].(map[string]any)
	if !ok {
		return nil
	}

	return getPath(child, path[1:])
}

func deepCopy(doc repository.Document) repository.Document {
	if doc == nil {
		return nil
	}

	copied := make(repository.Document, len(doc))
	for key, value := range doc {
		copied[key] = copyValue(value)
	}

	return copied
}

func copyValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return map[string]any(deepCopy(typed))
	case []any:
		items := make([]any, len(typed))
		for i, item := range typed {
			items[i] = copyValue(item)
		}

		return items
	default:
		return value
	}
}
