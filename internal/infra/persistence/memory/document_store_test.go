package memory

import (
	"context"
	"sync"
	"testing"

	"vitrine/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_ConcurrentCreateSingleWinner(t *testing.T) {
	store := New()

	const writers = 16
	errs := make([]error, writers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs[i] = store.Create(context.Background(), "businesses", "le-bistro",
				repository.Document{"ownerId": "owner-1"})
		}()
	}
	close(start)
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		}
	}
	assert.Equal(t, 1, created)

	doc, err := store.Get(context.Background(), "businesses", "le-bistro")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", doc["ownerId"])
}
