// Package dedupe tracks identifiers seen within a single call so repeated
// candidates or mentors can be rejected.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen IDs.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool
}

// inMemoryDeduper implements Deduper with a map guarded by a mutex.
type inMemoryDeduper struct {
	mu       sync.Mutex
	seen     map[string]struct{}
	capacity int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}

	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{}, d.capacity)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		return true
	}
	d.seen[id] = struct{}{}
	return false
}

// FirstDuplicate returns the first id in ids that repeats an earlier one.
func FirstDuplicate(ctx context.Context, ids []string) (string, bool) {
	d := NewInMemoryDeduper(WithCapacity(len(ids)))
	for _, id := range ids {
		if d.SeenAndRecord(ctx, id) {
			return id, true
		}
	}
	return "", false
}
