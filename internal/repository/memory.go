package repository

import (
	"context"
	"sync"

	"floppahub-rest-api/internal/model"
	"floppahub-rest-api/pkg/braziltime"
)

// MemoryRegistryRepository is an in-memory RegistryRepository for tests and
// single-shot tooling. Entries keep insertion order like the file backend.
type MemoryRegistryRepository struct {
	mu      sync.Mutex
	entries []model.UserMapping
}

// NewMemoryRegistryRepository creates an empty in-memory registry.
func NewMemoryRegistryRepository() *MemoryRegistryRepository {
	return &MemoryRegistryRepository{}
}

// Upsert overwrites the matching entry in place or appends a new one.
func (r *MemoryRegistryRepository) Upsert(ctx context.Context, identifier, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].Identifier == identifier {
			r.entries[i].Username = username
			r.entries[i].LastChange = braziltime.Now()
			return nil
		}
	}

	r.entries = append(r.entries, model.UserMapping{
		Identifier: identifier,
		Username:   username,
		LastChange: braziltime.Now(),
	})
	return nil
}

// Lookup returns the mapped username, or "" when absent.
func (r *MemoryRegistryRepository) Lookup(ctx context.Context, identifier string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.Identifier == identifier {
			return entry.Username, nil
		}
	}
	return "", nil
}

// Close is a no-op.
func (r *MemoryRegistryRepository) Close() error { return nil }

// Len reports the number of stored mappings.
func (r *MemoryRegistryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// MemoryMarkerRepository is an in-memory MarkerRepository for tests.
type MemoryMarkerRepository struct {
	mu  sync.Mutex
	id  int64
	set bool
}

// NewMemoryMarkerRepository creates an unset in-memory marker.
func NewMemoryMarkerRepository() *MemoryMarkerRepository {
	return &MemoryMarkerRepository{}
}

// Read returns the marker, ok=false when unset.
func (r *MemoryMarkerRepository) Read(ctx context.Context) (int64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.id, r.set, nil
}

// Write overwrites the marker.
func (r *MemoryMarkerRepository) Write(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.id = id
	r.set = true
	return nil
}

var (
	_ RegistryRepository = (*MemoryRegistryRepository)(nil)
	_ MarkerRepository   = (*MemoryMarkerRepository)(nil)
)
