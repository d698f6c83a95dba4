package repository

import "context"

// RegistryRepository defines identity-mapping data access methods.
// An absent mapping is a normal outcome: Lookup returns "" with a nil error.
type RegistryRepository interface {
	// Upsert overwrites the username for identifier, or appends a new
	// mapping if none exists. Storage failures propagate.
	Upsert(ctx context.Context, identifier, username string) error

	// Lookup returns the username mapped to identifier, or "" when absent.
	Lookup(ctx context.Context, identifier string) (string, error)

	// Close releases the backing resource.
	Close() error
}

// MarkerRepository persists the single last-game-id dedup marker.
// Read and Write are not transactional with each other; callers sequence
// them (read before the pass, write only when a new id is emitted).
type MarkerRepository interface {
	// Read returns the persisted marker. ok is false when unset.
	Read(ctx context.Context) (id int64, ok bool, err error)

	// Write unconditionally overwrites the marker.
	Write(ctx context.Context, id int64) error
}
