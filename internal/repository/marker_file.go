package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// FileMarkerRepository persists the last-game-id marker as a single decimal
// integer in a plain-text file. Empty or missing file means the marker is
// unset. A mutex serializes read-then-write sequences within this process;
// races across processes are accepted (the second writer overwrites the
// first with the same value).
type FileMarkerRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileMarkerRepository creates a file-backed marker store.
func NewFileMarkerRepository(path string) (*FileMarkerRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create marker directory: %w", err)
	}

	log.Printf("[FileMarkerRepository] Initialized with file: %s", path)
	return &FileMarkerRepository{path: path}, nil
}

// Read returns the persisted marker, ok=false when unset.
func (r *FileMarkerRepository) Read(ctx context.Context) (int64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read marker: %w", err)
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return 0, false, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse marker %q: %w", raw, err)
	}
	return id, true, nil
}

// Write unconditionally overwrites the marker.
func (r *FileMarkerRepository) Write(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.WriteFile(r.path, []byte(strconv.FormatInt(id, 10)), 0o644); err != nil {
		return fmt.Errorf("failed to write marker: %w", err)
	}
	return nil
}

// Ensure FileMarkerRepository implements MarkerRepository
var _ MarkerRepository = (*FileMarkerRepository)(nil)
