package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"floppahub-rest-api/internal/model"
	"floppahub-rest-api/pkg/braziltime"
)

// FileRegistryRepository implements RegistryRepository on a single JSON
// document holding the whole collection. Every write serializes the full
// collection back; a mutex guards each read-modify-write.
type FileRegistryRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRegistryRepository creates a file-backed registry. The file is
// created lazily on first write; its parent directory is created up front.
func NewFileRegistryRepository(path string) (*FileRegistryRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	log.Printf("[FileRegistryRepository] Initialized with file: %s", path)
	return &FileRegistryRepository{path: path}, nil
}

// load reads the whole collection. Missing, empty or corrupt storage reads
// as an empty collection rather than a fault.
func (r *FileRegistryRepository) load() []model.UserMapping {
	data, err := os.ReadFile(r.path)
	if err != nil || len(data) == 0 {
		return nil
	}

	var entries []model.UserMapping
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("[FileRegistryRepository] Corrupt registry file, treating as empty: %v", err)
		return nil
	}
	return entries
}

// save writes the whole collection back. I/O failures propagate.
func (r *FileRegistryRepository) save(entries []model.UserMapping) error {
	if entries == nil {
		entries = []model.UserMapping{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize registry: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

// Upsert overwrites the matching entry in place or appends a new one.
func (r *FileRegistryRepository) Upsert(ctx context.Context, identifier, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.load()
	found := false
	for i := range entries {
		if entries[i].Identifier == identifier {
			entries[i].Username = username
			entries[i].LastChange = braziltime.Now()
			found = true
			break
		}
	}

	if !found {
		entries = append(entries, model.UserMapping{
			Identifier: identifier,
			Username:   username,
			LastChange: braziltime.Now(),
		})
	}

	return r.save(entries)
}

// Lookup returns the first matching username, or "" when absent.
func (r *FileRegistryRepository) Lookup(ctx context.Context, identifier string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.load() {
		if entry.Identifier == identifier {
			return entry.Username, nil
		}
	}
	return "", nil
}

// Close is a no-op for the file backend.
func (r *FileRegistryRepository) Close() error {
	return nil
}

// Ensure FileRegistryRepository implements RegistryRepository
var _ RegistryRepository = (*FileRegistryRepository)(nil)
