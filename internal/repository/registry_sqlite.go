package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"

	"floppahub-rest-api/pkg/braziltime"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteRegistryRepository implements RegistryRepository using SQLite.
// Thread-safe with WAL mode for concurrent reads.
type SQLiteRegistryRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteRegistryRepository creates a SQLite-backed registry.
// dbPath is the path to the database file (e.g., "./data/registry.db").
func NewSQLiteRegistryRepository(dbPath string) (*SQLiteRegistryRepository, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createRegistryTable(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteRegistryRepository] Initialized with database: %s", dbPath)
	return &SQLiteRegistryRepository{db: db}, nil
}

func createRegistryTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS fm_mappings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		identifier TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL,
		last_change TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_fm_identifier ON fm_mappings(identifier);
	`
	_, err := db.Exec(query)
	return err
}

// Upsert inserts or updates a mapping using ON CONFLICT.
func (r *SQLiteRegistryRepository) Upsert(ctx context.Context, identifier, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO fm_mappings (identifier, username, last_change)
		VALUES (?, ?, ?)
		ON CONFLICT(identifier) DO UPDATE SET
			username = excluded.username,
			last_change = excluded.last_change`

	_, err := r.db.ExecContext(ctx, query, identifier, username, braziltime.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert mapping: %w", err)
	}
	return nil
}

// Lookup returns the mapped username, or "" when absent.
func (r *SQLiteRegistryRepository) Lookup(ctx context.Context, identifier string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var username string
	err := r.db.QueryRowContext(ctx,
		`SELECT username FROM fm_mappings WHERE identifier = ?`, identifier).Scan(&username)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up mapping: %w", err)
	}

	return username, nil
}

// Close closes the database connection.
func (r *SQLiteRegistryRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteRegistryRepository implements RegistryRepository
var _ RegistryRepository = (*SQLiteRegistryRepository)(nil)
