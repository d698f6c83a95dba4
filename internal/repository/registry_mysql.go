package repository

import (
	"context"
	"database/sql"
	"fmt"

	"floppahub-rest-api/pkg/braziltime"
)

// MySQLRegistryRepository implements RegistryRepository using MySQL.
// The *sql.DB is injected so the caller owns pool settings and lifetime.
type MySQLRegistryRepository struct {
	db *sql.DB
}

// NewMySQLRegistryRepository creates a MySQL-backed registry and ensures the
// mapping table exists.
func NewMySQLRegistryRepository(db *sql.DB) (*MySQLRegistryRepository, error) {
	query := `
		CREATE TABLE IF NOT EXISTS fm_mappings (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			identifier VARCHAR(64) NOT NULL UNIQUE,
			username VARCHAR(255) NOT NULL,
			last_change VARCHAR(32) NOT NULL
		)`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create mapping table: %w", err)
	}

	return &MySQLRegistryRepository{db: db}, nil
}

// Upsert inserts or updates a mapping using ON DUPLICATE KEY UPDATE.
func (r *MySQLRegistryRepository) Upsert(ctx context.Context, identifier, username string) error {
	query := `
		INSERT INTO fm_mappings (identifier, username, last_change)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			username = VALUES(username),
			last_change = VALUES(last_change)`

	_, err := r.db.ExecContext(ctx, query, identifier, username, braziltime.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert mapping: %w", err)
	}
	return nil
}

// Lookup returns the mapped username, or "" when absent.
func (r *MySQLRegistryRepository) Lookup(ctx context.Context, identifier string) (string, error) {
	var username string
	err := r.db.QueryRowContext(ctx,
		`SELECT username FROM fm_mappings WHERE identifier = ? LIMIT 1`, identifier).Scan(&username)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up mapping: %w", err)
	}

	return username, nil
}

// Close closes the database connection.
func (r *MySQLRegistryRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLRegistryRepository implements RegistryRepository
var _ RegistryRepository = (*MySQLRegistryRepository)(nil)
