// Package storage provides the persistence layer for tally: a named-record
// key-value store backed by SQLite. The store has no knowledge of entity
// shape; it keeps JSON-serialized values under string keys. Read and write
// failures are absorbed here, logged and reported as booleans, so a corrupt
// record or a full disk never crashes the in-memory application state.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Store is a key-value record store over a single SQLite table.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates a new Store at the given path, creating the parent directory
// and the records table if needed. Use ":memory:" for an ephemeral store.
func Open(dbPath string) (*Store, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS records (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)`
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create records table: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReadJSON loads the record under key into dest. It returns false, leaving
// dest untouched, when the key is missing, the query fails, or the stored
// value does not decode; decode failures are treated as absence and logged,
// never propagated.
func (s *Store) ReadJSON(ctx context.Context, key string, dest any) bool {
	if err := validateContext(ctx); err != nil {
		return false
	}
	if key == "" {
		return false
	}

	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		slog.Warn("failed to read record", "key", key, "error", err)
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Warn("stored record is malformed, treating as absent", "key", key, "error", err)
		return false
	}

	return true
}

// WriteJSON serializes value and stores it under key, replacing any prior
// record. It returns false on marshal or storage failure; the previously
// persisted value is left as it was. Best-effort: no rollback guarantee.
func (s *Store) WriteJSON(ctx context.Context, key string, value any) bool {
	if err := validateContext(ctx); err != nil {
		return false
	}
	if key == "" {
		return false
	}

	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("failed to serialize record", "key", key, "error", err)
		return false
	}

	query := `
		INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(ctx, query, key, raw); err != nil {
		slog.Warn("failed to write record", "key", key, "error", err)
		return false
	}

	slog.Debug("persisted record", "key", key, "bytes", len(raw))
	return true
}

// Remove deletes the record under key. Removing a missing key succeeds.
func (s *Store) Remove(ctx context.Context, key string) bool {
	if err := validateContext(ctx); err != nil {
		return false
	}
	if key == "" {
		return false
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key); err != nil {
		slog.Warn("failed to remove record", "key", key, "error", err)
		return false
	}
	return true
}

// Clear deletes every record in the store.
func (s *Store) Clear(ctx context.Context) bool {
	if err := validateContext(ctx); err != nil {
		return false
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		slog.Warn("failed to clear records", "error", err)
		return false
	}
	return true
}
