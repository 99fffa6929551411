// Package localstore persists whole collections to a local SQLite database
// as a fallback for when the backend is unreachable. It is deliberately
// forgiving: loads of missing or corrupt entries yield nil and failed saves
// are logged, never propagated, so flaky local disks degrade to "no cache"
// rather than to errors in the editing path.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/finsheet/finsheet/internal/common"
	"github.com/finsheet/finsheet/internal/model"
)

// Store is a namespaced collection cache over SQLite.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates the cache database, its schema included, at dbPath.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: cache path", common.ErrMissingConfig)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS collections (
			kind       TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the cached collection for a kind, or nil when the entry is
// missing, unreadable, or corrupt. It never returns an error.
func (s *Store) Load(ctx context.Context, kind model.Kind) *model.Collection {
	var payload string
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM collections WHERE kind = ?`, string(kind))
	if err := row.Scan(&payload); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			common.LogError(err, "cache load failed", common.Fields{"kind": kind})
		}
		return nil
	}

	collection := model.NewCollection(kind)
	if err := json.Unmarshal([]byte(payload), collection); err != nil {
		common.LogError(err, "cache entry corrupt, ignoring", common.Fields{"kind": kind})
		return nil
	}
	return collection
}

// Save upserts the collection for a kind. Failures are logged and
// swallowed: the in-memory collection stays authoritative either way.
func (s *Store) Save(ctx context.Context, kind model.Kind, collection *model.Collection) {
	payload, err := json.Marshal(collection)
	if err != nil {
		common.LogError(err, "cache serialization failed", common.Fields{"kind": kind})
		return
	}

	const upsert = `
		INSERT INTO collections (kind, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, upsert, string(kind), string(payload), time.Now().UTC()); err != nil {
		common.LogError(err, "cache save failed", common.Fields{"kind": kind})
	}
}
