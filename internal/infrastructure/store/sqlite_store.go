package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/doeshing/easy-proton/internal/domain"
	"github.com/doeshing/easy-proton/internal/pkg/filesystem"
	"github.com/doeshing/easy-proton/internal/ports"
)

// DefaultSQLiteFile is the database file name inside the application directory.
const DefaultSQLiteFile = "history.db"

// SQLiteStore persists key-value pairs in a SQLite database. Set stages the
// value in memory; Flush writes all staged values in one transaction.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	mu      sync.Mutex
	pending map[string][]byte
}

// NewSQLiteStore creates (or opens) the database at path, or
// ~/.easyproton/history.db when path is empty.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		path = filepath.Join(filesystem.AppDir(), DefaultSQLiteFile)
	}
	path = filesystem.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// A single connection serialises writers inside this process.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, path: path, pending: make(map[string][]byte)}
	if err := store.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
	);`)
	if err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

// Get implements ports.KeyValueStore. Staged values win over stored ones.
func (s *SQLiteStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	s.mu.Lock()
	raw, staged := s.pending[key]
	s.mu.Unlock()

	if !staged {
		var value string
		err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("query %q: %w", key, err)
		}
		raw = []byte(value)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// Set implements ports.KeyValueStore.
func (s *SQLiteStore) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	s.mu.Lock()
	s.pending[key] = raw
	s.mu.Unlock()
	return nil
}

// Flush implements ports.KeyValueStore.
func (s *SQLiteStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for key, raw := range s.pending {
		_, err := tx.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`, key, string(raw))
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert %q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.pending = make(map[string][]byte)
	return nil
}

// Close flushes staged values and closes the database.
func (s *SQLiteStore) Close() error {
	flushErr := s.Flush(context.Background())
	closeErr := s.db.Close()
	return errors.Join(flushErr, closeErr)
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

var _ ports.KeyValueStore = (*SQLiteStore)(nil)
