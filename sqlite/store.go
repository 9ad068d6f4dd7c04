package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fwojciec/nps"
)

// Ensure Store implements nps.CacheStore at compile time.
var _ nps.CacheStore = (*Store)(nil)

// Store implements nps.CacheStore on a single SQLite file.
// All entries are loaded into memory on Open; each Set upserts one row
// before returning.
type Store struct {
	mu      sync.Mutex
	db      *DB
	entries map[string]json.RawMessage

	// openErr is set when the database could not be opened. The store then
	// works in memory only and every Set reports openErr.
	openErr error
}

// Open opens the cache database at path. A database that cannot be opened
// or read yields an empty store; it is never an error.
func Open(path string) *Store {
	s := &Store{entries: make(map[string]json.RawMessage)}

	db := NewDB(path)
	if err := db.Open(); err != nil {
		s.openErr = err
		return s
	}
	s.db = db

	if err := s.load(context.Background()); err != nil {
		s.entries = make(map[string]json.RawMessage)
	}
	return s
}

func (s *Store) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM cache_entries`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		if !json.Valid([]byte(value)) {
			continue
		}
		s.entries[key] = json.RawMessage(value)
	}
	return rows.Err()
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) Get(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return append(json.RawMessage(nil), v...), true
}

func (s *Store) Set(key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return nps.Errorf(nps.EINVALID, "cache value for %q is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = append(json.RawMessage(nil), value...)

	if s.openErr != nil {
		return fmt.Errorf("cache database unavailable: %w", s.openErr)
	}

	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO cache_entries (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("persist cache entry %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
