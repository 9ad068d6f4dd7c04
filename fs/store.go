// Package fs provides a file-backed cache store.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/nps"
)

// Ensure Store implements nps.CacheStore at compile time.
var _ nps.CacheStore = (*Store)(nil)

// Store implements nps.CacheStore as a single JSON object on disk.
// Every Set rewrites the whole file atomically: the mapping is written to a
// temporary file in the same directory, then renamed over the cache file.
type Store struct {
	mu      sync.Mutex
	path    string
	entries map[string]json.RawMessage

	// dirty is set when the last persist failed and cleared on success.
	dirty bool
}

// Open loads the cache file at path. A missing, unreadable or corrupt file
// yields an empty store; it is never an error.
func Open(path string) *Store {
	return &Store{
		path:    path,
		entries: load(path),
	}
}

func load(path string) map[string]json.RawMessage {
	entries := make(map[string]json.RawMessage)
	data, err := os.ReadFile(path)
	if err != nil {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return make(map[string]json.RawMessage)
	}
	return entries
}

// Path returns the location of the cache file.
func (s *Store) Path() string {
	return s.path
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
	return s.persist()
}

// Close rewrites the file if the last persist failed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	return s.persist()
}

// persist writes the full mapping to disk. Caller must hold mu.
func (s *Store) persist() error {
	if err := s.write(); err != nil {
		s.dirty = true
		return err
	}
	s.dirty = false
	return nil
}

func (s *Store) write() error {
	payload, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}
