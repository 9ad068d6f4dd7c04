package slog

import (
	"encoding/json"
	"log/slog"

	"github.com/fwojciec/nps"
)

// Ensure LoggingCacheStore implements nps.CacheStore.
var _ nps.CacheStore = (*LoggingCacheStore)(nil)

// LoggingCacheStore wraps a CacheStore with logging of hits, misses and writes.
type LoggingCacheStore struct {
	next   nps.CacheStore
	logger *slog.Logger
}

// NewLoggingCacheStore creates a new LoggingCacheStore.
func NewLoggingCacheStore(next nps.CacheStore, logger *slog.Logger) *LoggingCacheStore {
	return &LoggingCacheStore{next: next, logger: logger}
}

// Get delegates to the wrapped store and logs whether the key was found.
func (s *LoggingCacheStore) Get(key string) (json.RawMessage, bool) {
	value, ok := s.next.Get(key)
	if ok {
		s.logger.Info("cache hit", "key", key)
	} else {
		s.logger.Info("cache miss", "key", key)
	}
	return value, ok
}

// Set delegates to the wrapped store and logs the write.
func (s *LoggingCacheStore) Set(key string, value json.RawMessage) (err error) {
	defer func() {
		s.logger.Info("cache set",
			"key", key,
			"bytes", len(value),
			"err", err,
		)
	}()
	return s.next.Set(key, value)
}

// Close delegates to the wrapped store.
func (s *LoggingCacheStore) Close() error {
	return s.next.Close()
}
