package mock

import (
	"encoding/json"

	"github.com/fwojciec/nps"
)

var _ nps.CacheStore = (*CacheStore)(nil)

// CacheStore is a mock implementation of nps.CacheStore.
type CacheStore struct {
	GetFn   func(key string) (json.RawMessage, bool)
	SetFn   func(key string, value json.RawMessage) error
	CloseFn func() error
}

func (s *CacheStore) Get(key string) (json.RawMessage, bool) {
	return s.GetFn(key)
}

func (s *CacheStore) Set(key string, value json.RawMessage) error {
	return s.SetFn(key, value)
}

func (s *CacheStore) Close() error {
	return s.CloseFn()
}
