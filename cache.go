package nps

import (
	"bytes"
	"encoding/json"
)

// CacheStore is a persistent mapping from string key to JSON value.
//
// Keys are either a canonical resource URL or a postal code. Implementations
// load durable storage once when opened, treating missing or corrupt storage
// as empty, and persist the whole mapping synchronously on every Set.
type CacheStore interface {
	// Get returns a copy of the value stored under key.
	Get(key string) (value json.RawMessage, found bool)

	// Set stores value under key and persists the store. A persist failure
	// is returned but the in-memory value is kept.
	Set(key string, value json.RawMessage) error

	// Close flushes pending state and releases resources.
	Close() error
}

// EntryKind identifies the shape of a cached value.
type EntryKind int

// Cache entry kinds.
const (
	EntryListing EntryKind = iota + 1
	EntryDetail
	EntryPlaces
)

func (k EntryKind) String() string {
	switch k {
	case EntryListing:
		return "listing"
	case EntryDetail:
		return "detail"
	case EntryPlaces:
		return "places"
	default:
		return "unknown"
	}
}

// Entry is a typed cache value. The only implementations are ListingEntry,
// DetailEntry and PlacesEntry.
type Entry interface {
	Kind() EntryKind
	validate() error
}

var (
	_ Entry = (*ListingEntry)(nil)
	_ Entry = (*DetailEntry)(nil)
	_ Entry = (*PlacesEntry)(nil)
)

// ListingEntry is the ordered list of site URLs found on a state page.
// It is stored as a JSON array of strings.
type ListingEntry struct {
	Sites []string
}

func (e *ListingEntry) Kind() EntryKind { return EntryListing }

func (e *ListingEntry) validate() error { return nil }

func (e *ListingEntry) MarshalJSON() ([]byte, error) {
	sites := e.Sites
	if sites == nil {
		sites = []string{}
	}
	return json.Marshal(sites)
}

func (e *ListingEntry) UnmarshalJSON(data []byte) error {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return Errorf(EINVALID, "listing entry must be a JSON array")
	}
	return json.Unmarshal(data, &e.Sites)
}

// DetailEntry holds the fields of one site page.
type DetailEntry struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Zipcode  string `json:"zipcode"`
	Phone    string `json:"phone"`
}

// NewDetailEntry returns the cache entry for site.
func NewDetailEntry(site *Site) *DetailEntry {
	return &DetailEntry{
		Category: site.Category,
		Name:     site.Name,
		City:     site.City,
		Region:   site.Region,
		Zipcode:  site.Zipcode,
		Phone:    site.Phone,
	}
}

func (e *DetailEntry) Kind() EntryKind { return EntryDetail }

func (e *DetailEntry) validate() error {
	return e.Site().Validate()
}

// Site returns the site described by the entry.
func (e *DetailEntry) Site() *Site {
	return &Site{
		Category: e.Category,
		Name:     e.Name,
		City:     e.City,
		Region:   e.Region,
		Zipcode:  e.Zipcode,
		Phone:    e.Phone,
	}
}

func (e *DetailEntry) UnmarshalJSON(data []byte) error {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return Errorf(EINVALID, "detail entry must be a JSON object")
	}
	type plain DetailEntry
	return json.Unmarshal(data, (*plain)(e))
}

// PlacesEntry is a radius search response stored verbatim.
type PlacesEntry struct {
	Raw json.RawMessage
}

func (e *PlacesEntry) Kind() EntryKind { return EntryPlaces }

func (e *PlacesEntry) validate() error {
	_, err := e.Places()
	return err
}

// Places decodes the stored response.
func (e *PlacesEntry) Places() (*NearbyPlaces, error) {
	return DecodeNearbyPlaces(e.Raw)
}

func (e *PlacesEntry) MarshalJSON() ([]byte, error) {
	if len(e.Raw) == 0 {
		return nil, Errorf(EINVALID, "places entry is empty")
	}
	return e.Raw, nil
}

func (e *PlacesEntry) UnmarshalJSON(data []byte) error {
	e.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// LoadEntry decodes the value stored under key into dst.
// It reports false when the key is absent or when the stored value does not
// have the shape dst expects; callers treat both cases as a cache miss.
func LoadEntry(store CacheStore, key string, dst Entry) bool {
	raw, ok := store.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false
	}
	return dst.validate() == nil
}

// StoreEntry encodes entry and stores it under key.
func StoreEntry(store CacheStore, key string, entry Entry) error {
	if err := entry.validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return Errorf(EINVALID, "encode %s entry: %v", entry.Kind(), err)
	}
	return store.Set(key, raw)
}
