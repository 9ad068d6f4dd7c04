package sqlite_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/nps"
	"github.com/fwojciec/nps/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func openTestStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	store := sqlite.Open(path)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SetThenGet(t *testing.T) {
	t.Parallel()

	store := openTestStore(t, filepath.Join(t.TempDir(), "cache.db"))

	require.NoError(t, store.Set("https://example/state/mi", json.RawMessage(`["https://example/site/isro"]`)))

	got, ok := store.Get("https://example/state/mi")
	require.True(t, ok)
	assert.JSONEq(t, `["https://example/site/isro"]`, string(got))

	_, ok = store.Get("https://example/state/wy")
	assert.False(t, ok)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.db")

	store := sqlite.Open(path)
	require.NoError(t, store.Set("49931", json.RawMessage(`{"origin":{"postalCode":"49931"},"searchResults":[]}`)))
	require.NoError(t, store.Set("49931", json.RawMessage(`{"origin":{"postalCode":"49931"},"searchResults":[{"name":"x"}]}`)))
	require.NoError(t, store.Close())

	reopened := openTestStore(t, path)
	assert.Equal(t, 1, reopened.Len())
	got, ok := reopened.Get("49931")
	require.True(t, ok)
	assert.JSONEq(t, `{"origin":{"postalCode":"49931"},"searchResults":[{"name":"x"}]}`, string(got))
}

func TestStore_InMemoryDatabase(t *testing.T) {
	t.Parallel()

	store := openTestStore(t, ":memory:")

	require.NoError(t, store.Set("k", json.RawMessage(`"v"`)))
	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, `"v"`, string(got))
}

func TestStore_CorruptFileIsEmptyAndReportsPersistFailure(t *testing.T) {
	t.Parallel()

	// Given a file that is not a SQLite database
	path := filepath.Join(t.TempDir(), "cache.db")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("not a database "), 100), 0644))

	// When I open it
	store := openTestStore(t, path)

	// Then the store is empty
	assert.Equal(t, 0, store.Len())

	// And Set reports the failure but keeps the value in memory
	err := store.Set("k", json.RawMessage(`"v"`))
	require.Error(t, err)
	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, `"v"`, string(got))
}

func TestStore_UnreadableRowsLoadAsEmpty(t *testing.T) {
	t.Parallel()

	// Given a cache table whose second row cannot be scanned
	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE cache_entries (key TEXT PRIMARY KEY, value TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO cache_entries (key, value) VALUES ('a', '"ok"'), ('b', NULL)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// When I open it
	store := openTestStore(t, path)

	// Then no rows are loaded
	assert.Equal(t, 0, store.Len())
	_, ok := store.Get("a")
	assert.False(t, ok)
}

func TestStore_RejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	store := openTestStore(t, ":memory:")

	err := store.Set("k", json.RawMessage(`nope`))

	assert.Equal(t, nps.EINVALID, nps.ErrorCode(err))
}

func TestStore_WorksWithTypedEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.db")
	store := sqlite.Open(path)
	require.NoError(t, nps.StoreEntry(store, "https://example/state/mi", &nps.ListingEntry{
		Sites: []string{"https://example/site/b", "https://example/site/a"},
	}))
	require.NoError(t, store.Close())

	var entry nps.ListingEntry
	require.True(t, nps.LoadEntry(openTestStore(t, path), "https://example/state/mi", &entry))
	assert.Equal(t, []string{"https://example/site/b", "https://example/site/a"}, entry.Sites)
}
