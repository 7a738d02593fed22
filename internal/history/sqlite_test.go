package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreGetMissingKey(t *testing.T) {
	store := newTestSQLiteStore(t)

	_, ok, err := store.Get("absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStoreSetGetDelete(t *testing.T) {
	store := newTestSQLiteStore(t)

	require.NoError(t, store.Set("k", "v1"))
	require.NoError(t, store.Set("k", "v2"))

	got, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", got)

	require.NoError(t, store.Delete("k"))
	_, ok, err = store.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is a no-op.
	assert.NoError(t, store.Delete("k"))
}

func TestSQLiteStoreCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "history.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set("k", "v"))
}

func TestCachePersistsAcrossSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	cache := NewCache(store, nil)
	cache.Record(entryAt("durable", 3))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got := NewCache(reopened, nil).Entries()
	require.Len(t, got, 1)
	assert.Equal(t, "durable", got[0].Query)
	assert.Equal(t, "preview of durable", got[0].SummaryPreview)
}
