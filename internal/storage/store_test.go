package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "nested", "storage.json")),
	}
}

func TestStoreSetGetRemove(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(AuthTokenKey)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(AuthTokenKey, "abc123"))
			require.NoError(t, store.Set(ThemeKey, `"corporate"`))

			v, ok, err := store.Get(AuthTokenKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "abc123", v)

			keys, err := store.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{AuthTokenKey, ThemeKey}, keys)

			require.NoError(t, store.Remove(AuthTokenKey))
			require.NoError(t, store.Remove(AuthTokenKey))

			_, ok, err = store.Get(AuthTokenKey)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStoreEmptyKey(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := store.Get("")
			assert.ErrorIs(t, err, ErrEmptyKey)
			assert.ErrorIs(t, store.Set("", "x"), ErrEmptyKey)
			assert.ErrorIs(t, store.Remove(""), ErrEmptyKey)
		})
	}
}

func TestFileStoreSharedBetweenInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	writer := NewFileStore(path)
	reader := NewFileStore(path)

	require.NoError(t, writer.Set(AuthTokenKey, "first"))
	v, _, err := reader.Get(AuthTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "first", v)

	require.NoError(t, writer.Set(AuthTokenKey, "second"))
	v, _, err = reader.Get(AuthTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	store := NewFileStore(path)
	require.NoError(t, store.Set(AuthTokenKey, "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FilePermissions), info.Mode().Perm())
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := NewFileStore(path)
	_, _, err := store.Get(ThemeKey)
	assert.Error(t, err)
	assert.Error(t, store.Set(ThemeKey, `"starfleet"`))
}

func TestFileStoreEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	store := NewFileStore(path)
	_, ok, err := store.Get(ThemeKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreConcurrentWrites(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					assert.NoError(t, store.Set(string(rune('a'+i)), "v"))
				}(i)
			}
			wg.Wait()

			keys, err := store.Keys()
			require.NoError(t, err)
			assert.Len(t, keys, 20)
		})
	}
}
