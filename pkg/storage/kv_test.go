package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()

	fileKV, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	sqliteKV, err := NewSQLiteKV(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteKV.Close() })

	return map[string]KV{
		"file":   fileKV,
		"sqlite": sqliteKV,
	}
}

func TestKVRoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set("greeting", []byte(`{"text":"hello"}`)))

			value, err := kv.Get("greeting")
			require.NoError(t, err)
			assert.Equal(t, `{"text":"hello"}`, string(value))
		})
	}
}

func TestKVGetMissing(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get("never-set")
			assert.ErrorIs(t, err, ErrKeyNotFound)
		})
	}
}

func TestKVOverwrite(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set("key", []byte("v1")))
			require.NoError(t, kv.Set("key", []byte("v2")))

			value, err := kv.Get("key")
			require.NoError(t, err)
			assert.Equal(t, "v2", string(value))
		})
	}
}

func TestKVDelete(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set("key", []byte("value")))
			require.NoError(t, kv.Delete("key"))

			_, err := kv.Get("key")
			assert.ErrorIs(t, err, ErrKeyNotFound)

			// Deleting an absent key is not an error
			assert.NoError(t, kv.Delete("key"))
		})
	}
}

func TestFileKVNoStaleTempFiles(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	require.NoError(t, kv.Set("key", []byte("value")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "key.json", entries[0].Name())
}

func TestSQLiteKVSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	kv, err := NewSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("key", []byte("value")))
	require.NoError(t, kv.Close())

	reopened, err := NewSQLiteKV(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "value", string(value))
}
