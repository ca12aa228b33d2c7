package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".mission-control", "config.toml"), store.Path())
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(nested)
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not toml {{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.ErrorContains(t, err, "parsing")
	assert.Nil(t, store)
}

func TestNewConfigStore_CommentOnlyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# nothing\n"), 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	_, ok := store.Get("search.default_limit")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("server.addr", ":4000"))
	require.NoError(t, store.Set("search.default_limit", 15))
	require.NoError(t, store.Set("search.strict_store_errors", true))

	assert.Equal(t, ":4000", store.GetString("server.addr"))
	assert.Equal(t, 15, store.GetInt("search.default_limit"))
	assert.True(t, store.GetBool("search.strict_store_errors"))

	// Missing and mistyped keys yield zero values.
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, "", store.GetString("search.default_limit"))
	assert.Equal(t, 0, store.GetInt("server.addr"))
	assert.False(t, store.GetBool("server.addr"))
}

func TestConfigStore_SetDoesNotPersist(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("server.addr", ":4000"))

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestConfigStore_SetInvalidKey(t *testing.T) {
	store := newTestStore(t)

	for _, key := range []string{"", "  ", ".a", "a."} {
		assert.Error(t, store.Set(key, 1), "key %q", key)
	}
}

func TestConfigStore_SetConflictingKey(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("presence.redis_addr", "x"))

	assert.ErrorContains(t, store.Set("presence", "y"), "conflicts")
	assert.ErrorContains(t, store.Set("presence.redis_addr.host", "y"), "conflicts")
	assert.NoError(t, store.Set("presence.redis_db", 2))
}

func TestConfigStore_SaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("server.addr", ":4000"))
	require.NoError(t, store.Set("search.default_limit", 15))
	require.NoError(t, store.Set("search.strict_store_errors", false))
	require.NoError(t, store.Set("agent.id", "main"))
	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, ":4000", reloaded.GetString("server.addr"))
	assert.Equal(t, 15, reloaded.GetInt("search.default_limit"))
	assert.False(t, reloaded.GetBool("search.strict_store_errors"))
	_, ok := reloaded.Get("search.strict_store_errors")
	assert.True(t, ok)
	assert.Equal(t, []string{"agent.id", "search.default_limit", "search.strict_store_errors", "server.addr"}, reloaded.Keys())
}

func TestConfigStore_SaveWritesTables(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("search.default_limit", 15))
	require.NoError(t, store.Save())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[search]")
	assert.Contains(t, string(data), "default_limit = 15")
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("log.level", "debug"))
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SaveUnencodableValue(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("bad", make(chan int)))

	assert.ErrorContains(t, store.Save(), "encoding config")
}

func TestConfigStore_SaveWriteError(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("log.level", "debug"))
	require.NoError(t, os.Mkdir(store.Path()+".tmp", 0700))

	assert.ErrorContains(t, store.Save(), "writing config")
}

func TestConfigStore_LoadReplacesValues(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("log.level", "debug"))
	require.NoError(t, store.Save())
	require.NoError(t, store.Set("log.file", "/tmp/x.log"))

	require.NoError(t, store.Load())

	_, ok := store.Get("log.file")
	assert.False(t, ok)
	assert.Equal(t, "debug", store.GetString("log.level"))
}

func TestConfigStore_LoadReadError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	store := newTestStore(t)
	require.NoError(t, store.Set("log.level", "debug"))
	require.NoError(t, store.Save())
	require.NoError(t, os.Chmod(store.Path(), 0000))
	t.Cleanup(func() { _ = os.Chmod(store.Path(), 0600) })

	assert.ErrorContains(t, store.Load(), "reading config")
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "worker.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}

func TestFlattenAndNest(t *testing.T) {
	nested := map[string]any{
		"search": map[string]any{"default_limit": int64(5)},
		"agent":  map[string]any{"id": "x"},
		"top":    true,
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{
		"search.default_limit": int64(5),
		"agent.id":             "x",
		"top":                  true,
	}, flat)
	assert.Equal(t, nested, nestMap(flat))
}
