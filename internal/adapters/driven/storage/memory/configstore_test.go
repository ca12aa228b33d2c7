package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("server.addr", ":4000"))
	require.NoError(t, store.Set("search.default_limit", int64(30)))
	require.NoError(t, store.Set("search.strict_store_errors", false))

	assert.Equal(t, ":4000", store.GetString("server.addr"))
	assert.Equal(t, 30, store.GetInt("search.default_limit"))
	assert.False(t, store.GetBool("search.strict_store_errors"))

	_, ok := store.Get("search.strict_store_errors")
	assert.True(t, ok)
	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("k", 3.0))

	assert.Equal(t, "", store.GetString("k"))
	assert.Equal(t, 3, store.GetInt("k"))
	assert.False(t, store.GetBool("k"))
}

func TestConfigStore_SaveCounts(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Save())
	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, 2, store.Saves())
	assert.Equal(t, ":memory:", store.Path())
}
