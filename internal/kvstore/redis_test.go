package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitpulse/fitpulse/internal/config"
)

type testStruct struct {
	Name string
	Age  int
}

func setupTestStore(t *testing.T) *Store {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	store, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return store
}

func TestSetAndGet(t *testing.T) {
	store := setupTestStore(t)

	expected := testStruct{Name: "Alice", Age: 30}
	err := store.Set("user:1", expected, time.Minute)
	require.NoError(t, err)

	var actual testStruct
	found, err := store.Get("user:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	store := setupTestStore(t)

	var out testStruct
	found, err := store.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	store := setupTestStore(t)

	err := store.Set("key", "value", time.Minute)
	require.NoError(t, err)

	err = store.Delete("key")
	require.NoError(t, err)

	var out string
	found, err := store.Get("key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	store := setupTestStore(t)

	err := store.Db.Set(context.Background(), "bad", []byte("not-json"), time.Minute).Err()
	require.NoError(t, err)

	var out testStruct
	found, err := store.Get("bad", &out)
	require.Error(t, err)
	assert.False(t, found)
}

func TestSetWithoutExpiration(t *testing.T) {
	store := setupTestStore(t)

	err := store.Set("persistent", "value", 0)
	require.NoError(t, err)

	var out string
	found, err := store.Get("persistent", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "value", out)
}
