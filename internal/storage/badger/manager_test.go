package badger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/dinescout/internal/common"
	"github.com/ternarybob/dinescout/internal/interfaces"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	config := &common.BadgerConfig{Path: filepath.Join(t.TempDir(), "db")}
	manager, err := NewManager(arbor.NewLogger(), config)
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })
	return manager
}

func TestKVStorage_UpsertGetDelete(t *testing.T) {
	ctx := context.Background()
	kv := newTestManager(t).KeyValueStorage()

	isNew, err := kv.Upsert(ctx, "Google_Places_API_Key", "key-1", "test")
	require.NoError(t, err)
	assert.True(t, isNew)

	value, err := kv.Get(ctx, "google_places_api_key")
	require.NoError(t, err)
	assert.Equal(t, "key-1", value, "keys are case-insensitive")

	isNew, err = kv.Upsert(ctx, "google_places_api_key", "key-2", "test")
	require.NoError(t, err)
	assert.False(t, isNew)

	value, err = kv.Get(ctx, "GOOGLE_PLACES_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "key-2", value)

	require.NoError(t, kv.Delete(ctx, "google_places_api_key"))
	_, err = kv.Get(ctx, "google_places_api_key")
	assert.ErrorIs(t, err, interfaces.ErrKeyNotFound)
	assert.ErrorIs(t, kv.Delete(ctx, "google_places_api_key"), interfaces.ErrKeyNotFound)
}

func TestKVStorage_EmptyKey(t *testing.T) {
	kv := newTestManager(t).KeyValueStorage()
	_, err := kv.Upsert(context.Background(), "  ", "v", "")
	assert.Error(t, err)
}

func TestKVStorage_List(t *testing.T) {
	ctx := context.Background()
	kv := newTestManager(t).KeyValueStorage()

	for _, key := range []string{"b_key", "a_key", "c_key"} {
		_, err := kv.Upsert(ctx, key, "v-"+key, "")
		require.NoError(t, err)
	}

	pairs, err := kv.List(ctx)
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	assert.Equal(t, "a_key", pairs[0].Key)
	assert.Equal(t, "c_key", pairs[2].Key)
}

func TestManager_LoadVariablesFromFiles(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)
	dir := t.TempDir()

	variables := `
[google_places_api_key]
value = "from-file"
description = "Places key"

[empty_value]
value = ""
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "variables.toml"), []byte(variables), 0644))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "variables"), 0755))
	extra := "[extra_key]\nvalue = \"extra\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "variables", "extra.toml"), []byte(extra), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "variables", "broken.toml"), []byte("not [toml"), 0644))

	require.NoError(t, manager.LoadVariablesFromFiles(ctx, dir))

	kv := manager.KeyValueStorage()
	value, err := kv.Get(ctx, common.PlacesAPIKeyName)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)

	value, err = kv.Get(ctx, "extra_key")
	require.NoError(t, err)
	assert.Equal(t, "extra", value)

	_, err = kv.Get(ctx, "empty_value")
	assert.ErrorIs(t, err, interfaces.ErrKeyNotFound)
}

func TestManager_LoadVariablesFromMissingDir(t *testing.T) {
	manager := newTestManager(t)
	assert.NoError(t, manager.LoadVariablesFromFiles(context.Background(), filepath.Join(t.TempDir(), "missing")))
}

func TestNewBadgerDB_ResetOnStartup(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db")
	logger := arbor.NewLogger()

	manager, err := NewManager(logger, &common.BadgerConfig{Path: path})
	require.NoError(t, err)
	_, err = manager.KeyValueStorage().Upsert(ctx, "k", "v", "")
	require.NoError(t, err)
	require.NoError(t, manager.Close())

	manager, err = NewManager(logger, &common.BadgerConfig{Path: path, ResetOnStartup: true})
	require.NoError(t, err)
	defer manager.Close()

	_, err = manager.KeyValueStorage().Get(ctx, "k")
	assert.ErrorIs(t, err, interfaces.ErrKeyNotFound)
}

func TestResolveAPIKey_FromKVStore(t *testing.T) {
	t.Setenv("DINESCOUT_PLACES_API_KEY", "")
	t.Setenv("GOOGLE_PLACES_API_KEY", "")

	ctx := context.Background()
	kv := newTestManager(t).KeyValueStorage()
	_, err := kv.Upsert(ctx, common.PlacesAPIKeyName, "kv-key", "")
	require.NoError(t, err)

	key, err := common.ResolveAPIKey(ctx, kv, common.PlacesAPIKeyName, "config-key")
	require.NoError(t, err)
	assert.Equal(t, "kv-key", key)
}

func TestManager_DB(t *testing.T) {
	manager := newTestManager(t)
	_, ok := manager.DB().(*badgerhold.Store)
	assert.True(t, ok, "DB() should expose the badgerhold store")
}
