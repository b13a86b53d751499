package quotafile_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/algotutor.net/internal/adapter/file/quotafile"
	"gitlab.com/algotutor.net/internal/adapter/logging"
)

func newStore(t *testing.T) (*quotafile.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "code", "jdoodle_quota.json")
	return quotafile.New(path, logging.NewNopLogger()), path
}

func TestStore_ConsumeUntilLimit(t *testing.T) {
	store, path := newStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		used, ok, err := store.Consume(ctx, "2025-03-01", 3)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, i, used)
	}

	used, ok, err := store.Consume(ctx, "2025-03-01", 3)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 3, used)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var record map[string]int
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, map[string]int{"2025-03-01": 3}, record)
}

func TestStore_NewDayResets(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, ok, err := store.Consume(ctx, "2025-03-01", 1)
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = store.Consume(ctx, "2025-03-01", 1)
	require.NoError(t, err)
	require.False(t, ok)

	used, ok, err := store.Consume(ctx, "2025-03-02", 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, used)

	old, err := store.Used(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, old)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	store, path := newStore(t)
	ctx := context.Background()

	_, _, err := store.Consume(ctx, "2025-03-01", 10)
	require.NoError(t, err)

	reopened := quotafile.New(path, logging.NewNopLogger())
	used, err := reopened.Used(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, used)
}

func TestStore_WrittenFileIsWorldReadable(t *testing.T) {
	store, path := newStore(t)

	_, _, err := store.Consume(context.Background(), "2025-03-01", 10)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestStore_MissingAndEmptyFile(t *testing.T) {
	store, path := newStore(t)
	ctx := context.Background()

	used, err := store.Used(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.Zero(t, used)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))
	used, err = store.Used(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.Zero(t, used)
}

func TestStore_CorruptFile(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, _, err := store.Consume(context.Background(), "2025-03-01", 5)
	require.Error(t, err)
}

func TestStore_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0o644))

	store := quotafile.New(filepath.Join(blocker, "quota.json"), logging.NewNopLogger())
	_, _, err := store.Consume(context.Background(), "2025-03-01", 5)
	require.Error(t, err)
}

func TestStore_Prune(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	for _, day := range []string{"2025-01-30", "2025-02-28", "2025-03-01"} {
		_, _, err := store.Consume(ctx, day, 5)
		require.NoError(t, err)
	}

	removed, err := store.Prune(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	used, err := store.Used(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, used)
	used, err = store.Used(ctx, "2025-02-28")
	require.NoError(t, err)
	assert.Zero(t, used)
}

func TestStore_ConcurrentConsumeRespectsLimit(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := store.Consume(ctx, "2025-03-01", 25)
			if err == nil && ok {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 25, granted)
	used, err := store.Used(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, 25, used)
}
