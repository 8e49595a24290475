package cas_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recheck/internal/adapters/cas"
	"go.trai.ch/recheck/internal/core/domain"
)

func sampleEntry(key string, score int) domain.HistoryEntry {
	snap := domain.Snapshot{Key: key, Summary: "Add login page", Priority: "high", Reporter: "dana"}
	return domain.HistoryEntry{
		TicketKey:   key,
		Snapshot:    snap,
		Fingerprint: snap.Fingerprint(),
		FieldResults: []domain.FieldResult{
			{Field: domain.FieldSummary, Score: score, Valid: true, Issues: []string{"short"}},
		},
		Score:     score,
		Valid:     true,
		Timestamp: time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	store, err := cas.NewStore(filepath.Join(t.TempDir(), "history"))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()

		entry := sampleEntry("T-1", 8)
		require.NoError(t, store.Put(ctx, entry))

		got, err := store.Get(ctx, "T-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entry, *got)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()

		got, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStore_PutReplaces(t *testing.T) {
	t.Parallel()

	store, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleEntry("T-1", 8)))
	require.NoError(t, store.Put(ctx, sampleEntry("T-1", 4)))

	got, err := store.Get(ctx, "T-1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Score)

	files, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, files, 1, "no temporary files may be left behind")
}

func TestStore_GetCorrupt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := cas.NewStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleEntry("T-2", 6)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	//nolint:gosec // 0644 is fine for test
	err = os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{ invalid json"), 0o600)
	require.NoError(t, err)

	_, err = store.Get(ctx, "T-2")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
}

func TestStore_FailedWriteKeepsPreviousEntry(t *testing.T) {
	t.Parallel()

	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	store, err := cas.NewStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	original := sampleEntry("T-3", 9)
	require.NoError(t, store.Put(ctx, original))

	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o750) })

	err = store.Put(ctx, sampleEntry("T-3", 1))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrHistoryWriteFailed.Error())

	got, err := store.Get(ctx, "T-3")
	require.NoError(t, err)
	assert.Equal(t, original, *got)
}

func TestStore_ListAndClear(t *testing.T) {
	t.Parallel()

	store, err := cas.NewStore(filepath.Join(t.TempDir(), "nested", "history"))
	require.NoError(t, err)
	ctx := context.Background()

	empty, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
	require.NoError(t, store.Clear(ctx), "clearing a store that was never written is a no-op")

	for _, key := range []string{"T-9", "T-1", "T-5"} {
		require.NoError(t, store.Put(ctx, sampleEntry(key, 7)))
	}

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "T-1", entries[0].TicketKey)
	assert.Equal(t, "T-5", entries[1].TicketKey)
	assert.Equal(t, "T-9", entries[2].TicketKey)

	require.NoError(t, store.Clear(ctx))

	entries, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	got, err := store.Get(ctx, "T-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewStore_RejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := cas.NewStore(" ")
	require.ErrorContains(t, err, domain.ErrStoreCreateFailed.Error())
}

func TestOpenStore(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		store, err := cas.OpenStore(domain.StoreConfig{Driver: domain.StoreJSON, Path: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &cas.Store{}, store)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()

		_, err := cas.OpenStore(domain.StoreConfig{Driver: "redis", Path: t.TempDir()})
		require.ErrorContains(t, err, domain.ErrConfigInvalid.Error())
	})
}
