package tickets_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recheck/internal/adapters/tickets"
	"go.trai.ch/recheck/internal/core/domain"
)

func writeTicket(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

const loginTicket = `
key: T-1
summary: Add login page
description: |
  Users need to sign in with email and password.
priority: high
status: open
reporter: dana
created: 2025-01-02T10:00:00Z
`

func TestSource_List(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTicket(t, dir, "t1.yaml", loginTicket)
	writeTicket(t, dir, "T-0.yml", "summary: Keyless ticket\n")
	writeTicket(t, dir, "notes.txt", "not a ticket")
	writeTicket(t, dir, ".draft.yaml", "key: T-99\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.yaml"), domain.DirPerm))

	source := tickets.NewSource(dir)
	snapshots, err := source.List(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	assert.Equal(t, "T-0", snapshots[0].Key, "file name is the fallback key")
	assert.Equal(t, "Keyless ticket", snapshots[0].Summary)

	want := domain.Snapshot{
		Key:         "T-1",
		Summary:     "Add login page",
		Description: "Users need to sign in with email and password.\n",
		Priority:    "high",
		Status:      "open",
		Reporter:    "dana",
		Created:     time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, want.Key, snapshots[1].Key)
	assert.Equal(t, want.Description, snapshots[1].Description)
	assert.True(t, want.Created.Equal(snapshots[1].Created))
	assert.Empty(t, domain.ChangedFields(want, snapshots[1]))
}

func TestSource_ListMissingDir(t *testing.T) {
	t.Parallel()

	source := tickets.NewSource(filepath.Join(t.TempDir(), "absent"))
	snapshots, err := source.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	t.Run("duplicate key", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTicket(t, dir, "a.yaml", "key: T-1\n")
		writeTicket(t, dir, "b.yaml", "key: T-1\n")

		_, err := tickets.NewSource(dir).List(context.Background())
		require.ErrorContains(t, err, domain.ErrDuplicateTicket.Error())
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTicket(t, dir, "a.yaml", "key: [T-1\n")

		_, err := tickets.NewSource(dir).List(context.Background())
		require.ErrorContains(t, err, domain.ErrTicketReadFailed.Error())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTicket(t, dir, "t1.yaml", loginTicket)

		_, err := tickets.NewSource(dir).Fetch(context.Background(), "T-404")
		require.ErrorIs(t, err, domain.ErrTicketNotFound)
	})
}

func TestSource_Fetch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTicket(t, dir, "t1.yaml", loginTicket)

	snap, err := tickets.NewSource(dir).Fetch(context.Background(), "T-1")
	require.NoError(t, err)
	assert.Equal(t, "Add login page", snap.Summary)
}

func TestSource_Locate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeTicket(t, dir, "login.yaml", loginTicket)
	source := tickets.NewSource(dir)

	key, ok := source.Locate(path)
	require.True(t, ok)
	assert.Equal(t, "T-1", key)

	_, ok = source.Locate(filepath.Join(dir, "notes.txt"))
	assert.False(t, ok)

	_, ok = source.Locate(filepath.Join(t.TempDir(), "login.yaml"))
	assert.False(t, ok, "files outside the tickets directory are ignored")

	// A removed file resolves through the last scan.
	_, err := source.List(context.Background())
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	key, ok = source.Locate(path)
	require.True(t, ok)
	assert.Equal(t, "T-1", key)
}
