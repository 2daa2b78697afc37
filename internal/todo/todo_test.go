package todo

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arzm/accountkeeper/internal/common"
	"github.com/arzm/accountkeeper/internal/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewStore(filepath.Join(t.TempDir(), "to_do_list.json"), log)
}

func TestTasks_EmptyWithoutFile(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.Tasks(context.Background(), "johnsmith1"))
}

func TestAddAndTasks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Add(ctx, "johnsmith1", "buy milk"))
	require.NoError(t, s.Add(ctx, "johnsmith1", "call mom"))
	require.NoError(t, s.Add(ctx, "janedoe999", "water plants"))

	assert.Equal(t, []string{"buy milk", "call mom"}, s.Tasks(ctx, "johnsmith1"))
	assert.Equal(t, []string{"water plants"}, s.Tasks(ctx, "janedoe999"))
}

func TestAdd_RejectsEmptyAndDuplicate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.Error(t, s.Add(ctx, "johnsmith1", "   "))
	require.NoError(t, s.Add(ctx, "johnsmith1", "buy milk"))
	require.Error(t, s.Add(ctx, "johnsmith1", "buy milk"))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Add(ctx, "johnsmith1", "first"))
	require.NoError(t, s.Add(ctx, "johnsmith1", "second"))

	removed, err := s.Remove(ctx, "johnsmith1", 0)
	require.NoError(t, err)
	assert.Equal(t, "first", removed)
	assert.Equal(t, []string{"second"}, s.Tasks(ctx, "johnsmith1"))

	_, err = s.Remove(ctx, "johnsmith1", 5)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestComplete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Add(ctx, "johnsmith1", "buy milk"))

	require.NoError(t, s.Complete(ctx, "johnsmith1", 0))
	assert.Equal(t, []string{CompletedPrefix + "buy milk"}, s.Tasks(ctx, "johnsmith1"))

	require.Error(t, s.Complete(ctx, "johnsmith1", 0), "already completed")
	require.ErrorIs(t, s.Complete(ctx, "johnsmith1", 3), common.ErrNotFound)
}

func TestLoad_UnparsableFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.path, []byte("[not a map]"), 0o600))

	assert.Empty(t, s.Tasks(ctx, "johnsmith1"))
	require.NoError(t, s.Add(ctx, "johnsmith1", "fresh start"))
	assert.Equal(t, []string{"fresh start"}, s.Tasks(ctx, "johnsmith1"))
}
