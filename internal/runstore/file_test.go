package runstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangalrohit/podcastgen/internal/types"
)

func TestFileStore_PutGetRoundtrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	run := &types.Run{
		ID:        "run-1",
		PodcastID: "podcast-1",
		Status:    types.RunRunning,
		CreatedAt: time.Now().UTC(),
	}
	run.SetStageState("prepare", types.StageState{Status: types.StageCompleted})

	require.NoError(t, store.PutRun(ctx, run))

	loaded, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "podcast-1", loaded.PodcastID)
	assert.Equal(t, types.RunRunning, loaded.Status)
	assert.Equal(t, types.StageCompleted, loaded.StageState("prepare").Status)
}

func TestFileStore_GetAbsentReturnsNil(t *testing.T) {
	store := NewFileStore(t.TempDir())

	run, err := store.GetRun(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestFileStore_PutRejectsEmptyID(t *testing.T) {
	store := NewFileStore(t.TempDir())

	err := store.PutRun(context.Background(), &types.Run{})
	assert.Error(t, err)
}

func TestFileStore_QueryRunsByPodcast(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := &types.Run{
			ID:        id,
			PodcastID: "podcast-1",
			Status:    types.RunCompleted,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, store.PutRun(ctx, run))
	}
	require.NoError(t, store.PutRun(ctx, &types.Run{
		ID: "run-other", PodcastID: "podcast-2", Status: types.RunFailed, CreatedAt: base,
	}))

	runs, err := store.QueryRunsByPodcast(ctx, "podcast-1")
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.Equal(t, "run-c", runs[0].ID)
	assert.Equal(t, "run-a", runs[2].ID)
}

func TestFileStore_QueryEmptyDir(t *testing.T) {
	store := NewFileStore(t.TempDir() + "/never-created")

	runs, err := store.QueryRunsByPodcast(context.Background(), "podcast-1")
	require.NoError(t, err)
	assert.Empty(t, runs)
}
