package runstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangalrohit/podcastgen/internal/types"
)

// countingStore wraps an in-memory store and counts backing reads.
type countingStore struct {
	runs map[string]*types.Run
	gets int
}

func newCountingStore() *countingStore {
	return &countingStore{runs: make(map[string]*types.Run)}
}

func (s *countingStore) GetRun(_ context.Context, runID string) (*types.Run, error) {
	s.gets++
	return s.runs[runID], nil
}

func (s *countingStore) PutRun(_ context.Context, run *types.Run) error {
	s.runs[run.ID] = run
	return nil
}

func (s *countingStore) QueryRunsByPodcast(_ context.Context, podcastID string) ([]types.Run, error) {
	var out []types.Run
	for _, run := range s.runs {
		if run.PodcastID == podcastID {
			out = append(out, *run)
		}
	}
	return out, nil
}

func TestCachedStore_ReadThrough(t *testing.T) {
	backing := newCountingStore()
	backing.runs["run-1"] = &types.Run{ID: "run-1", PodcastID: "podcast-1", CreatedAt: time.Now().UTC()}
	cache := NewCachedStore(backing)
	ctx := context.Background()

	first, err := cache.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, backing.gets)

	second, err := cache.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, 1, backing.gets, "second read should hit the cache")
}

func TestCachedStore_WriteThrough(t *testing.T) {
	backing := newCountingStore()
	cache := NewCachedStore(backing)
	ctx := context.Background()

	run := &types.Run{ID: "run-1", PodcastID: "podcast-1", Status: types.RunRunning}
	require.NoError(t, cache.PutRun(ctx, run))

	assert.NotNil(t, backing.runs["run-1"], "write must reach the backing store")

	cached, err := cache.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 0, backing.gets, "read after write should be served from cache")
}

func TestCachedStore_ReturnsClones(t *testing.T) {
	backing := newCountingStore()
	cache := NewCachedStore(backing)
	ctx := context.Background()

	run := &types.Run{ID: "run-1", Status: types.RunRunning}
	run.SetStageState("scrape", types.StageState{Status: types.StageRunning})
	require.NoError(t, cache.PutRun(ctx, run))

	got, err := cache.GetRun(ctx, "run-1")
	require.NoError(t, err)
	got.SetStageState("scrape", types.StageState{Status: types.StageFailed})

	again, err := cache.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, types.StageRunning, again.StageState("scrape").Status,
		"mutating a returned run must not corrupt the cache")
}

func TestCachedStore_Invalidate(t *testing.T) {
	backing := newCountingStore()
	backing.runs["run-1"] = &types.Run{ID: "run-1"}
	cache := NewCachedStore(backing)
	ctx := context.Background()

	_, err := cache.GetRun(ctx, "run-1")
	require.NoError(t, err)
	cache.Invalidate("run-1")

	_, err = cache.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 2, backing.gets)
}
