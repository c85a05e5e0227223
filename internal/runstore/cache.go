package runstore

import (
	"context"
	"sync"

	"github.com/mangalrohit/podcastgen/internal/types"
)

// CachedStore wraps a Store with an in-memory read-through/write-through
// cache. It is an explicit injected collaborator, not ambient global state,
// so tests can substitute a fake backing store and observe cache behavior.
//
// The cache makes the single-driver assumption visible: a second process
// writing the same run through its own cache will not be seen here until the
// entry is invalidated.
type CachedStore struct {
	backing Store

	mu   sync.RWMutex
	runs map[string]*types.Run
}

// NewCachedStore wraps backing with a cache.
func NewCachedStore(backing Store) *CachedStore {
	return &CachedStore{
		backing: backing,
		runs:    make(map[string]*types.Run),
	}
}

func cloneRun(run *types.Run) *types.Run {
	if run == nil {
		return nil
	}
	copied := *run
	if run.Progress.Stages != nil {
		copied.Progress.Stages = make(map[string]types.StageState, len(run.Progress.Stages))
		for k, v := range run.Progress.Stages {
			copied.Progress.Stages[k] = v
		}
	}
	if run.Output != nil {
		out := *run.Output
		copied.Output = &out
	}
	return &copied
}

// GetRun returns the cached record when present, reading through to the
// backing store otherwise.
func (c *CachedStore) GetRun(ctx context.Context, runID string) (*types.Run, error) {
	c.mu.RLock()
	cached, ok := c.runs[runID]
	c.mu.RUnlock()
	if ok {
		return cloneRun(cached), nil
	}

	run, err := c.backing.GetRun(ctx, runID)
	if err != nil || run == nil {
		return run, err
	}

	c.mu.Lock()
	c.runs[runID] = cloneRun(run)
	c.mu.Unlock()
	return run, nil
}

// PutRun writes through to the backing store and updates the cache only on
// success.
func (c *CachedStore) PutRun(ctx context.Context, run *types.Run) error {
	if err := c.backing.PutRun(ctx, run); err != nil {
		return err
	}
	c.mu.Lock()
	c.runs[run.ID] = cloneRun(run)
	c.mu.Unlock()
	return nil
}

// QueryRunsByPodcast always goes to the backing store; the cache is keyed by
// run ID and cannot answer the secondary-index query authoritatively.
func (c *CachedStore) QueryRunsByPodcast(ctx context.Context, podcastID string) ([]types.Run, error) {
	return c.backing.QueryRunsByPodcast(ctx, podcastID)
}

// Invalidate drops a run from the cache, forcing the next read through.
func (c *CachedStore) Invalidate(runID string) {
	c.mu.Lock()
	delete(c.runs, runID)
	c.mu.Unlock()
}
