// Package runstore persists run-level status records. Writes are whole-record
// overwrites with last-write-wins semantics; callers must read-modify-write.
// The design assumes a single orchestrator instance drives a given run at a
// time.
package runstore

import (
	"context"

	"github.com/mangalrohit/podcastgen/internal/types"
)

// Store is the run status persistence contract. GetRun returns (nil, nil)
// when the run does not exist.
type Store interface {
	GetRun(ctx context.Context, runID string) (*types.Run, error)
	PutRun(ctx context.Context, run *types.Run) error
	QueryRunsByPodcast(ctx context.Context, podcastID string) ([]types.Run, error)
}
