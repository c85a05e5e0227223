package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/mangalrohit/podcastgen/internal/events"
	"github.com/mangalrohit/podcastgen/internal/runstore"
	"github.com/mangalrohit/podcastgen/internal/types"
)

// newRunEmitter returns an emitter that merges stage updates into the run
// record with read-before-write. Store failures are logged and swallowed;
// status is best-effort telemetry and must never fail a stage that already
// wrote its artifact.
func newRunEmitter(ctx context.Context, store runstore.Store, runID string) events.Emitter {
	var mu sync.Mutex

	return func(update events.Update) {
		if update.Stage == "" {
			return
		}
		mu.Lock()
		defer mu.Unlock()

		run, err := store.GetRun(ctx, runID)
		if err != nil || run == nil {
			fmt.Printf("  [warn] could not load run %s for status update: %v\n", runID, err)
			return
		}

		state := run.StageState(update.Stage)
		mergeStageUpdate(&state, update)
		run.SetStageState(update.Stage, state)
		run.Progress.CurrentStage = update.Stage

		if err := store.PutRun(ctx, run); err != nil {
			fmt.Printf("  [warn] could not persist status for run %s: %v\n", runID, err)
		}
	}
}

// mergeStageUpdate applies a partial update to a stage state. Completion is
// monotonic: a completed stage is never demoted back to running by a late
// progress event.
func mergeStageUpdate(state *types.StageState, update events.Update) {
	if update.StageStatus != "" {
		next := types.StageStatus(update.StageStatus)
		if state.Status != types.StageCompleted || next != types.StageRunning {
			state.Status = next
		}
	}
	if update.StageStartedAt != nil && state.StartedAt == nil {
		state.StartedAt = update.StageStartedAt
	}
	if update.StageCompletedAt != nil {
		state.CompletedAt = update.StageCompletedAt
	}
	if update.StageProgress != "" {
		state.Progress = update.StageProgress
	}
}
