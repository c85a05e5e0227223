package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mangalrohit/podcastgen/internal/pipeline/stages"
	"github.com/mangalrohit/podcastgen/internal/types"
)

// Resume re-executes exactly one stage of an existing run, rebuilding its
// input from the predecessor's persisted output artifact. Resuming is only
// supported from scrape onward; the earlier stages need full upstream
// context that a single artifact cannot provide. Invalid requests are
// rejected before any state is written. When the rerun stage completes the
// run, the run is promoted to completed; otherwise it returns to failed,
// since nothing keeps executing after Resume returns.
func (o *Orchestrator) Resume(ctx context.Context, runID, fromStage string) (*types.Run, error) {
	stage, ok := stages.ByName(fromStage)
	if !ok {
		return nil, &InvalidStageError{Stage: fromStage, Reason: "unknown stage name"}
	}
	if stages.Index(fromStage) < stages.Index(stages.StageScrape) {
		return nil, &InvalidStageError{
			Stage:  fromStage,
			Reason: fmt.Sprintf("resume is only supported from %q onward", stages.StageScrape),
		}
	}

	run, err := o.Runs.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	if run == nil {
		return nil, fmt.Errorf("run %s not found", runID)
	}

	preds := predecessorsOf(fromStage)
	var prev json.RawMessage
	var prevStage string
	for _, pred := range preds {
		prev, err = o.Artifacts.LoadStageOutput(ctx, runID, pred)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s output for run %s: %w", pred, runID, err)
		}
		if prev != nil {
			prevStage = pred
			break
		}
	}
	if prev == nil {
		return nil, &MissingArtifactError{Stage: fromStage, MissingStage: preds[len(preds)-1]}
	}

	input, err := InputFor(fromStage, prevStage, prev)
	if err != nil {
		return nil, err
	}

	fmt.Printf("Resuming run %s from stage %s...\n", runID, fromStage)

	emit := o.withVerbose(newRunEmitter(ctx, o.Runs, runID))
	run.Status = types.RunRunning
	run.Error = ""
	run.Progress.CurrentStage = fromStage
	o.putRun(ctx, run)

	_, episode, stageErr := o.runStage(ctx, runID, stage, input, emit)
	if stageErr != nil {
		o.failFrom(ctx, run, fromStage, stageErr)
		return run, stageErr
	}

	if episode != nil {
		run.Output = episode
	}

	state := run.StageState(fromStage)
	state.Status = types.StageCompleted
	completed := time.Now().UTC()
	state.CompletedAt = &completed
	run.SetStageState(fromStage, state)

	// A resume drives exactly one stage; if that did not complete the run,
	// the run goes back to its terminal failed state rather than dangling
	// in running with nothing executing. Later stages still need rerunning.
	if !o.recomputeCompletion(run) {
		run.Status = types.RunFailed
		run.Error = fmt.Sprintf("stage %s rerun succeeded; later stages still need to be resumed", fromStage)
	}
	o.putRun(ctx, run)
	return run, nil
}

// recomputeCompletion promotes the run to completed once every stage in
// order is completed or skipped, reporting whether it did.
func (o *Orchestrator) recomputeCompletion(run *types.Run) bool {
	for _, name := range stages.Order {
		state := run.StageState(name)
		if state.Status != types.StageCompleted && state.Status != types.StageSkipped {
			return false
		}
	}
	run.Status = types.RunCompleted
	done := time.Now().UTC()
	run.CompletedAt = &done
	run.Progress.CurrentStage = stages.StagePackage
	return true
}
