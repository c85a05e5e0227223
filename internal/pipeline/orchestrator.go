// Package pipeline drives the thirteen content-generation stages as a state
// machine: execute runs them all from prepare, resume re-runs exactly one
// stage of an existing run from its persisted artifacts. The orchestrator is
// the only place that decides run-level status transitions.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mangalrohit/podcastgen/internal/artifacts"
	"github.com/mangalrohit/podcastgen/internal/events"
	"github.com/mangalrohit/podcastgen/internal/gateway"
	"github.com/mangalrohit/podcastgen/internal/pipeline/stages"
	"github.com/mangalrohit/podcastgen/internal/runstore"
	"github.com/mangalrohit/podcastgen/internal/types"
)

// audioFileName is the fixed binary artifact name for the rendered episode.
const audioFileName = "audio.mp3"

// optionalStages may be disabled per run via flags; everything else always runs.
var optionalStages = map[string]bool{
	stages.StageDisambiguate: true,
	stages.StageContrast:     true,
	stages.StageQA:           true,
}

// Orchestrator executes and resumes runs.
type Orchestrator struct {
	Artifacts artifacts.Store
	Runs      runstore.Store
	Gateways  gateway.Set
	Verbose   bool
}

// New builds an orchestrator.
func New(artifactStore artifacts.Store, runStore runstore.Store, gateways gateway.Set) *Orchestrator {
	return &Orchestrator{Artifacts: artifactStore, Runs: runStore, Gateways: gateways}
}

// Execute runs all thirteen stages from prepare. It returns the final run
// record; on stage failure the run is marked failed (with every subsequent
// stage failed too) before the error is returned.
func (o *Orchestrator) Execute(ctx context.Context, in types.PipelineInput) (*types.Run, error) {
	if in.RunID == "" || in.PodcastID == "" {
		return nil, fmt.Errorf("pipeline input requires runId and podcastId")
	}

	existing, err := o.Runs.GetRun(ctx, in.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", in.RunID, err)
	}
	if existing != nil && (existing.Status == types.RunCompleted || existing.Status == types.RunFailed) {
		return existing, fmt.Errorf("run %s is already %s; use resume to retry a stage", in.RunID, existing.Status)
	}

	now := time.Now().UTC()
	run := &types.Run{
		ID:        in.RunID,
		PodcastID: in.PodcastID,
		Status:    types.RunRunning,
		CreatedAt: now,
		StartedAt: &now,
	}
	run.Progress.CurrentStage = stages.StagePrepare
	o.putRun(ctx, run)

	input, err := json.Marshal(in)
	if err != nil {
		return run, fmt.Errorf("failed to encode pipeline input: %w", err)
	}

	emit := o.withVerbose(newRunEmitter(ctx, o.Runs, in.RunID))
	registry := stages.Registry()

	for i, stage := range registry {
		if stopped, reason, stopErr := o.Artifacts.StopRequested(ctx, in.RunID); stopErr == nil && stopped {
			cancelErr := &CanceledError{RunID: in.RunID, Reason: reason}
			o.failFrom(ctx, run, stage.Name, cancelErr)
			return run, cancelErr
		}

		run.Progress.CurrentStage = stage.Name

		if optionalStages[stage.Name] && !in.Flags.StageEnabled(stage.Name) {
			fmt.Printf("Stage %d/%d: %s (skipped)\n", i+1, len(registry), stage.Name)
			output, skipErr := skipOutput(stage.Name, input)
			if skipErr != nil {
				o.failFrom(ctx, run, stage.Name, skipErr)
				return run, skipErr
			}
			if saveErr := o.Artifacts.SaveStageOutput(ctx, in.RunID, stage.Name, output); saveErr != nil {
				o.failFrom(ctx, run, stage.Name, saveErr)
				return run, saveErr
			}
			run.SetStageState(stage.Name, types.StageState{Status: types.StageSkipped})
			o.putRun(ctx, run)

			input, err = nextInput(i, registry, stage.Name, output)
			if err != nil {
				o.failFrom(ctx, run, stage.Name, err)
				return run, err
			}
			continue
		}

		fmt.Printf("Stage %d/%d: %s...\n", i+1, len(registry), stage.Name)

		output, episode, stageErr := o.runStage(ctx, in.RunID, stage, input, emit)
		if stageErr != nil {
			o.failFrom(ctx, run, stage.Name, stageErr)
			return run, stageErr
		}
		if episode != nil {
			run.Output = episode
		}

		state := run.StageState(stage.Name)
		state.Status = types.StageCompleted
		completed := time.Now().UTC()
		state.CompletedAt = &completed
		run.SetStageState(stage.Name, state)
		o.putRun(ctx, run)

		if in.Flags.DryRun && stage.Name == stages.StagePrepare {
			fmt.Printf("Dry run: input validated, stopping before %s.\n", stages.StageDiscover)
			return run, nil
		}

		input, err = nextInput(i, registry, stage.Name, output)
		if err != nil {
			o.failFrom(ctx, run, stage.Name, err)
			return run, err
		}
	}

	run.Status = types.RunCompleted
	done := time.Now().UTC()
	run.CompletedAt = &done
	run.Progress.CurrentStage = stages.StagePackage
	o.putRun(ctx, run)

	fmt.Printf("Done! Run %s completed.\n", run.ID)
	return run, nil
}

// nextInput reshapes a stage's output into the following stage's input, or
// returns it unchanged after the last stage.
func nextInput(i int, registry []stages.Stage, stageName string, output json.RawMessage) (json.RawMessage, error) {
	if i+1 >= len(registry) {
		return output, nil
	}
	return InputFor(registry[i+1].Name, stageName, output)
}

// runStage persists a stage's input, executes it, post-processes binary
// side effects and persists its output. It returns the persisted output and,
// for the package stage, the assembled episode.
func (o *Orchestrator) runStage(ctx context.Context, runID string, stage stages.Stage, input json.RawMessage, emit events.Emitter) (json.RawMessage, *types.Episode, error) {
	if err := o.Artifacts.SaveStageInput(ctx, runID, stage.Name, input); err != nil {
		return nil, nil, fmt.Errorf("failed to persist %s input: %w", stage.Name, err)
	}

	deps := stages.Deps{Gateways: o.Gateways, Emit: emit}
	output, err := stage.Run(ctx, input, deps)
	if err != nil {
		return nil, nil, err
	}

	var episode *types.Episode
	switch stage.Name {
	case stages.StageTTS:
		output, err = o.finalizeTTS(ctx, runID, output)
	case stages.StagePackage:
		output, episode, err = o.finalizePackage(ctx, runID, output)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := o.Artifacts.SaveStageOutput(ctx, runID, stage.Name, output); err != nil {
		return nil, nil, fmt.Errorf("failed to persist %s output: %w", stage.Name, err)
	}
	return output, episode, nil
}

// failFrom marks the named stage failed, cascades failure to every later
// stage and moves the run to its terminal failed state. currentStage stays
// on the failed stage so the run remains resumable from there.
func (o *Orchestrator) failFrom(ctx context.Context, run *types.Run, stageName string, cause error) {
	fmt.Printf("Stage %s failed: %v\n", stageName, cause)

	state := run.StageState(stageName)
	state.Status = types.StageFailed
	failedAt := time.Now().UTC()
	state.CompletedAt = &failedAt
	run.SetStageState(stageName, state)

	for i := stages.Index(stageName) + 1; i >= 0 && i < len(stages.Order); i++ {
		later := run.StageState(stages.Order[i])
		if later.Status == types.StageCompleted || later.Status == types.StageSkipped {
			continue
		}
		later.Status = types.StageFailed
		run.SetStageState(stages.Order[i], later)
	}

	run.Status = types.RunFailed
	run.Error = cause.Error()
	run.CompletedAt = &failedAt
	run.Progress.CurrentStage = stageName
	o.putRun(ctx, run)
}

// withVerbose echoes stage progress notes to stdout in verbose mode.
func (o *Orchestrator) withVerbose(emit events.Emitter) events.Emitter {
	if !o.Verbose {
		return emit
	}
	return func(update events.Update) {
		if update.StageProgress != "" {
			fmt.Printf("  %s: %s\n", update.Stage, update.StageProgress)
		}
		emit(update)
	}
}

// putRun persists the run record best-effort. A failed status write never
// fails the run; the artifacts are the source of truth.
func (o *Orchestrator) putRun(ctx context.Context, run *types.Run) {
	if err := o.Runs.PutRun(ctx, run); err != nil {
		fmt.Printf("  [warn] could not persist run %s: %v\n", run.ID, err)
	}
}
