package pipeline

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangalrohit/podcastgen/internal/pipeline/stages"
	"github.com/mangalrohit/podcastgen/internal/types"
)

func TestResume_UnknownStageRejected(t *testing.T) {
	o := newTestOrchestrator(t)

	_, err := o.Resume(context.Background(), "run-1", "transmogrify")
	var invalid *InvalidStageError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "transmogrify", invalid.Stage)
}

func TestResume_BeforeScrapeRejected(t *testing.T) {
	o := newTestOrchestrator(t)

	for _, stage := range []string{"prepare", "discover", "disambiguate", "rank"} {
		_, err := o.Resume(context.Background(), "run-1", stage)
		var invalid *InvalidStageError
		require.ErrorAs(t, err, &invalid, "stage %s", stage)
	}
}

func TestResume_UnknownRunRejected(t *testing.T) {
	o := newTestOrchestrator(t)

	_, err := o.Resume(context.Background(), "ghost", stages.StageScrape)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestResume_MissingPredecessorRejected(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := context.Background()
	require.NoError(t, o.Runs.PutRun(ctx, &types.Run{
		ID: "run-1", PodcastID: "podcast-1", Status: types.RunFailed, CreatedAt: time.Now().UTC(),
	}))

	_, err := o.Resume(ctx, "run-1", stages.StageExtract)

	var missing *MissingArtifactError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, stages.StageExtract, missing.Stage)
	assert.Equal(t, stages.StageScrape, missing.MissingStage)

	// Rejection must not write any state.
	in, loadErr := o.Artifacts.LoadStageInput(ctx, "run-1", stages.StageExtract)
	require.NoError(t, loadErr)
	assert.Nil(t, in)

	run, loadErr := o.Runs.GetRun(ctx, "run-1")
	require.NoError(t, loadErr)
	assert.Equal(t, types.RunFailed, run.Status)
}

func TestResume_FromTTSWithoutQAOutput(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := context.Background()

	scriptOut, err := json.Marshal(types.ScriptOutput{
		Config: testConfig(),
		Script: types.Script{
			Title:     "Weekly Update",
			Narrative: "Welcome to the show. Today we cover recent developments in some detail.",
			WordCount: 12,
		},
	})
	require.NoError(t, err)
	require.NoError(t, o.Artifacts.SaveStageOutput(ctx, "run-1", stages.StageScript, scriptOut))
	require.NoError(t, o.Runs.PutRun(ctx, &types.Run{
		ID: "run-1", PodcastID: "podcast-1", Status: types.RunFailed, CreatedAt: time.Now().UTC(),
	}))

	run, err := o.Resume(ctx, "run-1", stages.StageTTS)
	require.NoError(t, err)
	assert.Equal(t, types.StageCompleted, run.StageState(stages.StageTTS).Status)

	raw, err := o.Artifacts.LoadStageOutput(ctx, "run-1", stages.StageTTS)
	require.NoError(t, err)
	require.NotNil(t, raw)

	var out types.TTSOutput
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Greater(t, out.DurationSeconds, 0.0)
	assert.Equal(t, "run-1/audio.mp3", out.AudioKey)
}

func TestResume_MatchesFreshRunOutput(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := context.Background()

	_, err := o.Execute(ctx, testInput("run-1"))
	require.NoError(t, err)

	fresh, err := o.Artifacts.LoadStageOutput(ctx, "run-1", stages.StageSummarize)
	require.NoError(t, err)

	_, err = o.Resume(ctx, "run-1", stages.StageSummarize)
	require.NoError(t, err)

	resumed, err := o.Artifacts.LoadStageOutput(ctx, "run-1", stages.StageSummarize)
	require.NoError(t, err)
	assert.JSONEq(t, string(fresh), string(resumed),
		"stub gateways are deterministic, so a resumed stage must reproduce its output")
}

func TestResume_PartialResumeDoesNotLeaveRunRunning(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := context.Background()

	rankOut, err := json.Marshal(types.RankOutput{
		Config: testConfig(),
		Ranked: []types.RankedSource{
			{SourceCandidate: types.SourceCandidate{URL: "https://example.org/a", Topic: "company news"}, Score: 1.0},
		},
	})
	require.NoError(t, err)
	require.NoError(t, o.Artifacts.SaveStageOutput(ctx, "run-1", stages.StageRank, rankOut))
	require.NoError(t, o.Runs.PutRun(ctx, &types.Run{
		ID: "run-1", PodcastID: "podcast-1", Status: types.RunFailed, CreatedAt: time.Now().UTC(),
	}))

	run, err := o.Resume(ctx, "run-1", stages.StageScrape)
	require.NoError(t, err)
	assert.Equal(t, types.StageCompleted, run.StageState(stages.StageScrape).Status)
	assert.Equal(t, types.RunFailed, run.Status, "a lone rerun stage leaves no active driver")
	assert.Contains(t, run.Error, "later stages")

	stored, err := o.Runs.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, types.RunFailed, stored.Status)
}

func TestResume_RecomputesRunCompletion(t *testing.T) {
	o := newTestOrchestrator(t)
	ctx := context.Background()

	run, err := o.Execute(ctx, testInput("run-1"))
	require.NoError(t, err)
	require.Equal(t, types.RunCompleted, run.Status)

	// Knock the final stage back to failed, then resume it.
	run.Status = types.RunFailed
	run.SetStageState(stages.StagePackage, types.StageState{Status: types.StageFailed})
	require.NoError(t, o.Runs.PutRun(ctx, run))

	resumed, err := o.Resume(ctx, "run-1", stages.StagePackage)
	require.NoError(t, err)
	assert.Equal(t, types.RunCompleted, resumed.Status)
	require.NotNil(t, resumed.Output)
	assert.Equal(t, "run-1/audio.mp3", resumed.Output.AudioKey)
}
