package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlags_StageEnabledDefaultsToTrue(t *testing.T) {
	var flags Flags
	assert.True(t, flags.StageEnabled("qa"))

	flags.Enable = map[string]bool{"qa": false}
	assert.False(t, flags.StageEnabled("qa"))
	assert.True(t, flags.StageEnabled("contrast"), "stages absent from the map stay enabled")
}

func TestPipelineInput_JSONTags(t *testing.T) {
	in := PipelineInput{
		RunID:     "run-1",
		PodcastID: "podcast-1",
		Config: EpisodeConfig{
			Title:           "Acme Weekly",
			Company:         Company{Name: "Acme"},
			DurationMinutes: 10,
			Voice:           Voice{VoiceID: "narrator"},
		},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `"runId":"run-1"`)
	assert.Contains(t, text, `"podcastId":"podcast-1"`)
	assert.Contains(t, text, `"durationMinutes":10`)
	assert.Contains(t, text, `"voiceId":"narrator"`)
}

func TestEpisode_AudioKeyTag(t *testing.T) {
	data, err := json.Marshal(Episode{AudioKey: "run-1/audio.mp3"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"audioS3Key":"run-1/audio.mp3"`)
}

func TestRun_StageStateAccessors(t *testing.T) {
	var run Run
	assert.Equal(t, StageState{}, run.StageState("scrape"))

	run.SetStageState("scrape", StageState{Status: StageRunning})
	assert.Equal(t, StageRunning, run.StageState("scrape").Status)
}
