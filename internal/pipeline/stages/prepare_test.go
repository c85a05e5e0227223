package stages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangalrohit/podcastgen/internal/types"
)

func validInput() types.PipelineInput {
	return types.PipelineInput{
		RunID:     "run-1",
		PodcastID: "podcast-1",
		Config: types.EpisodeConfig{
			Title:           "Acme Weekly",
			Company:         types.Company{Name: "Acme"},
			DurationMinutes: 10,
		},
	}
}

func TestRunPrepare_FreezesConfigWithDefaults(t *testing.T) {
	out, err := runPrepare(context.Background(), validInput(), Deps{})
	require.NoError(t, err)

	assert.Equal(t, "Acme Weekly", out.Config.Title)
	assert.Equal(t, "podcast-1", out.Config.PodcastID)
	assert.Equal(t, defaultTopics, out.Config.Topics)
	assert.Equal(t, "respect", out.Config.RobotsPolicy)
	assert.Equal(t, 1.0, out.Config.Voice.Speed)
}

func TestRunPrepare_KeepsExplicitValues(t *testing.T) {
	in := validInput()
	in.Config.Topics = []string{"earnings"}
	in.Config.RobotsPolicy = "ignore"
	in.Config.Voice.Speed = 1.25

	out, err := runPrepare(context.Background(), in, Deps{})
	require.NoError(t, err)

	assert.Equal(t, []string{"earnings"}, out.Config.Topics)
	assert.Equal(t, "ignore", out.Config.RobotsPolicy)
	assert.Equal(t, 1.25, out.Config.Voice.Speed)
}

func TestRunPrepare_RejectsMissingFields(t *testing.T) {
	in := validInput()
	in.Config.Title = ""

	_, err := runPrepare(context.Background(), in, Deps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pipeline input")
}

func TestRunPrepare_RejectsOutOfRangeDuration(t *testing.T) {
	in := validInput()
	in.Config.DurationMinutes = 90

	_, err := runPrepare(context.Background(), in, Deps{})
	assert.Error(t, err)
}
