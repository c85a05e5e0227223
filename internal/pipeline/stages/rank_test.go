package stages

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangalrohit/podcastgen/internal/types"
)

func rankConfig() types.PreparedConfig {
	return types.PreparedConfig{
		Company:         types.Company{Name: "Acme"},
		Topics:          []string{"company news", "product updates"},
		DurationMinutes: 10,
		SourcePolicies:  []string{"trusted.example.com"},
	}
}

func TestRunRank_AllowlistedDomainOutranks(t *testing.T) {
	in := types.RankInput{
		Config: rankConfig(),
		Candidates: []types.SourceCandidate{
			{URL: "https://other.example.org/a", Topic: "company news"},
			{URL: "https://www.trusted.example.com/b", Topic: "company news"},
		},
	}

	out, err := runRank(context.Background(), in, Deps{})
	require.NoError(t, err)
	require.Len(t, out.Ranked, 2)

	assert.Equal(t, "https://www.trusted.example.com/b", out.Ranked[0].URL)
	assert.Equal(t, "allowlisted domain", out.Ranked[0].Reason)
	assert.Greater(t, out.Ranked[0].Score, out.Ranked[1].Score)
}

func TestRunRank_EarlierTopicOutranks(t *testing.T) {
	in := types.RankInput{
		Config: rankConfig(),
		Candidates: []types.SourceCandidate{
			{URL: "https://example.org/updates", Topic: "product updates"},
			{URL: "https://example.org/news", Topic: "company news"},
		},
	}

	out, err := runRank(context.Background(), in, Deps{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/news", out.Ranked[0].URL)
}

func TestRunRank_Deterministic(t *testing.T) {
	in := types.RankInput{Config: rankConfig()}
	for i := 0; i < 10; i++ {
		in.Candidates = append(in.Candidates, types.SourceCandidate{
			URL:   fmt.Sprintf("https://example.org/%d", i),
			Topic: "company news",
		})
	}

	first, err := runRank(context.Background(), in, Deps{})
	require.NoError(t, err)
	second, err := runRank(context.Background(), in, Deps{})
	require.NoError(t, err)
	assert.Equal(t, first.Ranked, second.Ranked)
}

func TestRunRank_CapsSourceCount(t *testing.T) {
	in := types.RankInput{Config: rankConfig()}
	for i := 0; i < 20; i++ {
		in.Candidates = append(in.Candidates, types.SourceCandidate{
			URL:   fmt.Sprintf("https://example.org/%d", i),
			Topic: "company news",
		})
	}

	out, err := runRank(context.Background(), in, Deps{})
	require.NoError(t, err)
	assert.Len(t, out.Ranked, defaultMaxSources)

	in.MaxSources = 3
	out, err = runRank(context.Background(), in, Deps{})
	require.NoError(t, err)
	assert.Len(t, out.Ranked, 3)
}

func TestRunRank_EmptyCandidatesRejected(t *testing.T) {
	_, err := runRank(context.Background(), types.RankInput{Config: rankConfig()}, Deps{})
	assert.Error(t, err)
}
