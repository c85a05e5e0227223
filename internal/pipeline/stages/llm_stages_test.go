package stages

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangalrohit/podcastgen/internal/types"
)

func stageConfig() types.PreparedConfig {
	return types.PreparedConfig{
		PodcastID:       "podcast-1",
		Title:           "Acme Weekly",
		Company:         types.Company{Name: "Acme", Domain: "acme.com"},
		Competitors:     []types.Company{{Name: "Rival Corp"}},
		Topics:          []string{"company news", "product updates"},
		DurationMinutes: 10,
		Voice:           types.Voice{VoiceID: "narrator", Speed: 1.0},
		RobotsPolicy:    "respect",
	}
}

func TestRunDiscover_CollectsCandidatesPerTopic(t *testing.T) {
	out, err := runDiscover(context.Background(), types.DiscoverInput{Config: stageConfig()}, stubDeps(t))
	require.NoError(t, err)

	require.NotEmpty(t, out.Candidates)
	topics := make(map[string]int)
	for _, c := range out.Candidates {
		topics[c.Topic]++
		assert.Equal(t, "Acme", c.Entity)
	}
	assert.Len(t, topics, 2, "both topics should contribute candidates")
}

func TestRunDisambiguate_EmptyDropKeepsEverything(t *testing.T) {
	in := types.DisambiguateInput{
		Config: stageConfig(),
		Candidates: []types.SourceCandidate{
			{URL: "https://example.org/a", Topic: "company news"},
			{URL: "https://example.org/b", Topic: "company news"},
		},
	}

	out, err := runDisambiguate(context.Background(), in, stubDeps(t))
	require.NoError(t, err)
	assert.Len(t, out.Candidates, 2)
	assert.Empty(t, out.Dropped)
}

func TestRunSummarize_OneSummaryPerTopicWithDocuments(t *testing.T) {
	in := types.SummarizeInput{
		Config: stageConfig(),
		Documents: []types.Document{
			{URL: "https://example.org/a", Topic: "company news", Text: "Acme shipped updates.", WordCount: 3},
			{URL: "https://example.org/b", Topic: "company news", Text: "More Acme coverage.", WordCount: 3},
		},
	}

	out, err := runSummarize(context.Background(), in, stubDeps(t))
	require.NoError(t, err)

	require.Len(t, out.Summaries, 1, "product updates has no documents and must be skipped")
	assert.Equal(t, "company news", out.Summaries[0].Topic)
	assert.Len(t, out.Summaries[0].Sources, 2)
}

func TestRunContrast_NoCompetitorsIsPassthrough(t *testing.T) {
	cfg := stageConfig()
	cfg.Competitors = nil
	in := types.ContrastInput{
		Config:    cfg,
		Summaries: []types.TopicSummary{{Topic: "company news", Summary: "Steady quarter."}},
	}

	out, err := runContrast(context.Background(), in, stubDeps(t))
	require.NoError(t, err)
	assert.Empty(t, out.Contrasts)
	assert.Equal(t, in.Summaries, out.Summaries)
}

func TestRunContrast_WithCompetitors(t *testing.T) {
	in := types.ContrastInput{
		Config:    stageConfig(),
		Summaries: []types.TopicSummary{{Topic: "company news", Summary: "Steady quarter."}},
	}

	out, err := runContrast(context.Background(), in, stubDeps(t))
	require.NoError(t, err)
	require.NotEmpty(t, out.Contrasts)
	assert.NotEmpty(t, out.Contrasts[0].Competitor)
}

func TestRunOutline_ImposesTitleAndTimings(t *testing.T) {
	in := types.OutlineInput{
		Config:    stageConfig(),
		Summaries: []types.TopicSummary{{Topic: "company news", Summary: "Steady quarter."}},
	}

	out, err := runOutline(context.Background(), in, stubDeps(t))
	require.NoError(t, err)

	assert.Equal(t, "Acme Weekly", out.Outline.Title)
	require.NotEmpty(t, out.Outline.Sections)

	total := 0
	for _, section := range out.Outline.Sections {
		total += section.TargetSeconds
	}
	assert.Equal(t, 10*60, total, "section timings must add up to the episode duration")

	// Summaries and contrasts ride along for downstream resume.
	assert.Equal(t, in.Summaries, out.Summaries)
}

func TestRunScript_AssemblesNarrative(t *testing.T) {
	outlineOut, err := runOutline(context.Background(), types.OutlineInput{
		Config:    stageConfig(),
		Summaries: []types.TopicSummary{{Topic: "company news", Summary: "Steady quarter."}},
	}, stubDeps(t))
	require.NoError(t, err)

	out, err := runScript(context.Background(), types.ScriptInput{
		Config:  stageConfig(),
		Outline: outlineOut.Outline,
	}, stubDeps(t))
	require.NoError(t, err)

	assert.Equal(t, "Acme Weekly", out.Script.Title)
	assert.NotEmpty(t, out.Script.Sections)
	assert.Greater(t, out.Script.WordCount, 0)
	assert.Equal(t, len(out.Script.Sections),
		len(strings.Split(out.Script.Narrative, "\n\n")),
		"narrative must join every section text")
}

func TestRunQA_ApprovedScriptPassesThrough(t *testing.T) {
	script := types.Script{
		Title:     "Acme Weekly",
		Narrative: "Welcome to the show. Today we cover the quarter in detail.",
		WordCount: 11,
	}

	out, err := runQA(context.Background(), types.QAInput{Config: stageConfig(), Script: script}, stubDeps(t))
	require.NoError(t, err)
	assert.True(t, out.Report.Approved)
	assert.Equal(t, script.Narrative, out.Script.Narrative)
}

func TestRunQA_EmptyScriptRejected(t *testing.T) {
	_, err := runQA(context.Background(), types.QAInput{Config: stageConfig()}, stubDeps(t))
	assert.Error(t, err)
}

func TestRejectedError_ListsIssues(t *testing.T) {
	err := &RejectedError{Report: types.QAReport{Issues: []types.QAIssue{
		{Severity: "error", Message: "unsupported claim in section 2"},
	}}}

	var rejected *RejectedError
	require.True(t, errors.As(error(err), &rejected))
	assert.Contains(t, err.Error(), "unsupported claim")
}

func TestRunTTS_SynthesizesPerParagraph(t *testing.T) {
	in := types.TTSInput{
		Config:    stageConfig(),
		Narrative: "First paragraph of narration.\n\nSecond paragraph of narration.",
	}

	out, err := runTTS(context.Background(), in, stubDeps(t))
	require.NoError(t, err)

	assert.Greater(t, out.DurationSeconds, 0.0)
	assert.Equal(t, "mp3", out.Format)
	assert.Equal(t, "narrator", out.Voice)
	assert.NotEmpty(t, out.AudioBase64)
}

func TestRunTTS_EmptyNarrativeRejected(t *testing.T) {
	_, err := runTTS(context.Background(), types.TTSInput{Config: stageConfig()}, stubDeps(t))
	assert.Error(t, err)
}

func TestRunPackage_AssemblesEpisode(t *testing.T) {
	in := types.PackageInput{
		Config:          stageConfig(),
		Narrative:       "Welcome to the show.",
		DurationSeconds: 120,
		AudioKey:        "run-1/audio.mp3",
	}

	out, err := runPackage(context.Background(), in, Deps{})
	require.NoError(t, err)

	assert.Equal(t, "Acme Weekly", out.Episode.EpisodeTitle)
	assert.Equal(t, "run-1/audio.mp3", out.Episode.AudioKey)
	assert.Equal(t, 120.0, out.Episode.DurationSeconds)
	assert.False(t, out.Episode.PublishedAt.IsZero())
	assert.Equal(t, "Welcome to the show.", out.Transcript)
	assert.Contains(t, out.ShowNotes, "# Acme Weekly")
	assert.Contains(t, out.ShowNotes, "2:00")
}

func TestRunPackage_MissingAudioRejected(t *testing.T) {
	_, err := runPackage(context.Background(), types.PackageInput{
		Config:    stageConfig(),
		Narrative: "text",
	}, Deps{})
	assert.Error(t, err)
}
