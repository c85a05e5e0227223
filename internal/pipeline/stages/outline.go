package stages

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mangalrohit/podcastgen/internal/gateway"
	"github.com/mangalrohit/podcastgen/internal/schemas"
	"github.com/mangalrohit/podcastgen/internal/types"
)

// runOutline plans the episode structure from the summaries and contrasts.
// The raw LLM output is schema-validated before it is trusted; the episode
// title and section timings are then imposed from the configuration.
func runOutline(ctx context.Context, in types.OutlineInput, deps Deps) (*types.OutlineOutput, error) {
	if len(in.Summaries) == 0 {
		return nil, fmt.Errorf("no summaries to outline; rerun summarize")
	}

	resp, err := deps.Gateways.LLM.Complete(ctx, gateway.CompletionRequest{
		Task:   "outline",
		Prompt: outlinePrompt(in.Config, in.Summaries, in.Contrasts),
		JSON:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("outline generation failed: %w", err)
	}

	if err := schemas.Validate(schemas.Outline, []byte(resp.Text)); err != nil {
		return nil, fmt.Errorf("outline rejected: %w", err)
	}

	var outline types.Outline
	if err := json.Unmarshal([]byte(resp.Text), &outline); err != nil {
		return nil, fmt.Errorf("outline returned invalid JSON: %w", err)
	}
	if len(outline.Sections) == 0 {
		return nil, fmt.Errorf("outline has no sections")
	}

	outline.Title = in.Config.Title
	distributeTargetSeconds(&outline, in.Config.DurationMinutes)

	return &types.OutlineOutput{
		Config:    in.Config,
		Summaries: in.Summaries,
		Contrasts: in.Contrasts,
		Outline:   outline,
	}, nil
}

// distributeTargetSeconds splits the episode duration evenly across sections
// unless the model already assigned timings that roughly add up.
func distributeTargetSeconds(outline *types.Outline, durationMinutes int) {
	total := durationMinutes * 60
	assigned := 0
	for _, section := range outline.Sections {
		assigned += section.TargetSeconds
	}
	if assigned >= total/2 {
		return
	}

	per := total / len(outline.Sections)
	for i := range outline.Sections {
		outline.Sections[i].TargetSeconds = per
	}
	outline.Sections[len(outline.Sections)-1].TargetSeconds += total - per*len(outline.Sections)
}

func outlinePrompt(cfg types.PreparedConfig, summaries []types.TopicSummary, contrasts []types.Contrast) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a %d-minute podcast episode about %s titled %q.\n\n", cfg.DurationMinutes, cfg.Company.Name, cfg.Title)
	b.WriteString("Findings:\n")
	for _, summary := range summaries {
		fmt.Fprintf(&b, "- %s: %s\n", summary.Topic, summary.Summary)
	}
	if len(contrasts) > 0 {
		b.WriteString("Competitive angles:\n")
		for _, contrast := range contrasts {
			fmt.Fprintf(&b, "- vs %s: %s\n", contrast.Competitor, contrast.Angle)
		}
	}
	b.WriteString("\n" + `Respond with JSON: {"title":"...","sections":[{"heading":"...","points":["..."],"targetSeconds":120}]}`)
	return b.String()
}
