package stages

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mangalrohit/podcastgen/internal/gateway"
	"github.com/mangalrohit/podcastgen/internal/types"
)

type contrastResponse struct {
	Contrasts []types.Contrast `json:"contrasts"`
}

// runContrast derives competitive angles from the topic summaries. With no
// competitors configured the stage passes the summaries through untouched.
func runContrast(ctx context.Context, in types.ContrastInput, deps Deps) (*types.ContrastOutput, error) {
	out := &types.ContrastOutput{Config: in.Config, Summaries: in.Summaries}
	if len(in.Summaries) == 0 {
		return nil, fmt.Errorf("no summaries to contrast; rerun summarize")
	}
	if len(in.Config.Competitors) == 0 {
		return out, nil
	}

	resp, err := deps.Gateways.LLM.Complete(ctx, gateway.CompletionRequest{
		Task:   "contrast",
		Prompt: contrastPrompt(in.Config, in.Summaries),
		JSON:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("contrast analysis failed: %w", err)
	}

	var parsed contrastResponse
	if err := json.Unmarshal([]byte(resp.Text), &parsed); err != nil {
		return nil, fmt.Errorf("contrast analysis returned invalid JSON: %w", err)
	}

	out.Contrasts = parsed.Contrasts
	return out, nil
}

func contrastPrompt(cfg types.PreparedConfig, summaries []types.TopicSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Given these findings about %s, identify competitive angles versus: ", cfg.Company.Name)
	names := make([]string, 0, len(cfg.Competitors))
	for _, competitor := range cfg.Competitors {
		names = append(names, competitor.Name)
	}
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(".\n\n")
	for _, summary := range summaries {
		fmt.Fprintf(&b, "%s: %s\n", summary.Topic, summary.Summary)
	}
	b.WriteString(`Respond with JSON: {"contrasts":[{"competitor":"...","angle":"...","insight":"..."}]}`)
	return b.String()
}
