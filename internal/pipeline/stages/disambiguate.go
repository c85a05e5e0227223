package stages

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mangalrohit/podcastgen/internal/gateway"
	"github.com/mangalrohit/podcastgen/internal/types"
)

type disambiguationVerdict struct {
	Drop []struct {
		Index  int    `json:"index"`
		Reason string `json:"reason,omitempty"`
	} `json:"drop"`
}

// runDisambiguate filters out candidates that are about a different entity
// with the same or a similar name. Candidates the LLM does not explicitly
// drop are kept.
func runDisambiguate(ctx context.Context, in types.DisambiguateInput, deps Deps) (*types.DisambiguateOutput, error) {
	out := &types.DisambiguateOutput{Config: in.Config}
	if len(in.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates to disambiguate; rerun discover")
	}

	resp, err := deps.Gateways.LLM.Complete(ctx, gateway.CompletionRequest{
		Task:   "disambiguate",
		Prompt: disambiguatePrompt(in.Config, in.Candidates),
		JSON:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("disambiguation failed: %w", err)
	}

	var verdict disambiguationVerdict
	if err := json.Unmarshal([]byte(resp.Text), &verdict); err != nil {
		return nil, fmt.Errorf("disambiguation returned invalid JSON: %w", err)
	}

	dropped := make(map[int]string)
	for _, d := range verdict.Drop {
		if d.Index >= 0 && d.Index < len(in.Candidates) {
			dropped[d.Index] = d.Reason
		}
	}

	for i, candidate := range in.Candidates {
		if reason, ok := dropped[i]; ok {
			out.Dropped = append(out.Dropped, types.DroppedCandidate{URL: candidate.URL, Reason: reason})
			continue
		}
		out.Candidates = append(out.Candidates, candidate)
	}

	if len(out.Candidates) == 0 {
		return nil, fmt.Errorf("disambiguation dropped every candidate for %s", in.Config.Company.Name)
	}
	return out, nil
}

func disambiguatePrompt(cfg types.PreparedConfig, candidates []types.SourceCandidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The following sources were found for the company %s", cfg.Company.Name)
	if cfg.Industry != "" {
		fmt.Fprintf(&b, " in the %s industry", cfg.Industry)
	}
	b.WriteString(". Identify any that are about a different entity with a similar name.\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i, c.URL, c.Title)
	}
	b.WriteString(`Respond with JSON: {"drop":[{"index":0,"reason":"..."}]} listing only sources to drop.`)
	return b.String()
}
