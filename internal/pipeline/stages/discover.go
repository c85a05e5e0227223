package stages

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mangalrohit/podcastgen/internal/events"
	"github.com/mangalrohit/podcastgen/internal/gateway"
	"github.com/mangalrohit/podcastgen/internal/types"
)

// maxCandidatesPerTopic caps how many sources one topic contributes.
const maxCandidatesPerTopic = 5

type discoveredSources struct {
	Sources []struct {
		URL   string `json:"url"`
		Title string `json:"title,omitempty"`
	} `json:"sources"`
}

// runDiscover asks the LLM capability for candidate web sources per topic.
func runDiscover(ctx context.Context, in types.DiscoverInput, deps Deps) (*types.DiscoverOutput, error) {
	out := &types.DiscoverOutput{Config: in.Config}
	seen := make(map[string]bool)

	for _, topic := range in.Config.Topics {
		deps.Emit(events.StageProgress(StageDiscover, fmt.Sprintf("discovering sources for %q", topic)))

		resp, err := deps.Gateways.LLM.Complete(ctx, gateway.CompletionRequest{
			Task:   "discover_sources",
			Prompt: discoverPrompt(in.Config, topic),
			JSON:   true,
		})
		if err != nil {
			return nil, fmt.Errorf("source discovery for topic %q failed: %w", topic, err)
		}

		var found discoveredSources
		if err := json.Unmarshal([]byte(resp.Text), &found); err != nil {
			return nil, fmt.Errorf("source discovery for topic %q returned invalid JSON: %w", topic, err)
		}

		count := 0
		for _, src := range found.Sources {
			url := strings.TrimSpace(src.URL)
			if url == "" || seen[url+"|"+topic] || count >= maxCandidatesPerTopic {
				continue
			}
			seen[url+"|"+topic] = true
			count++
			out.Candidates = append(out.Candidates, types.SourceCandidate{
				URL:    url,
				Title:  src.Title,
				Topic:  topic,
				Entity: in.Config.Company.Name,
			})
		}
	}

	if len(out.Candidates) == 0 {
		return nil, fmt.Errorf("source discovery produced no candidates for %s", in.Config.Company.Name)
	}
	return out, nil
}

func discoverPrompt(cfg types.PreparedConfig, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Find up to %d recent, authoritative web sources covering %q for the company %s",
		maxCandidatesPerTopic, topic, cfg.Company.Name)
	if cfg.Industry != "" {
		fmt.Fprintf(&b, " (industry: %s)", cfg.Industry)
	}
	if cfg.Company.Domain != "" {
		fmt.Fprintf(&b, ". The company's own site is %s", cfg.Company.Domain)
	}
	b.WriteString(`. Respond with JSON: {"sources":[{"url":"...","title":"..."}]}`)
	return b.String()
}
