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

// maxCorpusChars bounds how much document text one summarization prompt sees.
const maxCorpusChars = 12000

type summaryResponse struct {
	Summary string `json:"summary"`
}

// runSummarize produces one synthesis per topic from that topic's documents.
// Topics with no documents are skipped rather than hallucinated.
func runSummarize(ctx context.Context, in types.SummarizeInput, deps Deps) (*types.SummarizeOutput, error) {
	if len(in.Documents) == 0 {
		return nil, fmt.Errorf("no documents to summarize; rerun extract")
	}

	byTopic := make(map[string][]types.Document)
	for _, doc := range in.Documents {
		byTopic[doc.Topic] = append(byTopic[doc.Topic], doc)
	}

	out := &types.SummarizeOutput{Config: in.Config}
	for _, topic := range in.Config.Topics {
		docs := byTopic[topic]
		if len(docs) == 0 {
			continue
		}
		deps.Emit(events.StageProgress(StageSummarize, fmt.Sprintf("summarizing %q from %d documents", topic, len(docs))))

		resp, err := deps.Gateways.LLM.Complete(ctx, gateway.CompletionRequest{
			Task:   "summarize",
			Prompt: summarizePrompt(in.Config, topic, docs),
			JSON:   true,
		})
		if err != nil {
			return nil, fmt.Errorf("summarization of topic %q failed: %w", topic, err)
		}

		var parsed summaryResponse
		if err := json.Unmarshal([]byte(resp.Text), &parsed); err != nil {
			return nil, fmt.Errorf("summarization of topic %q returned invalid JSON: %w", topic, err)
		}
		if strings.TrimSpace(parsed.Summary) == "" {
			return nil, fmt.Errorf("summarization of topic %q returned an empty summary", topic)
		}

		sources := make([]string, 0, len(docs))
		for _, doc := range docs {
			sources = append(sources, doc.URL)
		}
		out.Summaries = append(out.Summaries, types.TopicSummary{
			Topic:   topic,
			Summary: parsed.Summary,
			Sources: sources,
		})
	}

	if len(out.Summaries) == 0 {
		return nil, fmt.Errorf("no topic had documents to summarize")
	}
	return out, nil
}

func summarizePrompt(cfg types.PreparedConfig, topic string, docs []types.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize what the following sources say about %q for the company %s. ", topic, cfg.Company.Name)
	b.WriteString(`Respond with JSON: {"summary":"..."} in 2-4 sentences.` + "\n\n")

	remaining := maxCorpusChars
	for _, doc := range docs {
		if remaining <= 0 {
			break
		}
		text := doc.Text
		if len(text) > remaining {
			text = text[:remaining]
		}
		remaining -= len(text)
		fmt.Fprintf(&b, "Source %s:\n%s\n\n", doc.URL, text)
	}
	return b.String()
}
