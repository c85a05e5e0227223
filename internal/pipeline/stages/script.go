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

// wordsPerMinute is the pacing assumption used to size section text.
const wordsPerMinute = 150

type scriptResponse struct {
	Sections []types.ScriptSection `json:"sections"`
}

// runScript writes the spoken text for every outline section and assembles
// the narrative the TTS stage will speak.
func runScript(ctx context.Context, in types.ScriptInput, deps Deps) (*types.ScriptOutput, error) {
	if len(in.Outline.Sections) == 0 {
		return nil, fmt.Errorf("outline has no sections; rerun outline")
	}

	resp, err := deps.Gateways.LLM.Complete(ctx, gateway.CompletionRequest{
		Task:   "script",
		Prompt: scriptPrompt(in.Config, in.Outline),
		JSON:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("script generation failed: %w", err)
	}

	if err := schemas.Validate(schemas.Script, []byte(resp.Text)); err != nil {
		return nil, fmt.Errorf("script rejected: %w", err)
	}

	var parsed scriptResponse
	if err := json.Unmarshal([]byte(resp.Text), &parsed); err != nil {
		return nil, fmt.Errorf("script returned invalid JSON: %w", err)
	}
	if len(parsed.Sections) == 0 {
		return nil, fmt.Errorf("script has no sections")
	}

	texts := make([]string, 0, len(parsed.Sections))
	for _, section := range parsed.Sections {
		if strings.TrimSpace(section.Text) == "" {
			return nil, fmt.Errorf("script section %q is empty", section.Heading)
		}
		texts = append(texts, section.Text)
	}
	narrative := strings.Join(texts, "\n\n")

	script := types.Script{
		Title:     in.Config.Title,
		Narrative: narrative,
		Sections:  parsed.Sections,
		WordCount: len(strings.Fields(narrative)),
	}
	return &types.ScriptOutput{Config: in.Config, Script: script}, nil
}

func scriptPrompt(cfg types.PreparedConfig, outline types.Outline) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write the narration for a podcast episode titled %q about %s. ", outline.Title, cfg.Company.Name)
	fmt.Fprintf(&b, "Aim for roughly %d words per minute of target time. Conversational, single narrator, no stage directions.\n\n", wordsPerMinute)
	for _, section := range outline.Sections {
		fmt.Fprintf(&b, "Section %q (%ds):\n", section.Heading, section.TargetSeconds)
		for _, point := range section.Points {
			fmt.Fprintf(&b, "- %s\n", point)
		}
	}
	b.WriteString("\n" + `Respond with JSON: {"sections":[{"heading":"...","text":"..."}]}`)
	return b.String()
}
