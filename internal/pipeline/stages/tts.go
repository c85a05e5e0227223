package stages

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mangalrohit/podcastgen/internal/events"
	"github.com/mangalrohit/podcastgen/internal/gateway"
	"github.com/mangalrohit/podcastgen/internal/types"
)

// runTTS renders the narrative to audio one paragraph at a time and returns
// the concatenated bytes base64-encoded. The engine writes the bytes to the
// artifact store and persists a redacted copy of this result.
func runTTS(ctx context.Context, in types.TTSInput, deps Deps) (*types.TTSResult, error) {
	paragraphs := splitParagraphs(in.Narrative)
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("no narrative to synthesize; rerun script")
	}

	var audio []byte
	var duration float64
	format := ""
	for i, paragraph := range paragraphs {
		deps.Emit(events.StageProgress(StageTTS, fmt.Sprintf("synthesizing paragraph %d/%d", i+1, len(paragraphs))))

		resp, err := deps.Gateways.TTS.Synthesize(ctx, gateway.SynthesisRequest{
			Text:  paragraph,
			Voice: in.Config.Voice.VoiceID,
			Speed: in.Config.Voice.Speed,
		})
		if err != nil {
			return nil, fmt.Errorf("synthesis of paragraph %d failed: %w", i+1, err)
		}
		audio = append(audio, resp.Audio...)
		duration += resp.DurationSeconds
		format = resp.Format
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("synthesis produced no audio")
	}

	return &types.TTSResult{
		Config:          in.Config,
		Narrative:       in.Narrative,
		DurationSeconds: duration,
		Format:          format,
		Voice:           in.Config.Voice.VoiceID,
		AudioBase64:     base64.StdEncoding.EncodeToString(audio),
	}, nil
}

func splitParagraphs(narrative string) []string {
	var paragraphs []string
	for _, chunk := range strings.Split(narrative, "\n\n") {
		if trimmed := strings.TrimSpace(chunk); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}
