package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// openAISpeechURL is the OpenAI speech synthesis REST endpoint.
const openAISpeechURL = "https://api.openai.com/v1/audio/speech"

// DefaultTTSModel is the OpenAI model used for live synthesis.
const DefaultTTSModel = "tts-1"

// liveWordsPerSecond approximates narration pace for duration estimation;
// the speech endpoint does not report duration.
const liveWordsPerSecond = 2.5

// OpenAITTS is the live TTS gateway. It calls the OpenAI audio/speech REST
// endpoint directly.
type OpenAITTS struct {
	apiKey string
	client *http.Client
}

// NewOpenAITTS creates a live TTS gateway.
func NewOpenAITTS(apiKey string) (*OpenAITTS, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required for the live TTS gateway")
	}
	return &OpenAITTS{
		apiKey: apiKey,
		client: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

type speechRequest struct {
	Model string  `json:"model"`
	Input string  `json:"input"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed,omitempty"`
}

// Synthesize renders the text to MP3 audio.
func (o *OpenAITTS) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, &ProviderError{Capability: "tts", Message: "empty synthesis text"}
	}

	payload, err := json.Marshal(speechRequest{
		Model: DefaultTTSModel,
		Input: req.Text,
		Voice: req.Voice,
		Speed: req.Speed,
	})
	if err != nil {
		return nil, &ProviderError{Capability: "tts", Message: "failed to encode request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, openAISpeechURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &ProviderError{Capability: "tts", Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Capability: "tts", Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Capability: "tts", Message: "failed to read response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{
			Capability: "tts",
			Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, truncate(string(body), 200)),
		}
	}

	speed := req.Speed
	if speed <= 0 {
		speed = 1.0
	}
	words := len(strings.Fields(req.Text))

	return &SynthesisResponse{
		Audio:           body,
		Format:          "mp3",
		DurationSeconds: float64(words) / (liveWordsPerSecond * speed),
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
