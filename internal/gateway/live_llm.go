package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is the model used for live completions.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiLLM is the live LLM gateway backed by Google Gemini. Costs money and
// is subject to upstream rate limits; use stub or replay wherever
// determinism matters.
type GeminiLLM struct {
	client *genai.Client
	model  string
}

// NewGeminiLLM creates a live Gemini gateway.
func NewGeminiLLM(ctx context.Context, apiKey string) (*GeminiLLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required for the live LLM gateway")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &ProviderError{Capability: "llm", Message: "failed to create client", Cause: err}
	}

	return &GeminiLLM{client: client, model: DefaultGeminiModel}, nil
}

// Complete generates a completion, in JSON mode when the request asks for it.
func (g *GeminiLLM) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, &ProviderError{Capability: "llm", Message: "generation failed", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}
	if req.JSON {
		text = cleanJSONBlock(text)
	}

	return &CompletionResponse{Text: text}, nil
}

// Close releases the underlying client.
func (g *GeminiLLM) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// extractTextFromResponse pulls the text parts out of a Gemini response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &ProviderError{Capability: "llm", Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &ProviderError{Capability: "llm", Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", &ProviderError{Capability: "llm", Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
