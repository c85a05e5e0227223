// Package gateway abstracts the three external capabilities the pipeline
// depends on: LLM completion, text-to-speech synthesis and HTTP fetching.
// Each capability has exactly three backends (stub, replay, live) selected at
// construction time; stages never know which backend they hold.
package gateway

import (
	"context"
	"fmt"
	"io"
)

// CompletionRequest asks the LLM capability for a completion. Task is a
// stable identifier for the kind of call (e.g. "outline"); it feeds the
// replay fingerprint and lets the stub return shape-appropriate output.
type CompletionRequest struct {
	Task   string `json:"task"`
	Prompt string `json:"prompt"`
	JSON   bool   `json:"json,omitempty"`
}

// CompletionResponse is the LLM capability's answer.
type CompletionResponse struct {
	Text string `json:"text"`
}

// LLM is the language-model capability.
type LLM interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// SynthesisRequest asks the TTS capability to render text to audio.
type SynthesisRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed,omitempty"`
}

// SynthesisResponse holds the rendered audio.
type SynthesisResponse struct {
	Audio           []byte  `json:"audio"`
	Format          string  `json:"format"`
	DurationSeconds float64 `json:"durationSeconds"`
}

// TTS is the text-to-speech capability.
type TTS interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResponse, error)
}

// FetchResult holds fetched page content.
type FetchResult struct {
	URL        string `json:"url"`
	StatusCode int    `json:"statusCode"`
	HTML       string `json:"html"`
	Text       string `json:"text,omitempty"`
	Title      string `json:"title,omitempty"`
}

// HTTP is the web-fetch capability.
type HTTP interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Provider selects a gateway backend. The set is closed: anything other than
// the three constants is a construction-time error, never a runtime surprise.
type Provider string

// Provider backends.
const (
	ProviderStub   Provider = "stub"
	ProviderReplay Provider = "replay"
	ProviderLive   Provider = "live"
)

// ParseProvider maps a flag string to a Provider. Empty defaults to stub.
func ParseProvider(s string) (Provider, error) {
	switch s {
	case "", string(ProviderStub):
		return ProviderStub, nil
	case string(ProviderReplay):
		return ProviderReplay, nil
	case string(ProviderLive), "openai", "gemini":
		// Historical flag values named the vendor rather than the mode.
		return ProviderLive, nil
	default:
		return "", fmt.Errorf("unknown gateway provider %q (want stub, replay or live)", s)
	}
}

// Config selects the concrete backend per capability, orthogonal to the
// pipeline input.
type Config struct {
	LLMProvider  Provider
	TTSProvider  Provider
	HTTPProvider Provider

	CassetteKey  string
	CassettePath string
	APIKey       string

	// Record makes live gateways write cassettes as they go, so a later
	// replay run is free.
	Record bool

	// UseBrowser lets the live HTTP gateway fall back to headless Chrome
	// for JavaScript-rendered sources.
	UseBrowser bool
}

// Set bundles one gateway per capability for injection into stages.
type Set struct {
	LLM  LLM
	TTS  TTS
	HTTP HTTP
}

// Close releases any resources held by the underlying gateways.
func (s Set) Close() error {
	var firstErr error
	for _, g := range []any{s.LLM, s.TTS, s.HTTP} {
		if closer, ok := g.(io.Closer); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// NewSet builds a gateway set from configuration. Replay backends require a
// cassette location; live LLM and TTS require an API key.
func NewSet(ctx context.Context, cfg Config) (Set, error) {
	var set Set

	var cassettes *CassetteStore
	needsCassettes := cfg.LLMProvider == ProviderReplay || cfg.TTSProvider == ProviderReplay ||
		cfg.HTTPProvider == ProviderReplay || cfg.Record
	if needsCassettes {
		if cfg.CassettePath == "" || cfg.CassetteKey == "" {
			return Set{}, fmt.Errorf("cassette path and key are required for replay or recording gateways")
		}
		cassettes = NewCassetteStore(cfg.CassettePath, cfg.CassetteKey)
	}

	llm, err := newLLM(ctx, cfg, cassettes)
	if err != nil {
		return Set{}, err
	}
	set.LLM = llm

	tts, err := newTTS(cfg, cassettes)
	if err != nil {
		return Set{}, err
	}
	set.TTS = tts

	httpGW, err := newHTTP(cfg, cassettes)
	if err != nil {
		return Set{}, err
	}
	set.HTTP = httpGW

	return set, nil
}

func newLLM(ctx context.Context, cfg Config, cassettes *CassetteStore) (LLM, error) {
	switch cfg.LLMProvider {
	case ProviderStub, "":
		return &StubLLM{}, nil
	case ProviderReplay:
		return &ReplayLLM{Cassettes: cassettes}, nil
	case ProviderLive:
		live, err := NewGeminiLLM(ctx, cfg.APIKey)
		if err != nil {
			return nil, err
		}
		if cfg.Record && cassettes != nil {
			return &RecordingLLM{Inner: live, Cassettes: cassettes}, nil
		}
		return live, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

func newTTS(cfg Config, cassettes *CassetteStore) (TTS, error) {
	switch cfg.TTSProvider {
	case ProviderStub, "":
		return &StubTTS{}, nil
	case ProviderReplay:
		return &ReplayTTS{Cassettes: cassettes}, nil
	case ProviderLive:
		live, err := NewOpenAITTS(cfg.APIKey)
		if err != nil {
			return nil, err
		}
		if cfg.Record && cassettes != nil {
			return &RecordingTTS{Inner: live, Cassettes: cassettes}, nil
		}
		return live, nil
	default:
		return nil, fmt.Errorf("unknown TTS provider %q", cfg.TTSProvider)
	}
}

func newHTTP(cfg Config, cassettes *CassetteStore) (HTTP, error) {
	switch cfg.HTTPProvider {
	case ProviderStub, "":
		return &StubHTTP{}, nil
	case ProviderReplay:
		return &ReplayHTTP{Cassettes: cassettes}, nil
	case ProviderLive:
		live := NewLiveHTTP(cfg.UseBrowser)
		if cfg.Record && cassettes != nil {
			return &RecordingHTTP{Inner: live, Cassettes: cassettes}, nil
		}
		return live, nil
	default:
		return nil, fmt.Errorf("unknown HTTP provider %q", cfg.HTTPProvider)
	}
}
