package gateway

import "context"

// ReplayLLM plays back recorded LLM completions. A request with no matching
// recording fails with CassetteMissError.
type ReplayLLM struct {
	Cassettes *CassetteStore
}

// Complete looks up the recorded response for the request fingerprint.
func (r *ReplayLLM) Complete(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
	fp := Fingerprint("llm", req)
	var resp CompletionResponse
	ok, err := r.Cassettes.Load("llm", fp, &resp)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &CassetteMissError{Capability: "llm", Fingerprint: fp, Key: r.Cassettes.Key()}
	}
	return &resp, nil
}

// ReplayTTS plays back recorded syntheses.
type ReplayTTS struct {
	Cassettes *CassetteStore
}

// Synthesize looks up the recorded audio for the request fingerprint.
func (r *ReplayTTS) Synthesize(_ context.Context, req SynthesisRequest) (*SynthesisResponse, error) {
	fp := Fingerprint("tts", req)
	var resp SynthesisResponse
	ok, err := r.Cassettes.Load("tts", fp, &resp)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &CassetteMissError{Capability: "tts", Fingerprint: fp, Key: r.Cassettes.Key()}
	}
	return &resp, nil
}

// ReplayHTTP plays back recorded fetches, fingerprinted by URL.
type ReplayHTTP struct {
	Cassettes *CassetteStore
}

// Fetch looks up the recorded page for the URL fingerprint.
func (r *ReplayHTTP) Fetch(_ context.Context, url string) (*FetchResult, error) {
	fp := Fingerprint("http", url)
	var resp FetchResult
	ok, err := r.Cassettes.Load("http", fp, &resp)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &CassetteMissError{Capability: "http", Fingerprint: fp, Key: r.Cassettes.Key()}
	}
	return &resp, nil
}

// RecordingLLM forwards to a live gateway and records successful responses
// so a later replay run is free and deterministic.
type RecordingLLM struct {
	Inner     LLM
	Cassettes *CassetteStore
}

// Complete forwards the request and records the response.
func (r *RecordingLLM) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	resp, err := r.Inner.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	if saveErr := r.Cassettes.Save("llm", Fingerprint("llm", req), resp); saveErr != nil {
		return nil, saveErr
	}
	return resp, nil
}

// RecordingTTS forwards to a live gateway and records successful syntheses.
type RecordingTTS struct {
	Inner     TTS
	Cassettes *CassetteStore
}

// Synthesize forwards the request and records the response.
func (r *RecordingTTS) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResponse, error) {
	resp, err := r.Inner.Synthesize(ctx, req)
	if err != nil {
		return nil, err
	}
	if saveErr := r.Cassettes.Save("tts", Fingerprint("tts", req), resp); saveErr != nil {
		return nil, saveErr
	}
	return resp, nil
}

// RecordingHTTP forwards to a live gateway and records successful fetches.
type RecordingHTTP struct {
	Inner     HTTP
	Cassettes *CassetteStore
}

// Fetch forwards the request and records the response.
func (r *RecordingHTTP) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	resp, err := r.Inner.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if saveErr := r.Cassettes.Save("http", Fingerprint("http", url), resp); saveErr != nil {
		return nil, saveErr
	}
	return resp, nil
}
