package gateway

import (
	"context"
	"fmt"
	"strings"
)

// StubLLM returns deterministic, schema-valid placeholder completions
// instantly and at zero cost. Output depends only on the request's Task, so
// repeated runs are bit-for-bit identical.
type StubLLM struct{}

// Complete returns the canned response for the request's task.
func (s *StubLLM) Complete(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
	text, ok := stubCompletions[req.Task]
	if !ok {
		if req.JSON {
			return &CompletionResponse{Text: "{}"}, nil
		}
		return &CompletionResponse{Text: "Stub completion for task " + req.Task + "."}, nil
	}
	return &CompletionResponse{Text: text}, nil
}

var stubCompletions = map[string]string{
	"discover_sources": `{"sources":[
  {"url":"https://example.com/news/company-update","title":"Company Update"},
  {"url":"https://example.com/press/industry-report","title":"Industry Report"}
]}`,
	"disambiguate": `{"drop":[]}`,
	"summarize":    `{"summary":"The company continued steady execution this period, shipping product updates and expanding its market footprint according to the gathered sources."}`,
	"contrast":     `{"contrasts":[{"competitor":"Rival Corp","angle":"product velocity","insight":"The company is shipping faster than Rival Corp in the covered period."}]}`,
	"outline": `{"title":"Episode","sections":[
  {"heading":"Opening","points":["Welcome listeners","Set up the episode topic"]},
  {"heading":"Company Developments","points":["Recent announcements","What the sources say"]},
  {"heading":"Competitive Landscape","points":["How rivals compare"]},
  {"heading":"Closing","points":["Key takeaways","Sign off"]}
]}`,
	"script": `{"title":"Episode","sections":[
  {"heading":"Opening","text":"Welcome to the show. Today we take a close look at what the company has been up to and why it matters for the industry at large."},
  {"heading":"Company Developments","text":"Over the recent period the company shipped a series of product updates and expanded its footprint. The sources we gathered point to steady, deliberate execution rather than splashy announcements."},
  {"heading":"Competitive Landscape","text":"Set against its rivals, the company is moving faster on product velocity while competitors focus on consolidation. That difference shapes the choices customers face this year."},
  {"heading":"Closing","text":"That is the picture this week: consistent delivery, a widening moat, and a competitive field that has to respond. Thanks for listening, and see you next episode."}
]}`,
	"qa": `{"approved":true,"issues":[]}`,
}

// stubWordsPerSecond approximates a narration pace of 150 words per minute.
const stubWordsPerSecond = 2.5

// StubTTS synthesizes deterministic placeholder audio: a repeating byte
// pattern sized from the input text, with a duration estimated from word
// count and speed.
type StubTTS struct{}

// Synthesize renders the placeholder audio.
func (s *StubTTS) Synthesize(_ context.Context, req SynthesisRequest) (*SynthesisResponse, error) {
	words := len(strings.Fields(req.Text))
	if words == 0 {
		return nil, &ProviderError{Capability: "tts", Message: "empty synthesis text"}
	}
	speed := req.Speed
	if speed <= 0 {
		speed = 1.0
	}

	audio := make([]byte, words*64)
	for i := range audio {
		audio[i] = byte('A' + i%26)
	}

	return &SynthesisResponse{
		Audio:           audio,
		Format:          "mp3",
		DurationSeconds: float64(words) / (stubWordsPerSecond * speed),
	}, nil
}

// StubHTTP returns a deterministic placeholder page for any URL.
type StubHTTP struct{}

// Fetch returns the placeholder page.
func (s *StubHTTP) Fetch(_ context.Context, url string) (*FetchResult, error) {
	html := fmt.Sprintf(`<html><head><title>Stub page for %s</title></head><body><main><article>
<h1>Placeholder coverage</h1>
<p>This is deterministic placeholder copy standing in for the content at %s.
It describes recent company developments, product launches, and market
positioning in enough detail for downstream summarization to have material
to work with.</p>
</article></main></body></html>`, url, url)

	return &FetchResult{
		URL:        url,
		StatusCode: 200,
		HTML:       html,
		Title:      "Stub page for " + url,
	}, nil
}
