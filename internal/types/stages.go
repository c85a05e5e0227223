package types

// PreparedConfig is the frozen episode configuration produced by the prepare
// stage. Every later stage output embeds it so that any stage's input can be
// rebuilt from its predecessor's output alone.
type PreparedConfig struct {
	PodcastID       string    `json:"podcastId"`
	Title           string    `json:"title"`
	Company         Company   `json:"company"`
	Industry        string    `json:"industry,omitempty"`
	Competitors     []Company `json:"competitors,omitempty"`
	Topics          []string  `json:"topics"`
	DurationMinutes int       `json:"durationMinutes"`
	Voice           Voice     `json:"voice"`
	RobotsPolicy    string    `json:"robotsPolicy"`
	SourcePolicies  []string  `json:"sourcePolicies,omitempty"`
}

// PrepareOutput is the first stage artifact.
type PrepareOutput struct {
	Config PreparedConfig `json:"config"`
}

// SourceCandidate is one discovered web source before filtering.
type SourceCandidate struct {
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
	Topic  string `json:"topic"`
	Entity string `json:"entity,omitempty"`
}

type DiscoverInput struct {
	Config PreparedConfig `json:"config"`
}

type DiscoverOutput struct {
	Config     PreparedConfig    `json:"config"`
	Candidates []SourceCandidate `json:"candidates"`
}

type DisambiguateInput struct {
	Config     PreparedConfig    `json:"config"`
	Candidates []SourceCandidate `json:"candidates"`
}

// DroppedCandidate records why a candidate was filtered out.
type DroppedCandidate struct {
	URL    string `json:"url"`
	Reason string `json:"reason,omitempty"`
}

type DisambiguateOutput struct {
	Config     PreparedConfig     `json:"config"`
	Candidates []SourceCandidate  `json:"candidates"`
	Dropped    []DroppedCandidate `json:"dropped,omitempty"`
}

type RankInput struct {
	Config     PreparedConfig    `json:"config"`
	Candidates []SourceCandidate `json:"candidates"`
	MaxSources int               `json:"maxSources,omitempty"`
}

// RankedSource is a candidate with its relevance score.
type RankedSource struct {
	SourceCandidate
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
}

type RankOutput struct {
	Config PreparedConfig `json:"config"`
	Ranked []RankedSource `json:"ranked"`
}

type ScrapeInput struct {
	Config  PreparedConfig `json:"config"`
	Sources []RankedSource `json:"sources"`
}

// ScrapedPage is one fetch result, successful or not.
type ScrapedPage struct {
	URL        string `json:"url"`
	Topic      string `json:"topic"`
	StatusCode int    `json:"statusCode,omitempty"`
	HTML       string `json:"html,omitempty"`
	Text       string `json:"text,omitempty"`
	Error      string `json:"error,omitempty"`
}

type ScrapeOutput struct {
	Config PreparedConfig `json:"config"`
	Pages  []ScrapedPage  `json:"pages"`
}

type ExtractInput struct {
	Config PreparedConfig `json:"config"`
	Pages  []ScrapedPage  `json:"pages"`
}

// Document is the cleaned text of one scraped page.
type Document struct {
	URL       string `json:"url"`
	Topic     string `json:"topic"`
	Title     string `json:"title,omitempty"`
	Text      string `json:"text"`
	WordCount int    `json:"wordCount"`
}

type ExtractOutput struct {
	Config    PreparedConfig `json:"config"`
	Documents []Document     `json:"documents"`
}

type SummarizeInput struct {
	Config    PreparedConfig `json:"config"`
	Documents []Document     `json:"documents"`
}

// TopicSummary is the synthesis of one topic's documents.
type TopicSummary struct {
	Topic   string   `json:"topic"`
	Summary string   `json:"summary"`
	Sources []string `json:"sources,omitempty"`
}

type SummarizeOutput struct {
	Config    PreparedConfig `json:"config"`
	Summaries []TopicSummary `json:"summaries"`
}

type ContrastInput struct {
	Config    PreparedConfig `json:"config"`
	Summaries []TopicSummary `json:"summaries"`
}

// Contrast is one competitive angle against a named competitor.
type Contrast struct {
	Competitor string `json:"competitor"`
	Angle      string `json:"angle"`
	Insight    string `json:"insight,omitempty"`
}

type ContrastOutput struct {
	Config    PreparedConfig `json:"config"`
	Summaries []TopicSummary `json:"summaries"`
	Contrasts []Contrast     `json:"contrasts,omitempty"`
}

type OutlineInput struct {
	Config    PreparedConfig `json:"config"`
	Summaries []TopicSummary `json:"summaries"`
	Contrasts []Contrast     `json:"contrasts,omitempty"`
}

// OutlineSection is one planned segment of the episode.
type OutlineSection struct {
	Heading       string   `json:"heading"`
	Points        []string `json:"points"`
	TargetSeconds int      `json:"targetSeconds,omitempty"`
}

// Outline is the episode structure the script stage writes against.
type Outline struct {
	Title    string           `json:"title"`
	Sections []OutlineSection `json:"sections"`
}

type OutlineOutput struct {
	Config    PreparedConfig `json:"config"`
	Summaries []TopicSummary `json:"summaries"`
	Contrasts []Contrast     `json:"contrasts,omitempty"`
	Outline   Outline        `json:"outline"`
}

type ScriptInput struct {
	Config  PreparedConfig `json:"config"`
	Outline Outline        `json:"outline"`
}

// ScriptSection is the spoken text for one outline section.
type ScriptSection struct {
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

// Script is the full episode script. Narrative is the concatenation of all
// section texts and is what the TTS stage speaks.
type Script struct {
	Title     string          `json:"title"`
	Narrative string          `json:"narrative"`
	Sections  []ScriptSection `json:"sections"`
	WordCount int             `json:"wordCount"`
}

type ScriptOutput struct {
	Config PreparedConfig `json:"config"`
	Script Script         `json:"script"`
}

type QAInput struct {
	Config PreparedConfig `json:"config"`
	Script Script         `json:"script"`
}

// QAIssue is one problem the review found in the script.
type QAIssue struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// QAReport is the review verdict. A non-approved script stops the run.
type QAReport struct {
	Approved bool      `json:"approved"`
	Issues   []QAIssue `json:"issues,omitempty"`
}

type QAOutput struct {
	Config PreparedConfig `json:"config"`
	Script Script         `json:"script"`
	Report QAReport       `json:"report"`
}

type TTSInput struct {
	Config    PreparedConfig `json:"config"`
	Narrative string         `json:"narrative"`
}

// TTSResult is what the tts stage returns to the engine. The audio travels
// base64-encoded and is stripped before the artifact is persisted.
type TTSResult struct {
	Config          PreparedConfig `json:"config"`
	Narrative       string         `json:"narrative"`
	DurationSeconds float64        `json:"durationSeconds"`
	Format          string         `json:"format"`
	Voice           string         `json:"voice,omitempty"`
	AudioBase64     string         `json:"audioBase64,omitempty"`
}

// TTSOutput is the persisted tts artifact: the result with the audio bytes
// replaced by their storage key and length.
type TTSOutput struct {
	Config          PreparedConfig `json:"config"`
	Narrative       string         `json:"narrative"`
	DurationSeconds float64        `json:"durationSeconds"`
	Format          string         `json:"format"`
	Voice           string         `json:"voice,omitempty"`
	ByteLength      int            `json:"byteLength"`
	AudioKey        string         `json:"audioKey"`
}

type PackageInput struct {
	Config          PreparedConfig `json:"config"`
	Narrative       string         `json:"narrative"`
	DurationSeconds float64        `json:"durationSeconds"`
	AudioKey        string         `json:"audioKey"`
}

// PackageResult is what the package stage returns to the engine. The engine
// writes the transcript and show notes as side files and persists only the
// episode.
type PackageResult struct {
	Episode    Episode `json:"episode"`
	Transcript string  `json:"transcript,omitempty"`
	ShowNotes  string  `json:"showNotes,omitempty"`
}
