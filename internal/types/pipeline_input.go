// Package types holds the data contracts shared across the pipeline: the
// request that starts a run, the per-stage artifact shapes, run progress
// records and the packaged episode. Everything here is JSON-serializable;
// the camelCase tags are part of the artifact layout and must not change.
package types

// PipelineInput is the request that starts a run.
type PipelineInput struct {
	RunID         string        `json:"runId" validate:"required"`
	PodcastID     string        `json:"podcastId" validate:"required"`
	ConfigVersion string        `json:"configVersion,omitempty"`
	Config        EpisodeConfig `json:"config" validate:"required"`
	Flags         Flags         `json:"flags"`
}

// EpisodeConfig describes the episode to produce.
type EpisodeConfig struct {
	Title           string    `json:"title" validate:"required"`
	Company         Company   `json:"company" validate:"required"`
	Industry        string    `json:"industry,omitempty"`
	Competitors     []Company `json:"competitors,omitempty"`
	Topics          []string  `json:"topics,omitempty"`
	Cadence         string    `json:"cadence,omitempty"`
	DurationMinutes int       `json:"durationMinutes" validate:"min=1,max=60"`
	Voice           Voice     `json:"voice"`
	RobotsPolicy    string    `json:"robotsPolicy,omitempty"`
	SourcePolicies  []string  `json:"sourcePolicies,omitempty"`
}

// Company identifies the subject of an episode or one of its competitors.
type Company struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name" validate:"required"`
	Domain string `json:"domain,omitempty"`
}

// Voice selects the synthesis voice and speaking rate.
type Voice struct {
	VoiceID string  `json:"voiceId,omitempty"`
	Speed   float64 `json:"speed,omitempty"`
}

// Flags carry per-run toggles that do not belong in the episode config.
type Flags struct {
	Enable      map[string]bool `json:"enable,omitempty"`
	Provider    ProviderFlags   `json:"provider"`
	DryRun      bool            `json:"dryRun,omitempty"`
	CassetteKey string          `json:"cassetteKey,omitempty"`
}

// ProviderFlags select the backend per capability.
type ProviderFlags struct {
	LLM  string `json:"llm,omitempty"`
	TTS  string `json:"tts,omitempty"`
	HTTP string `json:"http,omitempty"`
}

// StageEnabled reports whether a stage should run. Stages absent from the
// map default to enabled.
func (f Flags) StageEnabled(stage string) bool {
	if f.Enable == nil {
		return true
	}
	enabled, ok := f.Enable[stage]
	if !ok {
		return true
	}
	return enabled
}
