package types

import "time"

// Episode is the final deliverable of a completed run.
type Episode struct {
	EpisodeTitle    string    `json:"episodeTitle"`
	Description     string    `json:"description,omitempty"`
	AudioKey        string    `json:"audioS3Key"`
	TranscriptKey   string    `json:"transcriptKey,omitempty"`
	ShowNotesKey    string    `json:"showNotesKey,omitempty"`
	DurationSeconds float64   `json:"durationSeconds"`
	PublishedAt     time.Time `json:"publishedAt"`
}
