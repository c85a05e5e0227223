package pipeline

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/mangalrohit/podcastgen/internal/types"
)

// Artifact names for the run-level text objects written by finalizePackage.
const (
	transcriptFileName = "transcript.txt"
	showNotesFileName  = "show_notes.md"
)

// finalizeTTS writes the synthesized audio to the binary store and redacts
// the persisted artifact down to the byte length and storage key. Raw audio
// never lands in a JSON artifact.
func (o *Orchestrator) finalizeTTS(ctx context.Context, runID string, raw json.RawMessage) (json.RawMessage, error) {
	var result types.TTSResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("invalid tts result: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioBase64)
	if err != nil {
		return nil, fmt.Errorf("tts result carries invalid audio encoding: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("tts result carries no audio")
	}

	audioKey, err := o.Artifacts.SaveBinary(ctx, runID, audioFileName, audio)
	if err != nil {
		return nil, fmt.Errorf("failed to store audio: %w", err)
	}

	return json.Marshal(types.TTSOutput{
		Config:          result.Config,
		Narrative:       result.Narrative,
		DurationSeconds: result.DurationSeconds,
		Format:          result.Format,
		Voice:           result.Voice,
		ByteLength:      len(audio),
		AudioKey:        audioKey,
	})
}

// finalizePackage writes the transcript and show notes as side objects and
// persists only the episode record as the stage artifact.
func (o *Orchestrator) finalizePackage(ctx context.Context, runID string, raw json.RawMessage) (json.RawMessage, *types.Episode, error) {
	var result types.PackageResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, nil, fmt.Errorf("invalid package result: %w", err)
	}

	episode := result.Episode
	if result.Transcript != "" {
		key, err := o.Artifacts.SaveText(ctx, runID, transcriptFileName, result.Transcript)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to store transcript: %w", err)
		}
		episode.TranscriptKey = key
	}
	if result.ShowNotes != "" {
		key, err := o.Artifacts.SaveText(ctx, runID, showNotesFileName, result.ShowNotes)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to store show notes: %w", err)
		}
		episode.ShowNotesKey = key
	}

	out, err := json.Marshal(episode)
	if err != nil {
		return nil, nil, err
	}
	return out, &episode, nil
}
