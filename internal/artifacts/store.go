// Package artifacts provides durable per-run, per-stage snapshot storage.
// Artifacts are the source of truth for resume: a stage's output, once
// written, is the record of that execution.
//
// The key layout is a stable contract other tooling depends on:
//
//	{runId}/debug/{stage}_input.json
//	{runId}/debug/{stage}_output.json
//	{runId}/audio.mp3
package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store is the artifact persistence contract. Loads return (nil, nil) when
// the artifact does not exist so callers can branch on "prior stage never
// ran" without error inspection.
type Store interface {
	SaveStageInput(ctx context.Context, runID, stage string, data json.RawMessage) error
	SaveStageOutput(ctx context.Context, runID, stage string, data json.RawMessage) error
	LoadStageInput(ctx context.Context, runID, stage string) (json.RawMessage, error)
	LoadStageOutput(ctx context.Context, runID, stage string) (json.RawMessage, error)

	// SaveBinary writes a binary object (audio) and returns its key.
	SaveBinary(ctx context.Context, runID, name string, data []byte) (string, error)
	// SaveText writes a text object (transcript, show notes) and returns its key.
	SaveText(ctx context.Context, runID, name, text string) (string, error)

	// RequestStop writes the stop sentinel for a run; StopRequested reads it.
	RequestStop(ctx context.Context, runID, reason string) error
	StopRequested(ctx context.Context, runID string) (bool, string, error)
}

// InputKey returns the artifact key for a stage's input snapshot.
func InputKey(runID, stage string) string {
	return fmt.Sprintf("%s/debug/%s_input.json", runID, stage)
}

// OutputKey returns the artifact key for a stage's output snapshot.
func OutputKey(runID, stage string) string {
	return fmt.Sprintf("%s/debug/%s_output.json", runID, stage)
}

// BinaryKey returns the key for a run-level binary or text object.
func BinaryKey(runID, name string) string {
	return fmt.Sprintf("%s/%s", runID, name)
}

func stopKey(runID string) string {
	return fmt.Sprintf("%s/stop.json", runID)
}

type stopSentinel struct {
	Reason string `json:"reason,omitempty"`
}

// FSStore persists artifacts on the local filesystem under a root directory.
type FSStore struct {
	root string
}

// NewFSStore creates a filesystem store rooted at dir.
func NewFSStore(dir string) *FSStore {
	return &FSStore{root: dir}
}

func (s *FSStore) write(key string, data []byte) error {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create artifact dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", key, err)
	}
	return nil
}

func (s *FSStore) read(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", key, err)
	}
	return data, nil
}

// SaveStageInput writes a stage's input snapshot.
func (s *FSStore) SaveStageInput(_ context.Context, runID, stage string, data json.RawMessage) error {
	return s.write(InputKey(runID, stage), data)
}

// SaveStageOutput writes a stage's output snapshot, overwriting any prior one.
func (s *FSStore) SaveStageOutput(_ context.Context, runID, stage string, data json.RawMessage) error {
	return s.write(OutputKey(runID, stage), data)
}

// LoadStageInput reads a stage's input snapshot, nil when absent.
func (s *FSStore) LoadStageInput(_ context.Context, runID, stage string) (json.RawMessage, error) {
	return s.read(InputKey(runID, stage))
}

// LoadStageOutput reads a stage's output snapshot, nil when absent.
func (s *FSStore) LoadStageOutput(_ context.Context, runID, stage string) (json.RawMessage, error) {
	return s.read(OutputKey(runID, stage))
}

// SaveBinary writes a binary object and returns its key.
func (s *FSStore) SaveBinary(_ context.Context, runID, name string, data []byte) (string, error) {
	key := BinaryKey(runID, name)
	if err := s.write(key, data); err != nil {
		return "", err
	}
	return key, nil
}

// SaveText writes a text object and returns its key.
func (s *FSStore) SaveText(ctx context.Context, runID, name, text string) (string, error) {
	return s.SaveBinary(ctx, runID, name, []byte(text))
}

// RequestStop writes the stop sentinel.
func (s *FSStore) RequestStop(_ context.Context, runID, reason string) error {
	data, err := json.Marshal(stopSentinel{Reason: reason})
	if err != nil {
		return err
	}
	return s.write(stopKey(runID), data)
}

// StopRequested reads the stop sentinel.
func (s *FSStore) StopRequested(_ context.Context, runID string) (bool, string, error) {
	data, err := s.read(stopKey(runID))
	if err != nil || data == nil {
		return false, "", err
	}
	var sentinel stopSentinel
	if err := json.Unmarshal(data, &sentinel); err != nil {
		return true, "", nil
	}
	return true, sentinel.Reason, nil
}
