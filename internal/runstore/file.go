package runstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mangalrohit/podcastgen/internal/types"
)

// FileStore persists one JSON document per run under a directory. It is the
// fallback for environments without a document store.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed run store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(runID string) string {
	return filepath.Join(s.dir, runID+".json")
}

// GetRun reads a run record, nil when absent.
func (s *FileStore) GetRun(_ context.Context, runID string) (*types.Run, error) {
	data, err := os.ReadFile(s.path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read run %s: %w", runID, err)
	}
	var run types.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to decode run %s: %w", runID, err)
	}
	return &run, nil
}

// PutRun writes the full run record, replacing any prior version.
func (s *FileStore) PutRun(_ context.Context, run *types.Run) error {
	if run.ID == "" {
		return fmt.Errorf("run ID is empty")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create run store dir: %w", err)
	}
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run %s: %w", run.ID, err)
	}
	if err := os.WriteFile(s.path(run.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write run %s: %w", run.ID, err)
	}
	return nil
}

// QueryRunsByPodcast scans the directory for runs belonging to a podcast,
// newest first.
func (s *FileStore) QueryRunsByPodcast(ctx context.Context, podcastID string) ([]types.Run, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list run store dir: %w", err)
	}

	var runs []types.Run
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		run, err := s.GetRun(ctx, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil || run == nil {
			continue
		}
		if run.PodcastID == podcastID {
			runs = append(runs, *run)
		}
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}
