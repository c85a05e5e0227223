package runstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mangalrohit/podcastgen/internal/types"
)

// PostgresStore persists run records in a podcast_runs table. The full record
// lives in a jsonb column; id and podcast_id are lifted out for keying and
// the secondary-index query.
//
// Expected schema:
//
//	CREATE TABLE IF NOT EXISTS podcast_runs (
//	    id         TEXT PRIMARY KEY,
//	    podcast_id TEXT NOT NULL,
//	    status     TEXT NOT NULL,
//	    record     JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//	CREATE INDEX IF NOT EXISTS podcast_runs_podcast_idx ON podcast_runs (podcast_id, created_at DESC);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// GetRun reads a run record, nil when absent.
func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*types.Run, error) {
	var record []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM podcast_runs WHERE id = $1`, runID,
	).Scan(&record)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run %s: %w", runID, err)
	}

	var run types.Run
	if err := json.Unmarshal(record, &run); err != nil {
		return nil, fmt.Errorf("failed to decode run %s: %w", runID, err)
	}
	return &run, nil
}

// PutRun upserts the full run record. Last write wins.
func (s *PostgresStore) PutRun(ctx context.Context, run *types.Run) error {
	if run.ID == "" {
		return fmt.Errorf("run ID is empty")
	}
	record, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode run %s: %w", run.ID, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO podcast_runs (id, podcast_id, status, record)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET podcast_id = $2, status = $3, record = $4, updated_at = NOW()`,
		run.ID, run.PodcastID, string(run.Status), record,
	)
	if err != nil {
		return fmt.Errorf("failed to put run %s: %w", run.ID, err)
	}
	return nil
}

// QueryRunsByPodcast lists a podcast's runs, newest first.
func (s *PostgresStore) QueryRunsByPodcast(ctx context.Context, podcastID string) ([]types.Run, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT record FROM podcast_runs WHERE podcast_id = $1 ORDER BY created_at DESC`,
		podcastID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs for podcast %s: %w", podcastID, err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		var run types.Run
		if err := json.Unmarshal(record, &run); err != nil {
			return nil, fmt.Errorf("failed to decode run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
