// Package events carries progress notifications out of stage executions.
// Emitters receive partial updates; fields left nil or empty mean "no
// change" so an update can be merged into a run record as a patch.
package events

import "time"

// Update is a partial patch to one stage's recorded state.
type Update struct {
	Stage            string
	StageStatus      string
	StageStartedAt   *time.Time
	StageCompletedAt *time.Time
	StageProgress    string
	Error            string
}

// Emitter consumes updates. Implementations must be safe for concurrent use
// and must never block stage execution on persistence.
type Emitter func(Update)

// Nop discards updates.
func Nop(Update) {}

// StageStarted marks a stage as running as of now.
func StageStarted(stage string) Update {
	now := time.Now().UTC()
	return Update{Stage: stage, StageStatus: "running", StageStartedAt: &now}
}

// StageProgress attaches a human-readable progress note to a running stage.
func StageProgress(stage, message string) Update {
	return Update{Stage: stage, StageProgress: message}
}

// StageCompleted marks a stage as completed as of now.
func StageCompleted(stage string) Update {
	now := time.Now().UTC()
	return Update{Stage: stage, StageStatus: "completed", StageCompletedAt: &now}
}

// StageFailed marks a stage as failed with the given cause.
func StageFailed(stage string, err error) Update {
	now := time.Now().UTC()
	u := Update{Stage: stage, StageStatus: "failed", StageCompletedAt: &now}
	if err != nil {
		u.Error = err.Error()
	}
	return u
}
