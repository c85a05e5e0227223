package types

import "time"

// RunStatus is the lifecycle state of a whole run.
type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// StageStatus is the lifecycle state of one stage within a run.
type StageStatus string

const (
	StagePending   StageStatus = "pending"
	StageRunning   StageStatus = "running"
	StageCompleted StageStatus = "completed"
	StageFailed    StageStatus = "failed"
	StageSkipped   StageStatus = "skipped"
)

// StageState records one stage's progress within a run.
type StageState struct {
	Status      StageStatus `json:"status"`
	StartedAt   *time.Time  `json:"startedAt,omitempty"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
	Progress    string      `json:"progress,omitempty"`
}

// Progress tracks which stage a run is on and the state of every stage.
type Progress struct {
	CurrentStage string                `json:"currentStage,omitempty"`
	Stages       map[string]StageState `json:"stages,omitempty"`
}

// Run is the persisted record of one pipeline execution.
type Run struct {
	ID          string     `json:"id"`
	PodcastID   string     `json:"podcastId"`
	Status      RunStatus  `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Error       string     `json:"error,omitempty"`
	Progress    Progress   `json:"progress"`
	Output      *Episode   `json:"output,omitempty"`
}

// StageState returns the recorded state for a stage, zero-valued if the
// stage has not been touched yet.
func (r *Run) StageState(stage string) StageState {
	if r.Progress.Stages == nil {
		return StageState{}
	}
	return r.Progress.Stages[stage]
}

// SetStageState records a stage's state, allocating the map on first use.
func (r *Run) SetStageState(stage string, state StageState) {
	if r.Progress.Stages == nil {
		r.Progress.Stages = make(map[string]StageState)
	}
	r.Progress.Stages[stage] = state
}
