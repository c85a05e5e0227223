package pipeline

import "fmt"

// InvalidStageError rejects a resume request before any state is written:
// the stage name is unknown or resuming into it is not supported.
type InvalidStageError struct {
	Stage  string
	Reason string
}

func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("cannot resume from stage %q: %s", e.Stage, e.Reason)
}

// MissingArtifactError rejects a resume request whose predecessor output
// artifact is absent. MissingStage names the stage that must be rerun first.
type MissingArtifactError struct {
	Stage        string
	MissingStage string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("cannot resume from stage %q: no output artifact for %q; rerun %q first",
		e.Stage, e.MissingStage, e.MissingStage)
}

// CanceledError converts an externally requested stop into a run failure.
type CanceledError struct {
	RunID  string
	Reason string
}

func (e *CanceledError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("run %s canceled by stop request", e.RunID)
	}
	return fmt.Sprintf("run %s canceled by stop request: %s", e.RunID, e.Reason)
}
