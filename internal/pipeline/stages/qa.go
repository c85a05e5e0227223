package stages

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mangalrohit/podcastgen/internal/gateway"
	"github.com/mangalrohit/podcastgen/internal/schemas"
	"github.com/mangalrohit/podcastgen/internal/types"
)

// RejectedError is returned when the review does not approve the script. It
// carries the report so callers can surface the issues.
type RejectedError struct {
	Report types.QAReport
}

func (e *RejectedError) Error() string {
	parts := make([]string, 0, len(e.Report.Issues))
	for _, issue := range e.Report.Issues {
		parts = append(parts, fmt.Sprintf("[%s] %s", issue.Severity, issue.Message))
	}
	if len(parts) == 0 {
		return "script review not approved"
	}
	return "script review not approved: " + strings.Join(parts, "; ")
}

// runQA has the LLM review the script for factual consistency, tone and
// length. The script passes through unchanged; only the verdict is new.
func runQA(ctx context.Context, in types.QAInput, deps Deps) (*types.QAOutput, error) {
	if strings.TrimSpace(in.Script.Narrative) == "" {
		return nil, fmt.Errorf("no script to review; rerun script")
	}

	resp, err := deps.Gateways.LLM.Complete(ctx, gateway.CompletionRequest{
		Task:   "qa",
		Prompt: qaPrompt(in.Config, in.Script),
		JSON:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("script review failed: %w", err)
	}

	if err := schemas.Validate(schemas.QAReport, []byte(resp.Text)); err != nil {
		return nil, fmt.Errorf("review report rejected: %w", err)
	}

	var report types.QAReport
	if err := json.Unmarshal([]byte(resp.Text), &report); err != nil {
		return nil, fmt.Errorf("review returned invalid JSON: %w", err)
	}
	if !report.Approved {
		return nil, &RejectedError{Report: report}
	}

	return &types.QAOutput{Config: in.Config, Script: in.Script, Report: report}, nil
}

func qaPrompt(cfg types.PreparedConfig, script types.Script) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review this podcast script about %s (target %d minutes, %d words). ",
		cfg.Company.Name, cfg.DurationMinutes, script.WordCount)
	b.WriteString("Check for unsupported claims, tone problems and sections badly off their target length.\n\n")
	b.WriteString(script.Narrative)
	b.WriteString("\n\n" + `Respond with JSON: {"approved":true,"issues":[{"severity":"info|warning|error","message":"..."}]}`)
	return b.String()
}
