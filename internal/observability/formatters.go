// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mangalrohit/podcastgen/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRun outputs a human-readable summary of a run record.
func (p *Printer) PrintRun(run *types.Run) {
	if run == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", run.ID))
	sb.WriteString(fmt.Sprintf("Podcast:  %s\n", run.PodcastID))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", run.Status))
	sb.WriteString(fmt.Sprintf("Created:  %s\n", run.CreatedAt.Format("2006-01-02 15:04:05")))
	if run.Error != "" {
		sb.WriteString(fmt.Sprintf("Error:    %s\n", run.Error))
	}

	p.printBox("Run Summary", strings.TrimRight(sb.String(), "\n"))
}

// PrintProgress outputs the per-stage progress of a run in pipeline order.
func (p *Printer) PrintProgress(run *types.Run, order []string) {
	if run == nil {
		return
	}

	var sb strings.Builder
	if run.Progress.CurrentStage != "" {
		sb.WriteString(fmt.Sprintf("Current stage: %s\n\n", run.Progress.CurrentStage))
	}
	for _, stage := range order {
		state := run.StageState(stage)
		status := string(state.Status)
		if status == "" {
			status = "pending"
		}
		sb.WriteString(fmt.Sprintf("  %-13s %s", stage, status))
		if state.Progress != "" {
			sb.WriteString(fmt.Sprintf("  (%s)", state.Progress))
		}
		sb.WriteString("\n")
	}

	p.printBox("Stage Progress", strings.TrimRight(sb.String(), "\n"))
}

// PrintEpisode outputs the packaged episode record.
func (p *Printer) PrintEpisode(episode *types.Episode) {
	if episode == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:      %s\n", episode.EpisodeTitle))
	if episode.Description != "" {
		sb.WriteString(fmt.Sprintf("About:      %s\n", episode.Description))
	}
	sb.WriteString(fmt.Sprintf("Duration:   %d:%02d\n", int(episode.DurationSeconds)/60, int(episode.DurationSeconds)%60))
	sb.WriteString(fmt.Sprintf("Audio:      %s\n", episode.AudioKey))
	if episode.TranscriptKey != "" {
		sb.WriteString(fmt.Sprintf("Transcript: %s\n", episode.TranscriptKey))
	}
	if episode.ShowNotesKey != "" {
		sb.WriteString(fmt.Sprintf("Notes:      %s\n", episode.ShowNotesKey))
	}

	p.printBox("Episode", strings.TrimRight(sb.String(), "\n"))
}
