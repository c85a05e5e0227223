package stages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mangalrohit/podcastgen/internal/types"
)

// runPackage assembles the episode record plus transcript and show notes.
// The engine writes the text files as side artifacts and persists only the
// episode itself.
func runPackage(_ context.Context, in types.PackageInput, _ Deps) (*types.PackageResult, error) {
	if in.AudioKey == "" {
		return nil, fmt.Errorf("no audio to package; rerun tts")
	}
	if strings.TrimSpace(in.Narrative) == "" {
		return nil, fmt.Errorf("no narrative to package; rerun script")
	}

	episode := types.Episode{
		EpisodeTitle:    in.Config.Title,
		Description:     episodeDescription(in.Config),
		AudioKey:        in.AudioKey,
		DurationSeconds: in.DurationSeconds,
		PublishedAt:     time.Now().UTC(),
	}

	return &types.PackageResult{
		Episode:    episode,
		Transcript: in.Narrative,
		ShowNotes:  showNotes(in.Config, in.DurationSeconds),
	}, nil
}

func episodeDescription(cfg types.PreparedConfig) string {
	desc := fmt.Sprintf("An update on %s", cfg.Company.Name)
	if len(cfg.Topics) > 0 {
		desc += ": " + strings.Join(cfg.Topics, ", ")
	}
	return desc + "."
}

func showNotes(cfg types.PreparedConfig, durationSeconds float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cfg.Title)
	fmt.Fprintf(&b, "%s\n\n", episodeDescription(cfg))
	fmt.Fprintf(&b, "Duration: %d:%02d\n\n", int(durationSeconds)/60, int(durationSeconds)%60)
	if len(cfg.Topics) > 0 {
		b.WriteString("## Topics\n\n")
		for _, topic := range cfg.Topics {
			fmt.Fprintf(&b, "- %s\n", topic)
		}
	}
	return b.String()
}
