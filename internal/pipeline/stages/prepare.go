package stages

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mangalrohit/podcastgen/internal/types"
)

var validate = validator.New()

// defaultTopics is used when the episode configuration names no topics.
var defaultTopics = []string{"company news", "product updates"}

// runPrepare validates the pipeline input and freezes it into the
// configuration every later stage consumes. Nothing downstream reads the raw
// input again.
func runPrepare(_ context.Context, in types.PipelineInput, _ Deps) (*types.PrepareOutput, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid pipeline input: %w", err)
	}

	cfg := types.PreparedConfig{
		PodcastID:       in.PodcastID,
		Title:           in.Config.Title,
		Company:         in.Config.Company,
		Industry:        in.Config.Industry,
		Competitors:     in.Config.Competitors,
		Topics:          in.Config.Topics,
		DurationMinutes: in.Config.DurationMinutes,
		Voice:           in.Config.Voice,
		RobotsPolicy:    in.Config.RobotsPolicy,
		SourcePolicies:  in.Config.SourcePolicies,
	}

	if len(cfg.Topics) == 0 {
		cfg.Topics = defaultTopics
	}
	if cfg.RobotsPolicy == "" {
		cfg.RobotsPolicy = "respect"
	}
	if cfg.Voice.Speed <= 0 {
		cfg.Voice.Speed = 1.0
	}

	return &types.PrepareOutput{Config: cfg}, nil
}
