package stages

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/mangalrohit/podcastgen/internal/types"
)

// defaultMaxSources bounds how many sources reach the scrape stage.
const defaultMaxSources = 8

// runRank scores candidates deterministically: earlier topics outrank later
// ones, allowlisted domains get a boost, and discovery order breaks ties.
// Determinism matters here; identical input must always yield the same
// scrape set.
func runRank(_ context.Context, in types.RankInput, _ Deps) (*types.RankOutput, error) {
	if len(in.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates to rank; rerun discover")
	}

	maxSources := in.MaxSources
	if maxSources <= 0 {
		maxSources = defaultMaxSources
	}

	topicRank := make(map[string]int, len(in.Config.Topics))
	for i, topic := range in.Config.Topics {
		topicRank[topic] = i
	}

	allowed := make(map[string]bool, len(in.Config.SourcePolicies))
	for _, domain := range in.Config.SourcePolicies {
		allowed[strings.ToLower(domain)] = true
	}

	ranked := make([]types.RankedSource, 0, len(in.Candidates))
	for i, candidate := range in.Candidates {
		score := 1.0
		reason := "discovered"

		if rank, ok := topicRank[candidate.Topic]; ok {
			score += float64(len(in.Config.Topics)-rank) * 0.1
		}
		if host := hostOf(candidate.URL); host != "" && allowed[host] {
			score += 0.5
			reason = "allowlisted domain"
		}
		// Small decay keeps discovery order as the tiebreaker.
		score -= float64(i) * 0.001

		ranked = append(ranked, types.RankedSource{
			SourceCandidate: candidate,
			Score:           score,
			Reason:          reason,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > maxSources {
		ranked = ranked[:maxSources]
	}

	return &types.RankOutput{Config: in.Config, Ranked: ranked}, nil
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(parsed.Host, "www."))
}
