package stages

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/mangalrohit/podcastgen/internal/events"
	"github.com/mangalrohit/podcastgen/internal/fetch"
	"github.com/mangalrohit/podcastgen/internal/types"
)

// scrapeConcurrency bounds in-flight fetches across all domains.
const scrapeConcurrency = 4

// runScrape fetches every ranked source through the HTTP gateway. Under the
// "respect" robots policy, each host's robots.txt is consulted first and
// disallowed sources are recorded as errors instead of fetched. Individual
// fetch failures are recorded on the page, not fatal; the stage fails only
// when nothing at all could be fetched.
func runScrape(ctx context.Context, in types.ScrapeInput, deps Deps) (*types.ScrapeOutput, error) {
	if len(in.Sources) == 0 {
		return nil, fmt.Errorf("no sources to scrape; rerun rank")
	}

	var robots map[string]*fetch.RobotsRules
	if in.Config.RobotsPolicy == "respect" {
		robots = loadRobots(ctx, in.Sources, deps)
	}

	pages := make([]types.ScrapedPage, len(in.Sources))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(scrapeConcurrency)

	for i, source := range in.Sources {
		g.Go(func() error {
			page := types.ScrapedPage{URL: source.URL, Topic: source.Topic}
			if robotsDisallowed(robots, source.URL) {
				page.Error = "disallowed by robots.txt"
				pages[i] = page
				return nil
			}

			deps.Emit(events.StageProgress(StageScrape, "fetching "+source.URL))

			result, err := deps.Gateways.HTTP.Fetch(gCtx, source.URL)
			if err != nil {
				page.Error = err.Error()
			} else {
				page.StatusCode = result.StatusCode
				page.HTML = result.HTML
				page.Text = result.Text
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fetched := 0
	for _, page := range pages {
		if page.Error == "" && page.StatusCode >= 200 && page.StatusCode < 300 {
			fetched++
		}
	}
	if fetched == 0 {
		return nil, fmt.Errorf("all %d source fetches failed", len(in.Sources))
	}

	return &types.ScrapeOutput{Config: in.Config, Pages: pages}, nil
}

// loadRobots fetches and parses robots.txt once per source origin. Origins
// whose robots.txt cannot be fetched impose no restrictions.
func loadRobots(ctx context.Context, sources []types.RankedSource, deps Deps) map[string]*fetch.RobotsRules {
	rules := make(map[string]*fetch.RobotsRules)
	for _, source := range sources {
		origin := originOf(source.URL)
		if origin == "" {
			continue
		}
		if _, seen := rules[origin]; seen {
			continue
		}
		result, err := deps.Gateways.HTTP.Fetch(ctx, origin+"/robots.txt")
		if err != nil || result.StatusCode < 200 || result.StatusCode >= 300 {
			rules[origin] = nil
			continue
		}
		rules[origin] = fetch.ParseRobots(result.HTML)
	}
	return rules
}

func originOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}

func robotsDisallowed(robots map[string]*fetch.RobotsRules, rawURL string) bool {
	if robots == nil {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return !robots[originOf(rawURL)].Allowed(parsed.Path)
}
