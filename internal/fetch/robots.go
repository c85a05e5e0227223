// Package fetch - robots.go parses the subset of robots.txt the scrape
// stage needs to honor source-site crawl policies.
package fetch

import "strings"

// RobotsRules holds the Disallow path prefixes that apply to this fetcher,
// collected from groups naming it or the wildcard agent. A nil *RobotsRules
// imposes no restrictions.
type RobotsRules struct {
	disallow []string
}

// ParseRobots extracts the rules applying to this fetcher's user agent.
// Unknown directives and comments are skipped.
func ParseRobots(body string) *RobotsRules {
	rules := &RobotsRules{}
	applies := false
	inGroupHeader := false

	for _, line := range strings.Split(body, "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		field = strings.ToLower(strings.TrimSpace(field))
		value = strings.TrimSpace(value)

		switch field {
		case "user-agent":
			// Consecutive user-agent lines open a new group.
			if !inGroupHeader {
				applies = false
				inGroupHeader = true
			}
			agent := strings.ToLower(value)
			if agent == "*" || strings.Contains(strings.ToLower(DefaultUserAgent), agent) {
				applies = true
			}
		case "disallow":
			inGroupHeader = false
			if applies && value != "" {
				rules.disallow = append(rules.disallow, value)
			}
		case "allow":
			inGroupHeader = false
		}
	}
	return rules
}

// Allowed reports whether the path may be fetched under these rules.
func (r *RobotsRules) Allowed(path string) bool {
	if r == nil {
		return true
	}
	if path == "" {
		path = "/"
	}
	for _, prefix := range r.disallow {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}
