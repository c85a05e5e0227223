package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRobots_WildcardGroup(t *testing.T) {
	rules := ParseRobots("User-agent: *\nDisallow: /private\nDisallow: /tmp\n")

	assert.False(t, rules.Allowed("/private/report"))
	assert.False(t, rules.Allowed("/tmp"))
	assert.True(t, rules.Allowed("/public"))
	assert.True(t, rules.Allowed("/"))
}

func TestParseRobots_OtherAgentGroupIgnored(t *testing.T) {
	rules := ParseRobots("User-agent: BadBot\nDisallow: /\n\nUser-agent: *\nDisallow: /private\n")

	assert.True(t, rules.Allowed("/public"))
	assert.False(t, rules.Allowed("/private"))
}

func TestParseRobots_NamedAgentGroup(t *testing.T) {
	rules := ParseRobots("User-agent: podcastgen\nDisallow: /drafts\n")

	assert.False(t, rules.Allowed("/drafts/ep1"))
	assert.True(t, rules.Allowed("/published"))
}

func TestParseRobots_SharedGroupHeader(t *testing.T) {
	rules := ParseRobots("User-agent: BadBot\nUser-agent: *\nDisallow: /private\n")

	assert.False(t, rules.Allowed("/private"))
}

func TestParseRobots_CommentsAndEmptyDisallow(t *testing.T) {
	rules := ParseRobots("# site policy\nUser-agent: * # everyone\nDisallow:\n")

	assert.True(t, rules.Allowed("/anything"))
}

func TestRobotsRules_NilAllowsAll(t *testing.T) {
	var rules *RobotsRules
	assert.True(t, rules.Allowed("/private"))
}

func TestParseRobots_NonRobotsContentAllowsAll(t *testing.T) {
	rules := ParseRobots("<html><body>not found</body></html>")
	assert.True(t, rules.Allowed("/private"))
}
