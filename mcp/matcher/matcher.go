package matcher

import (
	"strings"

	"github.com/viant/agentbridge/mcp/tool"
)

// Match reports whether name satisfies pattern: "*" matches everything, an
// empty pattern nothing, anything else is a prefix.
func Match(pattern, name string) bool {
	if pattern == "*" {
		return true
	}
	if pattern == "" {
		return false
	}
	return strings.HasPrefix(name, pattern)
}

// MatchTool applies Match to a tool name ("<service>-<tool>"). A pattern
// ending with "/" selects every tool of the services under that path; other
// patterns may spell the service part with slashes.
func MatchTool(pattern, name string) bool {
	if strings.HasSuffix(pattern, "/") {
		return strings.HasPrefix(tool.Name(name).Service()+"/", pattern)
	}
	return Match(strings.ReplaceAll(pattern, "/", "_"), name)
}
