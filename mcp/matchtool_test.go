package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/agentbridge/mcp/config"
	"github.com/viant/agentbridge/mcp/tool"
)

// TestServiceMatchTools verifies MatchTools applies the same pattern semantics
// as the builtins selection.
func TestServiceMatchTools(t *testing.T) {
	svc, _ := newService(t)

	all := svc.Tools()
	star := svc.MatchTools("*")
	assert.EqualValues(t, len(all), len(star))
	require.NotEmpty(t, all)

	for _, entry := range []string{"helpdesk-open", "agent-get_state"} {
		prefixPattern := tool.Name(entry).Service() + "/"
		pref := svc.MatchTools(prefixPattern)
		assert.GreaterOrEqual(t, len(pref), 1)
		var found bool
		for _, te := range pref {
			if te.Metadata.Name == entry {
				found = true
				break
			}
		}
		assert.True(t, found, "expected tool %s to match prefix %s", entry, prefixPattern)

		exact := svc.MatchTools(entry)
		if assert.EqualValues(t, 1, len(exact)) {
			assert.EqualValues(t, entry, exact[0].Metadata.Name)
		}
	}

	assert.Empty(t, svc.MatchTools(""))
}

func TestServiceExposedTools(t *testing.T) {
	svc, err := New(context.Background(),
		WithConfig(&config.Config{Builtins: []string{"agent"}, Expose: []string{"helpdesk/"}}),
		WithInstance("helpdesk", &helpdesk{}))
	require.NoError(t, err)
	defer svc.Shutdown(context.Background())

	var names []string
	for _, entry := range svc.ExposedTools() {
		names = append(names, entry.Metadata.Name)
	}
	assert.Equal(t, []string{"helpdesk-assign", "helpdesk-open"}, names)
	assert.Contains(t, svc.ToolNames(), "agent-get_state")
}
