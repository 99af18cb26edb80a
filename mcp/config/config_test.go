package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/agentbridge/bridge"
)

const document = `
runtime:
  scripts:
    - mem://localhost/agents/sdk.js
  global: __AGENTS
  policy: strict
  allow: [describe]
  agent:
    name: support
    initialState:
      tickets: 0
remotes:
  items:
    - name: docs
builtins: [agent, printer]
expose: ["support/"]
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(document))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"mem://localhost/agents/sdk.js"}, cfg.Scripts())
	assert.Equal(t, "__AGENTS", cfg.Global())
	policy, allow := cfg.Policy()
	assert.Equal(t, bridge.Strict, policy)
	assert.Equal(t, []string{"describe"}, allow)
	require.NotNil(t, cfg.Agent())
	assert.Equal(t, "support", cfg.Agent().Name)
	assert.EqualValues(t, map[string]any{"tickets": 0}, cfg.Agent().InitialState)
	require.Len(t, cfg.Remotes.Items, 1)
	assert.Equal(t, "docs", cfg.Remotes.Items[0].Name)
	assert.Equal(t, []string{"agent", "printer"}, cfg.Builtins)
	assert.Equal(t, []string{"support/"}, cfg.Expose)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		document    string
		expectErr   bool
	}{
		{description: "empty", document: "{}"},
		{description: "passthrough", document: "runtime:\n  policy: passthrough\n"},
		{description: "unknown policy", document: "runtime:\n  policy: open\n", expectErr: true},
		{description: "allow without strict", document: "runtime:\n  allow: [x]\n", expectErr: true},
		{description: "agent without name", document: "runtime:\n  agent:\n    props: {a: 1}\n", expectErr: true},
		{description: "remote without name", document: "remotes:\n  items:\n    - version: \"1\"\n", expectErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			cfg, err := Parse([]byte(testCase.document))
			require.NoError(t, err)
			err = cfg.Validate()
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	location := filepath.Join(t.TempDir(), "agentbridge.yaml")
	require.NoError(t, os.WriteFile(location, []byte(document), 0o644))
	cfg, err := Load(context.Background(), location)
	require.NoError(t, err)
	assert.Equal(t, "support", cfg.Agent().Name)

	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
