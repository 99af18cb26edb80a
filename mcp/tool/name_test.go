package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	testCases := []struct {
		in  string
		out string
	}{
		{"system_exec-execute", "system_exec-execute"},
		{"system/exec.execute", "system_exec-execute"},
		{"system/exec-execute", "system_exec-execute"},
		{"system/exec/execute", "system_exec-execute"},
		{"agent.set_state", "agent-set_state"},
		{"plain", "plain"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.out, Canonical(tc.in), tc.in)
	}
}

func TestName(t *testing.T) {
	name := NewName("remote/docs", "search")
	assert.Equal(t, "remote_docs-search", name.String())
	assert.Equal(t, "remote/docs", name.Service())
	assert.Equal(t, "search", name.Method())
	assert.Equal(t, "", Name("plain").Method())
	assert.Equal(t, "plain", Name("plain").Service())
}
