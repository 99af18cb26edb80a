package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in     string
		expect slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.EqualValues(t, tc.expect, ParseLevel(tc.in))
		})
	}
}

func TestFor(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(slog.LevelDebug, buf)
	For("jsvm").Debug("loaded", "script", "sdk.js")
	assert.Contains(t, buf.String(), "subsystem=jsvm")
	assert.Contains(t, buf.String(), "script=sdk.js")
}
