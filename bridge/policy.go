package bridge

import (
	"fmt"
	"strings"
)

// Policy decides which names the generic proxy tier may forward. It is fixed
// when the proxy is built.
type Policy int

const (
	// PassThrough forwards any name the handle resolves.
	PassThrough Policy = iota
	// Strict forwards only names from the allow-list.
	Strict
)

// DefaultAllowList holds the remote operations an agent proxy is expected to
// use: state mutation, scheduling, queueing, broadcast, workflows, approvals,
// MCP-server registration, email replies and lifecycle hooks.
var DefaultAllowList = []string{
	"setState",
	"schedule", "scheduleEvery", "getSchedules", "cancelSchedule",
	"queue", "dequeue", "dequeueAll", "getQueue",
	"broadcast",
	"runWorkflow",
	"waitForApproval",
	"addMcpServer", "removeMcpServer", "getMcpServers",
	"replyToEmail",
	"onRequest", "onConnect", "onMessage", "onError", "onClose", "onEmail",
}

// DefinedProperties are always readable regardless of policy.
var DefinedProperties = []string{"state", "env", "ctx"}

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	default:
		return "passthrough"
	}
}

// ParsePolicy accepts "passthrough" (or empty) and "strict".
func ParsePolicy(text string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "passthrough", "pass-through":
		return PassThrough, nil
	case "strict":
		return Strict, nil
	}
	return PassThrough, fmt.Errorf("unsupported proxy policy: %q", text)
}

func isDefinedProperty(name string) bool {
	for _, candidate := range DefinedProperties {
		if candidate == name {
			return true
		}
	}
	return false
}
