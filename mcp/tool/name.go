package tool

import "strings"

// Name is a registered tool name in the form "<service>-<method>", where
// slashes in the service name are written as underscores, for example
// "agent-set_state" or "remote_docs-search".
type Name string

// Service returns the fluxor service name, restoring slashes.
func (t Name) Service() string {
	tool := string(t)
	if idx := strings.LastIndex(tool, "-"); idx != -1 {
		return strings.ReplaceAll(tool[:idx], "_", "/")
	}
	return tool
}

// Method returns the method part, or "" when the name has no separator.
func (t Name) Method() string {
	tool := string(t)
	if idx := strings.LastIndex(tool, "-"); idx != -1 {
		return tool[idx+1:]
	}
	return ""
}

func (t Name) String() string {
	return string(t)
}

// NewName joins a service and a method into a tool name.
func NewName(service, method string) Name {
	return Name(strings.ReplaceAll(service, "/", "_") + "-" + method)
}

// Canonical accepts the spellings users type on the command line
// ("svc/path-method", "svc/path.method", "svc/path/method") and returns the
// registered tool name.
func Canonical(name string) string {
	if strings.Contains(name, "-") {
		return strings.ReplaceAll(name, "/", "_")
	}
	if idx := strings.LastIndex(name, "."); idx != -1 {
		return NewName(name[:idx], name[idx+1:]).String()
	}
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		return NewName(name[:idx], name[idx+1:]).String()
	}
	return name
}
