// Package config defines the YAML configuration of the agent bridge service:
// the JS runtime, the default agent, remote MCP endpoints, built-in providers
// and the tools published over MCP.
package config
