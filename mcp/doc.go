// Package mcp wires the agent bridge into a fluxor workflow engine and MCP
// servers. Its Service boots the JS runtime and the default agent, registers
// capability instances, built-in providers and remote MCP endpoints as fluxor
// action services, and publishes them as MCP tools named
// "<service>-<tool>".
package mcp
