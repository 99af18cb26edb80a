// Package toolhost registers capability tools with a tool-calling host.
//
// A Host accepts either the two-argument form (name, handler) or the
// three-argument form (name, schema, handler). Registrar discovers the tools
// of an instance and registers each one, picking the form by whether a schema
// was declared. Adapters live in sub packages: mcptool builds viant
// mcp-protocol tool entries, mcpgo registers with a mark3labs MCP server, and
// RemoteHost forwards registrations to a tool host living in the JS runtime.
package toolhost
