// Package conversion maps between JSON schemas, viant mcp-protocol tool
// schemas and dynamically generated Go struct types used as fluxor action
// signatures.
package conversion
