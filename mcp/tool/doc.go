// Package tool names registered tools and fronts remote MCP endpoints. A
// remote endpoint is exposed both as a fluxor service, so workflows can call
// its tools as actions, and as a bridge.Handle, so it can be driven through a
// bridge.Proxy.
package tool
