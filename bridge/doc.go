// Package bridge forwards calls from Go code to objects that live in another
// runtime. A Proxy wraps an externally owned Handle and takes care of the
// boundary: snake_case names become camelCase, Go containers are marshalled
// into the remote representation, remote results are normalized through
// bridge/async and materialized back into Go values.
//
// Two tiers are offered. Agent and SDK expose a fixed set of typed operations
// mirroring the agents SDK; Proxy.Call and Proxy.Invoke are the generic
// escape hatches for anything the typed tier does not cover yet.
package bridge
