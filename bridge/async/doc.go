// Package async unifies values that are already available and values that
// settle later. A Result is decided once at the point where a value enters the
// local side: Ready for concrete values, Failed for synchronous failures and
// Pending for a Future that a remote runtime settles asynchronously. Callers
// always Await a Result, regardless of which case applied.
package async
