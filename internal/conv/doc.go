// Package conv provides small, reflection-based helpers to coerce values that
// cross a boundary: tool arguments decoded from JSON, remote results exported
// from the JS runtime and Go structs passed as call arguments.  Convert
// performs a best-effort JSON round-trip when the value is not directly
// assignable.
package conv
