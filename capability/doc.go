// Package capability exposes Go methods for discovery and dispatch by string
// name.
//
// Methods are declared once per type with Declare; the declaration records
// the exposed name, the kind (Callable or Tool) and, for tools, an optional
// input schema and description. Discover builds a fresh name to bound method
// mapping for one instance, walking embedded structs, and Dispatch, DispatchNamed
// and CallTool invoke a discovered method and normalize its outcome into an
// async.Result.
//
//	capability.MustDeclare[Support](
//		capability.Tool("LookupOrder", capability.WithSchema(map[string]any{"order_id": "string"}),
//			capability.WithParams("order_id")),
//		capability.Tool("RefundPolicy"),
//	)
package capability
