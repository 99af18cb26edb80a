// Package jsvm hosts remote objects in an embedded goja JavaScript runtime.
//
// The runtime is not goroutine-safe, so every access goes through
// Runtime.Do, which serializes work on one mutex. Promises returned by JS
// methods become async.Future values settled by then-callbacks; Go callbacks
// passed into JS become functions returning promises that are resolved from
// a goroutine once the Go side completes. Plain JS objects and arrays
// materialize into map[string]any and []any; class instances, functions and
// promises stay remote as *Object handles.
//
// An embedded reference agents SDK (sdk.js) can be loaded for local
// development and tests; production scripts are loaded by URL through afs.
package jsvm
