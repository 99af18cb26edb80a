// Package syncmap offers a lightweight, generic, concurrency-safe map guarded
// by a sync.RWMutex. It backs the capability declaration table and the
// service-level remote proxy registry.
package syncmap
