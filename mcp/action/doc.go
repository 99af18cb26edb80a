// Package action exposes the capabilities of one instance as a fluxor action
// service, so tools and callables can run inside workflows and through the
// workflow runtime.
package action
