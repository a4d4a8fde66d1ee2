// Package service orchestrates the core components of the
// collector: registry, generations, reference graph, entry pool,
// events, and metrics.
//
// It provides a clean API for tracking, collecting, and querying
// objects, decoupled from the C boundary, plus the process-wide
// singleton the boundary resolves.
package service
