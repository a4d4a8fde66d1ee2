// Package memory provides the low-level primitives for entry reuse.
// It includes a typed object pool and a lock-free RetireRing that
// carries reclaimed tracking entries from a collection cycle back to
// the pool without allocating on the sweep path.
//
// The memory package is dependency-free and forms the foundation for
// allocation-free steady-state tracking.
package memory
