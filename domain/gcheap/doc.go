// Package gcheap implements the tracked-object heap: the address-keyed
// registry, the three generations with their collection thresholds, the
// optional host-registered reference graph, and the collection cycle
// that marks, classifies, sweeps and promotes entries.
//
// The package holds no locks of its own. The service layer serializes
// all access; everything here assumes single-threaded use.
package gcheap
