// Package cabi adapts the service layer to the discipline of the C
// boundary: stable integer return codes, per-operation argument
// validation, panic fences, and truncating buffer writes. It contains
// no cgo so the whole contract is testable from Go; the exported
// py_gc_* shims are thin wrappers over these functions that convert C
// types and check C pointer arguments.
package cabi
