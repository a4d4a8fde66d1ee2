package cabi

import (
	"errors"

	"pygc/domain/gcheap"
	"pygc/service"
)

// Code is the stable integer result every fallible operation returns.
type Code int32

const (
	CodeSuccess              Code = 0
	CodeAlreadyTracked       Code = -1
	CodeNotTracked           Code = -2
	CodeCollectionInProgress Code = -3
	CodeInvalidGeneration    Code = -4
	CodeInternal             Code = -5
)

// codeFor translates service and domain errors. Anything unrecognized,
// including nil addresses and the uninitialized state, is internal.
func codeFor(err error) Code {
	switch {
	case err == nil:
		return CodeSuccess
	case errors.Is(err, gcheap.ErrAlreadyTracked):
		return CodeAlreadyTracked
	case errors.Is(err, gcheap.ErrNotTracked):
		return CodeNotTracked
	case errors.Is(err, service.ErrCollectionInProgress):
		return CodeCollectionInProgress
	case errors.Is(err, gcheap.ErrInvalidGeneration):
		return CodeInvalidGeneration
	default:
		return CodeInternal
	}
}

// pred folds a boolean query into the C convention: 1, 0, or a
// negative code when the query itself could not run (a finalizer hook
// on the stack answers GC_ERROR_COLLECTION_IN_PROGRESS).
func pred(v bool, err error) int32 {
	if err != nil {
		return int32(codeFor(err))
	}
	if v {
		return 1
	}
	return 0
}

// guard converts a panic escaping an operation into CodeInternal.
// Nothing may unwind across the C boundary.
func guard(code *Code) {
	if recover() != nil {
		*code = CodeInternal
	}
}

// guardPred forces a panicking predicate to answer 0.
func guardPred(v *int32) {
	if recover() != nil {
		*v = 0
	}
}

// guardVal forces a panicking value getter to answer fallback.
func guardVal[T any](v *T, fallback T) {
	if recover() != nil {
		*v = fallback
	}
}
