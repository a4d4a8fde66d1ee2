package service

import "errors"

var (
	// ErrNotInitialized is returned after cleanup, or before the first
	// init, by every operation except init itself.
	ErrNotInitialized = errors.New("service: collector not initialized")

	// ErrCollectionInProgress is returned when a cycle is already
	// running, or when a finalizer hook re-enters the collector.
	ErrCollectionInProgress = errors.New("service: collection in progress")
)
