package gcheap

import "errors"

var (
	ErrAlreadyTracked    = errors.New("gcheap: object already tracked")
	ErrNotTracked        = errors.New("gcheap: object not tracked")
	ErrInvalidGeneration = errors.New("gcheap: invalid generation")
	ErrNilAddress        = errors.New("gcheap: nil address")
)
