package batcher

import "errors"

var (
	// ErrInvalidMaxSize is returned by New when maxSize is not positive.
	ErrInvalidMaxSize = errors.New("batcher: max size must be positive")

	// ErrNilFactory is returned by New when no storage factory is given.
	ErrNilFactory = errors.New("batcher: storage factory is nil")

	// ErrInvalidWeight is returned by Add for a negative weight.
	ErrInvalidWeight = errors.New("batcher: weight must not be negative")

	// ErrEntryTooLarge is returned by Add when a single entry's weight
	// exceeds the batch capacity. Such entries are rejected rather than placed
	// into an over-capacity batch, since batch storages have a fixed size.
	ErrEntryTooLarge = errors.New("batcher: entry weight exceeds max size")

	// ErrNotFinalized is returned when iterating batches before the first
	// Finalize established a batch list.
	ErrNotFinalized = errors.New("batcher: batches iterated before Finalize")
)
