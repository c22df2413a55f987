package batcher

// Option configures a Sized batcher during creation.
//
// Example:
//
//	flag := batcher.NewChangeFlag()
//	b, err := batcher.New(4096, factory,
//	    batcher.WithChangeFlag(flag),
//	    batcher.WithCapacity(1024))
type Option func(*options)

// options holds optional configuration for batcher creation.
type options struct {
	flag      *ChangeFlag
	capacity  int
	keepEmpty bool
}

// defaultOptions returns the default batcher options.
func defaultOptions() options {
	return options{
		flag:     nil, // A private flag is created if nil
		capacity: 0,
	}
}

// WithChangeFlag makes the batcher raise flag instead of a private one.
// Passing the same flag to several batchers lets one Changed check cover
// all of them. A nil flag is ignored.
func WithChangeFlag(flag *ChangeFlag) Option {
	return func(o *options) {
		if flag != nil {
			o.flag = flag
		}
	}
}

// WithCapacity preallocates the entry lookup for n entries.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithKeepEmpty controls what Finalize does with batches whose entries were
// all deleted. By default they are removed from the batch list and reported
// to the OnRelease callback. With keep set, they stay in place as
// zero-weight batches and are refilled only if they are the last batch.
func WithKeepEmpty(keep bool) Option {
	return func(o *options) {
		o.keepEmpty = keep
	}
}
