package pqueue

import "log/slog"

const (
	defaultBucketCapacity = 5
	defaultHeapCapacity   = 10
)

type options struct {
	capacity int
	logger   *slog.Logger
}

// Option configures a BucketQueue or a HeapQueue.
type Option func(*options)

// WithInitialCapacity sets the initial storage capacity of each bucket of
// a BucketQueue, or of the backing array of a HeapQueue. Storage doubles
// whenever it fills up. Values below 1 are ignored.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithLogger sets the logger used to report rejected operations and
// storage growth at debug level. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(capacity int, opts []Option) options {
	o := options{
		capacity: capacity,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
