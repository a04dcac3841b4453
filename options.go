package arena

import "log/slog"

// Option configures an Arena at construction time.
type Option func(*options)

type options struct {
	source BlockSource
	limit  int
	logger *slog.Logger
}

func defaultOptions() *options {
	return &options{
		source: HeapSource{},
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithBlockSource sets where block memory is acquired from. A nil source is
// ignored.
func WithBlockSource(src BlockSource) Option {
	return func(o *options) {
		if src != nil {
			o.source = src
		}
	}
}

// WithMemoryLimit caps the total capacity of all blocks the arena may hold.
// Allocations that would need a block beyond the cap fail with ErrOutOfMemory.
// A limit <= 0 means unlimited.
func WithMemoryLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithLogger sets the logger used for slow-path events (block acquisition,
// limit hits, Free). The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
