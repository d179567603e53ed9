// Released under an MIT license. See LICENSE.

package scheme

import (
	"io"
	"log/slog"
	"os"

	"github.com/michaelmacinnis/tiny/internal/heap"
)

// ArityPolicy decides what happens when a closure is applied to more
// arguments than it has parameters.
type ArityPolicy int

// Arity policies.
const (
	// Lenient ignores extra arguments.
	Lenient ArityPolicy = iota
	// Strict signals "too many arguments".
	Strict
)

// Option configures an interpreter.
type Option func(*config)

type config struct {
	arity     ArityPolicy
	boot      bool
	heap      heap.Config
	logger    *slog.Logger
	output    func(OutputKind, []byte)
	translate func(string) string
}

func defaults() *config {
	return &config{
		boot: true,
		heap: heap.Config{
			SegmentSize:   heap.DefaultSegmentSize,
			MaxSegments:   heap.DefaultMaxSegments,
			FirstSegments: heap.DefaultFirstSegments,
		},
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})),
		translate: func(s string) string { return s },
	}
}

// WithSegmentSize sets the number of cells in each heap segment.
func WithSegmentSize(cells int) Option {
	return func(c *config) {
		c.heap.SegmentSize = cells
	}
}

// WithMaxSegments limits the number of heap segments.
func WithMaxSegments(n int) Option {
	return func(c *config) {
		c.heap.MaxSegments = n
	}
}

// WithFirstSegments sets the number of segments allocated at start up.
func WithFirstSegments(n int) Option {
	return func(c *config) {
		c.heap.FirstSegments = n
	}
}

// WithAllocator routes segment allocation through a.
func WithAllocator(a heap.Allocator) Option {
	return func(c *config) {
		c.heap.Allocator = a
	}
}

// WithArityPolicy sets the policy for surplus closure arguments.
func WithArityPolicy(p ArityPolicy) Option {
	return func(c *config) {
		c.arity = p
	}
}

// WithOutput captures output written to the standard output port and
// error messages.
func WithOutput(f func(kind OutputKind, p []byte)) Option {
	return func(c *config) {
		c.output = f
	}
}

// WithLogger sets the logger used for diagnostics. A nil logger discards
// everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}

		c.logger = l
	}
}

// WithTranslator sets the function applied to _"translatable" strings.
func WithTranslator(f func(string) string) Option {
	return func(c *config) {
		if f != nil {
			c.translate = f
		}
	}
}

// WithoutBoot skips loading the bootstrap library.
func WithoutBoot() Option {
	return func(c *config) {
		c.boot = false
	}
}
