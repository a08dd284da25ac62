package tablature

import (
	"io"
	"log/slog"

	"github.com/simonhull/tablature/internal/binary"
	"github.com/simonhull/tablature/internal/registry"
)

// Option configures a Session.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	s := tablature.Open(r,
//	    tablature.WithStrictParsing(),
//	    tablature.WithMaxAllocation(64<<20),
//	)
type Option func(*options)

// options holds the configuration of one session.
type options struct {
	logger         *slog.Logger
	registry       *registry.Registry
	maxAllocation  uint64 // Allocation budget of the session in bytes
	strictParsing  bool   // Fail on any warning
	ignoreWarnings bool   // Suppress all warnings
	decompress     bool   // Detect and unwrap compressed input
}

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		registry:      registry.Default(),
		maxAllocation: binary.DefaultBudget,
		decompress:    true,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithMaxAllocation sets the allocation budget of the session in bytes.
//
// Every variable-length field is charged against the budget before it is
// allocated. A stream whose declared lengths would exceed it fails with
// ErrResourceLimit instead of exhausting memory. The default is 1 GiB.
//
// Example:
//
//	// Refuse anything that needs more than 16MB
//	s := tablature.Open(r, tablature.WithMaxAllocation(16<<20))
func WithMaxAllocation(n uint64) Option {
	return func(o *options) {
		o.maxAllocation = n
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default the decoder tolerates a few anomalies, such as an n-tuplet
// value outside the known set, by dropping the value and recording a
// Warning on the song. With strict parsing enabled these fail the load
// with ErrInvalidData.
func WithStrictParsing() Option {
	return func(o *options) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// By default, warnings about non-fatal issues are collected in
// Song.Warnings. This option discards them.
func WithIgnoreWarnings() Option {
	return func(o *options) {
		o.ignoreWarnings = true
	}
}

// WithLogger sets the logger used for decode diagnostics.
//
// Stage completion is logged at Debug level and tolerated anomalies at
// Warn level. By default nothing is logged.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	s := tablature.Open(r, tablature.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDecompression enables or disables detection of gzip, zstd, lz4 and
// s2 compressed input. It is enabled by default.
func WithDecompression(enabled bool) Option {
	return func(o *options) {
		o.decompress = enabled
	}
}

// withRegistry decodes with r instead of the default registry.
func withRegistry(r *registry.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}
