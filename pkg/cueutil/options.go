// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize caps CUE input at 5MB. Gatefiles and configs are
// tiny; anything larger is a mistake or malice, and the compiler would
// happily eat the memory.
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

type (
	parseOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option adjusts parsing behavior.
	Option func(*parseOptions)
)

func defaultOptions() parseOptions {
	return parseOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
		filename:    "",
	}
}

// WithMaxFileSize overrides the input size cap.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) {
		o.maxFileSize = size
	}
}

// WithConcrete controls whether validation demands concrete values after
// unification. On by default; turn it off for documents where optional
// fields stay unset and defaults fill in later.
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) {
		o.concrete = concrete
	}
}

// WithFilename names the input in CUE error positions.
func WithFilename(name string) Option {
	return func(o *parseOptions) {
		o.filename = name
	}
}
