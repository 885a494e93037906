package plygo

import (
	"github.com/JTvD/plygo/compress"
)

type options struct {
	dropGeometryColumns bool
	materializeGeometry bool
	compressor          compress.Compressor
	logger              *Logger
}

func defaultOptions() options {
	return options{
		dropGeometryColumns: true,
		materializeGeometry: true,
		logger:              NoopLogger(),
	}
}

// Option configures load/save behavior.
type Option func(*options)

// WithDropGeometryColumns controls whether a split strips the
// geometry columns from the returned table once a geometry was built.
// Default true: the table holds attribute columns exclusively.
// Diagnostics pipelines pass false to keep geometry columns alongside
// the attributes.
func WithDropGeometryColumns(drop bool) Option {
	return func(o *options) {
		o.dropGeometryColumns = drop
	}
}

// WithoutGeometry skips geometry materialization entirely; Load and
// Split return a nil Geometry and the table is left untouched.
func WithoutGeometry() Option {
	return func(o *options) {
		o.materializeGeometry = false
	}
}

// WithCompressor forces a compressor for the stored byte stream.
// When unset, the compressor is chosen from the blob name extension
// (.gz, .zst, .lz4), falling back to no compression.
func WithCompressor(c compress.Compressor) Option {
	return func(o *options) {
		o.compressor = c
	}
}

// WithLogger configures the logger used by Load and Save.
// The default discards all output.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
