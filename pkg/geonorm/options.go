package geonorm

import (
	"github.com/beetlebugorg/geonorm/internal/parser"
)

// ParseOptions configures normalization behavior.
type ParseOptions struct {
	// ValidateGeometry checks decoded coordinates against geographic
	// bounds and rejects out-of-range rings. Default: true.
	ValidateGeometry bool

	// Parallel enables concurrent per-record geometry decoding.
	//
	// Outputs are identical to the serial path: positional ids and the
	// column manifest derive from source position, not completion order.
	Parallel bool

	// Workers is the number of decode goroutines when Parallel is set.
	// If 0, defaults to runtime.NumCPU().
	Workers int

	// Progress is an optional callback invoked after each record decode.
	// Parameters are (done, total).
	Progress func(done, total int)
}

// DefaultParseOptions returns default options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		ValidateGeometry: true,
		Parallel:         false,
		Workers:          0,
		Progress:         nil,
	}
}

// internal converts to the internal option set.
func (o ParseOptions) internal() parser.ParseOptions {
	return parser.ParseOptions{
		ValidateGeometry: o.ValidateGeometry,
		Parallel:         o.Parallel,
		Workers:          o.Workers,
		Progress:         o.Progress,
	}
}
