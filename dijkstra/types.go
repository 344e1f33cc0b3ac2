// Package dijkstra defines options and sentinel errors for the grid Dijkstra search.
package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/lvmaze/maze"
)

// Unreachable is the distance reported for cells no source can reach.
const Unreachable int64 = math.MaxInt64

// Sentinel errors returned by Distances.
var (
	// ErrNilGrid indicates that a nil grid was passed.
	ErrNilGrid = errors.New("dijkstra: grid is nil")

	// ErrNilCost indicates that no edge cost function was provided.
	ErrNilCost = errors.New("dijkstra: cost function is nil")

	// ErrNoSources indicates that the source set is empty.
	ErrNoSources = errors.New("dijkstra: no source cells")

	// ErrSourceOutOfBounds indicates a source cell outside the grid.
	ErrSourceOutOfBounds = errors.New("dijkstra: source cell out of bounds")

	// ErrNegativeWeight indicates that a negative edge weight was detected.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrBadInfThreshold indicates that InfEdgeThreshold was set to zero or negative.
	ErrBadInfThreshold = errors.New("dijkstra: InfEdgeThreshold must be positive")
)

// CostFunc returns the cost of leaving c along h. It is only called for
// directions that stay on the grid. Return Unreachable (or any value at or
// above the threshold) for walls.
type CostFunc func(c maze.Cell, h maze.Heading) int64

// Options configures the search.
//
// Sources          - cells at distance 0 (required).
// ReturnPath       - if true, return the next-hop slice; otherwise it is nil.
// MaxDistance      - cells farther than this are left Unreachable. Default math.MaxInt64.
// InfEdgeThreshold - edges with cost ≥ threshold are walls. Default math.MaxInt64.
type Options struct {
	Sources          []maze.Cell
	ReturnPath       bool
	MaxDistance      int64
	InfEdgeThreshold int64
}

// Option represents a functional option for configuring Distances.
type Option func(*Options)

// Sources sets the zero-distance cells.
func Sources(cells ...maze.Cell) Option {
	return func(o *Options) {
		o.Sources = append(o.Sources[:0:0], cells...)
	}
}

// WithReturnPath enables the next-hop slice in the result.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxDistance caps exploration. Panics on negative values.
func WithMaxDistance(max int64) Option {
	return func(o *Options) {
		if max < 0 {
			panic(ErrBadMaxDistance.Error())
		}
		o.MaxDistance = max
	}
}

// WithInfEdgeThreshold treats edges with cost ≥ threshold as walls.
// Panics on zero or negative thresholds.
func WithInfEdgeThreshold(threshold int64) Option {
	return func(o *Options) {
		if threshold <= 0 {
			panic(ErrBadInfThreshold.Error())
		}
		o.InfEdgeThreshold = threshold
	}
}

// DefaultOptions returns no sources, no path, and no distance or edge caps.
func DefaultOptions() Options {
	return Options{
		MaxDistance:      math.MaxInt64,
		InfEdgeThreshold: math.MaxInt64,
	}
}

// FromLayout returns a CostFunc of 1 for open sides and Unreachable for walls.
func FromLayout(l *maze.Layout) CostFunc {
	return func(c maze.Cell, h maze.Heading) int64 {
		if l.Open(c, h) {
			return 1
		}
		return Unreachable
	}
}
