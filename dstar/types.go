// SPDX-License-Identifier: MIT
// Package: lvmaze/dstar
//
// types.go - sentinel errors, keys, edge knowledge states and options.

package dstar

import (
	"errors"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvmaze/maze"
)

// Inf is the infinite cost sentinel. All cost arithmetic saturates at Inf.
const Inf int64 = math.MaxInt64

// Sentinel errors returned by the planner.
var (
	// ErrNilGrid indicates New was called without a grid.
	ErrNilGrid = errors.New("dstar: grid is nil")
	// ErrUninitialized indicates use of a zero-value Planner.
	ErrUninitialized = errors.New("dstar: planner is not initialized")
	// ErrOutOfBounds indicates a cell outside the grid.
	ErrOutOfBounds = errors.New("dstar: cell out of bounds")
	// ErrNotAdjacent indicates an edge update or candidate that is not a grid edge of the origin.
	ErrNotAdjacent = errors.New("dstar: cells are not grid-adjacent")
	// ErrBadCost indicates a non-positive edge cost.
	ErrBadCost = errors.New("dstar: edge cost must be positive")
	// ErrEdgeLowered indicates an attempt to reopen a confirmed wall.
	ErrEdgeLowered = errors.New("dstar: confirmed wall cannot be lowered")
	// ErrNoPath indicates the goal region is unreachable under current knowledge.
	ErrNoPath = errors.New("dstar: no path to goal")
	// ErrExpansionLimit indicates ComputeShortestPath hit the configured pop limit.
	ErrExpansionLimit = errors.New("dstar: expansion limit reached")
)

// Key orders frontier entries lexicographically.
type Key struct {
	K1, K2 int64
}

// InfKey is returned by an empty frontier; it compares greater than every finite key.
var InfKey = Key{K1: Inf, K2: Inf}

// Less reports whether k sorts strictly before o.
func (k Key) Less(o Key) bool {
	if k.K1 != o.K1 {
		return k.K1 < o.K1
	}
	return k.K2 < o.K2
}

// EdgeState records what the agent knows about an edge.
type EdgeState uint8

const (
	// EdgeNone marks a direction that leaves the grid; there is no edge.
	EdgeNone EdgeState = iota
	// EdgeUnknown is an edge never sensed; it carries the optimistic default cost.
	EdgeUnknown
	// EdgeOpen is an edge confirmed free by a sensor reading.
	EdgeOpen
	// EdgeBlocked is a confirmed wall; its cost is Inf for good.
	EdgeBlocked
)

func (s EdgeState) String() string {
	switch s {
	case EdgeUnknown:
		return "unknown"
	case EdgeOpen:
		return "open"
	case EdgeBlocked:
		return "blocked"
	}
	return "none"
}

// DefaultEdgeCost is the optimistic cost of every in-grid edge before sensing.
const DefaultEdgeCost int64 = 1

// Stats counts frontier work done by one ComputeShortestPath call.
type Stats struct {
	Pops         int // entries removed from the frontier
	Expansions   int // overconsistent vertices settled (g lowered to rhs)
	Raises       int // underconsistent vertices reset to Inf
	Reinsertions int // stale keys pushed back without expansion
	Updates      int // UpdateVertex calls
}

// Heuristic estimates the cost between two cells. It must be admissible and
// satisfy the triangle inequality for the repaired keys to stay valid.
type Heuristic func(a, b maze.Cell) int64

// Options configures a Planner.
type Options struct {
	Logger         *slog.Logger
	Heuristic      Heuristic
	ExpansionLimit int // 0 disables the limit
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Manhattan distance, no expansion limit and slog.Default().
func DefaultOptions() Options {
	return Options{
		Logger:    slog.Default(),
		Heuristic: maze.Manhattan,
	}
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("dstar: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// WithHeuristic replaces the Manhattan heuristic. Panics on nil.
func WithHeuristic(h Heuristic) Option {
	if h == nil {
		panic("dstar: WithHeuristic(nil)")
	}
	return func(o *Options) { o.Heuristic = h }
}

// WithExpansionLimit caps frontier pops per ComputeShortestPath call.
// Panics on negative values; 0 disables the cap.
func WithExpansionLimit(n int) Option {
	if n < 0 {
		panic("dstar: WithExpansionLimit(negative)")
	}
	return func(o *Options) { o.ExpansionLimit = n }
}

// addCost adds two costs, saturating at Inf.
func addCost(a, b int64) int64 {
	if a == Inf || b == Inf || a > Inf-b {
		return Inf
	}
	return a + b
}
