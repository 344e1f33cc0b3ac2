// SPDX-License-Identifier: MIT
// Package: lvmaze/mazegen
//
// options.go - functional options for Generate.
//
// Contract:
//   • Option constructors validate and panic on meaningless inputs.
//     Generate itself never panics.

package mazegen

import (
	"errors"
	"math/rand"
)

// ErrBadDimension wraps maze.ErrDimTooSmall for generator callers.
var ErrBadDimension = errors.New("mazegen: invalid dimension")

// defaultSeed is used when callers pass seed == 0.
const defaultSeed int64 = 1

// Option customizes generation.
type Option func(*config)

type config struct {
	rng      *rand.Rand
	loops    int
	openGoal bool
}

func defaultConfig() config {
	return config{rng: rngFromSeed(0)}
}

// rngFromSeed returns a deterministic *rand.Rand; seed 0 means defaultSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// WithSeed creates a deterministic RNG stream.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rngFromSeed(seed)
	}
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("mazegen: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}

// WithLoops opens n extra walls after carving. Panics on negative n.
func WithLoops(n int) Option {
	if n < 0 {
		panic("mazegen: WithLoops(negative)")
	}
	return func(c *config) {
		c.loops = n
	}
}

// WithOpenGoal removes the walls between goal cells.
func WithOpenGoal() Option {
	return func(c *config) {
		c.openGoal = true
	}
}
