// Package explore holds the interchangeable exploration policies a
// navigator can use instead of the cost model to pick its next cell.
//
// A Policy only sees the cells the agent may legally move to this cycle;
// it never touches the planner.
package explore

import (
	"math/rand"

	"github.com/katalvlaran/lvmaze/maze"
)

// defaultSeed is used when callers pass seed == 0.
const defaultSeed int64 = 1

// Policy chooses the next cell among the possible ones. possible is never
// empty when the navigator calls it.
type Policy interface {
	ChooseNext(possible []maze.Cell) maze.Cell
}

// Func adapts an ordinary function to the Policy interface.
type Func func(possible []maze.Cell) maze.Cell

// ChooseNext calls f(possible).
func (f Func) ChooseNext(possible []maze.Cell) maze.Cell { return f(possible) }

// Random picks uniformly among the possible cells from a seeded stream, so
// a given seed always replays the same walk. Not safe for concurrent use.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random policy; seed 0 selects the package default.
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = defaultSeed
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// ChooseNext returns one of possible, or the zero cell when possible is empty.
func (r *Random) ChooseNext(possible []maze.Cell) maze.Cell {
	if len(possible) == 0 {
		return maze.Cell{}
	}
	return possible[r.rng.Intn(len(possible))]
}

// First always takes the first possible cell: the navigator lists
// candidates left, front, right, so First hugs the left wall.
type First struct{}

// ChooseNext returns possible[0], or the zero cell when possible is empty.
func (First) ChooseNext(possible []maze.Cell) maze.Cell {
	if len(possible) == 0 {
		return maze.Cell{}
	}
	return possible[0]
}
