package maze

import "fmt"

// Grid is an immutable dim×dim maze board. It carries no wall knowledge;
// adjacency is purely geometric (4-connectivity, in-bounds).
type Grid struct {
	dim      int
	goals    []Cell
	goalMask []bool
}

// NewGrid constructs a Grid and precomputes its goal region.
// Returns ErrDimTooSmall if dim < MinDim.
// Complexity: O(dim²) time and memory for the goal mask.
func NewGrid(dim int) (*Grid, error) {
	if dim < MinDim {
		return nil, fmt.Errorf("%w: got %d", ErrDimTooSmall, dim)
	}
	g := &Grid{
		dim:      dim,
		goalMask: make([]bool, dim*dim),
	}
	m := dim / 2
	if dim%2 == 0 {
		g.goals = []Cell{{m - 1, m - 1}, {m, m - 1}, {m - 1, m}, {m, m}}
	} else {
		g.goals = []Cell{{m - 1, m}, {m, m}}
	}
	for _, c := range g.goals {
		g.goalMask[g.Index(c)] = true
	}

	return g, nil
}

// MustGrid is NewGrid for package-level fixtures; it panics on error.
func MustGrid(dim int) *Grid {
	g, err := NewGrid(dim)
	if err != nil {
		panic(err)
	}
	return g
}

// Dim returns the side length.
func (g *Grid) Dim() int { return g.dim }

// Len returns the number of cells, dim².
func (g *Grid) Len() int { return g.dim * g.dim }

// InBounds reports whether c lies inside the board.
// Complexity: O(1).
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.dim && c.Y >= 0 && c.Y < g.dim
}

// Index maps c to its row-major index y*dim + x.
// Panics with ErrOutOfBounds for cells outside the board: callers only ever
// index cells they obtained from the grid itself.
func (g *Grid) Index(c Cell) int {
	if !g.InBounds(c) {
		panic(fmt.Errorf("%w: %s in %d×%d", ErrOutOfBounds, c, g.dim, g.dim))
	}
	return c.Y*g.dim + c.X
}

// CellAt converts a row-major index back to a Cell.
func (g *Grid) CellAt(idx int) Cell {
	return Cell{X: idx % g.dim, Y: idx / g.dim}
}

// Neighbor returns the cell one step from c along h, and whether it is on the board.
func (g *Grid) Neighbor(c Cell, h Heading) (Cell, bool) {
	dx, dy := h.Delta()
	n := Cell{X: c.X + dx, Y: c.Y + dy}
	return n, g.InBounds(n)
}

// Room returns how many cells lie between c and the board edge along h.
// Out-of-bounds cells and invalid headings have no room.
// Complexity: O(1).
func (g *Grid) Room(c Cell, h Heading) int {
	if !g.InBounds(c) || !h.Valid() {
		return 0
	}
	switch h {
	case Up:
		return g.dim - 1 - c.Y
	case Right:
		return g.dim - 1 - c.X
	case Down:
		return c.Y
	default:
		return c.X
	}
}

// Neighbors returns the in-bounds 4-neighbours of c in direction order.
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, 4)
	for _, h := range Headings {
		if n, ok := g.Neighbor(c, h); ok {
			out = append(out, n)
		}
	}
	return out
}

// IsGoal reports whether c belongs to the goal region. Out-of-bounds cells are never goals.
func (g *Grid) IsGoal(c Cell) bool {
	return g.InBounds(c) && g.goalMask[g.Index(c)]
}

// Goals returns a copy of the goal region.
func (g *Grid) Goals() []Cell {
	out := make([]Cell, len(g.goals))
	copy(out, g.goals)
	return out
}

// DirectionTo reports the heading and step count from a to b when both lie
// on the same row or column. ok is false for a == b or off-axis targets.
func DirectionTo(a, b Cell) (h Heading, steps int, ok bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	switch {
	case dx == 0 && dy > 0:
		return Up, dy, true
	case dx == 0 && dy < 0:
		return Down, -dy, true
	case dy == 0 && dx > 0:
		return Right, dx, true
	case dy == 0 && dx < 0:
		return Left, -dx, true
	}
	return Up, 0, false
}

// Manhattan returns |ax-bx| + |ay-by|.
func Manhattan(a, b Cell) int64 {
	return int64(abs(a.X-b.X) + abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
