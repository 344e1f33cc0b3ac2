package maze

import "fmt"

// Open-side bits of a Layout cell mask. A set bit means the side is open.
const (
	OpenUp    uint8 = 1
	OpenRight uint8 = 2
	OpenDown  uint8 = 4
	OpenLeft  uint8 = 8
)

var headingBits = [4]uint8{OpenUp, OpenRight, OpenDown, OpenLeft}

// Bit returns the open-side bit for h.
func (h Heading) Bit() uint8 { return headingBits[h] }

// Layout is complete wall knowledge for one maze: a per-cell bitmask of
// open sides. A fresh Layout has every wall closed.
type Layout struct {
	grid *Grid
	open []uint8
}

// NewLayout returns a fully walled layout over g.
func NewLayout(g *Grid) *Layout {
	return &Layout{grid: g, open: make([]uint8, g.Len())}
}

// Grid returns the underlying geometry.
func (l *Layout) Grid() *Grid { return l.grid }

// Mask returns the open-side bitmask of c.
func (l *Layout) Mask(c Cell) uint8 { return l.open[l.grid.Index(c)] }

// SetMask overwrites the open-side bitmask of c without touching neighbours.
// Used by loaders; call Validate afterwards.
func (l *Layout) SetMask(c Cell, m uint8) { l.open[l.grid.Index(c)] = m & 0x0F }

// Open reports whether the side of c facing h is open.
// Sides facing off the board are always reported closed by valid layouts.
func (l *Layout) Open(c Cell, h Heading) bool {
	return l.open[l.grid.Index(c)]&h.Bit() != 0
}

// Carve removes the wall between c and its neighbour along h on both sides.
func (l *Layout) Carve(c Cell, h Heading) error {
	n, ok := l.grid.Neighbor(c, h)
	if !ok || !l.grid.InBounds(c) {
		return fmt.Errorf("%w: carve %s towards %s", ErrOutOfBounds, c, h)
	}
	l.open[l.grid.Index(c)] |= h.Bit()
	l.open[l.grid.Index(n)] |= h.Reverse().Bit()
	return nil
}

// SetWall closes the side of c facing h, and the matching side of the neighbour if any.
func (l *Layout) SetWall(c Cell, h Heading) {
	l.open[l.grid.Index(c)] &^= h.Bit()
	if n, ok := l.grid.Neighbor(c, h); ok {
		l.open[l.grid.Index(n)] &^= h.Reverse().Bit()
	}
}

// Distance counts the open cells ahead of c along h, capped at max.
// A value of 0 means a wall is directly adjacent.
func (l *Layout) Distance(c Cell, h Heading, max int) int {
	d := 0
	for d < max && l.Open(c, h) {
		c, _ = l.grid.Neighbor(c, h)
		d++
	}
	return d
}

// Validate checks that the perimeter is closed and that every pair of
// neighbouring cells agrees on the wall between them.
// Complexity: O(dim²).
func (l *Layout) Validate() error {
	g := l.grid
	for i := range l.open {
		c := g.CellAt(i)
		for _, h := range Headings {
			n, ok := g.Neighbor(c, h)
			if !ok {
				if l.Open(c, h) {
					return fmt.Errorf("%w: %s open towards %s", ErrOpenPerimeter, c, h)
				}
				continue
			}
			if l.Open(c, h) != l.Open(n, h.Reverse()) {
				return fmt.Errorf("%w: %s/%s", ErrInconsistentWalls, c, n)
			}
		}
	}
	return nil
}
