package sensor

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvmaze/dstar"
	"github.com/katalvlaran/lvmaze/maze"
)

// MaxRange is the largest distance a sensor reports.
const MaxRange = 3

// ErrBadReading indicates a distance outside [0, max] or beyond the board edge.
var ErrBadReading = errors.New("sensor: reading out of range")

// Reading is one (left, front, right) triple relative to the agent heading.
type Reading struct {
	Left, Front, Right int
}

// Values returns the reading in sensor order.
func (r Reading) Values() [3]int { return [3]int{r.Left, r.Front, r.Right} }

// DeadEnd reports whether walls surround the agent on all three sensed sides.
func (r Reading) DeadEnd() bool { return r.Left == 0 && r.Front == 0 && r.Right == 0 }

// Validate rejects distances outside [0, max].
func (r Reading) Validate(max int) error {
	for i, v := range r.Values() {
		if v < 0 || v > max {
			return fmt.Errorf("%w: sensor %d = %d, want [0,%d]", ErrBadReading, i, v, max)
		}
	}
	return nil
}

// EdgeUpdate is one confirmed edge derived from a reading.
type EdgeUpdate struct {
	From, To maze.Cell
	Heading  maze.Heading // absolute direction From → To
	Cost     int64
	Distance int // raw clear-cell count that produced the update
}

// Open reports whether the update confirms a passage.
func (u EdgeUpdate) Open() bool { return u.Cost != dstar.Inf }

// Translate derives the edge updates implied by reading at cell c facing h,
// in sensor order (left, front, right). Directions leaving the board yield no
// update and must read 0; any distance longer than the room left on the board
// is ErrBadReading.
func Translate(grid *maze.Grid, c maze.Cell, h maze.Heading, r Reading) ([]EdgeUpdate, error) {
	if !grid.InBounds(c) {
		return nil, fmt.Errorf("%w: %s", maze.ErrOutOfBounds, c)
	}
	if !h.Valid() {
		return nil, fmt.Errorf("%w: %d", maze.ErrBadHeading, int(h))
	}
	dirs := h.SensorHeadings()
	vals := r.Values()
	out := make([]EdgeUpdate, 0, 3)
	for i, d := range dirs {
		if vals[i] < 0 || vals[i] > grid.Room(c, d) {
			return nil, fmt.Errorf("%w: sensor %d = %d towards %s from %s, room %d",
				ErrBadReading, i, vals[i], d, c, grid.Room(c, d))
		}
		n, ok := grid.Neighbor(c, d)
		if !ok {
			continue
		}
		cost := dstar.DefaultEdgeCost
		if vals[i] == 0 {
			cost = dstar.Inf
		}
		out = append(out, EdgeUpdate{From: c, To: n, Heading: d, Cost: cost, Distance: vals[i]})
	}
	return out, nil
}

// Apply feeds updates into the planner and reports how many changed a cost.
func Apply(p *dstar.Planner, updates []EdgeUpdate) (int, error) {
	changed := 0
	for _, u := range updates {
		ok, err := p.SetEdgeCost(u.From, u.To, u.Cost)
		if err != nil {
			return changed, err
		}
		if ok {
			changed++
		}
	}
	return changed, nil
}
