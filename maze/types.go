package maze

import (
	"errors"
	"fmt"
)

// Sentinel errors for maze geometry.
var (
	// ErrDimTooSmall indicates a grid dimension below MinDim.
	ErrDimTooSmall = errors.New("maze: dimension must be at least 2")
	// ErrOutOfBounds indicates a cell outside [0,dim)².
	ErrOutOfBounds = errors.New("maze: cell out of bounds")
	// ErrBadRotation indicates a rotation other than -90, 0 or +90 degrees.
	ErrBadRotation = errors.New("maze: rotation must be -90, 0 or +90")
	// ErrBadHeading indicates an unknown heading name or value.
	ErrBadHeading = errors.New("maze: unknown heading")
	// ErrOpenPerimeter indicates a layout with an opening in the outer wall.
	ErrOpenPerimeter = errors.New("maze: perimeter must be closed")
	// ErrInconsistentWalls indicates two neighbouring cells disagree on the wall between them.
	ErrInconsistentWalls = errors.New("maze: neighbouring cells disagree on shared wall")
)

// MinDim is the smallest supported grid dimension.
const MinDim = 2

// Cell is a grid coordinate. The zero value is the bottom-left corner,
// which is also the conventional start cell.
type Cell struct {
	X, Y int
}

// String renders the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Heading is an absolute cardinal direction. The iota order is the
// deterministic direction order used for tie-breaking across the module.
type Heading int

const (
	// Up points towards increasing Y.
	Up Heading = iota
	// Right points towards increasing X.
	Right
	// Down points towards decreasing Y.
	Down
	// Left points towards decreasing X.
	Left
)

// Headings lists all headings in direction order.
var Headings = [4]Heading{Up, Right, Down, Left}
