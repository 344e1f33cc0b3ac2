// Package maze models the static geometry of a square micromouse-style maze:
// cell coordinates, 4-neighbour adjacency, the central goal region and the
// heading lookup tables an agent needs to interpret relative sensor readings.
//
// What:
//
//   - Grid is an immutable dim×dim board with a precomputed goal region.
//   - Cell is an (X, Y) coordinate; Y grows "up", X grows "right".
//   - Heading is one of the four cardinal directions (Up, Right, Down, Left).
//   - Layout is full ground-truth wall knowledge, used by simulators, maze files
//     and generators. The planner never sees a Layout.
//
// Goal region:
//
//   - Even dim: the central 2×2 block {m-1, m}² with m = dim/2.
//   - Odd dim:  the two cells (m-1, m) and (m, m) with m = dim/2.
//
// Heading tables are pure functions on Heading:
//
//	SensorHeadings  heading → (left, front, right) absolute headings
//	Delta           heading → (dx, dy) movement delta
//	Reverse         heading → opposite heading
//	Rotate          heading × {-90, 0, +90} → heading
//
// Complexity:
//
//   - All Grid queries are O(1); Neighbors allocates at most 4 cells.
//   - Layout.Validate is O(dim²).
//
// Errors:
//
//   - ErrDimTooSmall: dim < 2.
//   - ErrOutOfBounds: cell outside [0,dim)².
//   - ErrBadRotation: rotation outside {-90, 0, +90}.
//   - ErrBadHeading: unknown heading name.
//   - ErrOpenPerimeter / ErrInconsistentWalls: malformed Layout.
package maze
