// Package kinematics turns a target cell into the (rotation, distance)
// command the motion layer executes, and applies commands to a pose.
//
// Rotation is clockwise degrees in {-90, 0, +90}; distance is the signed
// number of cells in [-MaxDistance, MaxDistance], negative meaning backwards
// without turning. Requests beyond the maximum are capped, not rejected;
// every cap is logged at Warn level.
package kinematics

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvmaze/maze"
)

// MaxDistance is the longest move allowed in one command.
const MaxDistance = 3

// ErrNotStraight indicates a target that is not on the agent's row or column.
var ErrNotStraight = errors.New("kinematics: target is not in a straight line")

// Command is one motion instruction.
type Command struct {
	Rotation int
	Distance int
}

// String renders the command as "(rotation, distance)".
func (c Command) String() string {
	return fmt.Sprintf("(%+d, %+d)", c.Rotation, c.Distance)
}

// Controller converts targets to commands. The zero value is not usable; call New.
type Controller struct {
	log *slog.Logger
	max int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used to report clamping. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("kinematics: WithLogger(nil)")
	}
	return func(c *Controller) { c.log = l }
}

// WithMaxDistance lowers the per-command limit. Panics outside [1, MaxDistance].
func WithMaxDistance(n int) Option {
	if n < 1 || n > MaxDistance {
		panic(fmt.Sprintf("kinematics: WithMaxDistance(%d) outside [1,%d]", n, MaxDistance))
	}
	return func(c *Controller) { c.max = n }
}

// New returns a Controller with MaxDistance and slog.Default().
func New(opts ...Option) *Controller {
	c := &Controller{log: slog.Default(), max: MaxDistance}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(slog.String("component", "kinematics"))
	return c
}

// Max returns the per-command distance limit.
func (k *Controller) Max() int { return k.max }

// Clamp caps |d| at the controller limit, keeping the sign.
func (k *Controller) Clamp(d int) int {
	switch {
	case d > k.max:
		k.log.Warn("movement clamped", slog.Int("requested", d), slog.Int("applied", k.max))
		return k.max
	case d < -k.max:
		k.log.Warn("movement clamped", slog.Int("requested", d), slog.Int("applied", -k.max))
		return -k.max
	}
	return d
}

// Command returns the instruction that moves an agent at from, facing
// heading, to the straight-line target to. Targets behind the agent are
// reached by reversing without turning.
func (k *Controller) Command(heading maze.Heading, from, to maze.Cell) (Command, error) {
	dir, steps, ok := maze.DirectionTo(from, to)
	if !ok {
		return Command{}, fmt.Errorf("%w: %s → %s", ErrNotStraight, from, to)
	}
	if dir == heading.Reverse() {
		return Command{Rotation: 0, Distance: k.Clamp(-steps)}, nil
	}
	rot, err := maze.RotationBetween(heading, dir)
	if err != nil {
		return Command{}, err
	}
	return Command{Rotation: rot, Distance: k.Clamp(steps)}, nil
}

// Apply returns the pose reached by executing cmd from (from, heading) on an
// open board: rotate first, then move. Walls are the simulator's business.
func (k *Controller) Apply(heading maze.Heading, from maze.Cell, cmd Command) (maze.Cell, maze.Heading, error) {
	h, err := heading.Rotate(cmd.Rotation)
	if err != nil {
		return from, heading, err
	}
	d := k.Clamp(cmd.Distance)
	dir := h
	if d < 0 {
		dir, d = h.Reverse(), -d
	}
	dx, dy := dir.Delta()
	return maze.Cell{X: from.X + dx*d, Y: from.Y + dy*d}, h, nil
}
