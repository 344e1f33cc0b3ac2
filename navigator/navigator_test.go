package navigator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmaze/dstar"
	"github.com/katalvlaran/lvmaze/explore"
	"github.com/katalvlaran/lvmaze/kinematics"
	"github.com/katalvlaran/lvmaze/maze"
	"github.com/katalvlaran/lvmaze/navigator"
	"github.com/katalvlaran/lvmaze/sensor"
)

// sense reads the true wall distances of l at pose.
func sense(l *maze.Layout, p navigator.Pose) sensor.Reading {
	hs := p.Heading.SensorHeadings()
	return sensor.Reading{
		Left:  l.Distance(p.Location, hs[0], sensor.MaxRange),
		Front: l.Distance(p.Location, hs[1], sensor.MaxRange),
		Right: l.Distance(p.Location, hs[2], sensor.MaxRange),
	}
}

// openLayout carves every interior wall of a dim×dim board.
func openLayout(t *testing.T, dim int) *maze.Layout {
	t.Helper()
	l := maze.NewLayout(maze.MustGrid(dim))
	for x := 0; x < dim; x++ {
		for y := 0; y < dim; y++ {
			c := maze.Cell{X: x, Y: y}
			if x+1 < dim {
				require.NoError(t, l.Carve(c, maze.Right))
			}
			if y+1 < dim {
				require.NoError(t, l.Carve(c, maze.Up))
			}
		}
	}
	return l
}

// corridor is a 6×6 board with one passage: up the left column to (0,3),
// then right into the goal at (2,3).
func corridor(t *testing.T) *maze.Layout {
	t.Helper()
	l := maze.NewLayout(maze.MustGrid(6))
	for _, s := range []struct {
		c maze.Cell
		h maze.Heading
	}{
		{maze.Cell{X: 0, Y: 0}, maze.Up},
		{maze.Cell{X: 0, Y: 1}, maze.Up},
		{maze.Cell{X: 0, Y: 2}, maze.Up},
		{maze.Cell{X: 0, Y: 3}, maze.Right},
		{maze.Cell{X: 1, Y: 3}, maze.Right},
	} {
		require.NoError(t, l.Carve(s.c, s.h))
	}
	require.NoError(t, l.Validate())
	return l
}

// drive steps n against l until the goal is reached or limit moves elapse.
func drive(t *testing.T, n *navigator.Navigator, l *maze.Layout, limit int) []navigator.Directive {
	t.Helper()
	var out []navigator.Directive
	for i := 0; i < limit && n.State() == navigator.Exploring; i++ {
		d, err := n.Step(sense(l, n.Pose()))
		require.NoError(t, err)
		out = append(out, d)
	}
	return out
}

// TestStep_StartScenario: wall left and right, three cells clear ahead.
func TestStep_StartScenario(t *testing.T) {
	n, err := navigator.New(maze.MustGrid(4))
	require.NoError(t, err)

	d, err := n.Step(sensor.Reading{Left: 0, Front: 3, Right: 0})
	require.NoError(t, err)
	assert.Equal(t, navigator.Move, d.Kind)
	assert.Equal(t, maze.Cell{X: 0, Y: 1}, d.Target)
	assert.Equal(t, kinematics.Command{Rotation: 0, Distance: 1}, d.Command)
	assert.Equal(t, navigator.Pose{Location: maze.Cell{X: 0, Y: 1}, Heading: maze.Up}, n.Pose())

	p := n.Planner()
	assert.Equal(t, dstar.EdgeOpen, p.EdgeState(maze.Cell{}, maze.Up))
	assert.Equal(t, dstar.EdgeBlocked, p.EdgeState(maze.Cell{}, maze.Right))
}

// TestStep_GoalEmitsReset verifies that entering the goal ends the run and
// that every later Step yields Reset without moving.
func TestStep_GoalEmitsReset(t *testing.T) {
	l := openLayout(t, 4)
	n, err := navigator.New(l.Grid())
	require.NoError(t, err)

	ds := drive(t, n, l, 20)
	require.Equal(t, navigator.GoalReached, n.State())
	require.Len(t, ds, 2)
	assert.Equal(t, maze.Cell{X: 0, Y: 1}, ds[0].Target)
	assert.Equal(t, maze.Cell{X: 1, Y: 1}, ds[1].Target)
	assert.Equal(t, kinematics.Command{Rotation: 90, Distance: 1}, ds[1].Command)

	pose := n.Pose()
	for i := 0; i < 3; i++ {
		d, err := n.Step(sense(l, pose))
		require.NoError(t, err)
		assert.Equal(t, navigator.Reset, d.Kind)
		assert.Equal(t, pose, n.Pose())
	}
	assert.Equal(t, 2, n.Moves())
}

func TestStep_DeadEndRetreats(t *testing.T) {
	n, err := navigator.New(maze.MustGrid(4))
	require.NoError(t, err)

	d, err := n.Step(sensor.Reading{Left: 0, Front: 1, Right: 1})
	require.NoError(t, err)
	require.Equal(t, maze.Cell{X: 0, Y: 1}, d.Target, "ties prefer the facing direction")

	d, err = n.Step(sensor.Reading{})
	require.NoError(t, err)
	assert.True(t, d.Retreat)
	assert.Equal(t, maze.Cell{X: 0, Y: 0}, d.Target)
	assert.Equal(t, kinematics.Command{Rotation: 0, Distance: -1}, d.Command)
	assert.Equal(t, maze.Up, n.Pose().Heading, "reversing keeps the heading")

	// (0,1) is now a cul-de-sac, so the planner turns right instead.
	d, err = n.Step(sensor.Reading{Left: 0, Front: 1, Right: 1})
	require.NoError(t, err)
	assert.False(t, d.Retreat)
	assert.Equal(t, maze.Cell{X: 1, Y: 0}, d.Target)
	assert.Equal(t, kinematics.Command{Rotation: 90, Distance: 1}, d.Command)
	assert.Equal(t, maze.Right, n.Pose().Heading)
}

func TestStep_Errors(t *testing.T) {
	n, err := navigator.New(maze.MustGrid(4))
	require.NoError(t, err)

	d, err := n.Step(sensor.Reading{Left: 4})
	assert.ErrorIs(t, err, sensor.ErrBadReading)
	assert.Equal(t, navigator.None, d.Kind)

	// (0,0) facing up: the left sensor looks off the board, the front has three cells.
	for _, r := range []sensor.Reading{{Left: 3, Front: 3}, {Left: 2}, {Left: 1, Front: 1, Right: 1}} {
		d, err = n.Step(r)
		assert.ErrorIs(t, err, sensor.ErrBadReading, "reading %+v", r)
		assert.Equal(t, navigator.Directive{}, d)
	}
	assert.Equal(t, navigator.Pose{Heading: maze.Up}, n.Pose())
	assert.Equal(t, dstar.EdgeUnknown, n.Planner().EdgeState(maze.Cell{}, maze.Up))

	_, err = n.Step(sensor.Reading{})
	assert.ErrorIs(t, err, navigator.ErrStuck)
	assert.Equal(t, navigator.Pose{Heading: maze.Up}, n.Pose())
	assert.Equal(t, 0, n.Moves())

	_, err = navigator.New(nil)
	assert.ErrorIs(t, err, navigator.ErrNilGrid)
	_, err = navigator.New(maze.MustGrid(4), navigator.WithStart(navigator.Pose{Location: maze.Cell{X: 9}}))
	assert.ErrorIs(t, err, maze.ErrOutOfBounds)
}

// TestReset_Policies pins both reset policies against the same first run.
func TestReset_Policies(t *testing.T) {
	wall := maze.Cell{X: 0, Y: 0}
	cases := []struct {
		policy navigator.ResetPolicy
		want   dstar.EdgeState
	}{
		{navigator.KeepDiscoveries, dstar.EdgeBlocked},
		{navigator.DiscardDiscoveries, dstar.EdgeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.policy.String(), func(t *testing.T) {
			l := corridor(t)
			n, err := navigator.New(l.Grid(), navigator.WithResetPolicy(tc.policy))
			require.NoError(t, err)

			ds := drive(t, n, l, 50)
			require.Equal(t, navigator.GoalReached, n.State())
			assert.Len(t, ds, 5)
			assert.Equal(t, dstar.EdgeBlocked, n.Planner().EdgeState(wall, maze.Right))

			require.NoError(t, n.Reset())
			assert.Equal(t, navigator.Exploring, n.State())
			assert.Equal(t, 2, n.Run())
			assert.Equal(t, 0, n.Moves())
			assert.Equal(t, navigator.Pose{Heading: maze.Up}, n.Pose())
			assert.Equal(t, tc.want, n.Planner().EdgeState(wall, maze.Right))
			assert.Equal(t, int64(0), n.Planner().KM())

			ds = drive(t, n, l, 50)
			require.Equal(t, navigator.GoalReached, n.State())
			assert.Len(t, ds, 5)
		})
	}
}

// TestExploitRun_LongMoves: with discoveries kept, the second run covers
// known straight corridor in multi-cell moves.
func TestExploitRun_LongMoves(t *testing.T) {
	l := corridor(t)
	n, err := navigator.New(l.Grid(), navigator.WithMaxStep(3))
	require.NoError(t, err)

	first := drive(t, n, l, 50)
	require.Len(t, first, 5, "first run moves one cell at a time")
	for _, d := range first {
		assert.Contains(t, []int{1, -1}, d.Command.Distance)
	}

	require.NoError(t, n.Reset())
	second := drive(t, n, l, 50)
	require.Len(t, second, 2)
	assert.Equal(t, kinematics.Command{Rotation: 0, Distance: 3}, second[0].Command)
	assert.Equal(t, maze.Cell{X: 0, Y: 3}, second[0].Target)
	assert.Equal(t, kinematics.Command{Rotation: 90, Distance: 2}, second[1].Command)
	assert.Equal(t, navigator.GoalReached, n.State())
}

func TestWithPolicy(t *testing.T) {
	last := explore.Func(func(c []maze.Cell) maze.Cell { return c[len(c)-1] })
	n, err := navigator.New(maze.MustGrid(4), navigator.WithPolicy(last))
	require.NoError(t, err)

	d, err := n.Step(sensor.Reading{Left: 0, Front: 3, Right: 3})
	require.NoError(t, err)
	assert.Equal(t, maze.Cell{X: 1, Y: 0}, d.Target)
	assert.Equal(t, maze.Right, n.Pose().Heading)

	n, err = navigator.New(maze.MustGrid(4), navigator.WithPolicy(explore.First{}))
	require.NoError(t, err)
	d, err = n.Step(sensor.Reading{Left: 0, Front: 3, Right: 3})
	require.NoError(t, err)
	assert.Equal(t, maze.Cell{X: 0, Y: 1}, d.Target)
}

// TestRandomPolicy_ReachesGoal runs the random walk on an open board.
func TestRandomPolicy_ReachesGoal(t *testing.T) {
	l := openLayout(t, 4)
	n, err := navigator.New(l.Grid(), navigator.WithPolicy(explore.NewRandom(7)))
	require.NoError(t, err)

	drive(t, n, l, 1000)
	assert.Equal(t, navigator.GoalReached, n.State())
}

func TestParseResetPolicy(t *testing.T) {
	r, err := navigator.ParseResetPolicy("Discard")
	require.NoError(t, err)
	assert.Equal(t, navigator.DiscardDiscoveries, r)
	r, err = navigator.ParseResetPolicy("")
	require.NoError(t, err)
	assert.Equal(t, navigator.KeepDiscoveries, r)
	_, err = navigator.ParseResetPolicy("forget")
	assert.ErrorIs(t, err, navigator.ErrBadResetPolicy)
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { navigator.WithMaxStep(0) })
	assert.Panics(t, func() { navigator.WithMaxStep(4) })
	assert.Panics(t, func() { navigator.WithPolicy(nil) })
	assert.Panics(t, func() { navigator.WithLogger(nil) })
	assert.Panics(t, func() { navigator.WithResetPolicy(navigator.ResetPolicy(9)) })
}

// TestStartInGoal: on a 2×2 board every cell is a goal cell.
func TestStartInGoal(t *testing.T) {
	n, err := navigator.New(maze.MustGrid(2))
	require.NoError(t, err)
	assert.Equal(t, navigator.GoalReached, n.State())
	d, err := n.Step(sensor.Reading{})
	require.NoError(t, err)
	assert.Equal(t, navigator.Reset, d.Kind)
}

// TestStep_TurnsToSenseBehind: the sensors never look backwards, so a start
// facing away from the goal turns in place before committing to a detour.
func TestStep_TurnsToSenseBehind(t *testing.T) {
	start := navigator.Pose{Location: maze.Cell{X: 1, Y: 3}, Heading: maze.Up}
	n, err := navigator.New(maze.MustGrid(4), navigator.WithStart(start))
	require.NoError(t, err)

	d, err := n.Step(sensor.Reading{Left: 1, Front: 0, Right: 0})
	require.NoError(t, err)
	assert.Equal(t, start.Location, d.Target)
	assert.Equal(t, kinematics.Command{Rotation: 90, Distance: 0}, d.Command)
	assert.Equal(t, maze.Right, n.Pose().Heading)

	d, err = n.Step(sensor.Reading{Left: 0, Front: 0, Right: 1})
	require.NoError(t, err)
	assert.Equal(t, maze.Cell{X: 1, Y: 2}, d.Target)
	assert.Equal(t, kinematics.Command{Rotation: 90, Distance: 1}, d.Command)
	assert.Equal(t, navigator.GoalReached, n.State())
}

// TestStep_BoxedStartTurns: a start cell walled on the three sensed sides
// turns in place to sense the side behind before giving up.
func TestStep_BoxedStartTurns(t *testing.T) {
	start := navigator.Pose{Location: maze.Cell{X: 1, Y: 1}, Heading: maze.Up}
	n, err := navigator.New(maze.MustGrid(6), navigator.WithStart(start))
	require.NoError(t, err)

	d, err := n.Step(sensor.Reading{})
	require.NoError(t, err)
	assert.Equal(t, navigator.Move, d.Kind)
	assert.False(t, d.Retreat)
	assert.Equal(t, start.Location, d.Target)
	assert.Equal(t, kinematics.Command{Rotation: 90, Distance: 0}, d.Command)
	assert.Equal(t, maze.Right, n.Pose().Heading)

	// Facing right the formerly unsensed side is on the right sensor.
	d, err = n.Step(sensor.Reading{Left: 0, Front: 0, Right: 1})
	require.NoError(t, err)
	assert.Equal(t, maze.Cell{X: 1, Y: 0}, d.Target)
	assert.Equal(t, kinematics.Command{Rotation: 90, Distance: 1}, d.Command)
	assert.Equal(t, 2, n.Moves())

	// Walled on all four sides: once the rear is known, the agent is stuck.
	n, err = navigator.New(maze.MustGrid(6), navigator.WithStart(start))
	require.NoError(t, err)
	_, err = n.Step(sensor.Reading{})
	require.NoError(t, err)
	d, err = n.Step(sensor.Reading{})
	assert.ErrorIs(t, err, navigator.ErrStuck)
	assert.Equal(t, navigator.None, d.Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "none", navigator.Directive{}.Kind.String())
	assert.Equal(t, "move", navigator.Move.String())
	assert.Equal(t, "reset", navigator.Reset.String())
}
