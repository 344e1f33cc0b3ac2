package dstar_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvmaze/dijkstra"
	"github.com/katalvlaran/lvmaze/dstar"
	"github.com/katalvlaran/lvmaze/maze"
	"github.com/katalvlaran/lvmaze/mazegen"
)

// PlannerSuite exercises the incremental planner against its invariants and
// a brute-force Dijkstra reference.
type PlannerSuite struct {
	suite.Suite
}

func cell(x, y int) maze.Cell { return maze.Cell{X: x, Y: y} }

func (s *PlannerSuite) newPlanner(dim int, origin maze.Cell, opts ...dstar.Option) *dstar.Planner {
	p, err := dstar.New(maze.MustGrid(dim), origin, opts...)
	require.NoError(s.T(), err)
	return p
}

// requireFrontierExact asserts the frontier holds exactly the inconsistent vertices.
func (s *PlannerSuite) requireFrontierExact(p *dstar.Planner) {
	g := p.Grid()
	queued := 0
	for i := 0; i < g.Len(); i++ {
		c := g.CellAt(i)
		_, in := p.FrontierContains(c)
		require.Equal(s.T(), !p.Consistent(c), in, "cell %s: consistent=%v queued=%v", c, p.Consistent(c), in)
		if in {
			queued++
		}
	}
	require.Equal(s.T(), queued, p.FrontierLen())
}

// requireNoKeyBelowOrigin asserts the termination condition of ComputeShortestPath.
func (s *PlannerSuite) requireNoKeyBelowOrigin(p *dstar.Planner) {
	g := p.Grid()
	ko := p.Key(p.Origin())
	for i := 0; i < g.Len(); i++ {
		if k, in := p.FrontierContains(g.CellAt(i)); in {
			require.False(s.T(), k.Less(ko), "queued %s key %v sorts before origin key %v", g.CellAt(i), k, ko)
		}
	}
}

// knownDistance runs Dijkstra over the planner's own edge knowledge.
func (s *PlannerSuite) knownDistance(p *dstar.Planner, from maze.Cell) int64 {
	g := p.Grid()
	dist, _, err := dijkstra.Distances(g, p.EdgeCost, dijkstra.Sources(g.Goals()...))
	require.NoError(s.T(), err)
	d := dist[g.Index(from)]
	if d == dijkstra.Unreachable {
		return dstar.Inf
	}
	return d
}

func (s *PlannerSuite) TestNewErrors() {
	_, err := dstar.New(nil, cell(0, 0))
	s.Require().ErrorIs(err, dstar.ErrNilGrid)
	_, err = dstar.New(maze.MustGrid(4), cell(4, 0))
	s.Require().ErrorIs(err, dstar.ErrOutOfBounds)

	var zero dstar.Planner
	s.Require().ErrorIs(zero.ComputeShortestPath(), dstar.ErrUninitialized)
	_, err = zero.SetEdgeCost(cell(0, 0), cell(0, 1), 1)
	s.Require().ErrorIs(err, dstar.ErrUninitialized)
}

// TestInitialize seeds only the goal region.
func (s *PlannerSuite) TestInitialize() {
	p := s.newPlanner(4, cell(0, 0))
	g := p.Grid()
	for i := 0; i < g.Len(); i++ {
		c := g.CellAt(i)
		s.Equal(dstar.Inf, p.G(c))
		if g.IsGoal(c) {
			s.Equal(int64(0), p.RHS(c))
			_, in := p.FrontierContains(c)
			s.True(in)
		} else {
			s.Equal(dstar.Inf, p.RHS(c))
		}
	}
	s.Equal(4, p.FrontierLen())
	s.requireFrontierExact(p)
}

// TestOpenGridCost: with optimistic edges the cost is the Manhattan distance to the centre.
func (s *PlannerSuite) TestOpenGridCost() {
	p := s.newPlanner(8, cell(0, 0))
	s.Require().NoError(p.ComputeShortestPath())
	s.Equal(int64(6), p.G(cell(0, 0)))
	s.Equal(p.G(cell(0, 0)), p.RHS(cell(0, 0)))
	s.requireFrontierExact(p)
	s.requireNoKeyBelowOrigin(p)
}

func (s *PlannerSuite) TestOriginInGoal() {
	p := s.newPlanner(4, cell(2, 2))
	s.Require().NoError(p.ComputeShortestPath())
	s.Equal(int64(0), p.G(cell(2, 2)))
}

// TestFirstReadingScenario: 4×4, start (0,0) facing up, reading (0,3,0).
// The left sensor points off the board; the right wall and the open front are recorded.
func (s *PlannerSuite) TestFirstReadingScenario() {
	p := s.newPlanner(4, cell(0, 0))
	s.Require().NoError(p.ComputeShortestPath())

	changed, err := p.SetEdgeCost(cell(0, 0), cell(1, 0), dstar.Inf)
	s.Require().NoError(err)
	s.True(changed)
	changed, err = p.SetEdgeCost(cell(0, 0), cell(0, 1), 1)
	s.Require().NoError(err)
	s.False(changed, "confirming an optimistic edge open changes no cost")

	s.Require().NoError(p.ComputeShortestPath())
	s.Equal(dstar.EdgeBlocked, p.EdgeState(cell(0, 0), maze.Right))
	s.Equal(dstar.EdgeBlocked, p.EdgeState(cell(1, 0), maze.Left))
	s.Equal(dstar.EdgeOpen, p.EdgeState(cell(0, 0), maze.Up))
	s.Equal(dstar.EdgeNone, p.EdgeState(cell(0, 0), maze.Left))

	next, cost, err := p.Best([]maze.Cell{cell(0, 1)}, maze.Up)
	s.Require().NoError(err)
	s.Equal(cell(0, 1), next)
	s.Equal(int64(2), cost)
	s.requireFrontierExact(p)
}

// TestMonotonicWalls: walls never reopen and re-sensing them is a no-op.
func (s *PlannerSuite) TestMonotonicWalls() {
	p := s.newPlanner(6, cell(0, 0))
	s.Require().NoError(p.ComputeShortestPath())
	_, err := p.SetEdgeCost(cell(1, 1), cell(1, 2), dstar.Inf)
	s.Require().NoError(err)
	s.Require().NoError(p.ComputeShortestPath())

	g := p.Grid()
	before := make([][2]int64, g.Len())
	for i := range before {
		before[i] = [2]int64{p.G(g.CellAt(i)), p.RHS(g.CellAt(i))}
	}
	frontier := p.FrontierLen()

	changed, err := p.SetEdgeCost(cell(1, 2), cell(1, 1), dstar.Inf)
	s.Require().NoError(err)
	s.False(changed)
	for i := range before {
		s.Equal(before[i], [2]int64{p.G(g.CellAt(i)), p.RHS(g.CellAt(i))})
	}
	s.Equal(frontier, p.FrontierLen())

	_, err = p.SetEdgeCost(cell(1, 1), cell(1, 2), 1)
	s.Require().ErrorIs(err, dstar.ErrEdgeLowered)
	s.Equal(dstar.Inf, p.EdgeCost(cell(1, 1), maze.Up))
}

func (s *PlannerSuite) TestSetEdgeCostContract() {
	p := s.newPlanner(4, cell(0, 0))
	_, err := p.SetEdgeCost(cell(0, 0), cell(-1, 0), dstar.Inf)
	s.ErrorIs(err, dstar.ErrNotAdjacent)
	_, err = p.SetEdgeCost(cell(0, 0), cell(1, 1), dstar.Inf)
	s.ErrorIs(err, dstar.ErrNotAdjacent)
	_, err = p.SetEdgeCost(cell(0, 0), cell(0, 2), dstar.Inf)
	s.ErrorIs(err, dstar.ErrNotAdjacent)
	_, err = p.SetEdgeCost(cell(0, 0), cell(0, 1), 0)
	s.ErrorIs(err, dstar.ErrBadCost)
}

// TestDisconnectPropagates: sealing the only exit of the left column drives
// every cell in it to Inf.
func (s *PlannerSuite) TestDisconnectPropagates() {
	p := s.newPlanner(4, cell(0, 3))
	for y := 1; y < 4; y++ {
		_, err := p.SetEdgeCost(cell(0, y), cell(1, y), dstar.Inf)
		s.Require().NoError(err)
	}
	s.Require().NoError(p.ComputeShortestPath())
	s.Equal(int64(5), p.G(cell(0, 3)))

	_, err := p.SetEdgeCost(cell(0, 0), cell(1, 0), dstar.Inf)
	s.Require().NoError(err)
	err = p.ComputeShortestPath()
	s.Require().True(errors.Is(err, dstar.ErrNoPath), "got %v", err)

	for y := 0; y < 4; y++ {
		s.Equal(dstar.Inf, p.G(cell(0, y)), "g(0,%d)", y)
		s.Equal(dstar.Inf, p.RHS(cell(0, y)), "rhs(0,%d)", y)
	}
	s.requireFrontierExact(p)

	s.Require().NoError(p.MoveOrigin(cell(1, 0)))
	s.Require().NoError(p.ComputeShortestPath())
	s.Equal(int64(1), p.G(cell(1, 0)))
}

func (s *PlannerSuite) TestTrappedOrigin() {
	p := s.newPlanner(4, cell(0, 0))
	_, _ = p.SetEdgeCost(cell(0, 0), cell(1, 0), dstar.Inf)
	_, _ = p.SetEdgeCost(cell(0, 0), cell(0, 1), dstar.Inf)
	s.ErrorIs(p.ComputeShortestPath(), dstar.ErrNoPath)
	s.Equal(dstar.Inf, p.G(cell(0, 0)))

	_, _, err := p.Best([]maze.Cell{cell(0, 1), cell(1, 0)}, maze.Up)
	s.ErrorIs(err, dstar.ErrNoPath)
	_, _, err = p.Best(nil, maze.Up)
	s.ErrorIs(err, dstar.ErrNoPath)
}

// TestBestTieBreak: equal costs prefer the facing direction, then direction order.
func (s *PlannerSuite) TestBestTieBreak() {
	p := s.newPlanner(4, cell(0, 0))
	s.Require().NoError(p.ComputeShortestPath())
	cands := []maze.Cell{cell(1, 0), cell(0, 1)}

	next, _, err := p.Best(cands, maze.Right)
	s.Require().NoError(err)
	s.Equal(cell(1, 0), next)

	next, _, err = p.Best(cands, maze.Up)
	s.Require().NoError(err)
	s.Equal(cell(0, 1), next)

	next, _, err = p.Best(cands, maze.Down)
	s.Require().NoError(err)
	s.Equal(cell(0, 1), next, "Up precedes Right in direction order")

	_, _, err = p.Best([]maze.Cell{cell(2, 0)}, maze.Up)
	s.ErrorIs(err, dstar.ErrNotAdjacent)
}

func (s *PlannerSuite) TestPath() {
	p := s.newPlanner(4, cell(0, 0))
	s.Require().NoError(p.ComputeShortestPath())
	path, err := p.Path(0)
	s.Require().NoError(err)
	s.Equal([]maze.Cell{cell(0, 0), cell(0, 1), cell(1, 1)}, path)

	_, _ = p.SetEdgeCost(cell(0, 0), cell(1, 0), dstar.Inf)
	_, _ = p.SetEdgeCost(cell(0, 0), cell(0, 1), dstar.Inf)
	_ = p.ComputeShortestPath()
	_, err = p.Path(0)
	s.ErrorIs(err, dstar.ErrNoPath)
}

// TestRestartPolicies pins both reset behaviours.
func (s *PlannerSuite) TestRestartPolicies() {
	p := s.newPlanner(4, cell(0, 0))
	_, _ = p.SetEdgeCost(cell(0, 0), cell(1, 0), dstar.Inf)
	_, _ = p.SetEdgeCost(cell(0, 0), cell(0, 1), 1)
	s.Require().NoError(p.MoveOrigin(cell(0, 1)))
	s.Require().NoError(p.ComputeShortestPath())
	s.NotZero(p.KM())

	s.Require().NoError(p.Restart(cell(0, 0), true))
	s.Equal(int64(0), p.KM())
	s.Equal(cell(0, 0), p.Origin())
	s.Equal(dstar.EdgeBlocked, p.EdgeState(cell(0, 0), maze.Right))
	s.Equal(dstar.EdgeOpen, p.EdgeState(cell(0, 0), maze.Up))
	s.Equal(4, p.FrontierLen())
	s.Require().NoError(p.ComputeShortestPath())
	s.Equal(int64(2), p.G(cell(0, 0)))

	s.Require().NoError(p.Restart(cell(0, 0), false))
	s.Equal(dstar.EdgeUnknown, p.EdgeState(cell(0, 0), maze.Right))
	s.Equal(int64(1), p.EdgeCost(cell(0, 0), maze.Right))
	s.Require().NoError(p.ComputeShortestPath())
	s.Equal(int64(2), p.G(cell(0, 0)))

	s.ErrorIs(p.Restart(cell(9, 9), true), dstar.ErrOutOfBounds)
}

// TestOptimalityFullyRevealed: once every wall of a generated maze is known,
// the origin cost equals the Dijkstra distance on the ground truth.
func (s *PlannerSuite) TestOptimalityFullyRevealed() {
	for seed := int64(1); seed <= 5; seed++ {
		l, err := mazegen.Generate(10, mazegen.WithSeed(seed), mazegen.WithLoops(8), mazegen.WithOpenGoal())
		s.Require().NoError(err)
		g := l.Grid()
		p, err := dstar.New(g, cell(0, 0))
		s.Require().NoError(err)
		s.Require().NoError(p.ComputeShortestPath())

		for i := 0; i < g.Len(); i++ {
			c := g.CellAt(i)
			for _, h := range []maze.Heading{maze.Up, maze.Right} {
				n, ok := g.Neighbor(c, h)
				if !ok {
					continue
				}
				cost := int64(1)
				if !l.Open(c, h) {
					cost = dstar.Inf
				}
				_, err := p.SetEdgeCost(c, n, cost)
				s.Require().NoError(err)
			}
		}
		s.Require().NoError(p.ComputeShortestPath())

		truth, err := dijkstra.ToGoal(l)
		s.Require().NoError(err)
		s.Equal(truth[0], p.G(cell(0, 0)), "seed %d", seed)

		// A full drain makes every vertex consistent and exact.
		s.Require().NoError(p.Settle())
		for i := 0; i < g.Len(); i++ {
			c := g.CellAt(i)
			want := truth[i]
			if want == dijkstra.Unreachable {
				want = dstar.Inf
			}
			s.Require().True(p.Consistent(c), "cell %s", c)
			s.Require().Equal(want, p.G(c), "cell %s seed %d", c, seed)
		}
		s.Zero(p.FrontierLen())
	}
}

// TestIncrementalAgainstReference walks the origin through a maze, revealing
// walls around it, and compares every repaired cost with a fresh Dijkstra
// over the same knowledge. It also checks the frontier invariant and the
// per-change work bound after each repair.
func (s *PlannerSuite) TestIncrementalAgainstReference() {
	l, err := mazegen.Generate(12, mazegen.WithSeed(3), mazegen.WithLoops(20))
	s.Require().NoError(err)
	g := l.Grid()
	p, err := dstar.New(g, cell(0, 0))
	s.Require().NoError(err)
	s.Require().NoError(p.ComputeShortestPath())

	rng := rand.New(rand.NewSource(11))
	cur := cell(0, 0)
	for step := 0; step < 200 && !g.IsGoal(cur); step++ {
		var open []maze.Cell
		for _, h := range maze.Headings {
			n, ok := g.Neighbor(cur, h)
			if !ok {
				continue
			}
			cost := int64(1)
			if !l.Open(cur, h) {
				cost = dstar.Inf
			} else {
				open = append(open, n)
			}
			_, err := p.SetEdgeCost(cur, n, cost)
			s.Require().NoError(err)
		}
		s.Require().NoError(p.MoveOrigin(cur))
		s.Require().NoError(p.ComputeShortestPath())

		s.Equal(s.knownDistance(p, cur), p.G(cur), "step %d at %s", step, cur)
		s.Equal(p.G(cur), p.RHS(cur))
		s.LessOrEqual(p.Stats().Pops, 4*g.Len())
		s.requireFrontierExact(p)
		s.requireNoKeyBelowOrigin(p)

		// Mostly follow the plan, sometimes wander, so km grows in both directions.
		if rng.Intn(4) == 0 {
			cur = open[rng.Intn(len(open))]
			continue
		}
		next, _, err := p.Best(open, maze.Up)
		s.Require().NoError(err)
		cur = next
	}
}

// TestIncrementalRepairIsCheaper: a wall far from the route costs less work
// than the initial search.
func (s *PlannerSuite) TestIncrementalRepairIsCheaper() {
	p := s.newPlanner(16, cell(0, 0))
	s.Require().NoError(p.ComputeShortestPath())
	initial := p.Stats().Pops

	_, err := p.SetEdgeCost(cell(15, 15), cell(14, 15), dstar.Inf)
	s.Require().NoError(err)
	s.Require().NoError(p.ComputeShortestPath())
	s.Less(p.Stats().Pops, initial)
	s.Equal(int64(14), p.G(cell(0, 0)))
}

func (s *PlannerSuite) TestExpansionLimit() {
	p := s.newPlanner(8, cell(0, 0), dstar.WithExpansionLimit(1))
	s.ErrorIs(p.ComputeShortestPath(), dstar.ErrExpansionLimit)
	s.Panics(func() { dstar.WithExpansionLimit(-1) })
	s.Panics(func() { dstar.WithLogger(nil) })
	s.Panics(func() { dstar.WithHeuristic(nil) })
}

// TestZeroHeuristic: Dijkstra-ordered keys give the same answer.
func (s *PlannerSuite) TestZeroHeuristic() {
	p := s.newPlanner(6, cell(0, 5), dstar.WithHeuristic(func(a, b maze.Cell) int64 { return 0 }))
	s.Require().NoError(p.ComputeShortestPath())
	s.Equal(int64(4), p.G(cell(0, 5)))
}

func TestPlannerSuite(t *testing.T) {
	suite.Run(t, new(PlannerSuite))
}
