package navigator

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvmaze/dijkstra"
	"github.com/katalvlaran/lvmaze/dstar"
	"github.com/katalvlaran/lvmaze/kinematics"
	"github.com/katalvlaran/lvmaze/maze"
	"github.com/katalvlaran/lvmaze/sensor"
)

// Navigator owns the agent pose and drives the planner one reading at a time.
type Navigator struct {
	grid    *maze.Grid
	opts    Options
	log     *slog.Logger
	planner *dstar.Planner
	ctrl    *kinematics.Controller

	pose    Pose
	prev    maze.Cell
	hasPrev bool
	state   State
	run     int
	moves   int
}

// New builds a navigator on grid at the configured start pose. The planner
// shares the navigator's logger unless WithPlannerOptions overrides it.
func New(grid *maze.Grid, opts ...Option) (*Navigator, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !grid.InBounds(cfg.Start.Location) {
		return nil, fmt.Errorf("%w: start %s", maze.ErrOutOfBounds, cfg.Start.Location)
	}
	popts := append([]dstar.Option{dstar.WithLogger(cfg.Logger)}, cfg.Planner...)
	p, err := dstar.New(grid, cfg.Start.Location, popts...)
	if err != nil {
		return nil, err
	}
	n := &Navigator{
		grid:    grid,
		opts:    cfg,
		log:     cfg.Logger.With(slog.String("component", "navigator")),
		planner: p,
		ctrl:    kinematics.New(kinematics.WithLogger(cfg.Logger)),
		run:     1,
	}
	n.begin()

	return n, nil
}

// begin puts the agent on the start pose with an empty trail.
func (n *Navigator) begin() {
	n.pose = n.opts.Start
	n.hasPrev = false
	n.moves = 0
	n.state = Exploring
	if n.grid.IsGoal(n.pose.Location) {
		n.state = GoalReached
	}
}

// Step runs one decision cycle for reading r.
//
// In GoalReached it returns a Reset directive without touching the pose.
// Otherwise the pose is advanced to the returned Move target. Errors are
// contract violations (bad reading) or ErrStuck; the pose is unchanged on error.
func (n *Navigator) Step(r sensor.Reading) (Directive, error) {
	if n.state == GoalReached {
		return Directive{Kind: Reset}, nil
	}
	if err := r.Validate(sensor.MaxRange); err != nil {
		return Directive{}, err
	}
	here := n.pose.Location
	updates, err := sensor.Translate(n.grid, here, n.pose.Heading, r)
	if err != nil {
		return Directive{}, err
	}
	changed, err := sensor.Apply(n.planner, updates)
	if err != nil {
		return Directive{}, err
	}

	d, err := n.choose(r, updates)
	if err != nil {
		return Directive{}, err
	}
	var cmd kinematics.Command
	if d.turn {
		cmd = kinematics.Command{Rotation: 90}
	} else if cmd, err = n.ctrl.Command(n.pose.Heading, here, d.target); err != nil {
		return Directive{}, err
	}
	to, heading, err := n.ctrl.Apply(n.pose.Heading, here, cmd)
	if err != nil {
		return Directive{}, err
	}

	if to != here {
		dir, _, _ := maze.DirectionTo(here, to)
		n.prev, _ = n.grid.Neighbor(to, dir.Reverse())
		n.hasPrev = true
	}
	n.pose = Pose{Location: to, Heading: heading}
	n.moves++
	if n.grid.IsGoal(to) {
		n.state = GoalReached
	}
	n.log.Debug("cycle",
		slog.Int("run", n.run),
		slog.Int("move", n.moves),
		slog.Any("reading", r.Values()),
		slog.Int("edges_changed", changed),
		slog.String("target", to.String()),
		slog.String("command", cmd.String()),
		slog.Bool("retreat", d.retreat),
		slog.String("state", n.state.String()))

	return Directive{Kind: Move, Target: to, Command: cmd, Retreat: d.retreat}, nil
}

// decision is the outcome of next-cell selection.
type decision struct {
	target  maze.Cell
	retreat bool
	turn    bool // rotate in place to sense the unsensed side behind
}

// choose picks the next target cell.
func (n *Navigator) choose(r sensor.Reading, updates []sensor.EdgeUpdate) (decision, error) {
	here := n.pose.Location
	if n.exploiting() {
		if next, ok := n.follow(here); ok {
			return decision{target: next}, nil
		}
	}
	if r.DeadEnd() {
		if !n.hasPrev && n.rearUnsensed() {
			return decision{target: here, turn: true}, nil
		}
		return n.retreat("dead end")
	}
	if err := n.planner.MoveOrigin(here); err != nil {
		return decision{}, err
	}
	if err := n.planner.ComputeShortestPath(); err != nil {
		if errors.Is(err, dstar.ErrNoPath) {
			return n.retreat("no path")
		}
		return decision{}, err
	}

	candidates := n.candidates(updates)
	if n.opts.Policy != nil {
		if len(candidates) == 0 {
			return n.retreat("no candidates")
		}
		return decision{target: n.opts.Policy.ChooseNext(candidates)}, nil
	}
	next, cost, err := n.planner.Best(candidates, n.pose.Heading)
	if err != nil && !errors.Is(err, dstar.ErrNoPath) {
		return decision{}, err
	}
	if n.behindCheaper(cost) {
		return decision{target: here, turn: true}, nil
	}
	if err != nil {
		return n.retreat("no finite candidate")
	}

	return decision{target: next}, nil
}

// behindCheaper reports whether the planner prefers the unsensed edge behind
// the agent over every sensed candidate. That happens only after reversing,
// since the sensors never look backwards.
func (n *Navigator) behindCheaper(best int64) bool {
	if !n.rearUnsensed() {
		return false
	}
	back := n.pose.Heading.Reverse()
	c, _ := n.grid.Neighbor(n.pose.Location, back)
	via := n.planner.EdgeCost(n.pose.Location, back)
	g := n.planner.G(c)
	if g == dstar.Inf || via == dstar.Inf {
		return false
	}
	return via+g < best
}

// rearUnsensed reports whether the in-grid edge behind the agent was never sensed.
func (n *Navigator) rearUnsensed() bool {
	return n.planner.EdgeState(n.pose.Location, n.pose.Heading.Reverse()) == dstar.EdgeUnknown
}

// candidates lists the cells reachable this cycle: sensed-open directions in
// sensor order, then the cell behind when that edge is confirmed open.
func (n *Navigator) candidates(updates []sensor.EdgeUpdate) []maze.Cell {
	out := make([]maze.Cell, 0, 4)
	for _, u := range updates {
		if u.Open() {
			out = append(out, u.To)
		}
	}
	back := n.pose.Heading.Reverse()
	if n.planner.EdgeState(n.pose.Location, back) == dstar.EdgeOpen {
		if c, ok := n.grid.Neighbor(n.pose.Location, back); ok {
			out = append(out, c)
		}
	}
	return out
}

func (n *Navigator) retreat(reason string) (decision, error) {
	if !n.hasPrev {
		return decision{}, fmt.Errorf("%w: %s at %s", ErrStuck, reason, n.pose.Location)
	}
	n.log.Debug("retreat", slog.String("reason", reason), slog.String("to", n.prev.String()))
	return decision{target: n.prev, retreat: true}, nil
}

// exploiting reports whether this run should replay what earlier runs
// learned: planner-driven runs after the first that kept their discoveries.
func (n *Navigator) exploiting() bool {
	return n.run >= 2 && n.opts.ResetPolicy == KeepDiscoveries && n.opts.Policy == nil
}

// follow returns the next target on the shortest route to the goal over
// edges confirmed open, stretched along straight stretches up to MaxStep
// cells. ok is false while no such route exists. Every edge an earlier run
// travelled is EdgeOpen, so the route from the start is never longer than
// that run.
func (n *Navigator) follow(here maze.Cell) (maze.Cell, bool) {
	known := func(c maze.Cell, h maze.Heading) int64 {
		if n.planner.EdgeState(c, h) == dstar.EdgeOpen {
			return 1
		}
		return dijkstra.Unreachable
	}
	dist, next, err := dijkstra.Distances(n.grid, known,
		dijkstra.Sources(n.grid.Goals()...), dijkstra.WithReturnPath())
	if err != nil {
		n.log.Warn("known route", slog.String("error", err.Error()))
		return here, false
	}
	path := dijkstra.PathFrom(n.grid, next, dist, here)
	if len(path) < 2 {
		return here, false
	}
	dir, _, _ := maze.DirectionTo(path[0], path[1])
	end := 1
	for end < len(path)-1 && end < n.opts.MaxStep {
		if h, _, _ := maze.DirectionTo(path[end], path[end+1]); h != dir {
			break
		}
		end++
	}
	return path[end], true
}

// Reset implements the harness side of the reset contract: the agent is back
// at the start pose, the run counter advances and the planner is re-seeded
// from scratch. Discoveries survive according to the ResetPolicy.
func (n *Navigator) Reset() error {
	keep := n.opts.ResetPolicy == KeepDiscoveries
	if err := n.planner.Restart(n.opts.Start.Location, keep); err != nil {
		return err
	}
	n.log.Info("run finished",
		slog.Int("run", n.run),
		slog.Int("moves", n.moves),
		slog.String("reset_policy", n.opts.ResetPolicy.String()))
	n.run++
	n.begin()

	return nil
}

// Pose returns the current agent pose.
func (n *Navigator) Pose() Pose { return n.pose }

// State returns the run state.
func (n *Navigator) State() State { return n.state }

// Run returns the 1-based run counter.
func (n *Navigator) Run() int { return n.run }

// Moves returns the number of moves made in the current run.
func (n *Navigator) Moves() int { return n.moves }

// Planner exposes the underlying planner for inspection.
func (n *Navigator) Planner() *dstar.Planner { return n.planner }
