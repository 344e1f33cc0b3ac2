// Package sim is the harness around a navigator: it owns the true maze,
// synthesizes sensor readings from it, executes the navigator's commands
// against the real walls and scores a sequence of runs.
//
// A run ends when the navigator signals Reset. The move limit is shared by
// all runs of one simulation. Scoring follows the micromouse convention:
// every exploration run costs 1/30 of its moves, the final run costs its
// full move count.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvmaze/dijkstra"
	"github.com/katalvlaran/lvmaze/kinematics"
	"github.com/katalvlaran/lvmaze/maze"
	"github.com/katalvlaran/lvmaze/navigator"
	"github.com/katalvlaran/lvmaze/sensor"
)

var (
	// ErrNilLayout indicates a nil layout.
	ErrNilLayout = errors.New("sim: layout is nil")
	// ErrGoalUnreachable indicates a layout whose goal region is walled off from the start.
	ErrGoalUnreachable = errors.New("sim: goal region unreachable from start")
	// ErrDiverged indicates the navigator's pose no longer matches the agent,
	// which happens when a command drives into a wall.
	ErrDiverged = errors.New("sim: navigator pose diverged from the agent")
)

const (
	// DefaultMoveLimit is the total move budget across all runs.
	DefaultMoveLimit = 1000
	// DefaultRuns is one exploration run plus one timed run.
	DefaultRuns = 2
	// explorationWeight scales the moves of every run but the last.
	explorationWeight = 1.0 / 30
)

// Result summarizes one run.
type Result struct {
	Run      int
	Moves    int
	Retreats int
	Reached  bool
}

// Report summarizes a whole simulation.
type Report struct {
	Dim     int
	Optimal int // shortest start-to-goal path in cells; -1 when unreachable
	Runs    []Result
	Score   float64
}

// Final returns the last run, or the zero Result when none ran.
func (r Report) Final() Result {
	if len(r.Runs) == 0 {
		return Result{}
	}
	return r.Runs[len(r.Runs)-1]
}

// Simulator drives navigators over one layout. It is not safe for concurrent use.
type Simulator struct {
	layout  *maze.Layout
	log     *slog.Logger
	ctrl    *kinematics.Controller
	limit   int
	runs    int
	srange  int
	navOpts []navigator.Option
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger for the harness and the navigators it builds.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("sim: WithLogger(nil)")
	}
	return func(s *Simulator) { s.log = l }
}

// WithMoveLimit sets the total move budget. Panics on n < 1.
func WithMoveLimit(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("sim: WithMoveLimit(%d)", n))
	}
	return func(s *Simulator) { s.limit = n }
}

// WithRuns sets the number of runs. Panics on n < 1.
func WithRuns(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("sim: WithRuns(%d)", n))
	}
	return func(s *Simulator) { s.runs = n }
}

// WithSensorRange shortens the sensors. Panics outside [1, sensor.MaxRange].
func WithSensorRange(n int) Option {
	if n < 1 || n > sensor.MaxRange {
		panic(fmt.Sprintf("sim: WithSensorRange(%d) outside [1,%d]", n, sensor.MaxRange))
	}
	return func(s *Simulator) { s.srange = n }
}

// WithNavigatorOptions forwards options to navigator.New.
func WithNavigatorOptions(opts ...navigator.Option) Option {
	return func(s *Simulator) { s.navOpts = append(s.navOpts, opts...) }
}

// New returns a Simulator over layout.
func New(layout *maze.Layout, opts ...Option) (*Simulator, error) {
	if layout == nil {
		return nil, ErrNilLayout
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		layout: layout,
		log:    slog.Default(),
		limit:  DefaultMoveLimit,
		runs:   DefaultRuns,
		srange: sensor.MaxRange,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctrl = kinematics.New(kinematics.WithLogger(s.log))
	s.log = s.log.With(slog.String("component", "sim"))

	return s, nil
}

// Sense returns the true readings at pose, capped at the sensor range.
func (s *Simulator) Sense(p navigator.Pose) sensor.Reading {
	hs := p.Heading.SensorHeadings()
	return sensor.Reading{
		Left:  s.layout.Distance(p.Location, hs[0], s.srange),
		Front: s.layout.Distance(p.Location, hs[1], s.srange),
		Right: s.layout.Distance(p.Location, hs[2], s.srange),
	}
}

// Apply executes cmd from p against the real walls. Oversized distances are
// clamped and logged; a wall stops the agent and sets crashed.
func (s *Simulator) Apply(p navigator.Pose, cmd kinematics.Command) (next navigator.Pose, crashed bool, err error) {
	h, err := p.Heading.Rotate(cmd.Rotation)
	if err != nil {
		return p, false, err
	}
	d := s.ctrl.Clamp(cmd.Distance)
	dir := h
	if d < 0 {
		dir, d = h.Reverse(), -d
	}
	cur := p.Location
	for ; d > 0; d-- {
		if !s.layout.Open(cur, dir) {
			crashed = true
			break
		}
		cur, _ = s.layout.Grid().Neighbor(cur, dir)
	}
	return navigator.Pose{Location: cur, Heading: h}, crashed, nil
}

// Optimal returns the shortest start-to-goal length for the default start cell.
func (s *Simulator) Optimal() int {
	dist, err := dijkstra.ToGoal(s.layout)
	if err != nil {
		return -1
	}
	d := dist[s.layout.Grid().Index(maze.Cell{})]
	if d == dijkstra.Unreachable {
		return -1
	}
	return int(d)
}

// Run plays the configured number of runs with a fresh navigator.
// The error is non-nil only for harness failures; running out of moves
// is reported through Result.Reached.
func (s *Simulator) Run(ctx context.Context) (Report, error) {
	rep := Report{Dim: s.layout.Grid().Dim(), Optimal: s.Optimal()}
	navOpts := append([]navigator.Option{navigator.WithLogger(s.log)}, s.navOpts...)
	nav, err := navigator.New(s.layout.Grid(), navOpts...)
	if err != nil {
		return rep, err
	}
	if start := nav.Pose().Location; !s.layout.GoalReachable(start) {
		return rep, fmt.Errorf("%w: %s", ErrGoalUnreachable, start)
	}

	used := 0
	for run := 1; run <= s.runs; run++ {
		res := Result{Run: run}
		pose := nav.Pose()
		for used < s.limit {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
			d, err := nav.Step(s.Sense(pose))
			if err != nil {
				return rep, fmt.Errorf("run %d move %d: %w", run, res.Moves+1, err)
			}
			if d.Kind == navigator.Reset {
				res.Reached = true
				break
			}
			next, crashed, err := s.Apply(pose, d.Command)
			if err != nil {
				return rep, err
			}
			if crashed || next != nav.Pose() {
				return rep, fmt.Errorf("%w: agent %s, navigator %s", ErrDiverged, next, nav.Pose())
			}
			pose = next
			used++
			res.Moves++
			if d.Retreat {
				res.Retreats++
			}
		}
		// the move that enters the goal may be the last one in budget
		if !res.Reached && nav.State() == navigator.GoalReached {
			res.Reached = true
		}
		rep.Runs = append(rep.Runs, res)
		s.log.Info("run complete",
			slog.Int("run", run),
			slog.Int("moves", res.Moves),
			slog.Bool("reached", res.Reached),
			slog.Int("optimal", rep.Optimal))
		if !res.Reached {
			break
		}
		if run < s.runs {
			if err := nav.Reset(); err != nil {
				return rep, err
			}
		}
	}
	rep.Score = score(rep.Runs)

	return rep, nil
}

func score(runs []Result) float64 {
	var total float64
	for i, r := range runs {
		if i == len(runs)-1 {
			total += float64(r.Moves)
			continue
		}
		total += float64(r.Moves) * explorationWeight
	}
	return total
}
