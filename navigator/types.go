package navigator

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/lvmaze/dstar"
	"github.com/katalvlaran/lvmaze/explore"
	"github.com/katalvlaran/lvmaze/kinematics"
	"github.com/katalvlaran/lvmaze/maze"
)

var (
	// ErrNilGrid indicates a nil grid was passed to New.
	ErrNilGrid = errors.New("navigator: grid is nil")
	// ErrStuck indicates a dead end or missing path with no edge to retreat along.
	ErrStuck = errors.New("navigator: no move available")
	// ErrBadResetPolicy indicates an unknown reset policy name.
	ErrBadResetPolicy = errors.New("navigator: unknown reset policy")
)

// State is the navigator's run state.
type State int

const (
	// Exploring runs decision cycles until the goal region is entered.
	Exploring State = iota
	// GoalReached answers every Step with Reset until Reset is called.
	GoalReached
)

// String returns "exploring" or "goal-reached".
func (s State) String() string {
	if s == GoalReached {
		return "goal-reached"
	}
	return "exploring"
}

// Kind distinguishes directive types.
type Kind int

const (
	// None is the zero Kind, returned alongside every error.
	None Kind = iota
	// Move carries a target cell and the command that reaches it.
	Move
	// Reset signals the end of a run; the harness repositions the agent.
	Reset
)

// String returns "none", "move" or "reset".
func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Reset:
		return "reset"
	default:
		return "none"
	}
}

// Directive is the navigator's output for one cycle. Target and Command are
// only meaningful for Move; a failed Step returns the zero Directive (None).
type Directive struct {
	Kind    Kind
	Target  maze.Cell
	Command kinematics.Command
	Retreat bool
}

// Pose is the agent's location and heading.
type Pose struct {
	Location maze.Cell
	Heading  maze.Heading
}

// String renders the pose as "(x,y) facing h".
func (p Pose) String() string {
	return fmt.Sprintf("%s facing %s", p.Location, p.Heading)
}

// ResetPolicy decides what survives a goal-triggered reset.
type ResetPolicy int

const (
	// KeepDiscoveries preserves sensed walls and openings across runs.
	KeepDiscoveries ResetPolicy = iota
	// DiscardDiscoveries returns every edge to the optimistic default.
	DiscardDiscoveries
)

// String returns the config name of the policy.
func (r ResetPolicy) String() string {
	if r == DiscardDiscoveries {
		return "discard"
	}
	return "keep"
}

// ParseResetPolicy accepts "keep" and "discard".
func ParseResetPolicy(s string) (ResetPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep", "":
		return KeepDiscoveries, nil
	case "discard":
		return DiscardDiscoveries, nil
	}
	return KeepDiscoveries, fmt.Errorf("%w: %q", ErrBadResetPolicy, s)
}

// Options configures a Navigator.
type Options struct {
	Logger      *slog.Logger
	Start       Pose
	Policy      explore.Policy // nil selects the planner
	ResetPolicy ResetPolicy
	MaxStep     int
	Planner     []dstar.Option
}

// Option mutates Options. Constructors panic on meaningless input.
type Option func(*Options)

// DefaultOptions starts at (0,0) facing up, plans with D* Lite, keeps
// discoveries and moves one cell at a time.
func DefaultOptions() Options {
	return Options{
		Logger:      slog.Default(),
		Start:       Pose{Location: maze.Cell{X: 0, Y: 0}, Heading: maze.Up},
		ResetPolicy: KeepDiscoveries,
		MaxStep:     1,
	}
}

// WithLogger sets the logger shared by the navigator, planner and controller.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("navigator: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// WithStart overrides the start pose.
func WithStart(p Pose) Option {
	if !p.Heading.Valid() {
		panic(fmt.Sprintf("navigator: WithStart invalid heading %d", int(p.Heading)))
	}
	return func(o *Options) { o.Start = p }
}

// WithPolicy replaces planner-driven selection with an exploration policy.
func WithPolicy(p explore.Policy) Option {
	if p == nil {
		panic("navigator: WithPolicy(nil)")
	}
	return func(o *Options) { o.Policy = p }
}

// WithResetPolicy selects what survives Reset.
func WithResetPolicy(r ResetPolicy) Option {
	if r != KeepDiscoveries && r != DiscardDiscoveries {
		panic(fmt.Sprintf("navigator: WithResetPolicy(%d)", int(r)))
	}
	return func(o *Options) { o.ResetPolicy = r }
}

// WithMaxStep allows straight moves of up to n cells on known ground.
// Panics outside [1, kinematics.MaxDistance].
func WithMaxStep(n int) Option {
	if n < 1 || n > kinematics.MaxDistance {
		panic(fmt.Sprintf("navigator: WithMaxStep(%d) outside [1,%d]", n, kinematics.MaxDistance))
	}
	return func(o *Options) { o.MaxStep = n }
}

// WithPlannerOptions forwards options to dstar.New.
func WithPlannerOptions(opts ...dstar.Option) Option {
	return func(o *Options) { o.Planner = append(o.Planner, opts...) }
}
