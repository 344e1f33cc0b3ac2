// SPDX-License-Identifier: MIT
// Package: lvmaze/dstar
//
// planner.go - the D* Lite repair loop, origin re-anchoring and move selection.

package dstar

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvmaze/maze"
)

// Planner is an incremental shortest-path solver from any origin cell to the
// goal region of a grid. See the package documentation for the model.
type Planner struct {
	grid   *maze.Grid
	opts   Options
	log    *slog.Logger
	verts  []vertex
	goal   []bool
	open   *frontier
	origin maze.Cell
	last   maze.Cell
	km     int64
	stats  Stats
	prev   Stats
}

// New builds a planner over grid anchored at origin and seeds it from the goal region.
// The first ComputeShortestPath call performs the initial search.
func New(grid *maze.Grid, origin maze.Cell, opts ...Option) (*Planner, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	if !grid.InBounds(origin) {
		return nil, fmt.Errorf("%w: origin %s", ErrOutOfBounds, origin)
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &Planner{
		grid:   grid,
		opts:   cfg,
		log:    cfg.Logger.With(slog.String("component", "dstar")),
		verts:  buildVertices(grid),
		goal:   make([]bool, grid.Len()),
		open:   newFrontier(grid.Len()),
		origin: origin,
	}
	for _, c := range grid.Goals() {
		p.goal[grid.Index(c)] = true
	}
	p.initialize()

	return p, nil
}

// Restart re-seeds the search at origin from scratch: g, rhs, km and the
// frontier are rebuilt. With keepEdges the sensed edge costs survive;
// otherwise every edge returns to the optimistic default.
func (p *Planner) Restart(origin maze.Cell, keepEdges bool) error {
	if err := p.check(origin); err != nil {
		return err
	}
	if !keepEdges {
		p.forgetEdges()
	}
	p.origin = origin
	p.initialize()
	p.log.Debug("planner restarted",
		slog.String("origin", origin.String()),
		slog.Bool("keep_edges", keepEdges))

	return nil
}

// MoveOrigin re-anchors the heuristic at c, adding h(previous, c) to km.
func (p *Planner) MoveOrigin(c maze.Cell) error {
	if err := p.check(c); err != nil {
		return err
	}
	if c == p.origin {
		return nil
	}
	p.km = addCost(p.km, p.opts.Heuristic(p.last, c))
	p.last = c
	p.origin = c

	return nil
}

// ComputeShortestPath repairs the cost graph until the origin is consistent
// and no queued key sorts before the origin's key.
//
// On return without error, G(origin) == RHS(origin) is the shortest known
// cost to the goal region. ErrNoPath is returned when the origin is
// unreachable under current knowledge; the graph is still consistent then.
func (p *Planner) ComputeShortestPath() error {
	if p.verts == nil {
		return ErrUninitialized
	}
	s := p.grid.Index(p.origin)
	for {
		top := p.open.peekMinKey()
		sv := &p.verts[s]
		if !top.Less(p.calculateKey(s)) && sv.rhs == sv.g {
			break
		}
		if p.open.Len() == 0 {
			// origin inconsistent with nothing left to repair
			return p.finish(fmt.Errorf("%w: frontier exhausted at %s", ErrNoPath, p.origin))
		}
		if p.opts.ExpansionLimit > 0 && p.stats.Pops >= p.opts.ExpansionLimit {
			return p.finish(fmt.Errorf("%w: %d pops", ErrExpansionLimit, p.stats.Pops))
		}

		p.step()
	}
	if p.verts[s].g == Inf {
		return p.finish(fmt.Errorf("%w: from %s", ErrNoPath, p.origin))
	}

	return p.finish(nil)
}

// step pops the minimum frontier entry and either requeues it under its
// fresh key, settles it, or raises it to Inf and propagates the increase.
func (p *Planner) step() {
	u, kOld := p.open.popMin()
	p.stats.Pops++
	kNew := p.calculateKey(u)
	uv := &p.verts[u]
	switch {
	case kOld.Less(kNew):
		p.open.insertOrUpdate(u, kNew)
		p.stats.Reinsertions++
	case uv.g > uv.rhs:
		uv.g = uv.rhs
		p.stats.Expansions++
		p.updatePredecessors(u)
	default:
		uv.g = Inf
		p.stats.Raises++
		p.updateVertex(u)
		p.updatePredecessors(u)
	}
}

// Settle drains the frontier completely so that every vertex is consistent
// and g holds the exact cost-to-goal of every cell under current knowledge.
// It costs a full search; the decision cycle only needs ComputeShortestPath.
func (p *Planner) Settle() error {
	if p.verts == nil {
		return ErrUninitialized
	}
	for p.open.Len() > 0 {
		if p.opts.ExpansionLimit > 0 && p.stats.Pops >= p.opts.ExpansionLimit {
			return p.finish(fmt.Errorf("%w: %d pops", ErrExpansionLimit, p.stats.Pops))
		}
		p.step()
	}
	return p.finish(nil)
}

// updatePredecessors repairs every grid neighbour of u. Edges are undirected,
// so predecessors and successors coincide; walls are skipped inside updateVertex.
func (p *Planner) updatePredecessors(u int) {
	for _, e := range p.verts[u].edges {
		if e.to >= 0 {
			p.updateVertex(e.to)
		}
	}
}

func (p *Planner) finish(err error) error {
	p.prev, p.stats = p.stats, Stats{}
	p.log.Debug("shortest path computed",
		slog.String("origin", p.origin.String()),
		slog.Int64("g", p.verts[p.grid.Index(p.origin)].g),
		slog.Int("pops", p.prev.Pops),
		slog.Int("expansions", p.prev.Expansions),
		slog.Int("frontier", p.open.Len()),
		slog.Any("err", err))

	return err
}

// Best selects among candidates (cells adjacent to the origin) the one
// minimizing edge cost + g. Ties prefer the cell straight ahead along facing,
// then the lower heading in direction order. ErrNoPath when every candidate
// is at infinite cost or the list is empty.
func (p *Planner) Best(candidates []maze.Cell, facing maze.Heading) (maze.Cell, int64, error) {
	if p.verts == nil {
		return maze.Cell{}, Inf, ErrUninitialized
	}
	var (
		best     maze.Cell
		bestCost = Inf
		bestDir  maze.Heading
		found    bool
	)
	oi := p.grid.Index(p.origin)
	for _, c := range candidates {
		h, steps, ok := maze.DirectionTo(p.origin, c)
		if !ok || steps != 1 || !p.grid.InBounds(c) {
			return maze.Cell{}, Inf, fmt.Errorf("%w: candidate %s from %s", ErrNotAdjacent, c, p.origin)
		}
		e := p.verts[oi].edges[h]
		cost := addCost(e.cost, p.verts[e.to].g)
		if cost == Inf {
			continue
		}
		if !found || cost < bestCost || (cost == bestCost && preferred(h, bestDir, facing)) {
			best, bestCost, bestDir, found = c, cost, h, true
		}
	}
	if !found {
		return maze.Cell{}, Inf, fmt.Errorf("%w: no finite candidate from %s", ErrNoPath, p.origin)
	}

	return best, bestCost, nil
}

// preferred breaks a cost tie between headings a (challenger) and b (incumbent).
func preferred(a, b, facing maze.Heading) bool {
	if a == facing || b == facing {
		return a == facing
	}
	return a < b
}

// Path traces a shortest known path from the origin to the goal region by
// repeatedly stepping to the neighbour minimizing edge cost + g, preferring
// to keep the current direction on ties. It must follow a successful
// ComputeShortestPath. maxLen <= 0 means the grid size.
func (p *Planner) Path(maxLen int) ([]maze.Cell, error) {
	if p.verts == nil {
		return nil, ErrUninitialized
	}
	if maxLen <= 0 {
		maxLen = p.grid.Len()
	}
	cur := p.origin
	path := []maze.Cell{cur}
	facing := maze.Heading(-1)
	for !p.grid.IsGoal(cur) {
		if len(path) > maxLen {
			return path, fmt.Errorf("%w: path longer than %d", ErrNoPath, maxLen)
		}
		ci := p.grid.Index(cur)
		bestCost, bestDir := Inf, maze.Heading(-1)
		for _, h := range maze.Headings {
			e := p.verts[ci].edges[h]
			if e.to < 0 {
				continue
			}
			c := addCost(e.cost, p.verts[e.to].g)
			if c < bestCost || (c == bestCost && c != Inf && h == facing) {
				bestCost, bestDir = c, h
			}
		}
		if bestCost == Inf {
			return path, fmt.Errorf("%w: dead end at %s", ErrNoPath, cur)
		}
		cur, _ = p.grid.Neighbor(cur, bestDir)
		facing = bestDir
		path = append(path, cur)
	}

	return path, nil
}

// Grid returns the planner's geometry.
func (p *Planner) Grid() *maze.Grid { return p.grid }

// Origin returns the current heuristic anchor.
func (p *Planner) Origin() maze.Cell { return p.origin }

// KM returns the accumulated key modifier.
func (p *Planner) KM() int64 { return p.km }

// G returns the settled cost-to-goal estimate of c (Inf for out-of-grid cells).
func (p *Planner) G(c maze.Cell) int64 {
	if p.check(c) != nil {
		return Inf
	}
	return p.verts[p.grid.Index(c)].g
}

// RHS returns the one-step lookahead of c (Inf for out-of-grid cells).
func (p *Planner) RHS(c maze.Cell) int64 {
	if p.check(c) != nil {
		return Inf
	}
	return p.verts[p.grid.Index(c)].rhs
}

// Consistent reports whether g(c) == rhs(c).
func (p *Planner) Consistent(c maze.Cell) bool {
	return p.G(c) == p.RHS(c)
}

// EdgeCost returns the cost of the edge leaving c along h (Inf off-grid).
func (p *Planner) EdgeCost(c maze.Cell, h maze.Heading) int64 {
	if p.check(c) != nil || !h.Valid() {
		return Inf
	}
	return p.verts[p.grid.Index(c)].edges[h].cost
}

// EdgeState returns the knowledge state of the edge leaving c along h.
func (p *Planner) EdgeState(c maze.Cell, h maze.Heading) EdgeState {
	if p.check(c) != nil || !h.Valid() {
		return EdgeNone
	}
	return p.verts[p.grid.Index(c)].edges[h].state
}

// FrontierLen returns the number of queued inconsistent vertices.
func (p *Planner) FrontierLen() int { return p.open.Len() }

// FrontierContains reports whether c is queued, and with which key.
func (p *Planner) FrontierContains(c maze.Cell) (Key, bool) {
	if p.check(c) != nil {
		return Key{}, false
	}
	return p.open.keyOf(p.grid.Index(c))
}

// Key returns the freshly computed key of c under the current origin and km.
func (p *Planner) Key(c maze.Cell) Key {
	if p.check(c) != nil {
		return InfKey
	}
	return p.calculateKey(p.grid.Index(c))
}

// Stats returns the counters of the last ComputeShortestPath call.
func (p *Planner) Stats() Stats { return p.prev }
