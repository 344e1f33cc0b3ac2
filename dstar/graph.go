// SPDX-License-Identifier: MIT
// Package: lvmaze/dstar
//
// graph.go - the cost graph: a vertex arena indexed by row-major cell index.
//
// Each vertex stores g, rhs and a fixed 4-entry edge table indexed by
// maze.Heading. Neighbours are referenced by index, never by pointer, so the
// cyclic adjacency of the grid needs no ownership graph.

package dstar

import (
	"fmt"

	"github.com/katalvlaran/lvmaze/maze"
)

type edge struct {
	to    int // neighbour index, -1 when the direction leaves the grid
	cost  int64
	state EdgeState
}

type vertex struct {
	g, rhs int64
	edges  [4]edge
}

// buildVertices lays out one vertex per cell with default edges.
// Complexity: O(V).
func buildVertices(grid *maze.Grid) []vertex {
	verts := make([]vertex, grid.Len())
	for i := range verts {
		c := grid.CellAt(i)
		for _, h := range maze.Headings {
			n, ok := grid.Neighbor(c, h)
			if !ok {
				verts[i].edges[h] = edge{to: -1, cost: Inf, state: EdgeNone}
				continue
			}
			verts[i].edges[h] = edge{to: grid.Index(n), cost: DefaultEdgeCost, state: EdgeUnknown}
		}
	}
	return verts
}

// forgetEdges restores every in-grid edge to its unsensed default.
func (p *Planner) forgetEdges() {
	for i := range p.verts {
		for h := range p.verts[i].edges {
			e := &p.verts[i].edges[h]
			if e.to >= 0 {
				e.cost, e.state = DefaultEdgeCost, EdgeUnknown
			}
		}
	}
}

// initialize seeds a backward search from the goal region: every vertex is
// set to g = rhs = Inf, goal vertices get rhs = 0 and enter the frontier.
func (p *Planner) initialize() {
	p.open.reset()
	p.km = 0
	p.last = p.origin
	for i := range p.verts {
		p.verts[i].g, p.verts[i].rhs = Inf, Inf
	}
	for _, c := range p.grid.Goals() {
		i := p.grid.Index(c)
		p.verts[i].rhs = 0
		p.open.insertOrUpdate(i, p.calculateKey(i))
	}
}

// calculateKey computes Key{min(g,rhs) + h(origin,s) + km, min(g,rhs)}.
func (p *Planner) calculateKey(i int) Key {
	v := &p.verts[i]
	m := min(v.g, v.rhs)
	return Key{
		K1: addCost(addCost(m, p.opts.Heuristic(p.origin, p.grid.CellAt(i))), p.km),
		K2: m,
	}
}

// updateVertex recomputes rhs of a non-goal vertex from its edges, drops any
// stale frontier entry and requeues the vertex iff it is inconsistent.
func (p *Planner) updateVertex(i int) {
	p.stats.Updates++
	v := &p.verts[i]
	if !p.goal[i] {
		best := Inf
		for _, e := range v.edges {
			if e.to < 0 || e.cost == Inf {
				continue
			}
			if c := addCost(e.cost, p.verts[e.to].g); c < best {
				best = c
			}
		}
		v.rhs = best
	}
	p.open.remove(i)
	if v.g != v.rhs {
		p.open.insertOrUpdate(i, p.calculateKey(i))
	}
}

// UpdateVertex is the exported form of the rhs repair for a single cell.
func (p *Planner) UpdateVertex(c maze.Cell) error {
	if err := p.check(c); err != nil {
		return err
	}
	p.updateVertex(p.grid.Index(c))
	return nil
}

// SetEdgeCost records the cost of the undirected edge {a, b}.
//
// Semantics:
//   - cost == Inf confirms a wall (EdgeBlocked); any finite cost confirms the
//     edge open (EdgeOpen).
//   - Re-sending the current cost only upgrades the knowledge state; g and rhs
//     are untouched and changed is false.
//   - A blocked edge never reopens: ErrEdgeLowered.
//   - On a real change both endpoints are repaired via updateVertex.
//
// Errors: ErrUninitialized, ErrNotAdjacent (out-of-grid or non-adjacent pair), ErrBadCost.
func (p *Planner) SetEdgeCost(a, b maze.Cell, cost int64) (changed bool, err error) {
	if p.verts == nil {
		return false, ErrUninitialized
	}
	if !p.grid.InBounds(a) || !p.grid.InBounds(b) {
		return false, fmt.Errorf("%w: %s-%s leaves the grid", ErrNotAdjacent, a, b)
	}
	h, steps, ok := maze.DirectionTo(a, b)
	if !ok || steps != 1 {
		return false, fmt.Errorf("%w: %s-%s", ErrNotAdjacent, a, b)
	}
	if cost <= 0 {
		return false, fmt.Errorf("%w: %d", ErrBadCost, cost)
	}

	ia, ib := p.grid.Index(a), p.grid.Index(b)
	fwd, back := &p.verts[ia].edges[h], &p.verts[ib].edges[h.Reverse()]
	state := EdgeOpen
	if cost == Inf {
		state = EdgeBlocked
	}
	if fwd.state == EdgeBlocked && cost != Inf {
		return false, fmt.Errorf("%w: %s-%s", ErrEdgeLowered, a, b)
	}
	fwd.state, back.state = state, state
	if fwd.cost == cost {
		return false, nil
	}
	fwd.cost, back.cost = cost, cost
	p.updateVertex(ia)
	p.updateVertex(ib)

	return true, nil
}

// check validates that the planner is initialized and c is on the grid.
func (p *Planner) check(c maze.Cell) error {
	if p.verts == nil {
		return ErrUninitialized
	}
	if !p.grid.InBounds(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	return nil
}
