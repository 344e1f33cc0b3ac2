// SPDX-License-Identifier: MIT
// Package: lvmaze/dstar

// Package dstar implements an incremental shortest-path replanner (D* Lite)
// over a maze.Grid whose walls are discovered while the agent moves.
//
// Model:
//
//   - The search runs backwards from the goal region towards the origin
//     (the agent's current cell). Every goal cell has rhs = 0 forever.
//   - Each cell owns a vertex with g (settled cost-to-goal estimate) and rhs
//     (one-step lookahead). A vertex is consistent iff g == rhs.
//   - Edges are undirected, start at cost 1 (optimistic, EdgeUnknown) and
//     become EdgeOpen (cost 1) or EdgeBlocked (cost Inf) once sensed.
//     A blocked edge is never lowered again.
//   - The frontier holds exactly the inconsistent vertices, ordered by
//     Key{min(g,rhs) + h(origin,s) + km, min(g,rhs)}; ties fall back to the
//     row-major cell index, which makes every run deterministic.
//   - Moving the origin adds h(oldOrigin, newOrigin) to km so keys already
//     queued remain valid lower bounds.
//
// Typical cycle:
//
//	p, _ := dstar.New(grid, start)
//	_ = p.ComputeShortestPath()
//	for each move {
//	    p.SetEdgeCost(a, b, dstar.Inf)   // walls sensed this cycle
//	    p.MoveOrigin(cur)
//	    if err := p.ComputeShortestPath(); errors.Is(err, dstar.ErrNoPath) { ... }
//	    next, _, _ := p.Best(candidates, heading)
//	}
//
// Complexity:
//
//   - Initialize: O(V) with V = dim².
//   - ComputeShortestPath: O(k log V) where k is the number of vertices whose
//     correction can still affect the origin; bounded by O(V log V) per change.
//   - Memory: O(V); each vertex carries a fixed 4-entry edge table.
//
// Thread safety: a Planner is owned by a single decision cycle and is not
// safe for concurrent use.
package dstar
