// Package dijkstra provides a full-knowledge, multi-source Dijkstra search
// over a maze.Grid, used as the brute-force reference for the incremental
// planner and as the optimal-length oracle of the simulator.
//
// Overview:
//
//   - Distances computes, for every cell, the minimum cost to the nearest
//     source cell (typically the goal region) in O((V + E) log V) time.
//   - Edge costs come from a CostFunc(cell, heading); any cost ≥ the
//     InfEdgeThreshold is treated as a wall.
//   - FromLayout adapts a ground-truth maze.Layout into unit-cost open edges.
//
// Key features:
//
//   - Functional options: Sources, WithReturnPath, WithMaxDistance, WithInfEdgeThreshold.
//   - ReturnPath: returns a predecessor slice (next hop towards the nearest source).
//   - MaxDistance: stops exploring beyond the given distance.
//
// Performance and complexity:
//
//   - Time:  O((V + E) log V); each cell is settled once, each edge relaxed once per side.
//   - Space: O(V) for dist/prev plus O(E) heap entries under lazy decrease-key.
//
// Error handling (sentinel errors):
//
//   - ErrNilGrid, ErrNilCost: missing inputs.
//   - ErrNoSources: no Sources option given.
//   - ErrSourceOutOfBounds: a source cell lies outside the grid.
//   - ErrNegativeWeight: the O(E) pre-scan found a negative edge.
//   - ErrBadMaxDistance, ErrBadInfThreshold: panics from option constructors.
//
// Thread safety: Distances does not mutate its inputs; a CostFunc that reads
// shared state must be synchronized externally.
package dijkstra
