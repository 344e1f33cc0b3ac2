// SPDX-License-Identifier: MIT
// Package: lvmaze/mazegen
//
// Package mazegen builds ground-truth maze layouts for simulation, tests and
// benchmarks.
//
// Canonical model:
//   • Perfect maze by randomized depth-first carving from the start cell
//     (0,0): every cell is reachable and the passage graph is a tree.
//   • WithLoops(n) removes n additional walls, creating alternative routes so
//     that replanning has real choices to make.
//   • WithOpenGoal() removes the walls inside the goal region, the usual
//     micromouse convention of a hollow centre.
//
// Determinism:
//   • Seeding is explicit: WithSeed or WithRand. Seed 0 maps to a fixed
//     default seed, so an unconfigured Generate is still reproducible.
//   • Neighbour candidates are enumerated in heading order before the draw.
//
// Complexity:
//   • Time O(dim²) for carving plus O(loops) expected for extra openings.
//   • Space O(dim²) for the visited set and stack.
package mazegen
