// Package sensor converts the agent's three relative wall-distance readings
// into confirmed edge costs for the planner.
//
// A Reading holds the clear-cell counts to the agent's left, front and right,
// each in [0, MaxRange]. For every direction:
//
//	distance == 0  → the adjacent edge is a wall   (cost dstar.Inf)
//	distance >= 1  → the adjacent edge is open     (cost 1)
//
// Cells beyond the first step keep their optimistic default until the agent
// stands next to them. Directions that leave the board produce no update:
// the perimeter has no edges to record.
package sensor
