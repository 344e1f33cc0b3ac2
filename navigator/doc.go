// Package navigator runs the agent's decision cycle on top of the
// incremental planner.
//
// One call to Navigator.Step consumes one sensor reading and performs:
//
//	validate → translate to edges → SetEdgeCost → re-anchor origin →
//	ComputeShortestPath → pick next cell → kinematic command → pose update
//
// Next-cell selection uses the planner's cost model unless an
// explore.Policy is configured. When all three sensors report a wall, or
// the planner finds no path under current knowledge, the agent retreats one
// cell along the edge it last travelled. Before any move has been made, a
// dead end with an unsensed edge behind turns the agent in place instead.
//
// State machine:
//
//	Exploring ──(enter goal region)──▶ GoalReached ──Reset()──▶ Exploring
//
// In GoalReached every Step returns a Reset directive and the pose is left
// alone; the harness repositions the agent and calls Reset. Whether walls
// discovered during a run survive the reset is the ResetPolicy. With
// KeepDiscoveries, later runs follow the shortest route over edges already
// confirmed open, so they are never longer than the first run, and cover up
// to MaxStep cells per straight move.
//
// A Navigator is not safe for concurrent use; the cycle is strictly sequential.
package navigator
