// Package lvmaze is a maze-solving agent built around an incremental
// shortest-path replanner.
//
// The agent starts in a corner of an unknown dim×dim maze and must reach
// the central goal region. After every move it reads three wall distances
// (left, front, right), records the walls it has confirmed and repairs its
// plan with D* Lite instead of searching from scratch.
//
// Packages, leaf first:
//
//	maze/         cells, headings, the goal region and complete wall layouts
//	dstar/        the cost graph, priority frontier and incremental planner
//	sensor/       sensor readings to confirmed open or blocked edges
//	kinematics/   target cell to (rotation, distance) commands, clamping
//	explore/      swappable exploration policies (random walk, wall hugging)
//	navigator/    the per-reading decision cycle and run state machine
//	dijkstra/     brute-force multi-source distances, the optimality reference
//	mazegen/      seeded maze generator
//	mazefile/     the plain-text maze file format
//	sim/          ground-truth harness: sensing, command execution, scoring
//	config/       YAML run configuration
//	runlog/       SQLite store of run results
//	cmd/mazerunner the command-line front end
//
// Everything below cmd/ is single-threaded and synchronous: one sensor
// reading in, one directive out.
package lvmaze
