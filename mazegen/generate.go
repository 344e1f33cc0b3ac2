// SPDX-License-Identifier: MIT
// Package: lvmaze/mazegen
//
// generate.go - randomized depth-first carving.

package mazegen

import (
	"fmt"

	"github.com/katalvlaran/lvmaze/maze"
)

// Generate returns a valid dim×dim layout. Every cell is reachable from (0,0).
func Generate(dim int, opts ...Option) (*maze.Layout, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	grid, err := maze.NewGrid(dim)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDimension, err)
	}
	l := maze.NewLayout(grid)

	// 1) Carve a spanning tree with an explicit stack.
	visited := make([]bool, grid.Len())
	stack := []maze.Cell{{}}
	visited[0] = true
	dirs := make([]maze.Heading, 0, 4)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		dirs = dirs[:0]
		for _, h := range maze.Headings {
			if n, ok := grid.Neighbor(cur, h); ok && !visited[grid.Index(n)] {
				dirs = append(dirs, h)
			}
		}
		if len(dirs) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		h := dirs[cfg.rng.Intn(len(dirs))]
		n, _ := grid.Neighbor(cur, h)
		if err := l.Carve(cur, h); err != nil {
			return nil, err
		}
		visited[grid.Index(n)] = true
		stack = append(stack, n)
	}

	// 2) Hollow out the goal region.
	if cfg.openGoal {
		for _, c := range grid.Goals() {
			for _, h := range maze.Headings {
				if n, ok := grid.Neighbor(c, h); ok && grid.IsGoal(n) {
					if err := l.Carve(c, h); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	// 3) Extra openings. Bounded attempts keep tiny boards from spinning.
	for opened, attempts := 0, 0; opened < cfg.loops && attempts < 16*(cfg.loops+grid.Len()); attempts++ {
		c := grid.CellAt(cfg.rng.Intn(grid.Len()))
		h := maze.Headings[cfg.rng.Intn(4)]
		if _, ok := grid.Neighbor(c, h); !ok || l.Open(c, h) {
			continue
		}
		if err := l.Carve(c, h); err != nil {
			return nil, err
		}
		opened++
	}

	return l, nil
}
