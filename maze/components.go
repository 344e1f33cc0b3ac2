package maze

// Reachable marks every cell connected to from through open sides.
// The result is indexed by Grid.Index. from must be in bounds.
//
// Time:   O(dim²).
// Memory: O(dim²) for the marks and the queue.
func (l *Layout) Reachable(from Cell) []bool {
	seen := make([]bool, l.grid.Len())
	l.flood(l.grid.Index(from), seen, nil)
	return seen
}

// GoalReachable reports whether any goal cell is connected to from.
func (l *Layout) GoalReachable(from Cell) bool {
	if !l.grid.InBounds(from) {
		return false
	}
	seen := l.Reachable(from)
	for _, g := range l.grid.goals {
		if seen[l.grid.Index(g)] {
			return true
		}
	}
	return false
}

// Components partitions the board into regions connected through open
// sides. Regions are listed in order of their lowest row-major index and
// each region lists its cells in breadth-first order from that cell.
func (l *Layout) Components() [][]Cell {
	seen := make([]bool, l.grid.Len())
	var comps [][]Cell
	for i := range seen {
		if seen[i] {
			continue
		}
		var comp []Cell
		l.flood(i, seen, func(c Cell) { comp = append(comp, c) })
		comps = append(comps, comp)
	}
	return comps
}

// flood runs a breadth-first search from start, marking seen and calling
// visit (if non-nil) once per newly reached cell.
func (l *Layout) flood(start int, seen []bool, visit func(Cell)) {
	queue := []int{start}
	seen[start] = true
	for qi := 0; qi < len(queue); qi++ {
		c := l.grid.CellAt(queue[qi])
		if visit != nil {
			visit(c)
		}
		for _, h := range Headings {
			if !l.Open(c, h) {
				continue
			}
			n, ok := l.grid.Neighbor(c, h)
			if !ok {
				continue
			}
			if ni := l.grid.Index(n); !seen[ni] {
				seen[ni] = true
				queue = append(queue, ni)
			}
		}
	}
}
