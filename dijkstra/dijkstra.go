// Package dijkstra implements multi-source Dijkstra on a maze grid.
//
// Notes on implementation choices:
//
//   - We perform an upfront scan of all edges (O(E)) to detect negative weights and fail fast.
//   - We treat any edge with cost ≥ InfEdgeThreshold as an impassable wall.
//   - We stop exploring once the minimum distance in the heap exceeds MaxDistance.
//   - We use a "lazy" decrease-key strategy: pushing duplicates into the heap and ignoring stale entries.
package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/lvmaze/maze"
)

// Distances computes the distance from every cell to the nearest source.
//
// Returns:
//
//   - dist: row-major slice, dist[grid.Index(c)] = minimal cost, Unreachable if none.
//   - next: if ReturnPath, next[i] is the row-major index of the next cell on a
//     shortest route from i towards a source, -1 for sources and unreachable
//     cells. Nil otherwise.
//   - err:  sentinel errors for invalid inputs or negative weights.
//
// Validation order: ErrNilGrid, ErrNilCost, ErrNoSources, ErrSourceOutOfBounds, ErrNegativeWeight.
func Distances(grid *maze.Grid, cost CostFunc, opts ...Option) ([]int64, []int, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if grid == nil {
		return nil, nil, ErrNilGrid
	}
	if cost == nil {
		return nil, nil, ErrNilCost
	}
	if len(cfg.Sources) == 0 {
		return nil, nil, ErrNoSources
	}
	for _, s := range cfg.Sources {
		if !grid.InBounds(s) {
			return nil, nil, fmt.Errorf("%w: %s", ErrSourceOutOfBounds, s)
		}
	}

	// Pre-scan all edges for negative weights.
	V := grid.Len()
	for i := 0; i < V; i++ {
		c := grid.CellAt(i)
		for _, h := range maze.Headings {
			if _, ok := grid.Neighbor(c, h); !ok {
				continue
			}
			if w := cost(c, h); w < 0 {
				return nil, nil, fmt.Errorf("%w: edge %s→%s weight=%d", ErrNegativeWeight, c, h, w)
			}
		}
	}

	r := &runner{
		grid:    grid,
		cost:    cost,
		options: cfg,
		dist:    make([]int64, V),
		visited: make([]bool, V),
		pq:      make(nodePQ, 0, V),
	}
	if cfg.ReturnPath {
		r.next = make([]int, V)
	}
	r.init()
	r.process()

	return r.dist, r.next, nil
}

// ToGoal is Distances from the goal region of l's grid over l's open sides.
func ToGoal(l *maze.Layout) ([]int64, error) {
	dist, _, err := Distances(l.Grid(), FromLayout(l), Sources(l.Grid().Goals()...))
	return dist, err
}

// PathFrom walks next hops from start until a source is reached.
// Returns nil if start is unreachable.
func PathFrom(grid *maze.Grid, next []int, dist []int64, start maze.Cell) []maze.Cell {
	i := grid.Index(start)
	if dist[i] == Unreachable {
		return nil
	}
	path := []maze.Cell{start}
	for next[i] >= 0 {
		i = next[i]
		path = append(path, grid.CellAt(i))
	}
	return path
}

// runner holds the mutable state for a single execution.
type runner struct {
	grid    *maze.Grid
	cost    CostFunc
	options Options
	dist    []int64
	next    []int
	visited []bool
	pq      nodePQ
}

// init sets every distance to Unreachable and seeds the heap with all sources at 0.
func (r *runner) init() {
	for i := range r.dist {
		r.dist[i] = Unreachable
		if r.next != nil {
			r.next[i] = -1
		}
	}
	heap.Init(&r.pq)
	for _, s := range r.options.Sources {
		i := r.grid.Index(s)
		if r.dist[i] == 0 {
			continue
		}
		r.dist[i] = 0
		heap.Push(&r.pq, &nodeItem{idx: i, dist: 0})
	}
}

// process pops the closest unsettled cell until the heap empties or MaxDistance is exceeded.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.idx] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[item.idx] = true
		r.relax(item.idx)
	}
}

// relax improves the neighbours of the settled cell u. Edges are undirected
// in this domain, so the cost of entering u from v is cost(v, towards u).
func (r *runner) relax(u int) {
	uc := r.grid.CellAt(u)
	for _, h := range maze.Headings {
		vc, ok := r.grid.Neighbor(uc, h)
		if !ok {
			continue
		}
		w := r.cost(vc, h.Reverse())
		if w >= r.options.InfEdgeThreshold {
			continue
		}
		if w > Unreachable-r.dist[u] {
			continue
		}
		v := r.grid.Index(vc)
		newDist := r.dist[u] + w
		if newDist > r.options.MaxDistance || newDist >= r.dist[v] {
			continue
		}
		r.dist[v] = newDist
		if r.next != nil {
			r.next[v] = u
		}
		heap.Push(&r.pq, &nodeItem{idx: v, dist: newDist})
	}
}

// nodeItem represents a cell and its current distance from the nearest source.
type nodeItem struct {
	idx  int
	dist int64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, then index for determinism.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].idx < pq[j].idx
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
