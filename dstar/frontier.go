// SPDX-License-Identifier: MIT
// Package: lvmaze/dstar
//
// frontier.go - indexed min-heap of inconsistent vertices.
//
// The heap stores only (key, cell index) pairs; pos maps a cell index to its
// heap slot (-1 when absent). Each cell appears at most once. Ordering: K1,
// then K2, then ascending row-major cell index.

package dstar

import "container/heap"

type frontierItem struct {
	key Key
	idx int
}

type frontier struct {
	items []frontierItem
	pos   []int
}

func newFrontier(n int) *frontier {
	f := &frontier{pos: make([]int, n)}
	f.reset()
	return f
}

func (f *frontier) reset() {
	f.items = f.items[:0]
	for i := range f.pos {
		f.pos[i] = -1
	}
}

// heap.Interface

func (f *frontier) Len() int { return len(f.items) }

func (f *frontier) Less(i, j int) bool {
	a, b := f.items[i], f.items[j]
	if a.key != b.key {
		return a.key.Less(b.key)
	}
	return a.idx < b.idx
}

func (f *frontier) Swap(i, j int) {
	f.items[i], f.items[j] = f.items[j], f.items[i]
	f.pos[f.items[i].idx] = i
	f.pos[f.items[j].idx] = j
}

func (f *frontier) Push(x any) {
	it := x.(frontierItem)
	f.pos[it.idx] = len(f.items)
	f.items = append(f.items, it)
}

func (f *frontier) Pop() any {
	n := len(f.items)
	it := f.items[n-1]
	f.items = f.items[:n-1]
	f.pos[it.idx] = -1
	return it
}

// peekMinKey returns the smallest key, or InfKey when empty.
func (f *frontier) peekMinKey() Key {
	if len(f.items) == 0 {
		return InfKey
	}
	return f.items[0].key
}

// popMin removes and returns the minimum entry. The frontier must be non-empty.
func (f *frontier) popMin() (int, Key) {
	it := heap.Pop(f).(frontierItem)
	return it.idx, it.key
}

func (f *frontier) contains(idx int) bool { return f.pos[idx] >= 0 }

func (f *frontier) keyOf(idx int) (Key, bool) {
	p := f.pos[idx]
	if p < 0 {
		return Key{}, false
	}
	return f.items[p].key, true
}

// remove drops idx if present.
func (f *frontier) remove(idx int) {
	if p := f.pos[idx]; p >= 0 {
		heap.Remove(f, p)
	}
}

// insertOrUpdate places idx with key k, repositioning an existing entry.
func (f *frontier) insertOrUpdate(idx int, k Key) {
	if p := f.pos[idx]; p >= 0 {
		f.items[p].key = k
		heap.Fix(f, p)
		return
	}
	heap.Push(f, frontierItem{key: k, idx: idx})
}
