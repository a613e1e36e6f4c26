// Package topk provides a heap-based top-K collector used by the insight and
// what-if ranking paths. Maintaining K winners over a stream costs O(n log k)
// instead of sorting everything.
package topk

import (
	"container/heap"
	"sort"
)

// Scored pairs an item with its ranking score.
type Scored[T any] struct {
	Item  T
	Score float64
}

// Collector keeps the K highest-scoring items seen so far. The less function
// breaks score ties deterministically; items for which less returns true rank
// first. A nil less leaves tie order unspecified.
type Collector[T any] struct {
	k    int
	h    minHeap[T]
	less func(a, b T) bool
}

// New creates a Collector for the top k items. k <= 0 collects nothing.
func New[T any](k int, less func(a, b T) bool) *Collector[T] {
	if k < 0 {
		k = 0
	}
	return &Collector[T]{
		k:    k,
		h:    minHeap[T]{items: make([]Scored[T], 0, k), less: less},
		less: less,
	}
}

// Add offers an item; it is kept if the collector has room or the score beats
// the current minimum. Reports whether the item was kept.
func (c *Collector[T]) Add(item T, score float64) bool {
	if c.k <= 0 {
		return false
	}
	entry := Scored[T]{Item: item, Score: score}
	if c.h.Len() < c.k {
		heap.Push(&c.h, entry)
		return true
	}
	floor := c.h.items[0]
	if score > floor.Score ||
		(score == floor.Score && c.less != nil && c.less(item, floor.Item)) {
		heap.Pop(&c.h)
		heap.Push(&c.h, entry)
		return true
	}
	return false
}

// Len returns the number of collected items.
func (c *Collector[T]) Len() int { return c.h.Len() }

// Results returns the collected items in descending score order.
func (c *Collector[T]) Results() []T {
	scored := c.ResultsWithScores()
	items := make([]T, len(scored))
	for i, s := range scored {
		items[i] = s.Item
	}
	return items
}

// ResultsWithScores returns the collected items with scores, descending, ties
// ordered by the less function.
func (c *Collector[T]) ResultsWithScores() []Scored[T] {
	out := make([]Scored[T], c.h.Len())
	copy(out, c.h.items)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if c.less != nil {
			return c.less(out[i].Item, out[j].Item)
		}
		return false
	})
	return out
}

type minHeap[T any] struct {
	items []Scored[T]
	less  func(a, b T) bool
}

func (h *minHeap[T]) Len() int { return len(h.items) }

func (h *minHeap[T]) Less(i, j int) bool {
	if h.items[i].Score != h.items[j].Score {
		return h.items[i].Score < h.items[j].Score
	}
	// On ties, keep the item that should rank first deeper in the heap so
	// the evictable minimum is the one that should rank last.
	if h.less != nil {
		return !h.less(h.items[i].Item, h.items[j].Item)
	}
	return false
}

func (h *minHeap[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *minHeap[T]) Push(x any) { h.items = append(h.items, x.(Scored[T])) }

func (h *minHeap[T]) Pop() any {
	n := len(h.items)
	x := h.items[n-1]
	h.items = h.items[:n-1]
	return x
}
