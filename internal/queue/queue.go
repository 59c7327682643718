// Package queue provides a value-based binary heap used for the cell queue and
// the bounded result set of a closest-point query.
package queue

// PriorityQueue is a binary heap of values ordered by a less function.
// The element at the top is the one no other element is less than, so a
// natural less yields a min-heap and an inverted less yields a max-heap.
//
// Storage is value-based for cache locality and zero allocations once the
// backing slice has grown. PriorityQueue is not safe for concurrent use.
type PriorityQueue[T any] struct {
	less  func(a, b T) bool
	items []T
}

// New creates a priority queue ordered by less with the given initial capacity.
func New[T any](less func(a, b T) bool, capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{
		less:  less,
		items: make([]T, 0, capacity),
	}
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue[T]) Len() int { return len(pq.items) }

// TopItem returns the top element of the heap.
func (pq *PriorityQueue[T]) TopItem() (T, bool) {
	if len(pq.items) == 0 {
		var zero T
		return zero, false
	}
	return pq.items[0], true
}

// PushItem inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue[T]) PushItem(item T) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// PushItemBounded inserts an item into a heap holding at most capacity items.
// If the heap is full, the item replaces the top only if the top is less than
// the item; otherwise it is dropped.
func (pq *PriorityQueue[T]) PushItemBounded(item T, capacity int) {
	if len(pq.items) < capacity {
		pq.PushItem(item)
		return
	}
	if pq.less(pq.items[0], item) {
		pq.items[0] = item
		pq.siftDown(0)
	}
}

// PopItem removes and returns the top element while maintaining the heap invariant.
func (pq *PriorityQueue[T]) PopItem() (T, bool) {
	n := len(pq.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	root := pq.items[0]
	last := pq.items[n-1]
	var zero T
	pq.items[n-1] = zero // Zero out for GC
	pq.items = pq.items[:n-1]
	if n-1 > 0 {
		pq.items[0] = last
		pq.siftDown(0)
	}
	return root, true
}

// Reset clears the priority queue for reuse, keeping its capacity.
func (pq *PriorityQueue[T]) Reset() {
	clear(pq.items)
	pq.items = pq.items[:0]
}

func (pq *PriorityQueue[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(pq.items[i], pq.items[p]) {
			return
		}
		pq.items[i], pq.items[p] = pq.items[p], pq.items[i]
		i = p
	}
}

func (pq *PriorityQueue[T]) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && pq.less(pq.items[r], pq.items[l]) {
			best = r
		}
		if !pq.less(pq.items[best], pq.items[i]) {
			return
		}
		pq.items[i], pq.items[best] = pq.items[best], pq.items[i]
		i = best
	}
}
