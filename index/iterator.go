package index

import (
	"sort"

	"github.com/golang/geo/s2"
)

// Iterator walks an index snapshot in cell-ID order.
type Iterator[T any] struct {
	entries []Entry[T]
	pos     int
}

// Len returns the number of points in the snapshot.
func (it *Iterator[T]) Len() int { return len(it.entries) }

// Begin positions the iterator at the first point.
func (it *Iterator[T]) Begin() { it.pos = 0 }

// Finish positions the iterator past the last point.
func (it *Iterator[T]) Finish() { it.pos = len(it.entries) }

// Done reports whether the iterator is past the last point.
func (it *Iterator[T]) Done() bool { return it.pos >= len(it.entries) }

// Next advances the iterator. It must not be called when Done.
func (it *Iterator[T]) Next() { it.pos++ }

// Prev moves the iterator back one point. It returns false, leaving the
// iterator unchanged, if it is already at the first point.
func (it *Iterator[T]) Prev() bool {
	if it.pos == 0 {
		return false
	}
	it.pos--
	return true
}

// Seek positions the iterator at the first point whose cell ID is at least target.
func (it *Iterator[T]) Seek(target s2.CellID) {
	it.pos = sort.Search(len(it.entries), func(i int) bool {
		return it.entries[i].cellID >= target
	})
}

// CellID returns the current point's cell ID, or SentinelCellID when Done.
func (it *Iterator[T]) CellID() s2.CellID {
	if it.Done() {
		return SentinelCellID
	}
	return it.entries[it.pos].cellID
}

// Entry returns the current point. It must not be called when Done.
func (it *Iterator[T]) Entry() *Entry[T] { return &it.entries[it.pos] }

// Clone returns an independent iterator over the same snapshot at the same position.
func (it *Iterator[T]) Clone() *Iterator[T] {
	c := *it
	return &c
}
