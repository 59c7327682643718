package index

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/golang/geo/s2"
)

// ErrPointNotFound is wrapped by Delete when a PointID does not refer to a
// live point.
var ErrPointNotFound = errors.New("point not found")

// SentinelCellID is larger than every valid cell ID. Iterators report it once
// they are exhausted.
const SentinelCellID = s2.CellID(^uint64(0))

// PointID is the storage identity of an indexed point.
type PointID uint32

// Entry is an indexed point. Entries are owned by the index; queries hand out
// pointers to them rather than copies.
type Entry[T any] struct {
	cellID s2.CellID
	point  s2.Point
	data   T
	id     PointID
}

// CellID returns the leaf cell containing the point.
func (e *Entry[T]) CellID() s2.CellID { return e.cellID }

// Point returns the indexed point.
func (e *Entry[T]) Point() s2.Point { return e.point }

// Data returns the payload stored with the point.
func (e *Entry[T]) Data() T { return e.data }

// ID returns the point's storage identity.
func (e *Entry[T]) ID() PointID { return e.id }

func compareEntries[T any](a, b Entry[T]) int {
	switch {
	case a.cellID < b.cellID:
		return -1
	case a.cellID > b.cellID:
		return 1
	case a.id < b.id:
		return -1
	case a.id > b.id:
		return 1
	}
	return 0
}

// PointIndex stores points with payloads of type T, ordered by cell ID.
type PointIndex[T any] struct {
	mu      sync.Mutex
	entries []Entry[T] // sorted by (cellID, id); never modified in place
	pending []Entry[T] // added since the last merge
	live    *roaring.Bitmap
	removed *roaring.Bitmap // tombstones not yet dropped from entries
	nextID  PointID
}

// New creates an empty PointIndex.
func New[T any]() *PointIndex[T] {
	return &PointIndex[T]{
		live:    roaring.New(),
		removed: roaring.New(),
	}
}

// Add inserts a point with the given payload and returns its PointID.
// The point should be unit length.
func (x *PointIndex[T]) Add(p s2.Point, data T) PointID {
	x.mu.Lock()
	defer x.mu.Unlock()

	id := x.nextID
	x.nextID++
	x.pending = append(x.pending, Entry[T]{
		cellID: s2.CellFromPoint(p).ID(),
		point:  p,
		data:   data,
		id:     id,
	})
	x.live.Add(uint32(id))
	return id
}

// Remove deletes the point with the given PointID. It reports whether the
// point was present.
func (x *PointIndex[T]) Remove(id PointID) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.live.Contains(uint32(id)) {
		return false
	}
	x.live.Remove(uint32(id))
	x.removed.Add(uint32(id))
	return true
}

// Delete is Remove for callers that treat a missing point as an error. It
// returns an error wrapping ErrPointNotFound if id is not live.
func (x *PointIndex[T]) Delete(id PointID) error {
	if !x.Remove(id) {
		return fmt.Errorf("delete point %d: %w", id, ErrPointNotFound)
	}
	return nil
}

// Contains reports whether id refers to a live point.
func (x *PointIndex[T]) Contains(id PointID) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.live.Contains(uint32(id))
}

// Len returns the number of live points.
func (x *PointIndex[T]) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return int(x.live.GetCardinality())
}

// Clear removes all points. PointIDs are not reused.
func (x *PointIndex[T]) Clear() {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.entries = nil
	x.pending = nil
	x.live.Clear()
	x.removed.Clear()
}

// Iterator returns an iterator over a snapshot of the index, positioned at
// the first point.
func (x *PointIndex[T]) Iterator() *Iterator[T] {
	x.mu.Lock()
	x.mergeLocked()
	entries := x.entries
	x.mu.Unlock()

	return &Iterator[T]{entries: entries}
}

// mergeLocked folds pending additions and removals into a new sorted slice.
// The previous slice is left untouched because iterators may still read it.
func (x *PointIndex[T]) mergeLocked() {
	if len(x.pending) == 0 && x.removed.IsEmpty() {
		return
	}

	slices.SortFunc(x.pending, compareEntries[T])

	merged := make([]Entry[T], 0, len(x.entries)+len(x.pending))
	i, j := 0, 0
	for i < len(x.entries) || j < len(x.pending) {
		var e Entry[T]
		if j >= len(x.pending) || (i < len(x.entries) && compareEntries(x.entries[i], x.pending[j]) < 0) {
			e = x.entries[i]
			i++
		} else {
			e = x.pending[j]
			j++
		}
		if x.removed.Contains(uint32(e.id)) {
			continue
		}
		merged = append(merged, e)
	}

	x.entries = merged
	x.pending = nil
	x.removed.Clear()
}
