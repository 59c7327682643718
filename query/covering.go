package query

import "github.com/golang/geo/s2"

// initCovering computes a covering of the indexed points with at most six
// cells: one per face if the points span several faces, otherwise at most
// four cells at the level just below their lowest common ancestor. Each cell
// is shrunk to the common ancestor of the points it holds, which prunes empty
// space before the search begins.
func (e *Engine[D, T]) initCovering() {
	e.indexCovering = e.indexCovering[:0]
	e.coveringValid = true
	if e.iter.Len() == 0 {
		return
	}

	next := e.iter.Clone()
	next.Begin()
	last := e.iter.Clone()
	last.Finish()
	last.Prev()

	if next.CellID() != last.CellID() {
		level := commonAncestorLevel(next.CellID(), last.CellID()) + 1

		// Visit each potential covering cell except the last one, which is
		// handled below.
		lastID := last.CellID().Parent(level)
		for id := next.CellID().Parent(level); id != lastID; id = id.Next() {
			// Skip cells that contain no indexed points.
			if id.RangeMax() < next.CellID() {
				continue
			}
			// Find the range of points in this cell and shrink the cell so
			// that it just covers them.
			cellFirst := next.CellID()
			next.Seek(id.RangeMax().Next())
			cellLast := next.Clone()
			cellLast.Prev()
			e.addInitialRange(cellFirst, cellLast.CellID())
		}
	}
	e.addInitialRange(next.CellID(), last.CellID())
}

// addInitialRange adds the lowest common ancestor of a range of indexed cells.
func (e *Engine[D, T]) addInitialRange(first, last s2.CellID) {
	e.indexCovering = append(e.indexCovering, first.Parent(commonAncestorLevel(first, last)))
}

// commonAncestorLevel returns the level of the lowest common ancestor of a
// and b, or -1 if they lie on different faces.
func commonAncestorLevel(a, b s2.CellID) int {
	level, ok := a.CommonAncestorLevel(b)
	if !ok {
		return -1
	}
	return level
}
