package closestpoint

import (
	"github.com/golang/geo/s2"
	"github.com/hupe1980/closestpoint/target"
)

// NewPointTarget returns a closest point target for p.
func NewPointTarget(p s2.Point) *target.MinPointTarget { return target.NewMinPointTarget(p) }

// NewEdgeTarget returns a closest point target for the edge ab.
func NewEdgeTarget(a, b s2.Point) *target.MinEdgeTarget { return target.NewMinEdgeTarget(a, b) }

// NewCellTarget returns a closest point target for cell.
func NewCellTarget(cell s2.Cell) *target.MinCellTarget { return target.NewMinCellTarget(cell) }

// NewCellUnionTarget returns a closest point target for cu.
func NewCellUnionTarget(cu s2.CellUnion) *target.MinCellUnionTarget {
	return target.NewMinCellUnionTarget(cu)
}

// NewShapeIndexTarget returns a closest point target for the shapes of idx.
func NewShapeIndexTarget(idx *s2.ShapeIndex) *target.MinShapeIndexTarget {
	return target.NewMinShapeIndexTarget(idx)
}

// NewFurthestPointTarget returns a furthest point target for p.
func NewFurthestPointTarget(p s2.Point) *target.MaxPointTarget { return target.NewMaxPointTarget(p) }

// NewFurthestEdgeTarget returns a furthest point target for the edge ab.
func NewFurthestEdgeTarget(a, b s2.Point) *target.MaxEdgeTarget { return target.NewMaxEdgeTarget(a, b) }

// NewFurthestCellTarget returns a furthest point target for cell.
func NewFurthestCellTarget(cell s2.Cell) *target.MaxCellTarget { return target.NewMaxCellTarget(cell) }

// NewFurthestCellUnionTarget returns a furthest point target for cu.
func NewFurthestCellUnionTarget(cu s2.CellUnion) *target.MaxCellUnionTarget {
	return target.NewMaxCellUnionTarget(cu)
}

// NewFurthestShapeIndexTarget returns a furthest point target for the shapes
// of idx.
func NewFurthestShapeIndexTarget(idx *s2.ShapeIndex) *target.MaxShapeIndexTarget {
	return target.NewMaxShapeIndexTarget(idx)
}
