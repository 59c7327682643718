package closestpoint

import (
	"errors"

	"github.com/hupe1980/closestpoint/index"
)

var (
	// ErrNilTarget is returned when a batch contains a nil target.
	ErrNilTarget = errors.New("target must not be nil")

	// ErrPointNotFound is wrapped by PointIndex.Delete when a PointID does not
	// refer to a live point.
	ErrPointNotFound = index.ErrPointNotFound
)
