package query

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/golang/geo/s2"
	"github.com/hupe1980/closestpoint/chordangle"
	"github.com/hupe1980/closestpoint/distance"
	"github.com/hupe1980/closestpoint/index"
	"github.com/hupe1980/closestpoint/internal/queue"
)

// minPointsToEnqueue is the number of points a cell must contain before it is
// queued rather than processed immediately.
const minPointsToEnqueue = 13

// maxCoveringCells bounds the coverings of the region and the search disc.
const maxCoveringCells = 4

// cellEntry is a queued cell with a lower bound on its distance to the target.
type cellEntry[D distance.Distance[D]] struct {
	distance D
	id       s2.CellID
}

// EngineOption configures an Engine.
type EngineOption func(o *engineOptions)

type engineOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for query diagnostics.
// Pass nil to disable logging.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// Engine finds the points of a PointIndex that are closest to a Target,
// where "closest" is defined by the distance type D.
type Engine[D distance.Distance[D], T any] struct {
	index  *index.PointIndex[T]
	iter   *index.Iterator[T]
	logger *slog.Logger

	// indexCovering holds at most six cells bounding every indexed point.
	// It is built lazily and dropped by ReInit.
	indexCovering []s2.CellID
	coveringValid bool

	// Per-query state, reset at the start of every query.
	target                      Target[D]
	opts                        *Options[D]
	distanceLimit               D
	useConservativeCellDistance bool
	resultSingleton             Result[D, T]
	resultVector                []Result[D, T]
	resultSet                   *queue.PriorityQueue[Result[D, T]]
	cellQueue                   *queue.PriorityQueue[cellEntry[D]]
	stats                       Stats

	// Scratch buffers reused across queries.
	regionCovering      s2.CellUnion
	maxDistanceCovering s2.CellUnion
	initialCells        s2.CellUnion
	tmpEntries          [minPointsToEnqueue - 1]*index.Entry[T]
}

// New creates an Engine over idx.
func New[D distance.Distance[D], T any](idx *index.PointIndex[T], optFns ...EngineOption) *Engine[D, T] {
	opts := engineOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.DiscardHandler)
	}

	e := &Engine[D, T]{
		logger: opts.logger,
		// Max-heap: the worst kept result sits at the top.
		resultSet: queue.New(func(a, b Result[D, T]) bool { return b.Less(a) }, 0),
		cellQueue: queue.New(func(a, b cellEntry[D]) bool { return a.distance.Less(b.distance) }, 16),
	}
	e.Init(idx)
	return e
}

// Init binds the engine to idx.
func (e *Engine[D, T]) Init(idx *index.PointIndex[T]) {
	e.index = idx
	e.ReInit()
}

// ReInit drops everything the engine derived from the index. It must be
// called after the index is modified, otherwise queries keep seeing the index
// as it was at the last Init or ReInit.
func (e *Engine[D, T]) ReInit() {
	e.iter = e.index.Iterator()
	e.indexCovering = e.indexCovering[:0]
	e.coveringValid = false
}

// Index returns the index the engine queries.
func (e *Engine[D, T]) Index() *index.PointIndex[T] { return e.index }

// Stats returns the counters of the most recent query.
func (e *Engine[D, T]) Stats() Stats { return e.stats }

// FindClosestPoints returns the points that satisfy opts, ordered by distance
// and then by PointID.
func (e *Engine[D, T]) FindClosestPoints(target Target[D], opts Options[D]) []Result[D, T] {
	e.findClosestPointsInternal(target, &opts)
	defer e.finish()

	switch opts.MaxResults {
	case 1:
		if e.resultSingleton.IsEmpty() {
			return nil
		}
		return []Result[D, T]{e.resultSingleton}
	case MaxMaxResults:
		slices.SortFunc(e.resultVector, compareResults[D, T])
		results := make([]Result[D, T], 0, len(e.resultVector))
		for i, r := range e.resultVector {
			if i > 0 && r.Equal(e.resultVector[i-1]) {
				continue
			}
			results = append(results, r)
		}
		return results
	default:
		// The heap pops the worst result first.
		results := make([]Result[D, T], e.resultSet.Len())
		for i := len(results) - 1; i >= 0; i-- {
			results[i], _ = e.resultSet.PopItem()
		}
		return results
	}
}

// FindClosestPoint returns the single best point, or an empty Result if no
// point satisfies opts. opts.MaxResults must be 1.
func (e *Engine[D, T]) FindClosestPoint(target Target[D], opts Options[D]) Result[D, T] {
	if opts.MaxResults != 1 {
		panic(fmt.Sprintf("query: FindClosestPoint requires MaxResults == 1, got %d", opts.MaxResults))
	}
	e.findClosestPointsInternal(target, &opts)
	defer e.finish()
	return e.resultSingleton
}

func (e *Engine[D, T]) findClosestPointsInternal(target Target[D], opts *Options[D]) {
	if opts.MaxResults < 1 {
		panic(fmt.Sprintf("query: MaxResults must be at least 1, got %d (use NewOptions)", opts.MaxResults))
	}
	if target.MaxBruteForceIndexSize() < 0 {
		panic("query: target reported a negative brute force index size")
	}

	var d D
	e.target = target
	e.opts = opts
	e.stats = Stats{}
	e.distanceLimit = opts.MaxDistance
	e.resultSingleton = emptyResult[D, T]()
	e.resultVector = e.resultVector[:0]
	e.resultSet.Reset()
	e.cellQueue.Reset()

	if e.distanceLimit == d.Zero() {
		return
	}

	if opts.MaxResults == MaxMaxResults && opts.MaxDistance == d.Infinity() && opts.Region == nil {
		e.logger.Warn("returning all points (max results, max distance and region not set)",
			"points", e.iter.Len(),
		)
	}

	targetUsesMaxError := opts.MaxError != chordangle.Zero && target.SetMaxError(opts.MaxError)

	// Cell bounds are only reduced when the reduction can change the outcome.
	e.useConservativeCellDistance = targetUsesMaxError &&
		(e.distanceLimit == d.Infinity() || d.Zero().Less(e.distanceLimit.Sub(opts.MaxError)))

	// Each point is visited at most once, so no result can be duplicated
	// except by the speculative seeding in initQueue, which only happens when
	// a single result is kept.
	if opts.UseBruteForce || e.iter.Len() <= target.MaxBruteForceIndexSize() {
		e.stats.Algorithm = AlgorithmBruteForce
		e.findClosestPointsBruteForce()
	} else {
		e.stats.Algorithm = AlgorithmOptimized
		e.findClosestPointsOptimized()
	}
}

// finish releases references to caller-owned values.
func (e *Engine[D, T]) finish() {
	e.target = nil
	e.opts = nil
	clear(e.resultVector)
	e.resultVector = e.resultVector[:0]
	e.resultSet.Reset()
	e.cellQueue.Reset()
	clear(e.tmpEntries[:])
}

func (e *Engine[D, T]) findClosestPointsBruteForce() {
	for e.iter.Begin(); !e.iter.Done(); e.iter.Next() {
		e.maybeAddResult(e.iter.Entry())
	}
}

func (e *Engine[D, T]) findClosestPointsOptimized() {
	if e.iter.Len() == 0 {
		return
	}
	e.initQueue()
	for e.cellQueue.Len() > 0 {
		// Pop before pushing any of the children.
		entry, _ := e.cellQueue.PopItem()
		if !entry.distance.Less(e.distanceLimit) {
			// Every remaining cell is at least this far away.
			e.cellQueue.Reset()
			break
		}
		// The cell has too many points, so process its children. Each child
		// is either processed directly or queued again; seeking is skipped
		// when the iterator is already in place.
		child := entry.id.ChildBegin()
		seek := true
		for i := 0; i < 4; i++ {
			seek = e.processOrEnqueue(child, seek)
			child = child.Next()
		}
	}
}

func (e *Engine[D, T]) initQueue() {
	var d D

	// Start from a small disc around the target where possible, rather than
	// the entire index.
	cb := e.target.CapBound()
	if cb.IsEmpty() {
		return
	}

	if e.opts.MaxResults == 1 {
		// The points adjacent to the cap center in cell order give an upper
		// bound on the search radius. This is only safe with a single result,
		// since these points may be visited again later.
		e.iter.Seek(s2.CellFromPoint(cb.Center()).ID())
		if !e.iter.Done() {
			e.maybeAddResult(e.iter.Entry())
		}
		if e.iter.Prev() {
			e.maybeAddResult(e.iter.Entry())
		}
		if e.distanceLimit == d.Zero() {
			return
		}
	}

	if !e.coveringValid {
		e.initCovering()
	}
	initialCells := s2.CellUnion(e.indexCovering)

	if e.opts.Region != nil {
		coverer := &s2.RegionCoverer{MaxLevel: s2.MaxLevel, LevelMod: 1, MaxCells: maxCoveringCells}
		e.regionCovering = coverer.Covering(e.opts.Region)
		e.initialCells = s2.CellUnionFromIntersection(initialCells, e.regionCovering)
		initialCells = e.initialCells
	}

	if e.distanceLimit.Less(d.Infinity()) {
		coverer := &s2.RegionCoverer{MaxLevel: s2.MaxLevel, LevelMod: 1, MaxCells: maxCoveringCells}
		radius := capRadius(cb).Add(e.distanceLimit.ChordAngleBound())
		searchCap := s2.CapFromCenterChordAngle(cb.Center(), radius.ToS1())
		e.maxDistanceCovering = coverer.FastCovering(searchCap)
		e.initialCells = s2.CellUnionFromIntersection(initialCells, e.maxDistanceCovering)
		initialCells = e.initialCells
	}

	e.stats.InitialCells = len(initialCells)
	e.iter.Begin()
	for i := 0; i < len(initialCells) && !e.iter.Done(); i++ {
		id := initialCells[i]
		e.processOrEnqueue(id, id.RangeMin() > e.iter.CellID())
	}
}

// processOrEnqueue either evaluates the points of cell id or queues the cell,
// depending on how many points it holds. seek reports whether the iterator
// must be repositioned first. It returns true if the iterator was left inside
// the cell, meaning the next sibling must seek.
func (e *Engine[D, T]) processOrEnqueue(id s2.CellID, seek bool) bool {
	if seek {
		e.iter.Seek(id.RangeMin())
	}

	if id.IsLeaf() {
		// Leaf cells can't be subdivided.
		for ; !e.iter.Done() && e.iter.CellID() == id; e.iter.Next() {
			e.maybeAddResult(e.iter.Entry())
		}
		e.stats.CellsProcessed++
		return false
	}

	last := id.RangeMax()
	numPoints := 0
	for ; !e.iter.Done() && e.iter.CellID() <= last; e.iter.Next() {
		if numPoints == minPointsToEnqueue-1 {
			// Too many points (including this one), so queue the cell.
			// The region test comes second because it may be expensive.
			cell := s2.CellFromCellID(id)
			dist, ok := e.target.UpdateDistanceToCell(cell, e.distanceLimit)
			if ok && (e.opts.Region == nil || e.opts.Region.IntersectsCell(cell)) {
				if e.useConservativeCellDistance {
					// Keep dist a lower bound despite the target's allowance.
					dist = dist.Sub(e.opts.MaxError)
				}
				e.cellQueue.PushItem(cellEntry[D]{distance: dist, id: id})
				e.stats.CellsEnqueued++
			}
			return true
		}
		e.tmpEntries[numPoints] = e.iter.Entry()
		numPoints++
	}

	e.stats.CellsProcessed++
	for i := 0; i < numPoints; i++ {
		e.maybeAddResult(e.tmpEntries[i])
	}
	return false
}

func (e *Engine[D, T]) maybeAddResult(entry *index.Entry[T]) {
	e.stats.PointsEvaluated++
	dist, ok := e.target.UpdateDistanceToPoint(entry.Point(), e.distanceLimit)
	if !ok {
		return
	}

	// The region test comes after the distance so that rejected points never
	// tighten the distance limit.
	if e.opts.Region != nil && !e.opts.Region.ContainsPoint(entry.Point()) {
		return
	}

	result := Result[D, T]{distance: dist, entry: entry}
	switch e.opts.MaxResults {
	case 1:
		// With an inclusive limit an equal distance reaches this point; only
		// a smaller PointID may then replace the current result.
		if !e.resultSingleton.IsEmpty() && !result.Less(e.resultSingleton) {
			return
		}
		e.resultSingleton = result
		e.distanceLimit = e.limitFrom(dist)
	case MaxMaxResults:
		// Sorted and deduplicated when the query finishes.
		e.resultVector = append(e.resultVector, result)
	default:
		// Dropped unless it orders before the worst kept result.
		e.resultSet.PushItemBounded(result, e.opts.MaxResults)
		if e.resultSet.Len() >= e.opts.MaxResults {
			worst, _ := e.resultSet.TopItem()
			e.distanceLimit = e.limitFrom(worst.distance)
		}
	}
}

// limitFrom returns the distance limit implied by the worst kept result.
// Without a MaxError the limit is inclusive, so that points tied with the
// worst result are still visited and ties resolve to the smallest PointID.
func (e *Engine[D, T]) limitFrom(worst D) D {
	if e.opts.MaxError == chordangle.Zero {
		return worst.Successor()
	}
	return worst.Sub(e.opts.MaxError)
}

// capRadius returns the exact chord radius of a non-empty cap.
func capRadius(c s2.Cap) chordangle.ChordAngle {
	return chordangle.FromLength2(2 * c.Height())
}
