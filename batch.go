package closestpoint

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/closestpoint/distance"
	"github.com/hupe1980/closestpoint/index"
	"github.com/hupe1980/closestpoint/query"
)

// FindClosestPointsBatch runs one closest point query per target in parallel
// and returns the results in target order. configure, if not nil, adjusts the
// options of every query.
//
// Each worker owns a query over a snapshot of idx taken when the batch starts.
func FindClosestPointsBatch[T any](
	ctx context.Context,
	idx *index.PointIndex[T],
	targets []ClosestTarget,
	configure func(*ClosestOptions),
	optFns ...Option,
) ([][]ClosestResult[T], error) {
	opts := NewClosestOptions()
	if configure != nil {
		configure(&opts)
	}

	o := applyOptions(optFns)
	return runBatch(ctx, targets, o, func() *runner[distance.MinDistance, T] {
		r := newRunner[distance.MinDistance](idx, KindClosest, o)
		return &r
	}, opts.Options)
}

// FindFurthestPointsBatch is FindClosestPointsBatch for furthest point queries.
func FindFurthestPointsBatch[T any](
	ctx context.Context,
	idx *index.PointIndex[T],
	targets []FurthestTarget,
	configure func(*FurthestOptions),
	optFns ...Option,
) ([][]FurthestResult[T], error) {
	opts := NewFurthestOptions()
	if configure != nil {
		configure(&opts)
	}

	o := applyOptions(optFns)
	return runBatch(ctx, targets, o, func() *runner[distance.MaxDistance, T] {
		r := newRunner[distance.MaxDistance](idx, KindFurthest, o)
		return &r
	}, opts.Options)
}

func runBatch[D distance.Distance[D], T any](
	ctx context.Context,
	targets []query.Target[D],
	o options,
	spawn func() *runner[D, T],
	opts query.Options[D],
) ([][]query.Result[D, T], error) {
	for i, tgt := range targets {
		if tgt == nil {
			return nil, fmt.Errorf("target %d: %w", i, ErrNilTarget)
		}
	}

	workers := min(o.parallelism, len(targets))
	if workers == 0 {
		return [][]query.Result[D, T]{}, nil
	}

	// Engines are not safe for concurrent use; the channel hands each
	// running task exclusive access to one.
	runners := make(chan *runner[D, T], workers)
	for i := 0; i < workers; i++ {
		runners <- spawn()
	}

	results := make([][]query.Result[D, T], len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, tgt := range targets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := o.resources.Acquire(gctx); err != nil {
				return err
			}
			defer o.resources.Release()

			r := <-runners
			defer func() { runners <- r }()

			results[i] = r.findAll(gctx, tgt, opts)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		// Cancellation may have stopped scheduling before any task saw it.
		err = ctx.Err()
	}
	o.logger.LogBatch(ctx, len(targets), workers, err)
	if err != nil {
		return nil, fmt.Errorf("batch query: %w", err)
	}
	return results, nil
}
