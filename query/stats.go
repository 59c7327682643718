package query

import "fmt"

// Algorithm identifies how a query was answered.
type Algorithm int

const (
	// AlgorithmNone means the query returned before touching the index.
	AlgorithmNone Algorithm = iota
	// AlgorithmBruteForce is a linear scan of every point.
	AlgorithmBruteForce
	// AlgorithmOptimized is the hierarchical branch-and-bound search.
	AlgorithmOptimized
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmBruteForce:
		return "brute_force"
	case AlgorithmOptimized:
		return "optimized"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// Stats describes the work done by the most recent query of an Engine.
type Stats struct {
	Algorithm Algorithm

	// PointsEvaluated counts distance computations against indexed points.
	PointsEvaluated int

	// InitialCells is the number of cells the hierarchical search started from.
	InitialCells int

	// CellsEnqueued counts cells pushed onto the priority queue.
	CellsEnqueued int

	// CellsProcessed counts cells whose points were evaluated directly.
	CellsProcessed int
}
