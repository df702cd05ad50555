package knn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// FlatIndex provides exact nearest neighbor search over a fixed set of row
// vectors. It is built once per query batch and never mutated; callers that
// rebuild their search space must build a fresh index.
type FlatIndex struct {
	rows [][]float64
	dims int
}

// New builds an index over rows. All rows must share the same length. Rows of
// length zero are allowed: every pair of points is then coincident and
// queries degenerate to index order.
func New(rows [][]float64) (*FlatIndex, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("flat index needs at least 2 rows, got %d", len(rows))
	}

	dims := len(rows[0])
	for i, row := range rows {
		if len(row) != dims {
			return nil, fmt.Errorf("row dimension mismatch at %d: expected %d, got %d", i, dims, len(row))
		}
	}

	return &FlatIndex{rows: rows, dims: dims}, nil
}

// Len returns the number of indexed rows.
func (idx *FlatIndex) Len() int { return len(idx.rows) }

// Dims returns the dimensionality of the indexed rows.
func (idx *FlatIndex) Dims() int { return idx.dims }

// Nearest2 returns the indices of the two rows closest to query in Euclidean
// distance, nearest first. Distance ties are broken by row order (lower index
// wins); the ordering is implementation-defined but stable for a given index
// build. A query drawn from the indexed rows matches itself at distance 0.
func (idx *FlatIndex) Nearest2(query []float64) (int, int, error) {
	if len(query) != idx.dims {
		return 0, 0, fmt.Errorf("query dimension mismatch: expected %d, got %d", idx.dims, len(query))
	}

	first, second := -1, -1
	d1, d2 := math.Inf(1), math.Inf(1)
	for j, row := range idx.rows {
		d := floats.Distance(query, row, 2)
		switch {
		case d < d1:
			second, d2 = first, d1
			first, d1 = j, d
		case d < d2:
			second, d2 = j, d
		}
	}

	return first, second, nil
}
