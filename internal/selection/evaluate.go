package selection

import (
	"github.com/viterin/vek"

	"github.com/pcarver/featweight/internal/knn"
	"github.com/pcarver/featweight/internal/monitor"
)

// Evaluate scores a weight vector against a labeled dataset. Every feature
// column of X is scaled by its weight, columns whose weight does not exceed
// threshold are dropped, and a fresh nearest-neighbor index is built over the
// remaining subspace. The score is the mean of leave-one-out 1-NN accuracy
// (each row predicted by its second-nearest neighbor, the nearest being the
// row itself) and the fraction of weights at or below threshold.
//
// The result lies in [0,1]. Evaluation is deterministic given its inputs;
// distance ties resolve in the index's stable row order. When no column
// survives the threshold all points coincide and the neighbor choice
// degenerates to row order, which is reported as a valid (if uninformative)
// score rather than an error.
func Evaluate(weights []float64, X [][]float64, y []string, threshold float64) (float64, error) {
	kept := keptColumns(weights, threshold)
	rows := projectRows(X, weights, kept)

	idx, err := knn.New(rows)
	if err != nil {
		return 0, NewSelectionError("evaluate", err, "building index")
	}

	correct := 0
	for i, row := range rows {
		_, second, err := idx.Nearest2(row)
		if err != nil {
			return 0, NewSelectionError("evaluate", err, "querying index")
		}
		if y[second] == y[i] {
			correct++
		}
	}

	accuracy := float64(correct) / float64(len(rows))
	reduction := float64(len(weights)-len(kept)) / float64(len(weights))

	monitor.FitnessEvaluations.Inc()
	return (accuracy + reduction) / 2, nil
}

// keptColumns returns the indices of columns whose weight strictly exceeds
// threshold. The same comparison governs training-time evaluation and
// inference-time projection.
func keptColumns(weights []float64, threshold float64) []int {
	kept := make([]int, 0, len(weights))
	for j, w := range weights {
		if w > threshold {
			kept = append(kept, j)
		}
	}
	return kept
}

// projectRows scales every row of X element-wise by weights and restricts it
// to the kept columns. X is not mutated.
func projectRows(X [][]float64, weights []float64, kept []int) [][]float64 {
	rows := make([][]float64, len(X))
	for i, row := range X {
		scaled := vek.Mul(row, weights)
		r := make([]float64, len(kept))
		for j, c := range kept {
			r[j] = scaled[c]
		}
		rows[i] = r
	}
	return rows
}
