package selection

import (
	"math"
	"testing"
)

var (
	xorX = [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	xorY = []string{"a", "a", "b", "b"}
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		want    float64
	}{
		{
			// Both features kept, no reduction. The 1-NN predictions on the
			// unscaled square get the two tie-broken rows right and the two
			// diagonal rows wrong.
			name:    "full weights",
			weights: []float64{1, 1},
			want:    0.25,
		},
		{
			// Second feature discarded: the data collapses to one dimension
			// where duplicates predict each other perfectly.
			name:    "one feature discarded",
			weights: []float64{1, 0.1},
			want:    0.75,
		},
		{
			// Weight exactly at the threshold counts as discarded.
			name:    "boundary weight discarded",
			weights: []float64{0.2, 1},
			want:    0.5,
		},
		{
			// Degenerate case: no column survives, every point coincides and
			// predictions fall back to index order.
			name:    "zero kept columns",
			weights: []float64{0.1, 0.1},
			want:    0.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.weights, xorX, xorY, 0.2)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateDoesNotMutateInputs(t *testing.T) {
	X := [][]float64{{1, 2}, {3, 4}}
	y := []string{"a", "b"}
	weights := []float64{0.5, 0.9}

	if _, err := Evaluate(weights, X, y, 0.2); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if X[0][0] != 1 || X[1][1] != 4 {
		t.Errorf("Evaluate() mutated X: %v", X)
	}
	if weights[0] != 0.5 || weights[1] != 0.9 {
		t.Errorf("Evaluate() mutated weights: %v", weights)
	}
}

func TestEvaluateBounds(t *testing.T) {
	weightSets := [][]float64{
		{0, 0},
		{1, 1},
		{0.2, 0.2},
		{0.9, 0.05},
	}

	for _, w := range weightSets {
		got, err := Evaluate(w, xorX, xorY, 0.2)
		if err != nil {
			t.Fatalf("Evaluate(%v) error = %v", w, err)
		}
		if got < 0 || got > 1 {
			t.Errorf("Evaluate(%v) = %v, outside [0,1]", w, got)
		}
	}
}
