package selection

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Selector learns per-feature weights with Search and applies them to new
// data. It follows the usual fit/transform convention: Fit runs the search
// and freezes its result as feature importances, Transform projects a matrix
// onto the scaled, retained feature subspace.
//
// A Selector is not safe for concurrent use.
type Selector struct {
	config Config
	logger zerolog.Logger

	fitted      bool
	importances []float64
	trace       []float64
	evaluations int
	reduction   float64
}

// NewSelector creates a selector with the given configuration.
func NewSelector(cfg Config) *Selector {
	return &Selector{
		config: cfg,
		logger: log.With().Str("component", "selector").Logger(),
	}
}

// Fit runs the local search over X and y and stores the resulting weights as
// feature importances, along with the fitness trace, the evaluation count and
// the achieved reduction rate. On error any previously fitted state is left
// untouched.
func (s *Selector) Fit(X [][]float64, y []string) error {
	result, err := Search(X, y, s.config)
	if err != nil {
		return fmt.Errorf("fit failed: %w", err)
	}

	below := 0
	for _, w := range result.Weights {
		if w <= s.config.Threshold {
			below++
		}
	}

	s.importances = result.Weights
	s.trace = result.Trace
	s.evaluations = result.Evaluations
	s.reduction = float64(below) / float64(len(result.Weights))
	s.fitted = true

	s.logger.Info().
		Int("features", len(result.Weights)).
		Int("kept", len(result.Weights)-below).
		Float64("reduction", s.reduction).
		Int("evaluations", result.Evaluations).
		Msg("selector fitted")

	return nil
}

// Transform scales every column of X by the learned importances and keeps
// only the columns whose importance strictly exceeds the threshold, the same
// comparison used during fitness evaluation. If every importance is at or
// below the threshold the result has rows of length zero. Transform does not
// mutate X and is idempotent for a fitted selector.
func (s *Selector) Transform(X [][]float64) ([][]float64, error) {
	if !s.fitted {
		return nil, NewSelectionError("transform", ErrNotFitted, "")
	}

	n := len(s.importances)
	for i, row := range X {
		if len(row) != n {
			return nil, NewSelectionError("transform", ErrRaggedMatrix,
				fmt.Sprintf("row %d has %d columns, expected %d", i, len(row), n))
		}
	}

	kept := keptColumns(s.importances, s.config.Threshold)
	return projectRows(X, s.importances, kept), nil
}

// FitTransform fits the selector on X and y and returns the transformed X.
func (s *Selector) FitTransform(X [][]float64, y []string) ([][]float64, error) {
	if err := s.Fit(X, y); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// Fitted reports whether Fit has completed successfully.
func (s *Selector) Fitted() bool { return s.fitted }

// Importances returns a copy of the learned feature importances.
func (s *Selector) Importances() []float64 {
	out := make([]float64, len(s.importances))
	copy(out, s.importances)
	return out
}

// Trace returns a copy of the per-sweep fitness trace of the last fit.
func (s *Selector) Trace() []float64 {
	out := make([]float64, len(s.trace))
	copy(out, s.trace)
	return out
}

// Evaluations returns the number of fitness evaluations spent by the last fit.
func (s *Selector) Evaluations() int { return s.evaluations }

// Reduction returns the fraction of importances at or below the threshold.
func (s *Selector) Reduction() float64 { return s.reduction }
