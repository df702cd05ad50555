package selection

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pcarver/featweight/internal/monitor"
)

// stagnationFactor scales the per-feature stagnation bound: the search stops
// after stagnationFactor * n_features consecutive non-improving evaluations.
const stagnationFactor = 20

// Config holds search configuration
type Config struct {
	Threshold      float64 // Weight at or below this is treated as discarded
	MaxEvaluations int     // Cap on fitness evaluations
	Sigma          float64 // Standard deviation of the Gaussian mutation
	Seed           int64   // Seed for the search's private random stream
}

// DefaultConfig returns default search configuration
func DefaultConfig() Config {
	return Config{
		Threshold:      0.2,
		MaxEvaluations: 15000,
		Sigma:          0.3,
		Seed:           1,
	}
}

// Result holds the outcome of a completed search
type Result struct {
	Weights     []float64 // Final weight vector, one entry per feature in [0,1]
	Trace       []float64 // Fitness recorded at the start of each sweep
	Evaluations int       // Number of fitness evaluations performed
}

// Search runs a first-improvement hill climb over per-feature weights.
//
// Weights are initialized uniformly at random in [0,1]. Each sweep visits the
// features in a freshly drawn random permutation and proposes a single-entry
// Gaussian perturbation, clipped back into [0,1]. The first strictly
// improving candidate is adopted and the sweep abandoned; non-improving
// proposals are reverted. The search stops once the evaluation counter passes
// MaxEvaluations or after stagnationFactor*n consecutive non-improving
// evaluations.
//
// The budget check is strictly greater than MaxEvaluations, so a run may
// perform one evaluation beyond the configured cap before stopping. This
// matches the historical behavior and is kept for evaluation-count
// reproducibility.
//
// All randomness comes from a single stream seeded with cfg.Seed, consumed in
// a fixed order (initial weights, then one permutation per sweep, then one
// Gaussian draw per proposal), so repeated runs with identical inputs are
// bit-for-bit identical.
func Search(X [][]float64, y []string, cfg Config) (Result, error) {
	if err := validateInputs(X, y, cfg); err != nil {
		monitor.SearchRuns.WithLabelValues("invalid_input").Inc()
		return Result{}, err
	}

	n := len(X[0])
	stagnation := stagnationFactor * n
	rng := rand.New(rand.NewSource(cfg.Seed))
	logger := log.With().Str("component", "search").Logger()
	start := time.Now()

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = rng.Float64()
	}

	fitness, err := Evaluate(weights, X, y, cfg.Threshold)
	if err != nil {
		monitor.SearchRuns.WithLabelValues("error").Inc()
		return Result{}, err
	}

	logger.Debug().
		Int("features", n).
		Int("samples", len(X)).
		Float64("initial_fitness", fitness).
		Msg("starting local search")

	trace := make([]float64, 0, 64)
	evaluations := 0
	noImprovement := 0

sweep:
	for evaluations < cfg.MaxEvaluations {
		trace = append(trace, fitness)
		for _, k := range rng.Perm(n) {
			evaluations++
			noImprovement++

			prev := weights[k]
			weights[k] = clip(prev+rng.NormFloat64()*cfg.Sigma, 0, 1)

			candidate, err := Evaluate(weights, X, y, cfg.Threshold)
			if err != nil {
				monitor.SearchRuns.WithLabelValues("error").Inc()
				return Result{}, err
			}

			if candidate > fitness {
				// First improvement: keep the move and start a new sweep.
				fitness = candidate
				noImprovement = 0
				monitor.ImprovementsAccepted.Inc()
				continue sweep
			}

			weights[k] = prev
			if evaluations > cfg.MaxEvaluations || noImprovement >= stagnation {
				break sweep
			}
		}
	}

	monitor.BestFitness.Set(fitness)
	monitor.SearchDuration.Observe(time.Since(start).Seconds())
	monitor.SearchRuns.WithLabelValues("success").Inc()

	logger.Debug().
		Float64("fitness", fitness).
		Int("evaluations", evaluations).
		Int("sweeps", len(trace)).
		Dur("elapsed", time.Since(start)).
		Msg("local search finished")

	return Result{
		Weights:     weights,
		Trace:       positiveEntries(trace),
		Evaluations: evaluations,
	}, nil
}

// validateInputs rejects malformed datasets and configuration before any
// search iteration begins.
func validateInputs(X [][]float64, y []string, cfg Config) error {
	if len(X) == 0 || len(X[0]) == 0 {
		return NewSelectionError("search", ErrEmptyMatrix, "")
	}
	if len(X) < 2 {
		return NewSelectionError("search", ErrTooFewSamples,
			fmt.Sprintf("got %d", len(X)))
	}

	n := len(X[0])
	for i, row := range X {
		if len(row) != n {
			return NewSelectionError("search", ErrRaggedMatrix,
				fmt.Sprintf("row %d has %d columns, expected %d", i, len(row), n))
		}
	}

	if len(y) != len(X) {
		return NewSelectionError("search", ErrLabelMismatch,
			fmt.Sprintf("%d labels for %d samples", len(y), len(X)))
	}
	if cfg.Sigma <= 0 {
		return NewSelectionError("search", ErrInvalidSigma,
			fmt.Sprintf("got %v", cfg.Sigma))
	}
	if cfg.MaxEvaluations <= 0 {
		return NewSelectionError("search", ErrInvalidBudget,
			fmt.Sprintf("got %d", cfg.MaxEvaluations))
	}

	return nil
}

func clip(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// positiveEntries filters the recorded trace down to strictly positive
// values. A sweep recorded at exactly zero fitness (zero accuracy and zero
// reduction) is dropped, preserving the reference semantics.
func positiveEntries(trace []float64) []float64 {
	out := make([]float64, 0, len(trace))
	for _, v := range trace {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}
