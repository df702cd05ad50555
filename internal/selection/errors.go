package selection

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMatrix is returned when the feature matrix has no rows or no columns
	ErrEmptyMatrix = errors.New("empty feature matrix")

	// ErrRaggedMatrix is returned when feature matrix rows differ in length
	ErrRaggedMatrix = errors.New("ragged feature matrix")

	// ErrLabelMismatch is returned when label and sample counts differ
	ErrLabelMismatch = errors.New("label count does not match sample count")

	// ErrTooFewSamples is returned when fewer than two samples are provided
	ErrTooFewSamples = errors.New("at least two samples required")

	// ErrInvalidSigma is returned when the mutation deviation is not positive
	ErrInvalidSigma = errors.New("sigma must be positive")

	// ErrInvalidBudget is returned when the evaluation budget is not positive
	ErrInvalidBudget = errors.New("max evaluations must be positive")

	// ErrNotFitted is returned when Transform is called before Fit
	ErrNotFitted = errors.New("selector has not been fitted")
)

// SelectionError represents a selection-specific error with context
type SelectionError struct {
	Op      string // Operation that failed
	Err     error  // Underlying error
	Context string // Additional context
}

func (e *SelectionError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Context)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}

// NewSelectionError creates a new SelectionError
func NewSelectionError(op string, err error, context string) error {
	return &SelectionError{
		Op:      op,
		Err:     err,
		Context: context,
	}
}

// IsNotFitted checks if an error is a "not fitted" error
func IsNotFitted(err error) bool {
	return errors.Is(err, ErrNotFitted)
}
