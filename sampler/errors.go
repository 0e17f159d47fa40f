package sampler

import (
	"fmt"

	"github.com/pkg/errors"
)

// Numerical degeneracy. These are all fatal: the chain is deterministic, so
// retrying reproduces the same failure.
var (
	ErrSingularDesign    = errors.New("design matrix X'X is singular")
	ErrSingularPrecision = errors.New("beta precision matrix is not positive definite")
	ErrDegenerateFit     = errors.New("fitted values have zero sum of squares")
	ErrZeroChiSquare     = errors.New("chi-squared draw was zero")
)

// ErrInvalidConfig is the cause of all sampler configuration errors
var ErrInvalidConfig = errors.New("invalid sampler configuration")

// Step names one conditional draw in a sweep
type Step string

// The draws in a sweep, in the order they happen
const (
	StepBeta    Step = "beta"
	StepGamma   Step = "gamma"
	StepSigmaSq Step = "sigma_sq"
)

// DrawError reports which draw failed and at which iteration. Iter is -1 when
// the error did not come from a running chain.
type DrawError struct {
	Iter int
	Step Step
	Err  error
}

func (e *DrawError) Error() string {
	if e.Iter < 0 {
		return fmt.Sprintf("%s draw failed: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("iteration %d: %s draw failed: %v", e.Iter, e.Step, e.Err)
}

// Unwrap supports errors.Is / errors.As
func (e *DrawError) Unwrap() error {
	return e.Err
}

// Cause supports errors.Cause from pkg/errors
func (e *DrawError) Cause() error {
	return e.Err
}
