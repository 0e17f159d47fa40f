package sampler

// A Sampler advances the chain state by one full sweep of conditional draws.
type Sampler interface {
	Dim() int
	Sample(st *State) error
}

// State is the current position of the chain
type State struct {
	Beta    []float64 // Regression coefficients (one per regressor)
	Gamma   float64   // Multiplicative scale on the fitted values
	SigmaSq float64   // Noise variance
}

// NewState returns the starting state for p regressors: gamma and sigma^2 are
// 1 and beta is zero (beta is always drawn before it is read).
func NewState(p int) *State {
	return &State{
		Beta:    make([]float64, p),
		Gamma:   1.0,
		SigmaSq: 1.0,
	}
}

