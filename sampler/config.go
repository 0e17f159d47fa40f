package sampler

import (
	"github.com/pkg/errors"
)

// DefaultProgressInterval is how often (in iterations) progress is reported
const DefaultProgressInterval = 5000

// Config controls the length of a chain and what is kept
type Config struct {
	Samples int // nos: retained draws
	Thin    int // nod: keep every Thin-th draw after burn-in
	BurnIn  int // nob: draws discarded at the start
}

// Total is the number of iterations a chain runs
func (c Config) Total() int {
	return c.Samples*c.Thin + c.BurnIn
}

// Check returns an error naming the first invalid field
func (c Config) Check() error {
	if c.Samples < 1 {
		return errors.Wrapf(ErrInvalidConfig, "nos (retained samples) must be a positive integer, got %d", c.Samples)
	}
	if c.Thin < 1 {
		return errors.Wrapf(ErrInvalidConfig, "nod (thinning interval) must be a positive integer, got %d", c.Thin)
	}
	if c.BurnIn < 1 {
		return errors.Wrapf(ErrInvalidConfig, "nob (burn-in) must be a positive integer, got %d", c.BurnIn)
	}
	return nil
}
