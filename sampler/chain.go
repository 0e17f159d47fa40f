package sampler

import (
	"github.com/pkg/errors"

	"github.com/CraigKelly/bayesreg/buffer"
)

// ProgressFunc is called periodically while a chain runs with the index of
// the iteration about to start and the total iteration count.
type ProgressFunc func(iter int, total int)

// Chain drives a Sampler for a fixed number of iterations and records every
// draw.
type Chain struct {
	Sampler          Sampler
	Config           Config
	State            *State
	BetaDraws        *buffer.Trace
	GammaDraws       *buffer.Trace
	SigmaSqDraws     *buffer.Trace
	Progress         ProgressFunc
	ProgressInterval int
	Iterations       int
}

// NewChain returns a chain ready to go. Histories are preallocated to the
// full iteration count.
func NewChain(samp Sampler, cfg Config) (*Chain, error) {
	if samp == nil {
		return nil, errors.New("No sampler supplied")
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	total := cfg.Total()
	p := samp.Dim()

	beta, err := buffer.NewTrace(total, p)
	if err != nil {
		return nil, errors.Wrap(err, "Could not allocate beta history")
	}
	gamma, err := buffer.NewTrace(total, 1)
	if err != nil {
		return nil, errors.Wrap(err, "Could not allocate gamma history")
	}
	sigmaSq, err := buffer.NewTrace(total, 1)
	if err != nil {
		return nil, errors.Wrap(err, "Could not allocate sigma^2 history")
	}

	ch := &Chain{
		Sampler:          samp,
		Config:           cfg,
		State:            NewState(p),
		BetaDraws:        beta,
		GammaDraws:       gamma,
		SigmaSqDraws:     sigmaSq,
		ProgressInterval: DefaultProgressInterval,
	}
	return ch, nil
}

// Run takes every remaining iteration. A failed draw stops the chain and is
// returned as a *DrawError carrying the iteration index.
func (c *Chain) Run() error {
	total := c.Config.Total()

	for i := c.Iterations; i < total; i++ {
		if c.Progress != nil && c.ProgressInterval > 0 && i%c.ProgressInterval == 0 {
			c.Progress(i, total)
		}

		if err := c.oneSample(i); err != nil {
			return err
		}
	}

	return nil
}

// oneSample takes a single sweep and records it
func (c *Chain) oneSample(i int) error {
	err := c.Sampler.Sample(c.State)
	if err != nil {
		var de *DrawError
		if errors.As(err, &de) {
			de.Iter = i
			return de
		}
		return errors.Wrapf(err, "Error taking sample at iteration %d", i)
	}

	if err := c.BetaDraws.Add(c.State.Beta...); err != nil {
		return errors.Wrapf(err, "Could not record beta at iteration %d", i)
	}
	if err := c.GammaDraws.Add(c.State.Gamma); err != nil {
		return errors.Wrapf(err, "Could not record gamma at iteration %d", i)
	}
	if err := c.SigmaSqDraws.Add(c.State.SigmaSq); err != nil {
		return errors.Wrapf(err, "Could not record sigma^2 at iteration %d", i)
	}

	c.Iterations++
	return nil
}

// Draws are the retained (post burn-in, thinned) draws of a chain
type Draws struct {
	Beta    *buffer.Trace
	Gamma   *buffer.Trace
	SigmaSq *buffer.Trace
	BurnIn  int
	Thin    int
}

// Len is the number of retained draws
func (d *Draws) Len() int {
	return d.Gamma.Len()
}

// Iteration maps retained index k back to the raw chain iteration
func (d *Draws) Iteration(k int) int {
	return d.BurnIn + k*d.Thin
}

// Retained drops burn-in and applies thinning. The chain must have finished.
func (c *Chain) Retained() (*Draws, error) {
	cfg := c.Config
	if c.Iterations < cfg.Total() {
		return nil, errors.Errorf("Chain has run %d of %d iterations", c.Iterations, cfg.Total())
	}

	beta, err := c.BetaDraws.Thin(cfg.BurnIn, cfg.Thin, cfg.Samples)
	if err != nil {
		return nil, errors.Wrap(err, "Could not thin beta draws")
	}
	gamma, err := c.GammaDraws.Thin(cfg.BurnIn, cfg.Thin, cfg.Samples)
	if err != nil {
		return nil, errors.Wrap(err, "Could not thin gamma draws")
	}
	sigmaSq, err := c.SigmaSqDraws.Thin(cfg.BurnIn, cfg.Thin, cfg.Samples)
	if err != nil {
		return nil, errors.Wrap(err, "Could not thin sigma^2 draws")
	}

	d := &Draws{
		Beta:    beta,
		Gamma:   gamma,
		SigmaSq: sigmaSq,
		BurnIn:  cfg.BurnIn,
		Thin:    cfg.Thin,
	}
	return d, nil
}
