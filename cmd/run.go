package cmd

import (
	"os"

	"github.com/pkg/errors"

	"github.com/CraigKelly/bayesreg/model"
	"github.com/CraigKelly/bayesreg/sampler"
)

// loadData reads and joins the configured data files
func loadData(sp *startupParams) (*model.Dataset, error) {
	if err := sp.cfg.ValidateData(); err != nil {
		return nil, err
	}

	sp.log.Info("Reading data", "column", sp.cfg.Column)
	data, err := model.NewDatasetFromFiles(model.ReaderFor, sp.cfg.Data, sp.cfg.Column)
	if err != nil {
		return nil, err
	}

	n, p := data.Dims()
	sp.log.Info("Data loaded", "observations", n, "regressors", p)
	return data, nil
}

// RunSampler is the full pipeline: load data, run the chain, summarize and
// write results. Nothing is written unless every step succeeds.
func RunSampler(sp *startupParams) error {
	data, err := loadData(sp)
	if err != nil {
		return err
	}

	sum, draws, err := sampleData(sp, data)
	if err != nil {
		return err
	}

	for _, p := range sum.Params {
		sp.log.Info("Posterior", "param", p.Name, "10p", p.P10, "mean", p.Mean, "90p", p.P90)
	}
	sp.log.Info("Posterior", "posterior_probability", sum.PosteriorProbability)

	if err := sum.WriteFile(sp.cfg.Output); err != nil {
		return err
	}
	sp.log.Info("Results saved", "file", sp.cfg.Output)

	if len(sp.traceFile) > 0 {
		if err := writeTrace(sp.traceFile, draws); err != nil {
			return err
		}
		sp.log.Info("Retained draws saved", "file", sp.traceFile)
	}

	return nil
}

// sampleData runs one chain over data and summarizes the retained draws
func sampleData(sp *startupParams, data *model.Dataset) (*model.Summary, *sampler.Draws, error) {
	cfg := sp.cfg.Sampling()

	gen, err := sp.cfg.Generator()
	if err != nil {
		return nil, nil, err
	}
	defer gen.Stop()

	samp, err := sampler.NewGibbsRegression(gen, data)
	if err != nil {
		return nil, nil, err
	}

	ch, err := sampler.NewChain(samp, cfg)
	if err != nil {
		return nil, nil, err
	}

	mon := &monitor{log: sp.log}
	if len(sp.monitorAddr) > 0 {
		if err := mon.Start(sp.monitorAddr, cfg); err != nil {
			return nil, nil, err
		}
		defer mon.Stop()
	}

	ch.ProgressInterval = sp.cfg.ProgressInterval
	ch.Progress = func(iter int, total int) {
		sp.log.Info("Sampling", "iter", iter, "total", total)
		mon.Progress(iter, total)
	}

	sp.log.Info("Starting Gibbs sampler",
		"seed", sp.cfg.Seed,
		"seed_key", sp.cfg.SeedKey,
		"nos", cfg.Samples, "nod", cfg.Thin, "nob", cfg.BurnIn,
		"iterations", cfg.Total(),
	)
	if err := ch.Run(); err != nil {
		return nil, nil, errors.Wrap(err, "Sampling failed")
	}
	mon.Progress(ch.Iterations, cfg.Total())

	draws, err := ch.Retained()
	if err != nil {
		return nil, nil, err
	}

	sum, err := sampler.Summarize(draws)
	if err != nil {
		return nil, nil, err
	}

	return sum, draws, nil
}

func writeTrace(filename string, draws *sampler.Draws) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Could not create trace file %s", filename)
	}

	if err := draws.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "Could not close trace file %s", filename)
}

// CheckInputs validates config and data, including the design matrix
// degeneracy check, without sampling.
func CheckInputs(sp *startupParams) error {
	data, err := loadData(sp)
	if err != nil {
		return err
	}

	gen, err := sp.cfg.Generator()
	if err != nil {
		return err
	}
	defer gen.Stop()

	if _, err := sampler.NewGibbsRegression(gen, data); err != nil {
		return err
	}

	cfg := sp.cfg.Sampling()
	sp.log.Info("Inputs OK",
		"nos", cfg.Samples, "nod", cfg.Thin, "nob", cfg.BurnIn,
		"iterations", cfg.Total(),
		"output", sp.cfg.Output,
	)
	return nil
}
