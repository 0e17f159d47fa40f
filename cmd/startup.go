package cmd

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/CraigKelly/bayesreg/config"
)

// startupParams is everything a command needs, resolved from flags and the
// config file.
type startupParams struct {
	cfg         *config.Config
	log         *slog.Logger
	traceFile   string
	monitorAddr string
}

// newLogger returns a colorized slog logger writing to w
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
}

func newStartupParams(cmd *cobra.Command) (*startupParams, error) {
	log := newLogger(os.Stderr, verbose)

	log.Debug("Reading config", "file", cfgFile)
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = randomSeed
		cfg.SeedKey = nil
	}
	if len(outFile) > 0 {
		cfg.Output = outFile
	}

	sp := &startupParams{
		cfg:         cfg,
		log:         log,
		traceFile:   traceFile,
		monitorAddr: monitorAddr,
	}
	return sp, nil
}
