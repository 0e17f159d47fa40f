package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string
var verbose bool
var randomSeed int64
var outFile string
var traceFile string
var monitorAddr string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bayesreg",
	Short: "Bayesian sales regression via Gibbs sampling",
	Long: `bayesreg estimates the posterior of a log-log sales model

    log(sales) = gamma * (1 + beta_1*display + beta_2*coupon + beta_3*log(price)) + e

with an exact conjugate Gibbs sampler. Among other features:

  - Reads store data from xls, xlsx, csv or plain text columns
  - Burn-in and thinning controlled by a YAML config (nos, nod, nob)
  - Reproducible runs from a single random seed
  - Writes posterior quantiles and means as JSON
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yml", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging (default is much more parsimonious)")
	rootCmd.PersistentFlags().Int64VarP(&randomSeed, "seed", "r", 0, "Random seed to use (overrides the config file)")

	runCmd.Flags().StringVarP(&outFile, "out", "o", "", "Output JSON file (overrides the config file)")
	runCmd.Flags().StringVar(&traceFile, "trace", "", "Optional CSV file for the retained draws")
	runCmd.Flags().StringVar(&monitorAddr, "monitor", "", "Serve progress via expvar on this address (e.g. :8000)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bayesreg: %v\n", err)
		os.Exit(1)
	}
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Gibbs sampler and write the posterior summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, err := newStartupParams(cmd)
		if err != nil {
			return err
		}
		return RunSampler(sp)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config and data without sampling",
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, err := newStartupParams(cmd)
		if err != nil {
			return err
		}
		return CheckInputs(sp)
	},
}
