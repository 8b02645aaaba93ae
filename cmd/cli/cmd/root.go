// Package cmd provides the CLI commands for baticost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"baticost/internal/config"
	"baticost/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "baticost",
	Short: "Estimate construction project costs",
	Long: `baticost is a deterministic construction-project cost estimator.

It prices a structured project description against a versioned pricing
catalog and produces a fully itemized estimate: line items, applied
coefficients, taxes and a projected timeline. Identical input and catalog
always produce identical output.

Examples:
  baticost estimate project.json
  baticost estimate --format json --catalog catalog.hcl project.json
  baticost catalog validate catalog.hcl`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.baticost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("baticost version 0.1.0")
	},
}
