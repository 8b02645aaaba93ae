// Package cmd - estimate command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"baticost/core/catalog"
	"baticost/core/engine"
	"baticost/core/types"
	"baticost/internal/errors"
)

var (
	outputFormat string
	catalogPath  string
	taxRate      float64
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate <input.json>",
	Short: "Estimate costs for a project description",
	Long: `Price a JSON project description against the pricing catalog.

The input file holds one project description: project type, surface, client
type, region, finish level, precision, optional target date and the selected
category options.

Examples:
  baticost estimate project.json
  baticost estimate --format json project.json
  baticost estimate --catalog catalog.hcl --tax-rate 0.03 project.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json)")
	estimateCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "HCL catalog file (default: builtin catalog)")
	estimateCmd.Flags().Float64VarP(&taxRate, "tax-rate", "t", -1, "override the development tax rate")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var raw types.RawProjectInput
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}
	if taxRate >= 0 {
		raw.TaxRateOverride = &taxRate
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}

	result, err := engine.New(store).Estimate(&raw)
	if err != nil {
		if verr, ok := err.(*errors.ValidationErrors); ok {
			fmt.Fprintln(os.Stderr, "Invalid project input:")
			for _, f := range verr.Fields {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Field, f.Message)
			}
			return fmt.Errorf("%d invalid field(s)", len(verr.Fields))
		}
		return err
	}

	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(result)
	return nil
}

func openCatalog() (*catalog.Store, error) {
	if catalogPath == "" {
		return catalog.MustNewStore(catalog.Builtin()), nil
	}
	cat, err := catalog.LoadFile(catalogPath)
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(cat)
}

func printResult(r *types.EstimationResult) {
	fmt.Printf("Estimate (catalog %s, %s)\n\n", r.CatalogVersion, r.Currency)

	for _, it := range r.LineItems {
		fmt.Printf("  %-18s %-18s %12s\n", it.Category, it.Option, euros(it.AmountCents))
	}
	fmt.Printf("  %-37s %12s\n\n", "subtotal", euros(r.SubtotalCents))

	for _, c := range r.AppliedCoefficients {
		fmt.Printf("  × %-35s %12s\n", c.Name, c.Value.String())
	}
	fmt.Printf("  × %-35s %12s\n", "inflation", r.InflationFactor.String())
	fmt.Printf("  %-37s %12s\n", "after coefficients", euros(r.AfterCoefficientsCents))
	fmt.Printf("  %-37s %12s\n", "VAT", euros(r.VATCents))
	fmt.Printf("  %-37s %12s\n", "development tax", euros(r.DevelopmentTaxCents))
	fmt.Printf("  %-37s %12s\n\n", "grand total", euros(r.GrandTotalCents))

	t := r.Timeline
	fmt.Printf("Timeline: design %dm, permits %dm, construction %dm (total %dm)\n",
		t.DesignMonths, t.PermitMonths, t.ConstructionMonths, t.TotalMonths)
}

func euros(cents int64) string {
	return fmt.Sprintf("%d.%02d €", cents/100, cents%100)
}
