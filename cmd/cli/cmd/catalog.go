// Package cmd - catalog commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"baticost/core/catalog"
)

// catalogCmd groups catalog maintenance commands
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate pricing catalogs",
}

// catalogValidateCmd validates an HCL catalog file
var catalogValidateCmd = &cobra.Command{
	Use:   "validate <catalog.hcl>",
	Short: "Validate an HCL catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Catalog %s is valid (%d categories, %d add-ons, %d regions)\n",
			cat.Version, len(cat.Categories), len(cat.AddOns), len(cat.RegionCoefficients))
		return nil
	},
}

// catalogShowCmd prints the active catalog tables
var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active catalog tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return err
		}
		cat := store.Current()

		fmt.Printf("Catalog %s (%s)\n\n", cat.Version, cat.Currency)
		fmt.Println("Categories:")
		for _, c := range cat.Categories {
			fmt.Printf("  %-18s %s, %d options", c.Name, c.Kind, len(c.Options))
			if c.Turnkey {
				fmt.Print(", turnkey")
			}
			fmt.Println()
		}
		fmt.Printf("\nAdd-ons: %d\n", len(cat.AddOns))
		fmt.Printf("Regions: %d\n", len(cat.RegionCoefficients))
		fmt.Printf("VAT rate: %s\n", cat.VATRate)
		fmt.Printf("Inflation rate: %s\n", cat.InflationRate)
		fmt.Printf("Development tax rate: %s\n", cat.DevelopmentTax.Rate)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "", "HCL catalog file (default: builtin catalog)")
}
