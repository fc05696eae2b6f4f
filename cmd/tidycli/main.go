// tidycli cleans tabular datasets: it applies a declared, ordered sequence
// of column-level transformations to a delimited input file and writes the
// cleaned dataset together with a machine-readable audit report.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tidycli/pkg/contracts"
)

var rootCmd = &cobra.Command{
	Use:           "tidycli",
	Short:         "Deterministic tabular data-cleaning pipeline",
	Long:          "tidycli ingests a tabular dataset, applies a configured sequence of\ncolumn-level cleaning transformations and emits the cleaned dataset plus\nan audit report of every decision applied.",
	Version:       contracts.GetFullVersionString(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
