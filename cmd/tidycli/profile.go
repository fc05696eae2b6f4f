package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tidycli/internal/dataset"
	"tidycli/internal/profile"
)

var profileFlags struct {
	input  string
	output string
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print a per-column data-quality diagnostic for a dataset",
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().StringVarP(&profileFlags.input, "in", "i", "", "input dataset")
	profileCmd.Flags().StringVarP(&profileFlags.output, "out", "o", "", "write the diagnostic to a file instead of stdout")
	_ = profileCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	ds, err := dataset.LoadFile(profileFlags.input)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(profile.Build(ds), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal diagnostic: %w", err)
	}
	data = append(data, '\n')

	if profileFlags.output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(profileFlags.output, data, 0644)
}
