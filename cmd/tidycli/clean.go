package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tidycli/internal/config"
	"tidycli/internal/dataset"
	"tidycli/internal/exporter"
	"tidycli/internal/infrastructure"
	"tidycli/internal/pipeline"
)

var cleanFlags struct {
	configPath string
	input      string
	output     string
	report     string
	bom        bool
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run the cleaning pipeline over a dataset",
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanFlags.configPath, "config", "c", "", "pipeline configuration file (YAML)")
	cleanCmd.Flags().StringVarP(&cleanFlags.input, "in", "i", "", "input dataset (overrides config)")
	cleanCmd.Flags().StringVarP(&cleanFlags.output, "out", "o", "", "cleaned dataset output path (overrides config)")
	cleanCmd.Flags().StringVarP(&cleanFlags.report, "report", "r", "", "audit report output path (overrides config)")
	cleanCmd.Flags().BoolVar(&cleanFlags.bom, "bom", false, "prefix the output CSV with a UTF-8 BOM")
	_ = cleanCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cleanFlags.configPath)
	if err != nil {
		return err
	}
	if cleanFlags.input != "" {
		cfg.Input = cleanFlags.input
	}
	if cleanFlags.output != "" {
		cfg.Output = cleanFlags.output
	}
	if cleanFlags.report != "" {
		cfg.Report = cleanFlags.report
	}
	if cfg.Input == "" {
		return fmt.Errorf("no input dataset: set input in the config file or pass --in")
	}
	if cfg.Output == "" {
		return fmt.Errorf("no output path: set output in the config file or pass --out")
	}
	if cfg.Report == "" {
		return fmt.Errorf("no report path: set report in the config file or pass --report")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer infrastructure.CloseLogger()

	p, err := pipeline.New(cfg.Pipeline, logger)
	if err != nil {
		return err
	}

	ds, err := dataset.LoadFile(cfg.Input)
	if err != nil {
		return err
	}

	cleaned, report, err := p.Run(ds)
	if err != nil {
		return err
	}

	if err := exporter.WriteDataset(cfg.Output, cleaned, exporter.WriteOptions{BOMPrefix: cleanFlags.bom}); err != nil {
		return err
	}
	if err := exporter.WriteReport(cfg.Report, report); err != nil {
		return err
	}

	logger.Info("clean finished",
		slog.String("output", cfg.Output),
		slog.String("report", cfg.Report),
		slog.Int("rows_in", report.Input.Rows),
		slog.Int("rows_out", report.Output.Rows))
	return nil
}
