package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tidycli/internal/pipeline"
)

// WriteReport writes the audit report as indented JSON. Marshaling uses
// struct types only, so identical runs emit identical bytes.
func WriteReport(path string, report *pipeline.Report) error {
	slog.Info("writing audit report",
		slog.String("path", path),
		slog.Int("entries", len(report.Entries)))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
