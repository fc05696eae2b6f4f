// Package exporter writes the pipeline's two persisted outputs: the
// cleaned dataset as delimited text (optionally gzip-compressed) and the
// audit report as indented JSON.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"tidycli/internal/dataset"
)

// WriteOptions configures dataset export.
type WriteOptions struct {
	// BOMPrefix prepends a UTF-8 BOM so spreadsheet tools detect the
	// encoding.
	BOMPrefix bool
	// Delimiter defaults to comma.
	Delimiter rune
}

// WriteDataset writes ds to path, creating parent directories as needed. A
// .gz suffix selects gzip compression.
func WriteDataset(path string, ds *dataset.Dataset, options WriteOptions) error {
	slog.Info("writing cleaned dataset",
		slog.String("path", path),
		slog.Int("rows", ds.NumRows()),
		slog.Int("columns", ds.NumCols()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	var out io.Writer = file
	var gz *gzip.Writer
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz = gzip.NewWriter(file)
		out = gz
	}

	if options.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	w := csv.NewWriter(out)
	if options.Delimiter != 0 {
		w.Comma = options.Delimiter
	}
	if err := w.Write(ds.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("failed to finish gzip stream: %w", err)
		}
	}
	return nil
}
