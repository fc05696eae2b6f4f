package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/xuri/excelize/v2"
)

// ReadCSV reads delimited text with a header row into a Dataset. Rows with
// a column count different from the header are rejected; the caller gets
// either a rectangular dataset or an error.
func ReadCSV(r io.Reader, delimiter rune) (*Dataset, error) {
	cr := csv.NewReader(r)
	if delimiter != 0 {
		cr.Comma = delimiter
	}
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty, expected a header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	// Strip a UTF-8 BOM some spreadsheet exports prepend.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	ds := &Dataset{Columns: header}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		line++
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", line, len(record), len(header))
		}
		ds.Rows = append(ds.Rows, record)
	}
	return ds, nil
}

// LoadFile loads a tabular file, dispatching on extension: .csv, .csv.gz
// (or .gz), .tsv and .xlsx are supported.
func LoadFile(path string) (*Dataset, error) {
	slog.Info("loading dataset", slog.String("path", path))

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return loadExcel(path)
	case ".gz":
		return loadGzipCSV(path)
	case ".tsv":
		return loadPlainCSV(path, '\t')
	default:
		return loadPlainCSV(path, ',')
	}
}

func loadPlainCSV(path string, delimiter rune) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, delimiter)
}

func loadGzipCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gz.Close()

	delimiter := ','
	if strings.HasSuffix(strings.ToLower(strings.TrimSuffix(path, ".gz")), ".tsv") {
		delimiter = '\t'
	}
	return ReadCSV(gz, delimiter)
}

// loadExcel reads the first sheet of an Excel workbook, treating the first
// row as the header. Short rows are padded so the dataset stays
// rectangular.
func loadExcel(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty, expected a header row", sheets[0])
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	ds := &Dataset{Columns: header}
	for _, row := range rows[1:] {
		record := make([]string, len(header))
		for i := range header {
			if i < len(row) {
				record[i] = row[i]
			}
		}
		ds.Rows = append(ds.Rows, record)
	}
	return ds, nil
}
