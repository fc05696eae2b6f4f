// Package dataset holds the in-memory tabular model shared by the pipeline:
// an ordered header plus rows of textual cells, with helpers for column
// access, row filtering and value parsing. Cell values stay strings until a
// transformation needs them typed; parsing is tolerant of thousand
// separators the way exported spreadsheets tend to produce them.
package dataset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ColumnType is the declared semantic type of a column.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeDate        ColumnType = "date"
	TypeBoolean     ColumnType = "boolean"
)

// Dataset is an ordered tabular container. All rows share the header's
// column count; ingestion enforces that and every transformation preserves
// it.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// NumRows returns the number of data rows.
func (d *Dataset) NumRows() int { return len(d.Rows) }

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int { return len(d.Columns) }

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ColumnValues returns a copy of the values in column idx.
func (d *Dataset) ColumnValues(idx int) []string {
	out := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = row[idx]
	}
	return out
}

// SetColumnValues overwrites column idx with vals. vals must have one entry
// per row.
func (d *Dataset) SetColumnValues(idx int, vals []string) error {
	if len(vals) != len(d.Rows) {
		return fmt.Errorf("column length %d does not match row count %d", len(vals), len(d.Rows))
	}
	for i := range d.Rows {
		d.Rows[i][idx] = vals[i]
	}
	return nil
}

// AppendColumn adds a new column at the end of the header.
func (d *Dataset) AppendColumn(name string, vals []string) error {
	if len(vals) != len(d.Rows) {
		return fmt.Errorf("column length %d does not match row count %d", len(vals), len(d.Rows))
	}
	d.Columns = append(d.Columns, name)
	for i := range d.Rows {
		d.Rows[i] = append(d.Rows[i], vals[i])
	}
	return nil
}

// DropColumn removes the column at idx.
func (d *Dataset) DropColumn(idx int) {
	d.Columns = append(d.Columns[:idx], d.Columns[idx+1:]...)
	for i := range d.Rows {
		d.Rows[i] = append(d.Rows[i][:idx], d.Rows[i][idx+1:]...)
	}
}

// FilterRows keeps only the rows whose keep entry is true and returns the
// number of rows removed. Row order is preserved.
func (d *Dataset) FilterRows(keep []bool) int {
	kept := d.Rows[:0]
	removed := 0
	for i, row := range d.Rows {
		if keep[i] {
			kept = append(kept, row)
		} else {
			removed++
		}
	}
	d.Rows = kept
	return removed
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	cols := make([]string, len(d.Columns))
	copy(cols, d.Columns)
	rows := make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		rows[i] = make([]string, len(row))
		copy(rows[i], row)
	}
	return &Dataset{Columns: cols, Rows: rows}
}

// missingTokens are cell values treated as absent, matching the markers the
// raw exports use.
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"NULL": {},
	"null": {},
}

// IsMissing reports whether a cell value represents a missing observation.
func IsMissing(v string) bool {
	_, ok := missingTokens[strings.TrimSpace(v)]
	return ok
}

var thousandGrouped = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

// ParseFloat parses a numeric cell, stripping whitespace first. Commas are
// removed only when they form a digit-grouping pattern ("1,234.5"); a cell
// like "3,5" is rejected rather than silently read as 35.
func ParseFloat(v string) (float64, bool) {
	s := strings.TrimSpace(v)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		if !thousandGrouped.MatchString(s) {
			return 0, false
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatFloat renders a float the shortest way that round-trips, so output
// files are byte-stable across runs.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseBool parses a boolean cell.
func ParseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "si", "sí":
		return true, true
	case "false", "no":
		return false, true
	}
	return false, false
}
