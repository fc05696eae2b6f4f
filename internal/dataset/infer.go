package dataset

import "time"

// dateLayouts are the formats probed during type inference, most specific
// first.
var dateLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ColumnInference summarizes what a column looks like before any
// transformation runs.
type ColumnInference struct {
	Name     string     `json:"name"`
	Inferred ColumnType `json:"inferred"`
	Missing  int        `json:"missing"`
	Samples  []string   `json:"samples,omitempty"`
}

// InferType guesses the semantic type of a column from its non-missing
// values. Booleans are probed before dates and numbers; a column with no
// observed values falls back to categorical.
func InferType(values []string) ColumnType {
	seen := false
	isBool, isDate, isNumeric := true, true, true
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		seen = true
		if isBool {
			if _, ok := ParseBool(v); !ok {
				isBool = false
			}
		}
		if isDate && !parsesAsDate(v) {
			isDate = false
		}
		if isNumeric {
			if _, ok := ParseFloat(v); !ok {
				isNumeric = false
			}
		}
		if !isBool && !isDate && !isNumeric {
			return TypeCategorical
		}
	}
	switch {
	case !seen:
		return TypeCategorical
	case isBool:
		return TypeBoolean
	case isDate:
		return TypeDate
	case isNumeric:
		return TypeNumeric
	}
	return TypeCategorical
}

func parsesAsDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// ParseDate parses a date cell using the given layout, falling back to the
// probed layouts when layout is empty.
func ParseDate(v, layout string) (time.Time, bool) {
	if layout != "" {
		t, err := time.Parse(layout, v)
		return t, err == nil
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Summarize produces the per-column inference summary emitted with every
// run report. Samples keep first-appearance order so the summary is stable.
func (d *Dataset) Summarize() []ColumnInference {
	out := make([]ColumnInference, 0, len(d.Columns))
	for idx, name := range d.Columns {
		values := d.ColumnValues(idx)
		missing := 0
		samples := make([]string, 0, 3)
		seen := make(map[string]struct{}, 8)
		for _, v := range values {
			if IsMissing(v) {
				missing++
				continue
			}
			if len(samples) < 3 {
				if _, ok := seen[v]; !ok {
					seen[v] = struct{}{}
					samples = append(samples, v)
				}
			}
		}
		out = append(out, ColumnInference{
			Name:     name,
			Inferred: InferType(values),
			Missing:  missing,
			Samples:  samples,
		})
	}
	return out
}
