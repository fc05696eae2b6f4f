package pipeline

import (
	"fmt"
	"strings"

	"tidycli/internal/dataset"
)

// applyCoerce rewrites a column's values into the canonical form of its
// declared type. The lenient default blanks values that do not parse; the
// strict strategy fails the run on the first such value.
func applyCoerce(work *dataset.Dataset, idx int, col ColumnSpec, st StepSpec) (Entry, error) {
	values := work.ColumnValues(idx)
	strict := st.Strategy == "strict"
	entry := Entry{Column: col.Name, Step: StepCoerce, Strategy: st.Strategy}

	changed := 0
	blanked := 0
	for i, v := range values {
		if dataset.IsMissing(v) {
			continue
		}
		canonical, ok := canonicalValue(v, col.Type, st.Layout)
		if !ok {
			if strict {
				return Entry{}, newInvalidStepError(col.Name, StepCoerce, fmt.Sprintf("value %q cannot be coerced to %s", v, col.Type))
			}
			values[i] = ""
			blanked++
			continue
		}
		if canonical != v {
			values[i] = canonical
			changed++
		}
	}
	if err := work.SetColumnValues(idx, values); err != nil {
		return Entry{}, err
	}

	entry.RowsAffected = changed + blanked
	entry.MissingFound = blanked
	if blanked > 0 {
		entry.Message = fmt.Sprintf("%d unparseable values blanked", blanked)
	}
	return entry, nil
}

func canonicalValue(v string, t dataset.ColumnType, layout string) (string, bool) {
	switch t {
	case dataset.TypeNumeric:
		f, ok := dataset.ParseFloat(v)
		if !ok {
			return "", false
		}
		return dataset.FormatFloat(f), true

	case dataset.TypeBoolean:
		b, ok := dataset.ParseBool(v)
		if !ok {
			return "", false
		}
		if b {
			return "true", true
		}
		return "false", true

	case dataset.TypeDate:
		t, ok := dataset.ParseDate(strings.TrimSpace(v), layout)
		if !ok {
			return "", false
		}
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format("2006-01-02"), true
		}
		return t.Format("2006-01-02T15:04:05"), true

	default:
		return strings.TrimSpace(v), true
	}
}
