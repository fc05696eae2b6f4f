package pipeline

import (
	"fmt"

	"tidycli/internal/dataset"
	"tidycli/internal/stats"
)

// numericColumn parses the non-missing values of a numeric column, keeping
// the row position of each parsed value. A non-missing value that does not
// parse makes the step inapplicable to the column's current state.
func numericColumn(work *dataset.Dataset, idx int, col ColumnSpec, kind StepKind) ([]float64, []int, error) {
	values := work.ColumnValues(idx)
	vals := make([]float64, 0, len(values))
	pos := make([]int, 0, len(values))
	for i, v := range values {
		if dataset.IsMissing(v) {
			continue
		}
		f, ok := dataset.ParseFloat(v)
		if !ok {
			return nil, nil, newInvalidStepError(col.Name, kind, fmt.Sprintf("non-numeric value %q in numeric column", v))
		}
		vals = append(vals, f)
		pos = append(pos, i)
	}
	return vals, pos, nil
}

// applyOutlier treats outliers by the IQR rule: values outside
// [Q1 - k*IQR, Q3 + k*IQR] are clipped to the bound or their rows removed,
// per the declared strategy. A zero IQR identifies no outliers.
func applyOutlier(work *dataset.Dataset, idx int, col ColumnSpec, st StepSpec) (Entry, error) {
	vals, pos, err := numericColumn(work, idx, col, StepOutlier)
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{Column: col.Name, Step: StepOutlier, Strategy: st.Strategy}
	if len(vals) == 0 {
		entry.Message = "no observed values"
		return entry, nil
	}

	factor := *st.Factor
	q1 := stats.Quantile(vals, 0.25)
	q3 := stats.Quantile(vals, 0.75)
	iqr := q3 - q1
	if iqr == 0 {
		entry.Message = "zero interquartile range, no outliers identified"
		entry.Params = &Params{Factor: factor, Q1: floatPtr(q1), Q3: floatPtr(q3)}
		return entry, nil
	}

	lower := q1 - factor*iqr
	upper := q3 + factor*iqr
	entry.Params = &Params{
		Factor: factor,
		Q1:     floatPtr(q1),
		Q3:     floatPtr(q3),
		Lower:  floatPtr(lower),
		Upper:  floatPtr(upper),
	}

	switch st.Strategy {
	case "clip":
		affected := 0
		for i, v := range vals {
			if v < lower {
				work.Rows[pos[i]][idx] = dataset.FormatFloat(lower)
				affected++
			} else if v > upper {
				work.Rows[pos[i]][idx] = dataset.FormatFloat(upper)
				affected++
			}
		}
		entry.RowsAffected = affected

	case "remove":
		keep := make([]bool, work.NumRows())
		for i := range keep {
			keep[i] = true
		}
		for i, v := range vals {
			if v < lower || v > upper {
				keep[pos[i]] = false
			}
		}
		removed := work.FilterRows(keep)
		entry.RowsAffected = removed
		entry.RowsRemoved = removed
	}
	return entry, nil
}
