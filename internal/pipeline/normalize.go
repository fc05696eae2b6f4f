package pipeline

import (
	"tidycli/internal/dataset"
	"tidycli/internal/stats"
)

// applyNormalize rescales a numeric column, storing the fitted parameters
// in the audit entry so the transformation can be inverted.
func applyNormalize(work *dataset.Dataset, idx int, col ColumnSpec, st StepSpec) (Entry, error) {
	vals, pos, err := numericColumn(work, idx, col, StepNormalize)
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{Column: col.Name, Step: StepNormalize, Strategy: st.Strategy}
	if len(vals) == 0 {
		entry.Message = "no observed values"
		return entry, nil
	}

	switch st.Strategy {
	case "minmax":
		min, max := stats.MinMax(vals)
		entry.Params = &Params{Min: floatPtr(min), Max: floatPtr(max)}
		if max == min {
			// Degenerate range: every value maps to the lower bound.
			for _, p := range pos {
				work.Rows[p][idx] = "0"
			}
			entry.Message = "zero value range, column mapped to 0"
			entry.RowsAffected = len(vals)
			return entry, nil
		}
		span := max - min
		for i, p := range pos {
			work.Rows[p][idx] = dataset.FormatFloat((vals[i] - min) / span)
		}
		entry.RowsAffected = len(vals)

	case "zscore":
		mean := stats.Mean(vals)
		std := stats.Std(vals)
		if std == 0 {
			return Entry{}, newInvalidStepError(col.Name, StepNormalize, "zero variance, z-score undefined")
		}
		entry.Params = &Params{Mean: floatPtr(mean), Std: floatPtr(std)}
		for i, p := range pos {
			work.Rows[p][idx] = dataset.FormatFloat((vals[i] - mean) / std)
		}
		entry.RowsAffected = len(vals)
	}
	return entry, nil
}
