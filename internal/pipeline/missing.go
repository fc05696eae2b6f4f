package pipeline

import (
	"fmt"

	"tidycli/internal/dataset"
	"tidycli/internal/stats"
)

// applyMissing executes the declared missing-value policy on one column.
// Columns whose missing ratio exceeds the flag threshold are reported and
// left untreated instead of being silently imputed; dropping rows is still
// honored since removal is explicit in the output row count.
func applyMissing(work *dataset.Dataset, idx int, col ColumnSpec, st StepSpec, threshold float64) (Entry, error) {
	values := work.ColumnValues(idx)
	entry := Entry{Column: col.Name, Step: StepMissingValue, Strategy: st.Strategy}

	missing := make([]bool, len(values))
	missingCount := 0
	for i, v := range values {
		if dataset.IsMissing(v) {
			missing[i] = true
			missingCount++
		}
	}
	entry.MissingFound = missingCount
	if missingCount == 0 {
		entry.Message = "no missing values"
		return entry, nil
	}

	if st.Strategy == "drop" {
		keep := make([]bool, len(values))
		for i := range keep {
			keep[i] = !missing[i]
		}
		removed := work.FilterRows(keep)
		entry.RowsAffected = removed
		entry.RowsRemoved = removed
		return entry, nil
	}

	ratio := float64(missingCount) / float64(len(values))
	if ratio > threshold {
		entry.Flagged = true
		entry.Message = fmt.Sprintf("%.1f%% missing exceeds the %.0f%% threshold, column left untreated", ratio*100, threshold*100)
		return entry, nil
	}

	fill, err := fitFillValue(col, st, values, missing)
	if err != nil {
		return Entry{}, err
	}

	for i := range values {
		if missing[i] {
			values[i] = fill
		}
	}
	if err := work.SetColumnValues(idx, values); err != nil {
		return Entry{}, err
	}
	entry.RowsAffected = missingCount
	entry.Params = &Params{FillValue: fill}
	return entry, nil
}

// fitFillValue computes the imputation value for the chosen strategy from
// the observed (non-missing) values.
func fitFillValue(col ColumnSpec, st StepSpec, values []string, missing []bool) (string, error) {
	switch st.Strategy {
	case "constant":
		return st.Value, nil

	case "mean", "median":
		nums := make([]float64, 0, len(values))
		for i, v := range values {
			if missing[i] {
				continue
			}
			f, ok := dataset.ParseFloat(v)
			if !ok {
				return "", newInvalidStepError(col.Name, StepMissingValue, fmt.Sprintf("non-numeric value %q in numeric column", v))
			}
			nums = append(nums, f)
		}
		if len(nums) == 0 {
			return "", newInvalidStepError(col.Name, StepMissingValue, "no observed values to fit")
		}
		if st.Strategy == "mean" {
			return dataset.FormatFloat(stats.Mean(nums)), nil
		}
		return dataset.FormatFloat(stats.Median(nums)), nil

	case "mode":
		// Numeric columns take the numeric mode so spellings of the same
		// number ("5", "5.0") count as one value.
		if col.Type == dataset.TypeNumeric {
			nums := make([]float64, 0, len(values))
			for i, v := range values {
				if missing[i] {
					continue
				}
				f, ok := dataset.ParseFloat(v)
				if !ok {
					return "", newInvalidStepError(col.Name, StepMissingValue, fmt.Sprintf("non-numeric value %q in numeric column", v))
				}
				nums = append(nums, f)
			}
			if len(nums) == 0 {
				return "", newInvalidStepError(col.Name, StepMissingValue, "no observed values to fit")
			}
			return dataset.FormatFloat(stats.Mode(nums)), nil
		}
		observed := make([]string, 0, len(values))
		for i, v := range values {
			if !missing[i] {
				observed = append(observed, v)
			}
		}
		if len(observed) == 0 {
			return "", newInvalidStepError(col.Name, StepMissingValue, "no observed values to fit")
		}
		mode, _ := stats.ModeString(observed)
		return mode, nil
	}
	return "", newConfigurationError(col.Name, StepMissingValue, fmt.Sprintf("unknown strategy %q", st.Strategy))
}
