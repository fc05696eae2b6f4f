package pipeline

import (
	"fmt"
	"strconv"

	"tidycli/internal/dataset"
)

// applyEncode numerizes a categorical column with the declared strategy.
// One-hot expansion replaces the source column with one boolean column per
// category, ordered by first appearance so output column order is
// reproducible across runs.
func applyEncode(work *dataset.Dataset, idx int, col ColumnSpec, st StepSpec) (Entry, error) {
	values := work.ColumnValues(idx)
	entry := Entry{Column: col.Name, Step: StepEncode, Strategy: st.Strategy}

	observed := 0
	missing := 0
	categories := make([]string, 0, 16)
	counts := make(map[string]int, 16)
	for _, v := range values {
		if dataset.IsMissing(v) {
			missing++
			continue
		}
		observed++
		if counts[v] == 0 {
			categories = append(categories, v)
		}
		counts[v]++
	}
	entry.MissingFound = missing
	if observed == 0 {
		entry.Message = "no observed values"
		return entry, nil
	}

	switch st.Strategy {
	case "ordinal":
		rank := make(map[string]int, len(st.Order))
		for i, cat := range st.Order {
			rank[cat] = i
		}
		for _, cat := range categories {
			if _, ok := rank[cat]; !ok {
				return Entry{}, newInvalidStepError(col.Name, StepEncode, fmt.Sprintf("category %q not in declared order", cat))
			}
		}
		for i, v := range values {
			if !dataset.IsMissing(v) {
				values[i] = strconv.Itoa(rank[v])
			}
		}
		if err := work.SetColumnValues(idx, values); err != nil {
			return Entry{}, err
		}
		mapping := make([]CategoryValue, len(st.Order))
		for i, cat := range st.Order {
			mapping[i] = CategoryValue{Category: cat, Value: strconv.Itoa(i)}
		}
		entry.RowsAffected = observed
		entry.Params = &Params{Mapping: mapping}

	case "frequency":
		freq := make(map[string]string, len(categories))
		mapping := make([]CategoryValue, len(categories))
		for i, cat := range categories {
			f := dataset.FormatFloat(float64(counts[cat]) / float64(observed))
			freq[cat] = f
			mapping[i] = CategoryValue{Category: cat, Value: f}
		}
		for i, v := range values {
			if !dataset.IsMissing(v) {
				values[i] = freq[v]
			}
		}
		if err := work.SetColumnValues(idx, values); err != nil {
			return Entry{}, err
		}
		entry.RowsAffected = observed
		entry.Params = &Params{Mapping: mapping}

	case "onehot":
		names := make([]string, len(categories))
		for i, cat := range categories {
			name := col.Name + "_" + cat
			if work.ColumnIndex(name) >= 0 {
				return Entry{}, newInvalidStepError(col.Name, StepEncode, fmt.Sprintf("derived column %q already exists", name))
			}
			names[i] = name
		}
		work.DropColumn(idx)
		for i, cat := range categories {
			vals := make([]string, len(values))
			for r, v := range values {
				if !dataset.IsMissing(v) && v == cat {
					vals[r] = "1"
				} else {
					vals[r] = "0"
				}
			}
			if err := work.AppendColumn(names[i], vals); err != nil {
				return Entry{}, err
			}
		}
		entry.RowsAffected = observed
		entry.Params = &Params{Columns: names}
		if missing > 0 {
			entry.Message = fmt.Sprintf("%d missing rows encoded as all zeros", missing)
		}
	}
	return entry, nil
}
