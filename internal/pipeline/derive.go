package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"tidycli/internal/dataset"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// applyTextClean trims surrounding whitespace and collapses internal runs
// on a categorical column, reducing the spelling variants manual data entry
// produces.
func applyTextClean(work *dataset.Dataset, idx int, col ColumnSpec) Entry {
	values := work.ColumnValues(idx)
	changed := 0
	for i, v := range values {
		if dataset.IsMissing(v) {
			continue
		}
		cleaned := whitespaceRun.ReplaceAllString(strings.TrimSpace(v), " ")
		if cleaned != v {
			values[i] = cleaned
			changed++
		}
	}
	// Length is unchanged, SetColumnValues cannot fail here.
	_ = work.SetColumnValues(idx, values)
	return Entry{Column: col.Name, Step: StepTextClean, RowsAffected: changed}
}

// datePartBand names the time-of-day band of an hour, with boundaries at
// 0, 6, 12 and 18.
func datePartBand(hour int) string {
	switch {
	case hour < 6:
		return "overnight"
	case hour < 12:
		return "morning"
	case hour < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

// applyDateParts derives calendar attributes from a date column: year,
// month, day and weekday, plus hour and time-of-day band under the
// datetime strategy. Derived columns are appended in a fixed order;
// unparseable source values leave their derived cells empty.
func applyDateParts(work *dataset.Dataset, idx int, col ColumnSpec, st StepSpec) (Entry, error) {
	withClock := st.Strategy == "datetime"

	suffixes := []string{"year", "month", "day", "weekday"}
	if withClock {
		suffixes = append(suffixes, "hour", "band")
	}
	names := make([]string, len(suffixes))
	for i, s := range suffixes {
		names[i] = col.Name + "_" + s
		if work.ColumnIndex(names[i]) >= 0 {
			return Entry{}, newInvalidStepError(col.Name, StepDateParts, fmt.Sprintf("derived column %q already exists", names[i]))
		}
	}

	values := work.ColumnValues(idx)
	derived := make([][]string, len(names))
	for i := range derived {
		derived[i] = make([]string, len(values))
	}

	parsed := 0
	unparsed := 0
	for r, v := range values {
		if dataset.IsMissing(v) {
			continue
		}
		t, ok := dataset.ParseDate(strings.TrimSpace(v), st.Layout)
		if !ok {
			unparsed++
			continue
		}
		parsed++
		derived[0][r] = strconv.Itoa(t.Year())
		derived[1][r] = strconv.Itoa(int(t.Month()))
		derived[2][r] = strconv.Itoa(t.Day())
		derived[3][r] = t.Weekday().String()
		if withClock {
			derived[4][r] = strconv.Itoa(t.Hour())
			derived[5][r] = datePartBand(t.Hour())
		}
	}

	for i, name := range names {
		if err := work.AppendColumn(name, derived[i]); err != nil {
			return Entry{}, err
		}
	}

	entry := Entry{
		Column:       col.Name,
		Step:         StepDateParts,
		Strategy:     st.Strategy,
		RowsAffected: parsed,
		Params:       &Params{Layout: st.Layout, Columns: names},
	}
	if unparsed > 0 {
		entry.Message = fmt.Sprintf("%d values did not parse as dates", unparsed)
	}
	return entry, nil
}
