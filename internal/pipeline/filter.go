package pipeline

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"tidycli/internal/dataset"
)

// compileFilter compiles a row predicate. Columns are exposed as
// identifiers; numeric cells arrive as float64, everything else as string,
// missing cells as nil. Column names are only known at run time, so
// identifiers stay unchecked until evaluation.
func compileFilter(expression string) (*vm.Program, error) {
	return expr.Compile(expression, expr.AllowUndefinedVariables(), expr.AsBool())
}

// applyFilter keeps the rows for which the compiled predicate is true.
func applyFilter(work *dataset.Dataset, st StepSpec, prog *vm.Program) (Entry, error) {
	keep := make([]bool, work.NumRows())
	for r, row := range work.Rows {
		env := make(map[string]interface{}, len(work.Columns))
		for c, name := range work.Columns {
			v := row[c]
			switch {
			case dataset.IsMissing(v):
				env[name] = nil
			default:
				if f, ok := dataset.ParseFloat(v); ok {
					env[name] = f
				} else {
					env[name] = v
				}
			}
		}
		out, err := expr.Run(prog, env)
		if err != nil {
			return Entry{}, newInvalidStepError("", StepFilter, fmt.Sprintf("expression failed on row %d: %v", r+1, err))
		}
		ok, isBool := out.(bool)
		if !isBool {
			return Entry{}, newInvalidStepError("", StepFilter, fmt.Sprintf("expression is not boolean on row %d", r+1))
		}
		keep[r] = ok
	}
	removed := work.FilterRows(keep)
	return Entry{
		Step:         StepFilter,
		RowsAffected: removed,
		RowsRemoved:  removed,
		Params:       &Params{Expression: st.Expression},
	}, nil
}

// applyDropDuplicates collapses fully identical rows, keeping the first
// occurrence.
func applyDropDuplicates(work *dataset.Dataset) Entry {
	seen := make(map[string]struct{}, work.NumRows())
	keep := make([]bool, work.NumRows())
	for r, row := range work.Rows {
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep[r] = true
	}
	removed := work.FilterRows(keep)
	return Entry{
		Step:         StepDropDuplicates,
		RowsAffected: removed,
		RowsRemoved:  removed,
	}
}
