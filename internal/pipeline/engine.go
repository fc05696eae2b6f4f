package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr/vm"
	"github.com/google/uuid"

	"tidycli/internal/dataset"
	"tidycli/internal/profile"
)

// Pipeline executes a validated Spec over one dataset at a time. The
// instance is stateless between runs; each Run owns its working copy of the
// input for the run's duration.
type Pipeline struct {
	spec    Spec
	logger  *slog.Logger
	filters map[int]*vm.Program
}

// New builds a pipeline from the given spec. All configuration problems
// that can be detected without data are reported here, so Run only fails on
// data-dependent conditions.
func New(spec Spec, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	spec.applyDefaults()
	if err := spec.validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		spec:    spec,
		logger:  logger,
		filters: make(map[int]*vm.Program),
	}
	for i, st := range spec.Dataset {
		if st.Kind != StepFilter {
			continue
		}
		prog, err := compileFilter(st.Expression)
		if err != nil {
			return nil, newConfigurationError("", StepFilter, fmt.Sprintf("cannot compile expression: %v", err))
		}
		p.filters[i] = prog
	}
	return p, nil
}

// Run applies every declared step to a copy of ds and returns the cleaned
// dataset together with its audit report. On any error the input is left
// untouched and no partial output is returned.
func (p *Pipeline) Run(ds *dataset.Dataset) (*dataset.Dataset, *Report, error) {
	runID := uuid.NewString()
	logger := p.logger.With(slog.String("run_id", runID))

	if err := p.validateInput(ds); err != nil {
		return nil, nil, err
	}

	work := ds.Clone()
	report := &Report{
		Input:     Shape{Rows: work.NumRows(), Columns: work.NumCols()},
		Inference: work.Summarize(),
		Profile:   profile.Build(work),
		Entries:   []Entry{},
	}

	logger.Info("pipeline run started",
		slog.Int("rows", work.NumRows()),
		slog.Int("columns", work.NumCols()),
		slog.Int("dataset_steps", len(p.spec.Dataset)),
		slog.Int("column_specs", len(p.spec.Columns)))

	for i, st := range p.spec.Dataset {
		entry, err := p.applyDatasetStep(work, i, st)
		if err != nil {
			logger.Error("dataset step failed", slog.String("step", string(st.Kind)), slog.Any("error", err))
			return nil, nil, err
		}
		logger.Info("dataset step applied",
			slog.String("step", string(st.Kind)),
			slog.Int("rows_removed", entry.RowsRemoved))
		report.Entries = append(report.Entries, entry)
	}

	for _, col := range p.spec.Columns {
		for _, st := range col.Steps {
			idx := work.ColumnIndex(col.Name)
			if idx < 0 {
				return nil, nil, newConfigurationError(col.Name, st.Kind, "column not present in dataset")
			}
			entry, err := p.applyColumnStep(work, idx, col, st)
			if err != nil {
				logger.Error("column step failed",
					slog.String("column", col.Name),
					slog.String("step", string(st.Kind)),
					slog.Any("error", err))
				return nil, nil, err
			}
			logger.Debug("column step applied",
				slog.String("column", col.Name),
				slog.String("step", string(st.Kind)),
				slog.String("strategy", entry.Strategy),
				slog.Int("rows_affected", entry.RowsAffected))
			report.Entries = append(report.Entries, entry)
		}
	}

	report.Output = Shape{Rows: work.NumRows(), Columns: work.NumCols()}
	logger.Info("pipeline run completed",
		slog.Int("rows_out", report.Output.Rows),
		slog.Int("columns_out", report.Output.Columns),
		slog.Int("audit_entries", len(report.Entries)))
	return work, report, nil
}

// validateInput enforces the minimum input shape and the closed-world
// column contract: every input column must be declared, every declared
// column must be present.
func (p *Pipeline) validateInput(ds *dataset.Dataset) error {
	rows, cols := ds.NumRows(), ds.NumCols()
	if rows < p.spec.MinRows {
		return newSchemaError(rows, cols, fmt.Sprintf("expected at least %d rows", p.spec.MinRows))
	}
	if cols < p.spec.MinCols {
		return newSchemaError(rows, cols, fmt.Sprintf("expected at least %d columns", p.spec.MinCols))
	}

	declared := make(map[string]struct{}, len(p.spec.Columns))
	for _, col := range p.spec.Columns {
		declared[col.Name] = struct{}{}
	}
	for _, name := range ds.Columns {
		if _, ok := declared[name]; !ok {
			return newColumnSchemaError(name, "input column not declared in configuration")
		}
	}
	for _, col := range p.spec.Columns {
		if ds.ColumnIndex(col.Name) < 0 {
			return newConfigurationError(col.Name, "", "declared column absent from input")
		}
	}
	return nil
}

func (p *Pipeline) applyDatasetStep(work *dataset.Dataset, idx int, st StepSpec) (Entry, error) {
	switch st.Kind {
	case StepFilter:
		return applyFilter(work, st, p.filters[idx])
	case StepDropDuplicates:
		return applyDropDuplicates(work), nil
	}
	return Entry{}, newConfigurationError("", st.Kind, "not a dataset-level step")
}

func (p *Pipeline) applyColumnStep(work *dataset.Dataset, idx int, col ColumnSpec, st StepSpec) (Entry, error) {
	switch st.Kind {
	case StepCoerce:
		return applyCoerce(work, idx, col, st)
	case StepMissingValue:
		return applyMissing(work, idx, col, st, *p.spec.MissingFlagThreshold)
	case StepOutlier:
		return applyOutlier(work, idx, col, st)
	case StepNormalize:
		return applyNormalize(work, idx, col, st)
	case StepDiscretize:
		return applyDiscretize(work, idx, col, st)
	case StepEncode:
		return applyEncode(work, idx, col, st)
	case StepTextClean:
		return applyTextClean(work, idx, col), nil
	case StepDateParts:
		return applyDateParts(work, idx, col, st)
	case StepDropColumn:
		work.DropColumn(idx)
		return Entry{Column: col.Name, Step: StepDropColumn, Message: "column removed"}, nil
	}
	return Entry{}, newConfigurationError(col.Name, st.Kind, "unknown step kind")
}
