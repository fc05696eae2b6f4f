// Package pipeline implements the deterministic tabular cleaning pipeline:
// a declared sequence of column-level transformations executed in one pass
// over an in-memory dataset, with an append-only audit trail of every
// decision applied. A run either produces a complete cleaned dataset and
// report or fails with one explicit error naming the offending column and
// step.
package pipeline

import (
	"fmt"
	"sort"

	"tidycli/internal/dataset"
)

// StepKind identifies a transformation step variant.
type StepKind string

const (
	StepCoerce         StepKind = "coerce"
	StepMissingValue   StepKind = "missing_value"
	StepOutlier        StepKind = "outlier"
	StepNormalize      StepKind = "normalize"
	StepDiscretize     StepKind = "discretize"
	StepEncode         StepKind = "encode"
	StepTextClean      StepKind = "text_clean"
	StepDateParts      StepKind = "date_parts"
	StepDropColumn     StepKind = "drop_column"
	StepFilter         StepKind = "filter"
	StepDropDuplicates StepKind = "drop_duplicates"
)

// StepSpec is one transformation step: a kind plus the parameters that kind
// understands. Unused fields are left at their zero value.
type StepSpec struct {
	Kind     StepKind `yaml:"kind" json:"kind" validate:"required"`
	Strategy string   `yaml:"strategy,omitempty" json:"strategy,omitempty"`

	// missing_value
	Value string `yaml:"value,omitempty" json:"value,omitempty"`

	// outlier; nil means the 1.5 default, explicit zero is rejected
	Factor *float64 `yaml:"factor,omitempty" json:"factor,omitempty"`

	// discretize
	Bins   int       `yaml:"bins,omitempty" json:"bins,omitempty"`
	Edges  []float64 `yaml:"edges,omitempty" json:"edges,omitempty"`
	Labels []string  `yaml:"labels,omitempty" json:"labels,omitempty"`

	// encode (ordinal)
	Order []string `yaml:"order,omitempty" json:"order,omitempty"`

	// filter
	Expression string `yaml:"expression,omitempty" json:"expression,omitempty"`

	// coerce / date_parts
	Layout string `yaml:"layout,omitempty" json:"layout,omitempty"`
}

// ColumnSpec declares one column: its name, semantic type and the ordered
// steps to apply. Immutable once the pipeline is built.
type ColumnSpec struct {
	Name  string             `yaml:"name" json:"name" validate:"required"`
	Type  dataset.ColumnType `yaml:"type" json:"type" validate:"required,oneof=numeric categorical date boolean"`
	Steps []StepSpec         `yaml:"steps,omitempty" json:"steps,omitempty" validate:"dive"`
}

// Spec is the full pipeline configuration: input shape minimums,
// dataset-level steps and per-column descriptors.
type Spec struct {
	MinRows int `yaml:"min_rows" json:"min_rows" validate:"min=0"`
	MinCols int `yaml:"min_cols" json:"min_cols" validate:"min=0"`

	// MissingFlagThreshold is the missing-value ratio above which a column
	// is flagged instead of imputed. Defaults to 0.5 when omitted; an
	// explicit zero flags any missing value.
	MissingFlagThreshold *float64 `yaml:"missing_flag_threshold,omitempty" json:"missing_flag_threshold,omitempty" validate:"omitempty,min=0,max=1"`

	// Dataset holds whole-dataset steps (filter, drop_duplicates),
	// executed before any column step.
	Dataset []StepSpec   `yaml:"dataset,omitempty" json:"dataset,omitempty" validate:"dive"`
	Columns []ColumnSpec `yaml:"columns" json:"columns" validate:"required,min=1,dive"`
}

// applyDefaults fills the parameter defaults a spec may omit. Only unset
// (nil) fields are filled, so an explicit zero survives to validation.
func (s *Spec) applyDefaults() {
	if s.MissingFlagThreshold == nil {
		s.MissingFlagThreshold = floatPtr(0.5)
	}
	for i := range s.Columns {
		for j := range s.Columns[i].Steps {
			st := &s.Columns[i].Steps[j]
			if st.Kind == StepOutlier && st.Factor == nil {
				st.Factor = floatPtr(1.5)
			}
		}
	}
}

// validate checks everything that can be checked without data: duplicate
// declarations, unknown kinds and strategies, parameter completeness, and
// step-to-type eligibility.
func (s *Spec) validate() error {
	seen := make(map[string]struct{}, len(s.Columns))
	for _, col := range s.Columns {
		if _, dup := seen[col.Name]; dup {
			return newConfigurationError(col.Name, "", "column declared more than once")
		}
		seen[col.Name] = struct{}{}
	}

	for _, st := range s.Dataset {
		switch st.Kind {
		case StepFilter:
			if st.Expression == "" {
				return newConfigurationError("", StepFilter, "filter requires an expression")
			}
		case StepDropDuplicates:
			// no parameters
		default:
			return newConfigurationError("", st.Kind, "not a dataset-level step")
		}
	}

	for _, col := range s.Columns {
		for _, st := range col.Steps {
			if err := validateColumnStep(col, st); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateColumnStep(col ColumnSpec, st StepSpec) error {
	switch st.Kind {
	case StepCoerce:
		switch st.Strategy {
		case "", "lenient", "strict":
		default:
			return newConfigurationError(col.Name, st.Kind, fmt.Sprintf("unknown strategy %q", st.Strategy))
		}

	case StepMissingValue:
		switch st.Strategy {
		case "drop", "mode":
		case "constant":
			if st.Value == "" {
				return newConfigurationError(col.Name, st.Kind, "constant strategy requires a value")
			}
		case "mean", "median":
			if col.Type != dataset.TypeNumeric {
				return newInvalidStepError(col.Name, st.Kind, fmt.Sprintf("%s imputation requires a numeric column, got %s", st.Strategy, col.Type))
			}
		default:
			return newConfigurationError(col.Name, st.Kind, fmt.Sprintf("unknown strategy %q", st.Strategy))
		}

	case StepOutlier:
		if col.Type != dataset.TypeNumeric {
			return newInvalidStepError(col.Name, st.Kind, fmt.Sprintf("outlier treatment requires a numeric column, got %s", col.Type))
		}
		switch st.Strategy {
		case "clip", "remove":
		default:
			return newConfigurationError(col.Name, st.Kind, fmt.Sprintf("unknown strategy %q", st.Strategy))
		}
		if st.Factor != nil && *st.Factor <= 0 {
			return newConfigurationError(col.Name, st.Kind, "factor must be positive")
		}

	case StepNormalize:
		if col.Type != dataset.TypeNumeric {
			return newInvalidStepError(col.Name, st.Kind, fmt.Sprintf("normalization requires a numeric column, got %s", col.Type))
		}
		switch st.Strategy {
		case "minmax", "zscore":
		default:
			return newConfigurationError(col.Name, st.Kind, fmt.Sprintf("unknown strategy %q", st.Strategy))
		}

	case StepDiscretize:
		if col.Type != dataset.TypeNumeric {
			return newInvalidStepError(col.Name, st.Kind, fmt.Sprintf("discretization requires a numeric column, got %s", col.Type))
		}
		switch st.Strategy {
		case "width", "quantile":
			if st.Bins < 2 {
				return newConfigurationError(col.Name, st.Kind, "bins must be at least 2")
			}
			if len(st.Labels) > 0 && len(st.Labels) != st.Bins {
				return newConfigurationError(col.Name, st.Kind, fmt.Sprintf("%d labels for %d bins", len(st.Labels), st.Bins))
			}
		case "edges":
			if len(st.Edges) < 2 {
				return newConfigurationError(col.Name, st.Kind, "edges strategy requires at least 2 edges")
			}
			if !sort.Float64sAreSorted(st.Edges) {
				return newConfigurationError(col.Name, st.Kind, "edges must be in ascending order")
			}
			if len(st.Labels) > 0 && len(st.Labels) != len(st.Edges)-1 {
				return newConfigurationError(col.Name, st.Kind, fmt.Sprintf("%d labels for %d buckets", len(st.Labels), len(st.Edges)-1))
			}
		default:
			return newConfigurationError(col.Name, st.Kind, fmt.Sprintf("unknown strategy %q", st.Strategy))
		}

	case StepEncode:
		if col.Type != dataset.TypeCategorical {
			return newInvalidStepError(col.Name, st.Kind, fmt.Sprintf("numerization requires a categorical column, got %s", col.Type))
		}
		switch st.Strategy {
		case "onehot", "frequency":
		case "ordinal":
			if len(st.Order) == 0 {
				return newConfigurationError(col.Name, st.Kind, "ordinal strategy requires an explicit order")
			}
		default:
			return newConfigurationError(col.Name, st.Kind, fmt.Sprintf("unknown strategy %q", st.Strategy))
		}

	case StepTextClean:
		if col.Type != dataset.TypeCategorical {
			return newInvalidStepError(col.Name, st.Kind, fmt.Sprintf("text cleanup requires a categorical column, got %s", col.Type))
		}

	case StepDateParts:
		if col.Type != dataset.TypeDate {
			return newInvalidStepError(col.Name, st.Kind, fmt.Sprintf("date derivation requires a date column, got %s", col.Type))
		}
		switch st.Strategy {
		case "", "date", "datetime":
		default:
			return newConfigurationError(col.Name, st.Kind, fmt.Sprintf("unknown strategy %q", st.Strategy))
		}

	case StepDropColumn:
		// no parameters

	case StepFilter, StepDropDuplicates:
		return newConfigurationError(col.Name, st.Kind, "dataset-level step declared on a column")

	default:
		return newConfigurationError(col.Name, st.Kind, "unknown step kind")
	}
	return nil
}
