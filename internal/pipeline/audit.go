package pipeline

import (
	"tidycli/internal/dataset"
	"tidycli/internal/profile"
)

// BucketCount is the observed population of one discretization bucket.
type BucketCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CategoryValue is one category-to-value assignment of an encoding step,
// listed in the order the mapping was fitted.
type CategoryValue struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

// Params carries the fitted parameters of a step so the transformation is
// reproducible and, where meaningful, invertible. Only the fields the step
// kind uses are populated; struct fields keep the report byte-stable.
type Params struct {
	FillValue string   `json:"fill_value,omitempty"`
	Factor    float64  `json:"factor,omitempty"`
	Q1        *float64 `json:"q1,omitempty"`
	Q3        *float64 `json:"q3,omitempty"`
	Lower     *float64 `json:"lower,omitempty"`
	Upper     *float64 `json:"upper,omitempty"`

	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Mean *float64 `json:"mean,omitempty"`
	Std  *float64 `json:"std,omitempty"`

	Edges   []float64     `json:"edges,omitempty"`
	Buckets []BucketCount `json:"buckets,omitempty"`

	Mapping []CategoryValue `json:"mapping,omitempty"`
	Columns []string        `json:"columns,omitempty"`

	Expression string `json:"expression,omitempty"`
	Layout     string `json:"layout,omitempty"`
}

// Entry records the effect of one (column, step) application. Entries are
// appended in declaration order and never mutated afterwards.
type Entry struct {
	Column       string   `json:"column,omitempty"`
	Step         StepKind `json:"step"`
	Strategy     string   `json:"strategy,omitempty"`
	RowsAffected int      `json:"rows_affected"`
	RowsRemoved  int      `json:"rows_removed,omitempty"`
	MissingFound int      `json:"missing_found,omitempty"`
	Flagged      bool     `json:"flagged,omitempty"`
	Message      string   `json:"message,omitempty"`
	Params       *Params  `json:"params,omitempty"`
}

// Shape is a dataset's row/column extent.
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Report aggregates the audit trail of one run. Two runs over identical
// input and configuration marshal to identical bytes; anything
// run-specific (IDs, timestamps) goes to the log, never into the report.
type Report struct {
	Input     Shape                     `json:"input"`
	Output    Shape                     `json:"output"`
	Inference []dataset.ColumnInference `json:"type_inference"`
	Profile   []profile.ColumnProfile   `json:"profile"`
	Entries   []Entry                   `json:"entries"`
}

func floatPtr(v float64) *float64 { return &v }
