package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidycli/internal/dataset"
)

func TestSpecDefaults(t *testing.T) {
	s := Spec{Columns: []ColumnSpec{{
		Name:  "v",
		Type:  dataset.TypeNumeric,
		Steps: []StepSpec{{Kind: StepOutlier, Strategy: "clip"}},
	}}}
	s.applyDefaults()
	require.NotNil(t, s.MissingFlagThreshold)
	assert.Equal(t, 0.5, *s.MissingFlagThreshold)
	require.NotNil(t, s.Columns[0].Steps[0].Factor)
	assert.Equal(t, 1.5, *s.Columns[0].Steps[0].Factor)
}

func TestSpecDefaultsKeepExplicitZeroThreshold(t *testing.T) {
	s := Spec{
		MissingFlagThreshold: floatPtr(0),
		Columns:              []ColumnSpec{{Name: "v", Type: dataset.TypeNumeric}},
	}
	s.applyDefaults()
	assert.Equal(t, 0.0, *s.MissingFlagThreshold)
}

func TestSpecValidation(t *testing.T) {
	tests := []struct {
		name        string
		spec        Spec
		wantConfig  bool
		wantInvalid bool
	}{
		{
			name: "duplicate column declaration",
			spec: Spec{Columns: []ColumnSpec{
				{Name: "a", Type: dataset.TypeNumeric},
				{Name: "a", Type: dataset.TypeCategorical},
			}},
			wantConfig: true,
		},
		{
			name: "unknown step kind",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeNumeric,
				Steps: []StepSpec{{Kind: StepKind("shuffle")}},
			}}},
			wantConfig: true,
		},
		{
			name: "unknown missing strategy",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeNumeric,
				Steps: []StepSpec{{Kind: StepMissingValue, Strategy: "interpolate"}},
			}}},
			wantConfig: true,
		},
		{
			name: "constant imputation without value",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeCategorical,
				Steps: []StepSpec{{Kind: StepMissingValue, Strategy: "constant"}},
			}}},
			wantConfig: true,
		},
		{
			name: "mean imputation on categorical column",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeCategorical,
				Steps: []StepSpec{{Kind: StepMissingValue, Strategy: "mean"}},
			}}},
			wantInvalid: true,
		},
		{
			name: "normalize on date column",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeDate,
				Steps: []StepSpec{{Kind: StepNormalize, Strategy: "minmax"}},
			}}},
			wantInvalid: true,
		},
		{
			name: "discretize with a single bin",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeNumeric,
				Steps: []StepSpec{{Kind: StepDiscretize, Strategy: "width", Bins: 1}},
			}}},
			wantConfig: true,
		},
		{
			name: "discretize with unsorted edges",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeNumeric,
				Steps: []StepSpec{{Kind: StepDiscretize, Strategy: "edges", Edges: []float64{10, 0}}},
			}}},
			wantConfig: true,
		},
		{
			name: "discretize label count mismatch",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeNumeric,
				Steps: []StepSpec{{Kind: StepDiscretize, Strategy: "width", Bins: 3, Labels: []string{"bajo", "alto"}}},
			}}},
			wantConfig: true,
		},
		{
			name: "outlier with explicit zero factor",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeNumeric,
				Steps: []StepSpec{{Kind: StepOutlier, Strategy: "clip", Factor: floatPtr(0)}},
			}}},
			wantConfig: true,
		},
		{
			name: "ordinal encode without order",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeCategorical,
				Steps: []StepSpec{{Kind: StepEncode, Strategy: "ordinal"}},
			}}},
			wantConfig: true,
		},
		{
			name: "encode on numeric column",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeNumeric,
				Steps: []StepSpec{{Kind: StepEncode, Strategy: "onehot"}},
			}}},
			wantInvalid: true,
		},
		{
			name: "text clean on numeric column",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeNumeric,
				Steps: []StepSpec{{Kind: StepTextClean}},
			}}},
			wantInvalid: true,
		},
		{
			name: "date parts on categorical column",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeCategorical,
				Steps: []StepSpec{{Kind: StepDateParts}},
			}}},
			wantInvalid: true,
		},
		{
			name: "date parts with unknown strategy",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeDate,
				Steps: []StepSpec{{Kind: StepDateParts, Strategy: "hourly"}},
			}}},
			wantConfig: true,
		},
		{
			name: "filter declared on a column",
			spec: Spec{Columns: []ColumnSpec{{
				Name: "a", Type: dataset.TypeNumeric,
				Steps: []StepSpec{{Kind: StepFilter, Expression: "a > 0"}},
			}}},
			wantConfig: true,
		},
		{
			name: "filter without expression",
			spec: Spec{
				Dataset: []StepSpec{{Kind: StepFilter}},
				Columns: []ColumnSpec{{Name: "a", Type: dataset.TypeNumeric}},
			},
			wantConfig: true,
		},
		{
			name: "column step at dataset level",
			spec: Spec{
				Dataset: []StepSpec{{Kind: StepNormalize, Strategy: "minmax"}},
				Columns: []ColumnSpec{{Name: "a", Type: dataset.TypeNumeric}},
			},
			wantConfig: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.spec, nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantConfig, IsConfigurationError(err))
			assert.Equal(t, tt.wantInvalid, IsInvalidStepError(err))
		})
	}
}

func TestSpecValidPipelines(t *testing.T) {
	specs := []Spec{
		{Columns: []ColumnSpec{{Name: "a", Type: dataset.TypeNumeric}}},
		{Columns: []ColumnSpec{{
			Name: "a", Type: dataset.TypeNumeric,
			Steps: []StepSpec{
				{Kind: StepCoerce},
				{Kind: StepMissingValue, Strategy: "median"},
				{Kind: StepOutlier, Strategy: "remove", Factor: floatPtr(3)},
				{Kind: StepDiscretize, Strategy: "edges", Edges: []float64{0, 10, 20}, Labels: []string{"bajo", "alto"}},
			},
		}}},
		{
			Dataset: []StepSpec{{Kind: StepDropDuplicates}, {Kind: StepFilter, Expression: "a != nil"}},
			Columns: []ColumnSpec{{Name: "a", Type: dataset.TypeBoolean}},
		},
	}
	for _, s := range specs {
		_, err := New(s, nil)
		assert.NoError(t, err)
	}
}
