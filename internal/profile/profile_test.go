package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidycli/internal/dataset"
)

func TestBuild(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []string{"id", "barrio", "edad"},
		Rows: [][]string{
			{"A-1", "CENTRO", "25"},
			{"A-2", "NORTE", ""},
			{"A-3", "CENTRO", "31"},
			{"A-4", "SUR", "NA"},
		},
	}

	profiles := Build(ds)
	require.Len(t, profiles, 3)

	id := profiles[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, 4, id.Cardinality)
	assert.Equal(t, 1.0, id.UniquenessRatio)
	assert.True(t, id.NearUnique, "fully distinct column reads as an identifier")

	barrio := profiles[1]
	assert.Equal(t, dataset.TypeCategorical, barrio.Type)
	assert.Equal(t, 3, barrio.Cardinality)
	assert.Equal(t, 0.75, barrio.UniquenessRatio)
	assert.False(t, barrio.NearUnique)
	assert.Equal(t, []string{"CENTRO", "NORTE", "SUR"}, barrio.Samples, "samples keep first-appearance order")

	edad := profiles[2]
	assert.Equal(t, dataset.TypeNumeric, edad.Type)
	assert.Equal(t, 2, edad.Missing, "NA counts as missing")
	assert.Equal(t, 50.0, edad.MissingPct)
}

func TestBuildSampleCap(t *testing.T) {
	vals := []string{"a", "b", "c", "d", "e"}
	ds := &dataset.Dataset{Columns: []string{"c"}}
	for _, v := range vals {
		ds.Rows = append(ds.Rows, []string{v})
	}
	profiles := Build(ds)
	require.Len(t, profiles, 1)
	assert.Equal(t, []string{"a", "b", "c"}, profiles[0].Samples)
	assert.Equal(t, 5, profiles[0].Cardinality)
}

func TestBuildEmptyDataset(t *testing.T) {
	ds := &dataset.Dataset{Columns: []string{"c"}}
	profiles := Build(ds)
	require.Len(t, profiles, 1)
	assert.Equal(t, 0, profiles[0].Missing)
	assert.Equal(t, 0.0, profiles[0].UniquenessRatio)
	assert.False(t, profiles[0].NearUnique)
}
