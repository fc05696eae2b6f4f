// Package profile builds the per-column data-quality diagnostic that
// precedes cleaning: null counts, cardinality, sample values and a
// near-uniqueness flag for columns that behave like record identifiers.
package profile

import (
	"math"

	"tidycli/internal/dataset"
)

// NearUniqueThreshold is the uniqueness ratio at or above which a column is
// flagged as a likely identifier.
const NearUniqueThreshold = 0.95

// ColumnProfile is the quality diagnostic of one column.
type ColumnProfile struct {
	Name            string             `json:"name"`
	Type            dataset.ColumnType `json:"type"`
	Missing         int                `json:"missing"`
	MissingPct      float64            `json:"missing_pct"`
	Cardinality     int                `json:"cardinality"`
	UniquenessRatio float64            `json:"uniqueness_ratio"`
	NearUnique      bool               `json:"near_unique,omitempty"`
	Samples         []string           `json:"samples,omitempty"`
}

// Build profiles every column of the dataset. Samples keep first-appearance
// order, so the diagnostic is stable across runs.
func Build(ds *dataset.Dataset) []ColumnProfile {
	nRows := ds.NumRows()
	out := make([]ColumnProfile, 0, ds.NumCols())

	for idx, name := range ds.Columns {
		values := ds.ColumnValues(idx)

		missing := 0
		distinct := make(map[string]struct{}, 16)
		samples := make([]string, 0, 3)
		for _, v := range values {
			if dataset.IsMissing(v) {
				missing++
				continue
			}
			if _, ok := distinct[v]; !ok {
				distinct[v] = struct{}{}
				if len(samples) < 3 {
					samples = append(samples, v)
				}
			}
		}

		p := ColumnProfile{
			Name:        name,
			Type:        dataset.InferType(values),
			Missing:     missing,
			Cardinality: len(distinct),
			Samples:     samples,
		}
		if nRows > 0 {
			p.MissingPct = round2(float64(missing) / float64(nRows) * 100)
			p.UniquenessRatio = round4(float64(len(distinct)) / float64(nRows))
		}
		p.NearUnique = p.UniquenessRatio >= NearUniqueThreshold
		out = append(out, p)
	}
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
