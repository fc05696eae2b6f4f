package pipeline

import (
	"fmt"

	"tidycli/internal/dataset"
	"tidycli/internal/stats"
)

// applyDiscretize partitions a numeric column into labeled buckets.
// Intervals are closed-left open-right; the final bucket is closed on both
// ends so the observed range is fully covered.
func applyDiscretize(work *dataset.Dataset, idx int, col ColumnSpec, st StepSpec) (Entry, error) {
	vals, pos, err := numericColumn(work, idx, col, StepDiscretize)
	if err != nil {
		return Entry{}, err
	}
	if len(vals) == 0 {
		return Entry{Column: col.Name, Step: StepDiscretize, Strategy: st.Strategy, Message: "no observed values"}, nil
	}

	edges, err := fitEdges(col, st, vals)
	if err != nil {
		return Entry{}, err
	}
	labels, err := bucketLabels(col, st, edges)
	if err != nil {
		return Entry{}, err
	}

	counts := make([]int, len(labels))
	for i, v := range vals {
		b, ok := bucketFor(v, edges)
		if !ok {
			return Entry{}, newInvalidStepError(col.Name, StepDiscretize, fmt.Sprintf("value %s outside bin range [%s, %s]",
				dataset.FormatFloat(v), dataset.FormatFloat(edges[0]), dataset.FormatFloat(edges[len(edges)-1])))
		}
		work.Rows[pos[i]][idx] = labels[b]
		counts[b]++
	}

	buckets := make([]BucketCount, len(labels))
	for i, l := range labels {
		buckets[i] = BucketCount{Label: l, Count: counts[i]}
	}
	return Entry{
		Column:       col.Name,
		Step:         StepDiscretize,
		Strategy:     st.Strategy,
		RowsAffected: len(vals),
		Params:       &Params{Edges: edges, Buckets: buckets},
	}, nil
}

// fitEdges computes the bucket boundaries for the declared strategy.
func fitEdges(col ColumnSpec, st StepSpec, vals []float64) ([]float64, error) {
	switch st.Strategy {
	case "width":
		min, max := stats.MinMax(vals)
		if max == min {
			return nil, newInvalidStepError(col.Name, StepDiscretize, "zero value range, cannot form equal-width buckets")
		}
		edges := make([]float64, st.Bins+1)
		span := (max - min) / float64(st.Bins)
		for i := 0; i <= st.Bins; i++ {
			edges[i] = min + span*float64(i)
		}
		// Close the range exactly despite float accumulation.
		edges[st.Bins] = max
		return edges, nil

	case "quantile":
		edges := make([]float64, 0, st.Bins+1)
		for i := 0; i <= st.Bins; i++ {
			e := stats.Quantile(vals, float64(i)/float64(st.Bins))
			if len(edges) == 0 || e > edges[len(edges)-1] {
				edges = append(edges, e)
			}
		}
		if len(edges) < 2 {
			return nil, newInvalidStepError(col.Name, StepDiscretize, "quantile edges collapse to a single value")
		}
		return edges, nil

	case "edges":
		return st.Edges, nil
	}
	return nil, newConfigurationError(col.Name, StepDiscretize, fmt.Sprintf("unknown strategy %q", st.Strategy))
}

// bucketLabels returns caller-supplied labels when present, otherwise
// interval notation derived from the edges.
func bucketLabels(col ColumnSpec, st StepSpec, edges []float64) ([]string, error) {
	n := len(edges) - 1
	if len(st.Labels) > 0 {
		if len(st.Labels) != n {
			// Quantile tie collapsing can change the bucket count after
			// static validation passed.
			return nil, newInvalidStepError(col.Name, StepDiscretize, fmt.Sprintf("%d labels for %d buckets", len(st.Labels), n))
		}
		return st.Labels, nil
	}
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		close := ")"
		if i == n-1 {
			close = "]"
		}
		labels[i] = fmt.Sprintf("[%s, %s%s", dataset.FormatFloat(edges[i]), dataset.FormatFloat(edges[i+1]), close)
	}
	return labels, nil
}

// bucketFor assigns v to its bucket: closed-left open-right, with the final
// bucket closed on both ends.
func bucketFor(v float64, edges []float64) (int, bool) {
	n := len(edges) - 1
	if v < edges[0] || v > edges[n] {
		return 0, false
	}
	for i := 0; i < n-1; i++ {
		if v >= edges[i] && v < edges[i+1] {
			return i, true
		}
	}
	return n - 1, true
}
