// internal/timeseries/seasonality.go
package timeseries

import "gonum.org/v1/gonum/stat"

// DefaultSeasonalPeriod is the weekly cycle typical of retail demand.
const DefaultSeasonalPeriod = 7

// SeasonalIndices estimates a multiplicative seasonal index for each
// position of the cycle. Indices are normalized so their mean is 1.0.
// A series shorter than two full cycles carries no usable seasonal
// signal and yields flat indices.
func SeasonalIndices(series []Point, period int) []float64 {
	if period <= 0 {
		period = DefaultSeasonalPeriod
	}

	indices := make([]float64, period)
	if len(series) < 2*period {
		return flatIndices(indices)
	}

	// 1. Average quantities per cycle position
	sums := make([]float64, period)
	counts := make([]float64, period)
	for i, p := range series {
		pos := i % period
		sums[pos] += float64(p.Quantity)
		counts[pos]++
	}

	for pos := range indices {
		indices[pos] = sums[pos] / counts[pos]
	}

	// 2. Normalize against the mean of the positional averages
	mean := stat.Mean(indices, nil)
	if mean == 0 {
		return flatIndices(indices)
	}

	for pos := range indices {
		indices[pos] /= mean
	}

	return indices
}

func flatIndices(indices []float64) []float64 {
	for i := range indices {
		indices[i] = 1
	}

	return indices
}
