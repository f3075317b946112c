// internal/forecast/confidence.go
package forecast

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// defaultResidualVariance stands in when a model produced no residuals.
const defaultResidualVariance = 0.1

// zScores maps supported confidence levels to normal quantiles.
var zScores = map[float64]float64{
	0.90: 1.645,
	0.95: 1.96,
	0.99: 2.576,
}

// confidenceInterval derives a flat interval half-width from the residual
// spread and repeats it across the horizon. Unsupported levels fall back
// to 95%.
func confidenceInterval(residuals []float64, days int, level float64) []float64 {
	z, ok := zScores[level]
	if !ok {
		z = zScores[0.95]
	}

	variance := defaultResidualVariance
	if len(residuals) > 0 {
		_, variance = stat.PopMeanVariance(residuals, nil)
	}

	width := z * math.Sqrt(variance)

	intervals := make([]float64, days)
	for i := range intervals {
		intervals[i] = width
	}

	return intervals
}
