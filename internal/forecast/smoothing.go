// internal/forecast/smoothing.go
package forecast

import (
	"math"

	"github.com/andresuchdata/stockcast/internal/timeseries"
)

// simpleSmoothing forecasts with single exponential smoothing: the level is
// seeded from the first observation, smoothed across the history, and the
// final level repeats across the horizon. Used when history is too short
// for a seasonal fit.
func simpleSmoothing(series []timeseries.Point, days int, alpha float64) ([]int, []float64) {
	if len(series) == 0 {
		return make([]int, days), nil
	}

	level := float64(series[0].Quantity)
	residuals := make([]float64, 0, len(series))

	for _, p := range series {
		actual := float64(p.Quantity)
		residuals = append(residuals, actual-level)
		level = alpha*actual + (1-alpha)*level
	}

	value := int(math.Max(0, math.Round(level)))
	forecast := make([]int, days)
	for i := range forecast {
		forecast[i] = value
	}

	return forecast, residuals
}
