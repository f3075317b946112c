// internal/timeseries/trend.go
package timeseries

import "gonum.org/v1/gonum/stat"

// Trend fits an ordinary least squares line through the series quantities,
// with x as the day offset from the start of the series. It returns the
// slope in units per day and the intercept.
func Trend(series []Point) (slope, intercept float64) {
	switch len(series) {
	case 0:
		return 0, 0
	case 1:
		return 0, float64(series[0].Quantity)
	}

	xs := make([]float64, len(series))
	for i := range xs {
		xs[i] = float64(i)
	}

	intercept, slope = stat.LinearRegression(xs, Quantities(series), nil, false)

	return slope, intercept
}
