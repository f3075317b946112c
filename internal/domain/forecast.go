// internal/domain/forecast.go
package domain

import "github.com/shopspring/decimal"

// ForecastResult represents a generated demand forecast. The four parallel
// slices always share the same length, one entry per forecast day.
type ForecastResult struct {
	Dates      []string          `json:"dates"`
	Quantities []int             `json:"quantities"`
	Revenues   []decimal.Decimal `json:"revenues"`
	Confidence []float64         `json:"confidence"`
	Errors     []string          `json:"errors"`
}

// Horizon returns the number of forecast days in the result.
func (r ForecastResult) Horizon() int {
	return len(r.Dates)
}
