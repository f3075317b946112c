// internal/alerts/thresholds.go
package alerts

import "github.com/andresuchdata/stockcast/internal/domain"

// Thresholds carries the tunable business rules behind alert generation.
// Zero values are not meaningful; start from DefaultThresholds and override
// selectively.
type Thresholds struct {
	// DefaultReorderPoint stands in when a product has no reorder point.
	DefaultReorderPoint int

	// Trend shift detection
	TrendMinHistory    int     // sales records required outside the recent window
	TrendWindowDays    int     // size of the recent-velocity window
	TrendIncreaseRatio float64 // recent/historical velocity ratio that flags a surge
	TrendDecreaseRatio float64 // ratio under which demand counts as dropping
	StaleForecastDays  int     // forecast age that triggers a regeneration alert

	// Price suggestions
	PriceMinHistory    int     // sales records required before any price advice
	HighVelocity       float64 // units/day above which demand is high
	LowVelocity        float64 // units/day below which demand is low
	MaxIncreasePercent int
	MaxDecreasePercent int

	// Excess inventory
	ExcessWindowDays int     // sales window for the daily average
	ExcessSupplyDays float64 // days of supply beyond which stock counts as excess
	ExcessMinStock   int     // ignore small absolute stock levels
}

// DefaultThresholds returns the production rule settings.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DefaultReorderPoint: domain.DefaultReorderPoint,

		TrendMinHistory:    5,
		TrendWindowDays:    7,
		TrendIncreaseRatio: 1.5,
		TrendDecreaseRatio: 0.6,
		StaleForecastDays:  14,

		PriceMinHistory:    3,
		HighVelocity:       1,
		LowVelocity:        0.2,
		MaxIncreasePercent: 15,
		MaxDecreasePercent: 25,

		ExcessWindowDays: 30,
		ExcessSupplyDays: 120,
		ExcessMinStock:   10,
	}
}
