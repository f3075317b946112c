// internal/alerts/engine.go
package alerts

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/stockcast/internal/domain"
)

// Engine derives operational alerts from inventory and sales snapshots.
// It holds no state between runs.
type Engine struct {
	thresholds Thresholds
	now        func() time.Time
}

// NewEngine creates an alert engine with the given thresholds.
func NewEngine(thresholds Thresholds) *Engine {
	return &Engine{
		thresholds: thresholds,
		now:        time.Now,
	}
}

// Generate evaluates every rule category against the given products and
// returns the alerts ordered by priority, most urgent first. Malformed
// products are skipped with a warning so one bad row cannot block the run.
func (e *Engine) Generate(products []domain.ProductSnapshot, sales []domain.SaleRecord, forecasts []domain.ForecastRecord) []domain.Alert {
	now := e.now().UTC()

	salesByProduct := groupSales(sales)
	latestForecast := latestForecasts(forecasts)

	alerts := make([]domain.Alert, 0)
	for _, product := range products {
		if product.ID == "" || product.StockQuantity < 0 {
			log.Warn().Str("product_id", product.ID).Int("stock", product.StockQuantity).
				Msg("skipping malformed product snapshot")
			continue
		}

		history := salesByProduct[product.ID]

		alerts = append(alerts, e.stockAlerts(product, now)...)
		alerts = append(alerts, e.trendAlerts(product, history, latestForecast[product.ID], now)...)
		alerts = append(alerts, e.priceAlerts(product, history, now)...)
		alerts = append(alerts, e.excessAlerts(product, history, now)...)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority < alerts[j].Priority
	})

	return alerts
}

// stockAlerts covers the two most urgent conditions: fully out of stock and
// stock at or below the reorder point. They are mutually exclusive.
func (e *Engine) stockAlerts(p domain.ProductSnapshot, now time.Time) []domain.Alert {
	reorder := e.reorderPoint(p)

	switch {
	case p.StockQuantity == 0:
		return []domain.Alert{newAlert(domain.AlertTypeCritical, domain.PriorityCritical, p.ID, now,
			fmt.Sprintf("Product %s is out of stock", p.ID))}
	case p.StockQuantity <= reorder:
		return []domain.Alert{newAlert(domain.AlertTypeCritical, domain.PriorityCritical, p.ID, now,
			fmt.Sprintf("Product %s stock is critical: %d units left, reorder point is %d", p.ID, p.StockQuantity, reorder))}
	}

	return nil
}

// trendAlerts compares the recent sales velocity against the historical
// rate and flags meaningful shifts in either direction. A surge also checks
// whether the latest forecast is fresh enough to plan with.
func (e *Engine) trendAlerts(p domain.ProductSnapshot, history []domain.SaleRecord, lastForecast, now time.Time) []domain.Alert {
	t := e.thresholds
	windowStart := now.AddDate(0, 0, -t.TrendWindowDays)

	var (
		recentUnits     int
		historicalUnits int
		historicalCount int
		earliest        time.Time
	)

	for _, s := range history {
		if s.SaleDate.Before(windowStart) {
			historicalUnits += s.Quantity
			historicalCount++
			if earliest.IsZero() || s.SaleDate.Before(earliest) {
				earliest = s.SaleDate
			}
			continue
		}
		recentUnits += s.Quantity
	}

	if historicalCount < t.TrendMinHistory {
		return nil
	}

	historicalSpan := math.Max(1, windowStart.Sub(earliest).Hours()/24)
	historicalVelocity := float64(historicalUnits) / historicalSpan
	recentVelocity := float64(recentUnits) / float64(t.TrendWindowDays)

	var alerts []domain.Alert

	switch {
	case recentVelocity > historicalVelocity*t.TrendIncreaseRatio:
		alerts = append(alerts, newAlert(domain.AlertTypeTrend, domain.PriorityTrend, p.ID, now,
			fmt.Sprintf("Demand for %s is accelerating: %.2f units/day recently vs %.2f historically",
				p.ID, recentVelocity, historicalVelocity)))

		if e.forecastStale(lastForecast, now) {
			alerts = append(alerts, newAlert(domain.AlertTypeTrend, domain.PriorityTrend, p.ID, now,
				fmt.Sprintf("Forecast for %s is stale while demand rises; regenerate it", p.ID)))
		}
	case recentVelocity < historicalVelocity*t.TrendDecreaseRatio:
		alerts = append(alerts, newAlert(domain.AlertTypeTrend, domain.PriorityTrend, p.ID, now,
			fmt.Sprintf("Demand for %s is dropping: %.2f units/day recently vs %.2f historically",
				p.ID, recentVelocity, historicalVelocity)))
	}

	return alerts
}

// priceAlerts suggests price moves when sustained velocity and stock levels
// point the same way: raise on fast movers with deep stock, discount slow
// movers sitting on even deeper stock.
func (e *Engine) priceAlerts(p domain.ProductSnapshot, history []domain.SaleRecord, now time.Time) []domain.Alert {
	t := e.thresholds
	if len(history) < t.PriceMinHistory {
		return nil
	}

	totalUnits := 0
	for _, s := range history {
		totalUnits += s.Quantity
	}

	span := math.Max(1, history[len(history)-1].SaleDate.Sub(history[0].SaleDate).Hours()/24)
	velocity := float64(totalUnits) / span
	reorder := e.reorderPoint(p)

	switch {
	case velocity > t.HighVelocity && p.StockQuantity > 2*reorder:
		pct := int(math.Min(float64(t.MaxIncreasePercent), math.Round(velocity*5)))

		return []domain.Alert{newAlert(domain.AlertTypePrice, domain.PriorityPrice, p.ID, now,
			fmt.Sprintf("Consider raising the price of %s by %d%%: selling %.2f units/day with healthy stock",
				p.ID, pct, velocity))}
	case velocity < t.LowVelocity && p.StockQuantity > 3*reorder:
		pct := t.MaxDecreasePercent
		if velocity > 0 {
			pct = int(math.Min(float64(t.MaxDecreasePercent), math.Round(1/velocity*5)))
		}

		return []domain.Alert{newAlert(domain.AlertTypePrice, domain.PriorityPrice, p.ID, now,
			fmt.Sprintf("Consider discounting %s by %d%%: only %.2f units/day moving against deep stock",
				p.ID, pct, velocity))}
	}

	return nil
}

// excessAlerts flags products whose stock covers demand far beyond the
// planning horizon. Products without recent sales are skipped: without a
// daily average the days-of-supply ratio is undefined.
func (e *Engine) excessAlerts(p domain.ProductSnapshot, history []domain.SaleRecord, now time.Time) []domain.Alert {
	t := e.thresholds
	if p.StockQuantity <= t.ExcessMinStock || len(history) == 0 {
		return nil
	}

	windowStart := now.AddDate(0, 0, -t.ExcessWindowDays)

	windowUnits := 0
	for _, s := range history {
		if !s.SaleDate.Before(windowStart) {
			windowUnits += s.Quantity
		}
	}
	if windowUnits == 0 {
		return nil
	}

	windowDays := float64(t.ExcessWindowDays)
	if earliest := history[0].SaleDate; earliest.After(windowStart) {
		windowDays = math.Max(1, now.Sub(earliest).Hours()/24)
	}

	avgDaily := float64(windowUnits) / windowDays
	supplyDays := float64(p.StockQuantity) / avgDaily

	if supplyDays > t.ExcessSupplyDays {
		return []domain.Alert{newAlert(domain.AlertTypeInventory, domain.PriorityInventory, p.ID, now,
			fmt.Sprintf("%s holds %.0f days of supply: %d units moving at %.2f/day; consider clearing excess",
				p.ID, supplyDays, p.StockQuantity, avgDaily))}
	}

	return nil
}

func (e *Engine) reorderPoint(p domain.ProductSnapshot) int {
	if p.ReorderPoint != nil {
		return *p.ReorderPoint
	}

	return e.thresholds.DefaultReorderPoint
}

// forecastStale reports whether the latest forecast is missing or older
// than the regeneration threshold.
func (e *Engine) forecastStale(lastForecast, now time.Time) bool {
	if lastForecast.IsZero() {
		return true
	}

	return now.Sub(lastForecast) > time.Duration(e.thresholds.StaleForecastDays)*24*time.Hour
}

func newAlert(alertType domain.AlertType, priority int, productID string, now time.Time, message string) domain.Alert {
	return domain.Alert{
		ID:        uuid.NewString(),
		Type:      alertType,
		Message:   message,
		ProductID: productID,
		Timestamp: now,
		Priority:  priority,
	}
}

// groupSales indexes sales by product, each product's history sorted by
// date ascending.
func groupSales(sales []domain.SaleRecord) map[string][]domain.SaleRecord {
	grouped := make(map[string][]domain.SaleRecord)
	for _, s := range sales {
		grouped[s.ProductID] = append(grouped[s.ProductID], s)
	}

	for _, records := range grouped {
		sort.Slice(records, func(i, j int) bool {
			return records[i].SaleDate.Before(records[j].SaleDate)
		})
	}

	return grouped
}

// latestForecasts keeps the newest generation timestamp per product.
func latestForecasts(records []domain.ForecastRecord) map[string]time.Time {
	latest := make(map[string]time.Time, len(records))
	for _, r := range records {
		if r.GeneratedAt.After(latest[r.ProductID]) {
			latest[r.ProductID] = r.GeneratedAt
		}
	}

	return latest
}
