// internal/timeseries/series.go
package timeseries

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/stockcast/internal/domain"
)

// Point represents one day of aggregated sales for a product
type Point struct {
	Date     time.Time       `json:"date"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DailySeries aggregates raw sale records into a contiguous daily series.
// Sales on the same calendar day (UTC) are summed, days without sales
// between the first and last date are zero-filled, and the result is
// ordered by date.
func DailySeries(sales []domain.SaleRecord) []Point {
	if len(sales) == 0 {
		return nil
	}

	type bucket struct {
		quantity int
		revenue  decimal.Decimal
	}

	// 1. Bucket quantities and revenue by UTC day
	days := make(map[time.Time]*bucket, len(sales))
	var first, last time.Time

	for _, sale := range sales {
		day := truncateDay(sale.SaleDate)

		b, ok := days[day]
		if !ok {
			b = &bucket{}
			days[day] = b
		}

		b.quantity += sale.Quantity
		if sale.Revenue.Valid {
			b.revenue = b.revenue.Add(sale.Revenue.Decimal)
		}

		if first.IsZero() || day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}

	// 2. Walk the full window, zero-filling days without sales
	size := int(last.Sub(first).Hours()/24) + 1
	series := make([]Point, 0, size)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		point := Point{Date: day}
		if b, ok := days[day]; ok {
			point.Quantity = b.quantity
			point.Revenue = b.revenue
		}
		series = append(series, point)
	}

	return series
}

// Quantities extracts the series quantities as floats for numeric routines.
func Quantities(series []Point) []float64 {
	out := make([]float64, len(series))
	for i, p := range series {
		out[i] = float64(p.Quantity)
	}

	return out
}

// truncateDay normalizes a timestamp to UTC midnight.
func truncateDay(t time.Time) time.Time {
	t = t.UTC()

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
