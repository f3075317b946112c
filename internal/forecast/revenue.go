// internal/forecast/revenue.go
package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/andresuchdata/stockcast/internal/timeseries"
)

// averageUnitPrice derives the historical average selling price from days
// with actual sales. Days without quantity carry no price signal.
func averageUnitPrice(series []timeseries.Point) decimal.Decimal {
	totalRevenue := decimal.Zero
	totalQuantity := int64(0)

	for _, p := range series {
		if p.Quantity <= 0 {
			continue
		}
		totalRevenue = totalRevenue.Add(p.Revenue)
		totalQuantity += int64(p.Quantity)
	}

	if totalQuantity == 0 {
		return decimal.Zero
	}

	return totalRevenue.Div(decimal.NewFromInt(totalQuantity))
}

// projectRevenue prices forecast quantities at the historical average unit
// price, rounded to cents.
func projectRevenue(series []timeseries.Point, quantities []int) []decimal.Decimal {
	price := averageUnitPrice(series)

	revenues := make([]decimal.Decimal, len(quantities))
	for i, qty := range quantities {
		revenues[i] = price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
	}

	return revenues
}
