package timeseries

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/stockcast/internal/domain"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

// points builds a contiguous daily series starting 2024-01-01.
func points(quantities ...int) []Point {
	start := day("2024-01-01")
	series := make([]Point, len(quantities))
	for i, q := range quantities {
		series[i] = Point{Date: start.AddDate(0, 0, i), Quantity: q}
	}

	return series
}

func sale(productID, date string, quantity int, revenue string) domain.SaleRecord {
	record := domain.SaleRecord{
		ProductID: productID,
		Quantity:  quantity,
		SaleDate:  day(date),
	}
	if revenue != "" {
		record.Revenue = decimal.NullDecimal{Decimal: decimal.RequireFromString(revenue), Valid: true}
	}

	return record
}

func TestDailySeries(t *testing.T) {
	t.Run("empty input yields empty series", func(t *testing.T) {
		assert.Empty(t, DailySeries(nil))
	})

	t.Run("same-day sales are summed", func(t *testing.T) {
		series := DailySeries([]domain.SaleRecord{
			sale("p1", "2024-03-01", 2, "20"),
			sale("p1", "2024-03-01", 3, "30"),
		})

		require.Len(t, series, 1)
		assert.Equal(t, 5, series[0].Quantity)
		assert.True(t, series[0].Revenue.Equal(decimal.NewFromInt(50)), series[0].Revenue.String())
	})

	t.Run("gaps are zero-filled and order restored", func(t *testing.T) {
		series := DailySeries([]domain.SaleRecord{
			sale("p1", "2024-03-05", 4, ""),
			sale("p1", "2024-03-01", 1, "10.50"),
		})

		require.Len(t, series, 5)
		assert.Equal(t, day("2024-03-01"), series[0].Date)
		assert.Equal(t, 1, series[0].Quantity)
		for i := 1; i < 4; i++ {
			assert.Zero(t, series[i].Quantity)
			assert.True(t, series[i].Revenue.IsZero())
		}
		assert.Equal(t, 4, series[4].Quantity)
		assert.True(t, series[4].Revenue.IsZero(), "absent revenue should contribute nothing")
	})

	t.Run("time of day is discarded", func(t *testing.T) {
		series := DailySeries([]domain.SaleRecord{
			{ProductID: "p1", Quantity: 1, SaleDate: time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)},
			{ProductID: "p1", Quantity: 2, SaleDate: time.Date(2024, 3, 1, 22, 15, 0, 0, time.UTC)},
		})

		require.Len(t, series, 1)
		assert.Equal(t, 3, series[0].Quantity)
		assert.Equal(t, day("2024-03-01"), series[0].Date)
	})

	t.Run("single sale yields a single point", func(t *testing.T) {
		series := DailySeries([]domain.SaleRecord{sale("p1", "2024-03-01", 7, "70")})

		require.Len(t, series, 1)
		assert.Equal(t, 7, series[0].Quantity)
	})
}

func TestQuantities(t *testing.T) {
	assert.Equal(t, []float64{1, 0, 3}, Quantities(points(1, 0, 3)))
	assert.Empty(t, Quantities(nil))
}
