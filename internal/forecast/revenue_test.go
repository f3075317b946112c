package forecast

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/stockcast/internal/timeseries"
)

func TestProjectRevenue(t *testing.T) {
	t.Run("prices at the historical average", func(t *testing.T) {
		series := []timeseries.Point{
			{Quantity: 5, Revenue: decimal.NewFromInt(50)},
			{Quantity: 5, Revenue: decimal.NewFromInt(50)},
		}

		revenues := projectRevenue(series, []int{5, 10, 0})

		require.Len(t, revenues, 3)
		assert.Equal(t, "50.00", revenues[0].StringFixed(2))
		assert.Equal(t, "100.00", revenues[1].StringFixed(2))
		assert.True(t, revenues[2].IsZero())
	})

	t.Run("zero-quantity days carry no price signal", func(t *testing.T) {
		series := []timeseries.Point{
			{Quantity: 0, Revenue: decimal.NewFromInt(999)},
			{Quantity: 2, Revenue: decimal.NewFromInt(20)},
		}

		revenues := projectRevenue(series, []int{1})

		require.Len(t, revenues, 1)
		assert.Equal(t, "10.00", revenues[0].StringFixed(2))
	})

	t.Run("no sold units means zero revenue", func(t *testing.T) {
		revenues := projectRevenue(nil, []int{3, 3})

		require.Len(t, revenues, 2)
		for _, r := range revenues {
			assert.True(t, r.IsZero())
		}
	})

	t.Run("projected revenue is rounded to cents", func(t *testing.T) {
		series := []timeseries.Point{{Quantity: 3, Revenue: decimal.NewFromInt(10)}}

		revenues := projectRevenue(series, []int{1})

		assert.Equal(t, "3.33", revenues[0].StringFixed(2))
	})
}

func TestAverageUnitPrice(t *testing.T) {
	series := []timeseries.Point{
		{Quantity: 3, Revenue: decimal.NewFromInt(30)},
		{Quantity: 1, Revenue: decimal.NewFromInt(20)},
	}

	price := averageUnitPrice(series)

	assert.Equal(t, "12.50", price.StringFixed(2))
}
