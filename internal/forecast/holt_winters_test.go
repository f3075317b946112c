package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitHoltWinters(t *testing.T) {
	params := DefaultParams()

	t.Run("constant demand stays constant", func(t *testing.T) {
		st, err := fitHoltWinters(points(repeat(6, 14)...), params)

		require.NoError(t, err)
		assert.InDelta(t, 6.0, st.level, 1e-9)
		assert.InDelta(t, 0.0, st.trend, 1e-9)
		assert.Equal(t, []int{6, 6, 6, 6, 6}, st.project(5))
		for _, r := range st.residuals {
			assert.InDelta(t, 0.0, r, 1e-9)
		}
	})

	t.Run("period shrinks to half the series length", func(t *testing.T) {
		st, err := fitHoltWinters(points(repeat(5, 8)...), params)

		require.NoError(t, err)
		assert.Equal(t, 4, st.period)
	})

	t.Run("weekly seasonality survives projection", func(t *testing.T) {
		week := []int{10, 10, 10, 10, 10, 10, 30}
		var history []int
		for i := 0; i < 4; i++ {
			history = append(history, week...)
		}

		st, err := fitHoltWinters(points(history...), params)
		require.NoError(t, err)

		forecast := st.project(7)
		assert.Greater(t, forecast[6], forecast[0], "the spike day should outsell the rest of the week")
	})

	t.Run("steady growth produces a positive trend", func(t *testing.T) {
		var history []int
		for i := 1; i <= 20; i++ {
			history = append(history, i)
		}

		st, err := fitHoltWinters(points(history...), params)

		require.NoError(t, err)
		assert.Positive(t, st.trend)
	})

	t.Run("projection never goes negative", func(t *testing.T) {
		st, err := fitHoltWinters(points(20, 18, 16, 14, 12, 10, 8, 6, 4, 2, 1, 0, 0, 0), params)

		require.NoError(t, err)
		for _, q := range st.project(30) {
			assert.GreaterOrEqual(t, q, 0)
		}
	})

	t.Run("one residual per historical point", func(t *testing.T) {
		st, err := fitHoltWinters(points(repeat(3, 17)...), params)

		require.NoError(t, err)
		assert.Len(t, st.residuals, 17)
	})

	t.Run("non-finite state is rejected", func(t *testing.T) {
		bad := params
		bad.Alpha = math.NaN()

		_, err := fitHoltWinters(points(repeat(5, 14)...), bad)

		assert.ErrorIs(t, err, errDiverged)
	})
}

func TestInitialSeasonal(t *testing.T) {
	t.Run("ratios are normalized to mean one", func(t *testing.T) {
		seasonal := initialSeasonal([]float64{10, 20, 10, 20}, 2)

		require.Len(t, seasonal, 2)
		assert.InDelta(t, 1.0, (seasonal[0]+seasonal[1])/2, 1e-9)
		assert.Less(t, seasonal[0], seasonal[1])
	})

	t.Run("zero-mean cycles are skipped", func(t *testing.T) {
		seasonal := initialSeasonal([]float64{0, 0, 4, 8}, 2)

		require.Len(t, seasonal, 2)
		assert.InDelta(t, 4.0/6.0, seasonal[0], 1e-9)
		assert.InDelta(t, 8.0/6.0, seasonal[1], 1e-9)
	})

	t.Run("all-zero data is flat", func(t *testing.T) {
		seasonal := initialSeasonal([]float64{0, 0, 0, 0}, 2)

		assert.Equal(t, []float64{1, 1}, seasonal)
	})
}
