// internal/forecast/holt_winters.go
package forecast

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/andresuchdata/stockcast/internal/timeseries"
)

// errDiverged reports that smoothing produced a non-finite component.
var errDiverged = errors.New("holt-winters state diverged")

// holtWintersState holds the level, trend and seasonal components after the
// training pass. Projection only reads the state, never mutates it.
type holtWintersState struct {
	level     float64
	trend     float64
	seasonal  []float64
	period    int
	residuals []float64
}

// fitHoltWinters runs multiplicative triple exponential smoothing over the
// historical series and returns the frozen state. The seasonal cycle is
// capped at half the series length so every position is observed at least
// twice. The series must not be empty.
func fitHoltWinters(series []timeseries.Point, params Params) (*holtWintersState, error) {
	data := timeseries.Quantities(series)

	period := params.SeasonalPeriod
	if period <= 0 {
		period = timeseries.DefaultSeasonalPeriod
	}
	if half := len(data) / 2; period > half {
		period = half
	}
	if period < 1 {
		period = 1
	}

	st := &holtWintersState{
		period:    period,
		seasonal:  initialSeasonal(data, period),
		residuals: make([]float64, 0, len(data)),
	}

	// 1. Seed level and trend from the first cycle(s)
	st.level = stat.Mean(data[:period], nil)
	if len(data) >= 2*period {
		st.trend = (stat.Mean(data[period:2*period], nil) - st.level) / float64(period)
	}

	// 2. Training pass: one-step-ahead forecast, then component updates
	for i, actual := range data {
		pos := i % period

		s := st.seasonal[pos]
		if s == 0 {
			s = 1
		}

		fitted := (st.level + st.trend) * s
		st.residuals = append(st.residuals, actual-fitted)

		prevLevel := st.level
		st.level = params.Alpha*(actual/s) + (1-params.Alpha)*(st.level+st.trend)
		st.trend = params.Beta*(st.level-prevLevel) + (1-params.Beta)*st.trend
		if st.level != 0 {
			st.seasonal[pos] = params.Gamma*(actual/st.level) + (1-params.Gamma)*s
		}
	}

	if !st.finite() {
		return nil, errDiverged
	}

	return st, nil
}

// initialSeasonal estimates per-position seasonal ratios from complete
// cycles, normalized to mean 1. Cycles with zero mean carry no signal and
// are skipped.
func initialSeasonal(data []float64, period int) []float64 {
	seasonal := make([]float64, period)
	counts := make([]float64, period)

	cycles := len(data) / period
	for c := 0; c < cycles; c++ {
		cycle := data[c*period : (c+1)*period]
		mean := stat.Mean(cycle, nil)
		if mean == 0 {
			continue
		}
		for pos, v := range cycle {
			seasonal[pos] += v / mean
			counts[pos]++
		}
	}

	for pos := range seasonal {
		if counts[pos] > 0 {
			seasonal[pos] /= counts[pos]
		} else {
			seasonal[pos] = 1
		}
	}

	if mean := stat.Mean(seasonal, nil); mean != 0 {
		for pos := range seasonal {
			seasonal[pos] /= mean
		}
	}

	return seasonal
}

// project emits the forecast for the requested horizon from frozen state.
func (st *holtWintersState) project(days int) []int {
	forecast := make([]int, days)
	for i := range forecast {
		value := (st.level + st.trend) * st.seasonal[i%st.period]
		forecast[i] = int(math.Max(0, math.Round(value)))
	}

	return forecast
}

func (st *holtWintersState) finite() bool {
	components := append([]float64{st.level, st.trend}, st.seasonal...)
	for _, v := range components {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
