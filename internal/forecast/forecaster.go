// internal/forecast/forecaster.go
package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/andresuchdata/stockcast/internal/domain"
	"github.com/andresuchdata/stockcast/internal/timeseries"
)

// Forecast horizon bounds in days. Requested horizons outside the range are
// clamped, never rejected.
const (
	MinHorizonDays = 1
	MaxHorizonDays = 90
)

// emptyHistoryConfidence is reported when there is no history to model.
const emptyHistoryConfidence = 0.5

// Params holds the smoothing constants and data thresholds for forecast
// generation.
type Params struct {
	Alpha           float64 // level smoothing
	Beta            float64 // trend smoothing
	Gamma           float64 // seasonal smoothing
	SmoothingAlpha  float64 // single-smoothing constant for the fallback
	SeasonalPeriod  int
	MinHistory      int // daily points required for a seasonal fit
	ConfidenceLevel float64
}

// DefaultParams returns the tuned production constants.
func DefaultParams() Params {
	return Params{
		Alpha:           0.2,
		Beta:            0.1,
		Gamma:           0.3,
		SmoothingAlpha:  0.3,
		SeasonalPeriod:  timeseries.DefaultSeasonalPeriod,
		MinHistory:      14,
		ConfidenceLevel: 0.95,
	}
}

// Forecaster generates demand forecasts from raw sales history.
type Forecaster struct {
	params Params
}

// NewForecaster creates a Forecaster with the given parameters.
func NewForecaster(params Params) *Forecaster {
	return &Forecaster{params: params}
}

// Generate produces a forecast for one product's sales history. It always
// returns a usable result: model failures degrade to simpler methods and
// are reported in the result's Errors field, never as a Go error.
func (f *Forecaster) Generate(sales []domain.SaleRecord, horizonDays int) domain.ForecastResult {
	days := clampHorizon(horizonDays)

	series := timeseries.DailySeries(sales)
	if len(series) == 0 {
		return emptyResult(days)
	}

	var (
		quantities []int
		residuals  []float64
		warnings   []string
	)

	if len(series) < f.params.MinHistory {
		quantities, residuals = simpleSmoothing(series, days, f.params.SmoothingAlpha)
		warnings = append(warnings, fmt.Sprintf(
			"%d daily points of history, need %d for a seasonal fit; used exponential smoothing",
			len(series), f.params.MinHistory))
		log.Warn().Int("points", len(series)).Int("required", f.params.MinHistory).
			Msg("history too short for seasonal fit")
	} else {
		var err error
		quantities, residuals, err = f.holtWinters(series, days)
		if err != nil {
			quantities = naiveLinear(series, days)
			residuals = nil
			warnings = append(warnings, fmt.Sprintf("seasonal fit failed (%v); used naive linear projection", err))
			log.Warn().Err(err).Msg("holt-winters fit failed, falling back to naive projection")
		}
	}

	start := series[len(series)-1].Date.AddDate(0, 0, 1)

	return domain.ForecastResult{
		Dates:      forecastDates(start, days),
		Quantities: quantities,
		Revenues:   projectRevenue(series, quantities),
		Confidence: confidenceInterval(residuals, days, f.params.ConfidenceLevel),
		Errors:     append([]string{}, warnings...),
	}
}

// SeasonalProfile derives the normalized demand profile across the
// configured seasonal cycle, 1.0 meaning an average day. History shorter
// than two full cycles reports a flat profile.
func (f *Forecaster) SeasonalProfile(sales []domain.SaleRecord) []float64 {
	return timeseries.SeasonalIndices(timeseries.DailySeries(sales), f.params.SeasonalPeriod)
}

// holtWinters wraps the seasonal fit with a panic guard so a numeric bug in
// the model can never take down a batch run.
func (f *Forecaster) holtWinters(series []timeseries.Point, days int) (quantities []int, residuals []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("holt-winters panic: %v", r)
		}
	}()

	st, err := fitHoltWinters(series, f.params)
	if err != nil {
		return nil, nil, err
	}

	return st.project(days), st.residuals, nil
}

// naiveLinear projects the historical daily mean along the fitted trend
// line. Last-resort method, it produces no residuals.
func naiveLinear(series []timeseries.Point, days int) []int {
	mean := stat.Mean(timeseries.Quantities(series), nil)
	slope, _ := timeseries.Trend(series)

	forecast := make([]int, days)
	for i := range forecast {
		forecast[i] = int(math.Max(0, math.Round(mean+slope*float64(i+1))))
	}

	return forecast
}

func clampHorizon(days int) int {
	if days < MinHorizonDays {
		return MinHorizonDays
	}
	if days > MaxHorizonDays {
		return MaxHorizonDays
	}

	return days
}

// forecastDates renders consecutive ISO dates starting at start.
func forecastDates(start time.Time, days int) []string {
	dates := make([]string, days)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format("2006-01-02")
	}

	return dates
}

// emptyResult is the degenerate forecast for a product with no history:
// all-zero quantities dated from today.
func emptyResult(days int) domain.ForecastResult {
	confidence := make([]float64, days)
	for i := range confidence {
		confidence[i] = emptyHistoryConfidence
	}

	return domain.ForecastResult{
		Dates:      forecastDates(today(), days),
		Quantities: make([]int, days),
		Revenues:   make([]decimal.Decimal, days),
		Confidence: confidence,
		Errors:     []string{},
	}
}

func today() time.Time {
	now := time.Now().UTC()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
