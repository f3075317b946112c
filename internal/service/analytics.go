// internal/service/analytics.go
package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/stockcast/internal/alerts"
	"github.com/andresuchdata/stockcast/internal/domain"
	"github.com/andresuchdata/stockcast/internal/forecast"
)

// ProductForecast pairs a product with its generated forecast and the
// seasonal demand profile behind it.
type ProductForecast struct {
	ProductID   string                `json:"product_id"`
	Forecast    domain.ForecastResult `json:"forecast"`
	Seasonality []float64             `json:"seasonality"`
}

// Report bundles the outcome of a full analytics run.
type Report struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Forecasts   []ProductForecast `json:"forecasts"`
	Alerts      []domain.Alert    `json:"alerts"`
}

// Analytics fans forecast generation out across products and assembles
// combined reports.
type Analytics struct {
	forecaster *forecast.Forecaster
	engine     *alerts.Engine
	workers    int
}

// NewAnalytics creates the batch service. workers caps concurrent forecast
// jobs; zero or negative selects one per CPU.
func NewAnalytics(forecaster *forecast.Forecaster, engine *alerts.Engine, workers int) *Analytics {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Analytics{
		forecaster: forecaster,
		engine:     engine,
		workers:    workers,
	}
}

// ForecastAll generates one forecast per product found in the sales data,
// ordered by product ID. Products are forecast concurrently; a failure in
// one product never blocks the others.
func (s *Analytics) ForecastAll(ctx context.Context, sales []domain.SaleRecord, horizonDays int) ([]ProductForecast, error) {
	grouped := make(map[string][]domain.SaleRecord)
	for _, sale := range sales {
		grouped[sale.ProductID] = append(grouped[sale.ProductID], sale)
	}

	ids := make([]string, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]ProductForecast, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = ProductForecast{
				ProductID:   id,
				Forecast:    s.generateSafe(id, grouped[id], horizonDays),
				Seasonality: s.forecaster.SeasonalProfile(grouped[id]),
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Int("products", len(results)).Int("horizon_days", horizonDays).
		Msg("forecast batch complete")

	return results, nil
}

// Snapshot runs forecasts for every product plus the full alert rule set
// and returns them as one report.
func (s *Analytics) Snapshot(ctx context.Context, products []domain.ProductSnapshot, sales []domain.SaleRecord, forecasts []domain.ForecastRecord, horizonDays int) (*Report, error) {
	productForecasts, err := s.ForecastAll(ctx, sales, horizonDays)
	if err != nil {
		return nil, err
	}

	return &Report{
		GeneratedAt: time.Now().UTC(),
		Forecasts:   productForecasts,
		Alerts:      s.engine.Generate(products, sales, forecasts),
	}, nil
}

// generateSafe isolates one product's forecast so a panic cannot take down
// the batch.
func (s *Analytics) generateSafe(productID string, sales []domain.SaleRecord, horizonDays int) (result domain.ForecastResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("product_id", productID).Interface("panic", r).
				Msg("forecast generation panicked")
			result = s.forecaster.Generate(nil, horizonDays)
			result.Errors = append(result.Errors, fmt.Sprintf("forecast generation panicked: %v", r))
		}
	}()

	return s.forecaster.Generate(sales, horizonDays)
}
