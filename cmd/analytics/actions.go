// cmd/analytics/actions.go
package main

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/stockcast/internal/alerts"
	"github.com/andresuchdata/stockcast/internal/config"
	"github.com/andresuchdata/stockcast/internal/domain"
	"github.com/andresuchdata/stockcast/internal/forecast"
	"github.com/andresuchdata/stockcast/internal/ingest"
	"github.com/andresuchdata/stockcast/internal/service"
)

func forecastParams(cfg *config.Config) forecast.Params {
	return forecast.Params{
		Alpha:           cfg.Forecast.Alpha,
		Beta:            cfg.Forecast.Beta,
		Gamma:           cfg.Forecast.Gamma,
		SmoothingAlpha:  cfg.Forecast.SmoothingAlpha,
		SeasonalPeriod:  cfg.Forecast.SeasonalPeriod,
		MinHistory:      cfg.Forecast.MinHistory,
		ConfidenceLevel: cfg.Forecast.ConfidenceLevel,
	}
}

func alertThresholds(cfg *config.Config) alerts.Thresholds {
	return alerts.Thresholds{
		DefaultReorderPoint: cfg.Alerts.DefaultReorderPoint,
		TrendMinHistory:     cfg.Alerts.TrendMinHistory,
		TrendWindowDays:     cfg.Alerts.TrendWindowDays,
		TrendIncreaseRatio:  cfg.Alerts.TrendIncreaseRatio,
		TrendDecreaseRatio:  cfg.Alerts.TrendDecreaseRatio,
		StaleForecastDays:   cfg.Alerts.StaleForecastDays,
		PriceMinHistory:     cfg.Alerts.PriceMinHistory,
		HighVelocity:        cfg.Alerts.HighVelocity,
		LowVelocity:         cfg.Alerts.LowVelocity,
		MaxIncreasePercent:  cfg.Alerts.MaxIncreasePercent,
		MaxDecreasePercent:  cfg.Alerts.MaxDecreasePercent,
		ExcessWindowDays:    cfg.Alerts.ExcessWindowDays,
		ExcessSupplyDays:    cfg.Alerts.ExcessSupplyDays,
		ExcessMinStock:      cfg.Alerts.ExcessMinStock,
	}
}

func newService(cfg *config.Config) *service.Analytics {
	forecaster := forecast.NewForecaster(forecastParams(cfg))
	engine := alerts.NewEngine(alertThresholds(cfg))

	return service.NewAnalytics(forecaster, engine, cfg.App.Workers)
}

// horizonDays prefers the --days flag, falling back to configuration.
func horizonDays(c *cli.Context, cfg *config.Config) int {
	if days := c.Int("days"); days > 0 {
		return days
	}

	return cfg.Forecast.HorizonDays
}

func filterSales(sales []domain.SaleRecord, productIDs []string) []domain.SaleRecord {
	keep := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		keep[id] = true
	}

	filtered := make([]domain.SaleRecord, 0, len(sales))
	for _, sale := range sales {
		if keep[sale.ProductID] {
			filtered = append(filtered, sale)
		}
	}

	return filtered
}

func runForecast(c *cli.Context) error {
	cfg := config.Load()

	sales, err := ingest.ReadSales(c.String("sales"))
	if err != nil {
		return err
	}
	if ids := c.StringSlice("product"); len(ids) > 0 {
		sales = filterSales(sales, ids)
	}

	forecasts, err := newService(cfg).ForecastAll(c.Context, sales, horizonDays(c, cfg))
	if err != nil {
		return err
	}

	return writeForecasts(c, forecasts)
}

func runAlerts(c *cli.Context) error {
	cfg := config.Load()

	products, err := ingest.ReadProducts(c.String("products"))
	if err != nil {
		return err
	}
	sales, err := ingest.ReadSales(c.String("sales"))
	if err != nil {
		return err
	}

	var forecasts []domain.ForecastRecord
	if path := c.String("forecast-log"); path != "" {
		forecasts, err = ingest.ReadForecastLog(path)
		if err != nil {
			return err
		}
	}

	engine := alerts.NewEngine(alertThresholds(cfg))
	result := engine.Generate(products, sales, forecasts)

	log.Info().Int("products", len(products)).Int("alerts", len(result)).Msg("alert scan complete")

	return writeAlerts(c, result)
}

func runReport(c *cli.Context) error {
	cfg := config.Load()

	products, err := ingest.ReadProducts(c.String("products"))
	if err != nil {
		return err
	}
	sales, err := ingest.ReadSales(c.String("sales"))
	if err != nil {
		return err
	}

	var forecasts []domain.ForecastRecord
	if path := c.String("forecast-log"); path != "" {
		forecasts, err = ingest.ReadForecastLog(path)
		if err != nil {
			return err
		}
	}

	report, err := newService(cfg).Snapshot(c.Context, products, sales, forecasts, horizonDays(c, cfg))
	if err != nil {
		return err
	}

	return writeReport(c, report)
}
