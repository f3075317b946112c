// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Forecast ForecastConfig
	Alerts   AlertConfig
}

type AppConfig struct {
	LogLevel string
	Workers  int
}

type ForecastConfig struct {
	Alpha           float64
	Beta            float64
	Gamma           float64
	SmoothingAlpha  float64
	SeasonalPeriod  int
	MinHistory      int
	ConfidenceLevel float64
	HorizonDays     int
}

type AlertConfig struct {
	DefaultReorderPoint int

	TrendMinHistory    int
	TrendWindowDays    int
	TrendIncreaseRatio float64
	TrendDecreaseRatio float64
	StaleForecastDays  int

	PriceMinHistory    int
	HighVelocity       float64
	LowVelocity        float64
	MaxIncreasePercent int
	MaxDecreasePercent int

	ExcessWindowDays int
	ExcessSupplyDays float64
	ExcessMinStock   int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("ANALYTICS_WORKERS", 0)
		viper.SetDefault("FORECAST_ALPHA", 0.2)
		viper.SetDefault("FORECAST_BETA", 0.1)
		viper.SetDefault("FORECAST_GAMMA", 0.3)
		viper.SetDefault("FORECAST_SMOOTHING_ALPHA", 0.3)
		viper.SetDefault("FORECAST_SEASONAL_PERIOD", 7)
		viper.SetDefault("FORECAST_MIN_HISTORY", 14)
		viper.SetDefault("FORECAST_CONFIDENCE_LEVEL", 0.95)
		viper.SetDefault("FORECAST_HORIZON_DAYS", 30)
		viper.SetDefault("ALERT_DEFAULT_REORDER_POINT", 5)
		viper.SetDefault("ALERT_TREND_MIN_HISTORY", 5)
		viper.SetDefault("ALERT_TREND_WINDOW_DAYS", 7)
		viper.SetDefault("ALERT_TREND_INCREASE_RATIO", 1.5)
		viper.SetDefault("ALERT_TREND_DECREASE_RATIO", 0.6)
		viper.SetDefault("ALERT_STALE_FORECAST_DAYS", 14)
		viper.SetDefault("ALERT_PRICE_MIN_HISTORY", 3)
		viper.SetDefault("ALERT_HIGH_VELOCITY", 1.0)
		viper.SetDefault("ALERT_LOW_VELOCITY", 0.2)
		viper.SetDefault("ALERT_MAX_INCREASE_PERCENT", 15)
		viper.SetDefault("ALERT_MAX_DECREASE_PERCENT", 25)
		viper.SetDefault("ALERT_EXCESS_WINDOW_DAYS", 30)
		viper.SetDefault("ALERT_EXCESS_SUPPLY_DAYS", 120.0)
		viper.SetDefault("ALERT_EXCESS_MIN_STOCK", 10)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			App: AppConfig{
				LogLevel: viper.GetString("LOG_LEVEL"),
				Workers:  viper.GetInt("ANALYTICS_WORKERS"),
			},
			Forecast: ForecastConfig{
				Alpha:           viper.GetFloat64("FORECAST_ALPHA"),
				Beta:            viper.GetFloat64("FORECAST_BETA"),
				Gamma:           viper.GetFloat64("FORECAST_GAMMA"),
				SmoothingAlpha:  viper.GetFloat64("FORECAST_SMOOTHING_ALPHA"),
				SeasonalPeriod:  viper.GetInt("FORECAST_SEASONAL_PERIOD"),
				MinHistory:      viper.GetInt("FORECAST_MIN_HISTORY"),
				ConfidenceLevel: viper.GetFloat64("FORECAST_CONFIDENCE_LEVEL"),
				HorizonDays:     viper.GetInt("FORECAST_HORIZON_DAYS"),
			},
			Alerts: AlertConfig{
				DefaultReorderPoint: viper.GetInt("ALERT_DEFAULT_REORDER_POINT"),
				TrendMinHistory:     viper.GetInt("ALERT_TREND_MIN_HISTORY"),
				TrendWindowDays:     viper.GetInt("ALERT_TREND_WINDOW_DAYS"),
				TrendIncreaseRatio:  viper.GetFloat64("ALERT_TREND_INCREASE_RATIO"),
				TrendDecreaseRatio:  viper.GetFloat64("ALERT_TREND_DECREASE_RATIO"),
				StaleForecastDays:   viper.GetInt("ALERT_STALE_FORECAST_DAYS"),
				PriceMinHistory:     viper.GetInt("ALERT_PRICE_MIN_HISTORY"),
				HighVelocity:        viper.GetFloat64("ALERT_HIGH_VELOCITY"),
				LowVelocity:         viper.GetFloat64("ALERT_LOW_VELOCITY"),
				MaxIncreasePercent:  viper.GetInt("ALERT_MAX_INCREASE_PERCENT"),
				MaxDecreasePercent:  viper.GetInt("ALERT_MAX_DECREASE_PERCENT"),
				ExcessWindowDays:    viper.GetInt("ALERT_EXCESS_WINDOW_DAYS"),
				ExcessSupplyDays:    viper.GetFloat64("ALERT_EXCESS_SUPPLY_DAYS"),
				ExcessMinStock:      viper.GetInt("ALERT_EXCESS_MIN_STOCK"),
			},
		}
	})

	return instance
}
