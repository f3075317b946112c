// cmd/analytics/main.go
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/stockcast/internal/config"
	"github.com/andresuchdata/stockcast/pkg/logger"
)

func newSalesFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "sales",
		Usage:    "Path to the sales export (CSV or XLSX)",
		Required: true,
		EnvVars:  []string{"SALES_FILE"},
	}
}

func newProductsFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "products",
		Usage:    "Path to the product inventory export (CSV or XLSX)",
		Required: true,
		EnvVars:  []string{"PRODUCTS_FILE"},
	}
}

func newForecastLogFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "forecast-log",
		Usage:   "Path to the forecast generation log (CSV or XLSX)",
		EnvVars: []string{"FORECAST_LOG_FILE"},
	}
}

func newDaysFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "days",
		Usage: "Forecast horizon in days (1-90)",
	}
}

func newFormatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: "Output format (json or csv)",
		Value: "json",
	}
}

func newOutputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "output",
		Usage: "Write output to a file instead of stdout",
	}
}

func setupLogging(c *cli.Context) error {
	level := c.String("log-level")
	if level == "" {
		level = config.Load().App.LogLevel
	}
	logger.SetLevel(level)

	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "stockcast",
		Usage: "Demand forecasting and operational alerts for inventory data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (trace, debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			{
				Name:  "forecast",
				Usage: "Generate demand forecasts from a sales export",
				Flags: []cli.Flag{
					newSalesFlag(),
					&cli.StringSliceFlag{
						Name:  "product",
						Usage: "Limit the forecast to specific product IDs (repeatable)",
					},
					newDaysFlag(),
					newFormatFlag(),
					newOutputFlag(),
				},
				Action: runForecast,
			},
			{
				Name:  "alerts",
				Usage: "Scan inventory and sales for operational alerts",
				Flags: []cli.Flag{
					newProductsFlag(),
					newSalesFlag(),
					newForecastLogFlag(),
					newFormatFlag(),
					newOutputFlag(),
				},
				Action: runAlerts,
			},
			{
				Name:  "report",
				Usage: "Produce a combined forecast and alert report",
				Flags: []cli.Flag{
					newProductsFlag(),
					newSalesFlag(),
					newForecastLogFlag(),
					newDaysFlag(),
					newOutputFlag(),
				},
				Action: runReport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
