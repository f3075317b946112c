// cmd/analytics/output.go
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/stockcast/internal/domain"
	"github.com/andresuchdata/stockcast/internal/service"
)

// openOutput returns the destination writer and a close function. An empty
// path means stdout.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	return file, file.Close, nil
}

func writeJSON(out io.Writer, payload any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	return encoder.Encode(payload)
}

func writeForecasts(c *cli.Context, forecasts []service.ProductForecast) error {
	out, closeOutput, err := openOutput(c.String("output"))
	if err != nil {
		return err
	}
	defer closeOutput()

	switch format := c.String("format"); format {
	case "json":
		return writeJSON(out, forecasts)
	case "csv":
		return writeForecastCSV(out, forecasts)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeForecastCSV(out io.Writer, forecasts []service.ProductForecast) error {
	writer := csv.NewWriter(out)

	if err := writer.Write([]string{"product_id", "date", "quantity", "revenue", "confidence"}); err != nil {
		return err
	}

	for _, pf := range forecasts {
		f := pf.Forecast
		for i, date := range f.Dates {
			row := []string{
				pf.ProductID,
				date,
				strconv.Itoa(f.Quantities[i]),
				f.Revenues[i].StringFixed(2),
				strconv.FormatFloat(f.Confidence[i], 'f', 4, 64),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()

	return writer.Error()
}

func writeAlerts(c *cli.Context, alerts []domain.Alert) error {
	out, closeOutput, err := openOutput(c.String("output"))
	if err != nil {
		return err
	}
	defer closeOutput()

	switch format := c.String("format"); format {
	case "json":
		return writeJSON(out, alerts)
	case "csv":
		return writeAlertsCSV(out, alerts)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeAlertsCSV(out io.Writer, alerts []domain.Alert) error {
	writer := csv.NewWriter(out)

	if err := writer.Write([]string{"id", "type", "priority", "priority_label", "product_id", "message", "timestamp"}); err != nil {
		return err
	}

	for _, alert := range alerts {
		row := []string{
			alert.ID,
			string(alert.Type),
			strconv.Itoa(alert.Priority),
			domain.PriorityLabel(alert.Priority),
			alert.ProductID,
			alert.Message,
			alert.Timestamp.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}

func writeReport(c *cli.Context, report *service.Report) error {
	out, closeOutput, err := openOutput(c.String("output"))
	if err != nil {
		return err
	}
	defer closeOutput()

	return writeJSON(out, report)
}
