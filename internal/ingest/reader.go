// internal/ingest/reader.go
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/andresuchdata/stockcast/internal/domain"
)

// columnNameSanitizer strips separators so header matching tolerates the
// usual export variations (Product ID, product_id, product-id).
var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func normalizeColumnName(name string) string {
	return strings.ToLower(columnNameSanitizer.Replace(strings.TrimSpace(name)))
}

// colIndex maps normalized header names to column positions.
func colIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[normalizeColumnName(name)] = i
	}

	return idx
}

// pick returns the first matching column value from the row, trimmed.
func pick(idx map[string]int, row []string, names ...string) (string, bool) {
	for _, name := range names {
		if i, ok := idx[name]; ok && i < len(row) {
			return strings.TrimSpace(row[i]), true
		}
	}

	return "", false
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

func parseDate(value string) (time.Time, error) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// readRows loads every row of a CSV or XLSX file, header first.
func readRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSXRows(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return rows, nil
}

// ReadSales loads sale records from a CSV or XLSX export. Malformed rows
// are skipped with a warning so one bad row cannot sink an import.
func ReadSales(path string) ([]domain.SaleRecord, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}

	idx := colIndex(rows[0])
	sales := make([]domain.SaleRecord, 0, len(rows)-1)

	for n, row := range rows[1:] {
		productID, _ := pick(idx, row, "productid", "sku", "product")
		if productID == "" {
			log.Warn().Str("file", path).Int("row", n+2).Msg("skipping sale with no product id")
			continue
		}

		qtyRaw, _ := pick(idx, row, "quantity", "qty", "units")
		quantity, err := strconv.Atoi(qtyRaw)
		if err != nil {
			log.Warn().Str("file", path).Int("row", n+2).Str("quantity", qtyRaw).
				Msg("skipping sale with bad quantity")
			continue
		}

		dateRaw, _ := pick(idx, row, "saledate", "date", "soldat")
		saleDate, err := parseDate(dateRaw)
		if err != nil {
			log.Warn().Str("file", path).Int("row", n+2).Str("date", dateRaw).
				Msg("skipping sale with bad date")
			continue
		}

		sale := domain.SaleRecord{
			ProductID: productID,
			Quantity:  quantity,
			SaleDate:  saleDate,
		}

		if raw, ok := pick(idx, row, "revenue", "amount", "total"); ok && raw != "" {
			revenue, err := decimal.NewFromString(raw)
			if err != nil {
				log.Warn().Str("file", path).Int("row", n+2).Str("revenue", raw).
					Msg("ignoring unparseable revenue")
			} else {
				sale.Revenue = decimal.NullDecimal{Decimal: revenue, Valid: true}
			}
		}

		sales = append(sales, sale)
	}

	return sales, nil
}

// ReadProducts loads product inventory snapshots from a CSV or XLSX export.
func ReadProducts(path string) ([]domain.ProductSnapshot, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}

	idx := colIndex(rows[0])
	products := make([]domain.ProductSnapshot, 0, len(rows)-1)

	for n, row := range rows[1:] {
		id, _ := pick(idx, row, "id", "productid", "sku")
		if id == "" {
			log.Warn().Str("file", path).Int("row", n+2).Msg("skipping product with no id")
			continue
		}

		stockRaw, _ := pick(idx, row, "stockquantity", "stock", "onhand")
		stock, err := strconv.Atoi(stockRaw)
		if err != nil {
			log.Warn().Str("file", path).Int("row", n+2).Str("stock", stockRaw).
				Msg("skipping product with bad stock quantity")
			continue
		}

		product := domain.ProductSnapshot{ID: id, StockQuantity: stock}

		if raw, ok := pick(idx, row, "reorderpoint", "reorder"); ok && raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				product.ReorderPoint = &v
			}
		}
		if raw, ok := pick(idx, row, "lowstockthreshold", "lowstock"); ok && raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				product.LowStockThreshold = &v
			}
		}
		if raw, ok := pick(idx, row, "price", "unitprice"); ok && raw != "" {
			if v, err := decimal.NewFromString(raw); err == nil {
				product.Price = v
			}
		}

		products = append(products, product)
	}

	return products, nil
}

// ReadForecastLog loads the history of when forecasts were generated per
// product, used by the alert engine to spot stale forecasts.
func ReadForecastLog(path string) ([]domain.ForecastRecord, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}

	idx := colIndex(rows[0])
	records := make([]domain.ForecastRecord, 0, len(rows)-1)

	for n, row := range rows[1:] {
		productID, _ := pick(idx, row, "productid", "sku", "product")
		if productID == "" {
			log.Warn().Str("file", path).Int("row", n+2).Msg("skipping forecast record with no product id")
			continue
		}

		raw, _ := pick(idx, row, "generatedat", "createdat", "date")
		generatedAt, err := parseDate(raw)
		if err != nil {
			log.Warn().Str("file", path).Int("row", n+2).Str("date", raw).
				Msg("skipping forecast record with bad timestamp")
			continue
		}

		records = append(records, domain.ForecastRecord{ProductID: productID, GeneratedAt: generatedAt})
	}

	return records, nil
}
