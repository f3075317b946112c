// internal/ingest/reader_test.go
package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func writeTempXLSX(t *testing.T, rows [][]any) string {
	t.Helper()

	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, file.SaveAs(path))
	require.NoError(t, file.Close())

	return path
}

func TestReadSales(t *testing.T) {
	t.Run("well formed csv", func(t *testing.T) {
		path := writeTempCSV(t, "sales.csv", `product_id,quantity,sale_date,revenue
p-1,3,2024-05-01,29.97
p-1,1,2024-05-02,9.99
p-2,2,2024-05-02,
`)

		sales, err := ReadSales(path)
		require.NoError(t, err)
		require.Len(t, sales, 3)

		assert.Equal(t, "p-1", sales[0].ProductID)
		assert.Equal(t, 3, sales[0].Quantity)
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), sales[0].SaleDate)
		require.True(t, sales[0].Revenue.Valid)
		assert.True(t, sales[0].Revenue.Decimal.Equal(decimal.RequireFromString("29.97")))

		// Blank revenue stays null rather than zero.
		assert.False(t, sales[2].Revenue.Valid)
	})

	t.Run("header variants", func(t *testing.T) {
		path := writeTempCSV(t, "sales.csv", `SKU,Qty,Date
p-9,4,2024-03-15
`)

		sales, err := ReadSales(path)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, "p-9", sales[0].ProductID)
		assert.Equal(t, 4, sales[0].Quantity)
		assert.False(t, sales[0].Revenue.Valid)
	})

	t.Run("malformed rows are skipped", func(t *testing.T) {
		path := writeTempCSV(t, "sales.csv", `product_id,quantity,sale_date
p-1,three,2024-05-01
,2,2024-05-01
p-1,2,yesterday
p-1,2,2024-05-01
`)

		sales, err := ReadSales(path)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, 2, sales[0].Quantity)
	})

	t.Run("unparseable revenue keeps the sale", func(t *testing.T) {
		path := writeTempCSV(t, "sales.csv", `product_id,quantity,sale_date,revenue
p-1,2,2024-05-01,n/a
`)

		sales, err := ReadSales(path)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.False(t, sales[0].Revenue.Valid)
	})

	t.Run("timestamp formats", func(t *testing.T) {
		path := writeTempCSV(t, "sales.csv", `product_id,quantity,sale_date
p-1,1,2024-05-01 13:45:00
p-1,1,2024-05-02T08:00:00Z
p-1,1,05/03/2024
`)

		sales, err := ReadSales(path)
		require.NoError(t, err)
		require.Len(t, sales, 3)
		assert.Equal(t, time.Date(2024, 5, 1, 13, 45, 0, 0, time.UTC), sales[0].SaleDate)
		assert.Equal(t, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), sales[2].SaleDate)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadSales(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTempCSV(t, "sales.csv", "")

		_, err := ReadSales(path)
		assert.ErrorContains(t, err, "missing header row")
	})

	t.Run("xlsx workbook", func(t *testing.T) {
		path := writeTempXLSX(t, [][]any{
			{"product_id", "quantity", "sale_date", "revenue"},
			{"p-1", "5", "2024-05-01", "49.95"},
		})

		sales, err := ReadSales(path)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, "p-1", sales[0].ProductID)
		assert.Equal(t, 5, sales[0].Quantity)
		require.True(t, sales[0].Revenue.Valid)
		assert.True(t, sales[0].Revenue.Decimal.Equal(decimal.RequireFromString("49.95")))
	})
}

func TestReadProducts(t *testing.T) {
	t.Run("optional columns", func(t *testing.T) {
		path := writeTempCSV(t, "products.csv", `id,stock_quantity,reorder_point,low_stock_threshold,price
p-1,40,12,20,9.99
p-2,7,,,
`)

		products, err := ReadProducts(path)
		require.NoError(t, err)
		require.Len(t, products, 2)

		require.NotNil(t, products[0].ReorderPoint)
		assert.Equal(t, 12, *products[0].ReorderPoint)
		require.NotNil(t, products[0].LowStockThreshold)
		assert.Equal(t, 20, *products[0].LowStockThreshold)
		assert.True(t, products[0].Price.Equal(decimal.RequireFromString("9.99")))

		assert.Nil(t, products[1].ReorderPoint)
		assert.Nil(t, products[1].LowStockThreshold)
		assert.True(t, products[1].Price.IsZero())
	})

	t.Run("bad stock quantity skipped", func(t *testing.T) {
		path := writeTempCSV(t, "products.csv", `id,stock
p-1,lots
p-2,3
`)

		products, err := ReadProducts(path)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "p-2", products[0].ID)
		assert.Equal(t, 3, products[0].StockQuantity)
	})
}

func TestReadForecastLog(t *testing.T) {
	path := writeTempCSV(t, "forecasts.csv", `product_id,generated_at
p-1,2024-05-20T09:00:00Z
p-2,not-a-date
p-2,2024-05-21
`)

	records, err := ReadForecastLog(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "p-1", records[0].ProductID)
	assert.Equal(t, time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC), records[0].GeneratedAt)
	assert.Equal(t, "p-2", records[1].ProductID)
}

func TestNormalizeColumnName(t *testing.T) {
	cases := map[string]string{
		"Product ID":      "productid",
		"product_id":      "productid",
		" Sale-Date ":     "saledate",
		"stock.quantity":  "stockquantity",
		"Reorder / Point": "reorderpoint",
	}

	for raw, want := range cases {
		assert.Equal(t, want, normalizeColumnName(raw), raw)
	}
}
