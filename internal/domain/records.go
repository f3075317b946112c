// internal/domain/records.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultReorderPoint is substituted when a product carries no reorder point.
const DefaultReorderPoint = 5

// SaleRecord represents a single sales transaction for a product
type SaleRecord struct {
	ProductID string              `json:"product_id"`
	Quantity  int                 `json:"quantity"`
	SaleDate  time.Time           `json:"sale_date"`
	Revenue   decimal.NullDecimal `json:"revenue"`
}

// ProductSnapshot represents the current inventory state of a product
type ProductSnapshot struct {
	ID                string          `json:"id"`
	StockQuantity     int             `json:"stock_quantity"`
	ReorderPoint      *int            `json:"reorder_point,omitempty"`
	LowStockThreshold *int            `json:"low_stock_threshold,omitempty"`
	Price             decimal.Decimal `json:"price"`
}

// ForecastRecord represents metadata about a previously generated forecast
type ForecastRecord struct {
	ProductID   string    `json:"product_id"`
	GeneratedAt time.Time `json:"generated_at"`
}
