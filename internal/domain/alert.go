// internal/domain/alert.go
package domain

import "time"

// AlertType classifies an operational alert.
type AlertType string

const (
	AlertTypeCritical  AlertType = "critical"
	AlertTypeTrend     AlertType = "trend"
	AlertTypePrice     AlertType = "price"
	AlertTypeInventory AlertType = "inventory"
)

// Alert priority levels, 1 is the most urgent.
const (
	PriorityCritical  = 1
	PriorityTrend     = 2
	PriorityPrice     = 3
	PriorityInventory = 4
)

var priorityLabels = map[int]string{
	PriorityCritical:  "Critical",
	PriorityTrend:     "Trend",
	PriorityPrice:     "Price",
	PriorityInventory: "Inventory",
}

// PriorityLabel returns a human-readable label for an alert priority.
func PriorityLabel(priority int) string {
	if label, ok := priorityLabels[priority]; ok {
		return label
	}

	return "Unknown"
}

// Alert represents an operational alert raised for a product
type Alert struct {
	ID        string    `json:"id"`
	Type      AlertType `json:"type"`
	Message   string    `json:"message"`
	ProductID string    `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
	Priority  int       `json:"priority"`
}
