package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderEvent mirrors the payload published by the order service on the
// order-events topic.
type OrderEvent struct {
	Type        string          `json:"type"`
	OrderID     int             `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	UserID      int             `json:"user_id"`
	UserEmail   string          `json:"user_email,omitempty"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total_amount"`
	Timestamp   time.Time       `json:"timestamp"`
}

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)
