package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeRestaurant OrderType = "restaurant"
	OrderTypeTiffin     OrderType = "tiffin"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeRestaurant || t == OrderTypeTiffin
}

type OrderStatus string

const (
	StatusPending          OrderStatus = "pending"
	StatusConfirmed        OrderStatus = "confirmed"
	StatusPreparing        OrderStatus = "preparing"
	StatusReadyForDelivery OrderStatus = "ready_for_delivery"
	StatusOutForDelivery   OrderStatus = "out_for_delivery"
	StatusDelivered        OrderStatus = "delivered"
	StatusCancelled        OrderStatus = "cancelled"
	StatusRefunded         OrderStatus = "refunded"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReadyForDelivery,
		StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentCash       PaymentMethod = "cash"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetbanking PaymentMethod = "netbanking"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentCash, PaymentUPI, PaymentNetbanking:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleProvider ActorRole = "provider"
	RoleAdmin    ActorRole = "admin"
)

// Actor is the authenticated identity behind a request, established by the
// gateway's auth layer.
type Actor struct {
	ID    int
	Role  ActorRole
	Email string
}

func (a Actor) Privileged() bool {
	return a.Role == RoleAdmin || a.Role == RoleProvider
}

type LineItem struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Instructions string          `json:"instructions,omitempty"`
}

// Total is always derived from price and quantity, never stored on its own.
func (li LineItem) Total() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// DeliveryPolicy is owned by the provider (restaurant or tiffin plan) and
// read-only to the order.
type DeliveryPolicy struct {
	MinOrder    decimal.Decimal
	DeliveryFee decimal.Decimal
}

type PriceBreakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total_amount"`
}

type TrackingEntry struct {
	Status      OrderStatus `json:"status"`
	Description string      `json:"description"`
	Timestamp   time.Time   `json:"timestamp"`
}

type Order struct {
	ID                   int             `json:"id"`
	OrderNumber          string          `json:"order_number"`
	UserID               int             `json:"user_id"`
	UserEmail            string          `json:"-"`
	OrderType            OrderType       `json:"order_type"`
	RestaurantID         *int            `json:"restaurant_id,omitempty"`
	TiffinPlanID         *int            `json:"tiffin_plan_id,omitempty"`
	Items                []LineItem      `json:"items"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	DeliveryFee          decimal.Decimal `json:"delivery_fee"`
	Tax                  decimal.Decimal `json:"tax"`
	Total                decimal.Decimal `json:"total_amount"`
	DeliveryAddressID    int             `json:"delivery_address_id"`
	Status               OrderStatus     `json:"status"`
	PaymentMethod        PaymentMethod   `json:"payment_method"`
	PaymentStatus        PaymentStatus   `json:"payment_status"`
	DeliveryInstructions string          `json:"delivery_instructions,omitempty"`
	ExpectedDelivery     *time.Time      `json:"expected_delivery,omitempty"`
	DeliveredAt          *time.Time      `json:"delivered_at,omitempty"`
	RiderID              *int            `json:"rider_id,omitempty"`
	Tracking             []TrackingEntry `json:"tracking"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

type OrderFilter struct {
	Status    OrderStatus
	OrderType OrderType
	Page      int
	Limit     int
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPaused    SubscriptionStatus = "paused"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionCompleted SubscriptionStatus = "completed"
)

type Subscription struct {
	ID                int                `json:"id"`
	UserID            int                `json:"user_id"`
	PlanID            int                `json:"plan_id"`
	PlanName          string             `json:"plan_name,omitempty"`
	StartDate         time.Time          `json:"start_date"`
	EndDate           time.Time          `json:"end_date"`
	Status            SubscriptionStatus `json:"status"`
	DeliveryAddressID int                `json:"delivery_address_id"`
	NextDeliveryDate  *time.Time         `json:"next_delivery_date,omitempty"`
	Total             decimal.Decimal    `json:"total_amount"`
	CreatedAt         time.Time          `json:"created_at"`
}

// TiffinPlan is the order-side view of a plan: enough to price a cart and
// build a subscription. The catalog service owns the full entity.
type TiffinPlan struct {
	ID              int
	Name            string
	Price           decimal.Decimal
	DiscountedPrice *decimal.Decimal
	MinOrder        decimal.Decimal
	DeliveryFee     decimal.Decimal
	IsActive        bool
}

// ChargeAmount is the discounted price when one is set, the base price
// otherwise.
func (p TiffinPlan) ChargeAmount() decimal.Decimal {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}

type OrderEvent struct {
	Type        string          `json:"type"`
	OrderID     int             `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	UserID      int             `json:"user_id"`
	UserEmail   string          `json:"user_email,omitempty"`
	Status      OrderStatus     `json:"status"`
	Total       decimal.Decimal `json:"total_amount"`
	Timestamp   time.Time       `json:"timestamp"`
}

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)
