package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleProvider ActorRole = "provider"
	RoleAdmin    ActorRole = "admin"
)

// Actor is the caller identity injected by the gateway's auth layer.
type Actor struct {
	ID    int
	Role  ActorRole
	Email string
}

func (a Actor) Privileged() bool {
	return a.Role == RoleAdmin || a.Role == RoleProvider
}

type Restaurant struct {
	ID              int             `json:"id"`
	OwnerID         int             `json:"owner_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	CuisineTypes    []string        `json:"cuisine_types"`
	Address         string          `json:"address"`
	Phone           string          `json:"phone"`
	ImageURL        string          `json:"image_url"`
	Rating          float64         `json:"rating"`
	ReviewCount     int             `json:"review_count"`
	MinOrder        decimal.Decimal `json:"min_order"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	DeliveryTimeMin int             `json:"delivery_time_min"`
	IsFeatured      bool            `json:"is_featured"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
}

type MenuItem struct {
	ID           int             `json:"id"`
	RestaurantID int             `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	IsVeg        bool            `json:"is_veg"`
	ImageURL     string          `json:"image_url"`
	IsAvailable  bool            `json:"is_available"`
	CreatedAt    time.Time       `json:"created_at"`
}

// MenuSection groups a restaurant's items under one category heading.
type MenuSection struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

type TiffinPlan struct {
	ID              int              `json:"id"`
	ProviderID      int              `json:"provider_id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	MealType        string           `json:"meal_type"` // veg, non-veg, both
	DurationDays    int              `json:"duration_days"`
	MealsPerDay     int              `json:"meals_per_day"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	MinOrder        decimal.Decimal  `json:"min_order"`
	DeliveryFee     decimal.Decimal  `json:"delivery_fee"`
	ImageURL        string           `json:"image_url"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
}

type Review struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	UserID       int       `json:"user_id"`
	OrderID      int       `json:"order_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// RatingSummary is the aggregate recomputed after every review write.
type RatingSummary struct {
	RestaurantID int     `json:"restaurant_id"`
	Average      float64 `json:"average"`
	Count        int     `json:"count"`
}

type RestaurantFilter struct {
	Cuisine   string
	MinRating float64
	Featured  bool
	Search    string
	SortBy    string // rating, delivery_time, delivery_fee, newest
	Page      int
	Limit     int
}

type TiffinPlanFilter struct {
	MealType string
	Duration int
	MaxPrice decimal.Decimal
	Search   string
	SortBy   string // price_low, price_high, newest
	Page     int
	Limit    int
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
