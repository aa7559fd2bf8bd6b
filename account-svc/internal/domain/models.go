package domain

import (
	"errors"
	"time"
)

type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleProvider ActorRole = "provider"
	RoleAdmin    ActorRole = "admin"
)

type Actor struct {
	ID    int
	Role  ActorRole
	Email string
}

type Address struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Label     string    `json:"label"` // home, work, other
	Line1     string    `json:"line1"`
	Line2     string    `json:"line2,omitempty"`
	City      string    `json:"city"`
	Pincode   string    `json:"pincode"`
	Phone     string    `json:"phone"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorite is a user's bookmarked restaurant.
type Favorite struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	RestaurantID int       `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	ErrAddressNotFound    = errors.New("address not found")
	ErrFavoriteNotFound   = errors.New("favorite not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrDuplicateFavorite  = errors.New("restaurant already in favorites")
	ErrAccessDenied       = errors.New("you do not have permission to perform this action")
)
