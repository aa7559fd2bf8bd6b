package service

import (
	"context"

	"delish/catalog-svc/internal/domain"
)

type RestaurantRepository interface {
	CreateRestaurant(rest *domain.Restaurant) error
	ListRestaurants(filter domain.RestaurantFilter) ([]domain.Restaurant, int, error)
	GetRestaurant(id int) (*domain.Restaurant, error)
	UpdateRestaurant(rest *domain.Restaurant) error
	UpdateRestaurantImage(id int, imageURL string) error
	ListMenu(restaurantID int) ([]domain.MenuItem, error)
	CreateMenuItem(item *domain.MenuItem) error
	UpdateMenuItem(item *domain.MenuItem) error
	DeleteMenuItem(restaurantID, itemID int) (int64, error)
}

type TiffinPlanRepository interface {
	CreateTiffinPlan(plan *domain.TiffinPlan) error
	ListTiffinPlans(filter domain.TiffinPlanFilter) ([]domain.TiffinPlan, int, error)
	GetTiffinPlan(id int) (*domain.TiffinPlan, error)
}

type ReviewRepository interface {
	// HasDeliveredOrder reports whether the user has a delivered order from
	// the restaurant; reviewing is gated on it.
	HasDeliveredOrder(userID, restaurantID, orderID int) (bool, error)
	HasReview(userID, orderID int) (bool, error)
	InsertReview(review *domain.Review) error
	ListReviews(restaurantID int) ([]domain.Review, error)
	// RecomputeRating re-aggregates and persists the restaurant's rating,
	// returning the fresh summary.
	RecomputeRating(restaurantID int) (domain.RatingSummary, error)
}

type ReviewCache interface {
	ReviewMarkerKey(userID, orderID int) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
	CacheRating(ctx context.Context, summary domain.RatingSummary) error
	Rating(ctx context.Context, restaurantID int) (*domain.RatingSummary, error)
}

type RestaurantServiceInterface interface {
	Create(actor domain.Actor, rest *domain.Restaurant) error
	List(filter domain.RestaurantFilter) ([]domain.Restaurant, domain.Pagination, error)
	Get(id int) (*domain.Restaurant, error)
	Update(actor domain.Actor, rest *domain.Restaurant) error
	UpdateImage(actor domain.Actor, id int, imageURL string) error
	Menu(restaurantID int) ([]domain.MenuSection, error)
	AddMenuItem(actor domain.Actor, item *domain.MenuItem) error
	UpdateMenuItem(actor domain.Actor, item *domain.MenuItem) error
	RemoveMenuItem(actor domain.Actor, restaurantID, itemID int) error
}

type TiffinPlanServiceInterface interface {
	Create(actor domain.Actor, plan *domain.TiffinPlan) error
	List(filter domain.TiffinPlanFilter) ([]domain.TiffinPlan, domain.Pagination, error)
	Get(id int) (*domain.TiffinPlan, error)
}

type ReviewServiceInterface interface {
	Create(ctx context.Context, actor domain.Actor, review *domain.Review) error
	List(restaurantID int) ([]domain.Review, error)
	Rating(ctx context.Context, restaurantID int) (domain.RatingSummary, error)
}

var (
	_ RestaurantServiceInterface = (*RestaurantService)(nil)
	_ TiffinPlanServiceInterface = (*TiffinPlanService)(nil)
	_ ReviewServiceInterface     = (*ReviewService)(nil)
)
