package mocks

import (
	"context"

	"delish/catalog-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type RestaurantRepository struct {
	mock.Mock
}

func NewRestaurantRepository(t testingT) *RestaurantRepository {
	m := &RestaurantRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *RestaurantRepository) CreateRestaurant(rest *domain.Restaurant) error {
	args := m.Called(rest)
	return args.Error(0)
}

func (m *RestaurantRepository) ListRestaurants(filter domain.RestaurantFilter) ([]domain.Restaurant, int, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Restaurant), args.Int(1), args.Error(2)
}

func (m *RestaurantRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *RestaurantRepository) UpdateRestaurant(rest *domain.Restaurant) error {
	args := m.Called(rest)
	return args.Error(0)
}

func (m *RestaurantRepository) UpdateRestaurantImage(id int, imageURL string) error {
	args := m.Called(id, imageURL)
	return args.Error(0)
}

func (m *RestaurantRepository) ListMenu(restaurantID int) ([]domain.MenuItem, error) {
	args := m.Called(restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *RestaurantRepository) CreateMenuItem(item *domain.MenuItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *RestaurantRepository) UpdateMenuItem(item *domain.MenuItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *RestaurantRepository) DeleteMenuItem(restaurantID, itemID int) (int64, error) {
	args := m.Called(restaurantID, itemID)
	return args.Get(0).(int64), args.Error(1)
}

type TiffinPlanRepository struct {
	mock.Mock
}

func NewTiffinPlanRepository(t testingT) *TiffinPlanRepository {
	m := &TiffinPlanRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TiffinPlanRepository) CreateTiffinPlan(plan *domain.TiffinPlan) error {
	args := m.Called(plan)
	return args.Error(0)
}

func (m *TiffinPlanRepository) ListTiffinPlans(filter domain.TiffinPlanFilter) ([]domain.TiffinPlan, int, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.TiffinPlan), args.Int(1), args.Error(2)
}

func (m *TiffinPlanRepository) GetTiffinPlan(id int) (*domain.TiffinPlan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TiffinPlan), args.Error(1)
}

type ReviewRepository struct {
	mock.Mock
}

func NewReviewRepository(t testingT) *ReviewRepository {
	m := &ReviewRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ReviewRepository) HasDeliveredOrder(userID, restaurantID, orderID int) (bool, error) {
	args := m.Called(userID, restaurantID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewRepository) HasReview(userID, orderID int) (bool, error) {
	args := m.Called(userID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewRepository) InsertReview(review *domain.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *ReviewRepository) ListReviews(restaurantID int) ([]domain.Review, error) {
	args := m.Called(restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *ReviewRepository) RecomputeRating(restaurantID int) (domain.RatingSummary, error) {
	args := m.Called(restaurantID)
	return args.Get(0).(domain.RatingSummary), args.Error(1)
}

type ReviewCache struct {
	mock.Mock
}

func NewReviewCache(t testingT) *ReviewCache {
	m := &ReviewCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ReviewCache) ReviewMarkerKey(userID, orderID int) string {
	args := m.Called(userID, orderID)
	return args.String(0)
}

func (m *ReviewCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewCache) SetMarker(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *ReviewCache) CacheRating(ctx context.Context, summary domain.RatingSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *ReviewCache) Rating(ctx context.Context, restaurantID int) (*domain.RatingSummary, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RatingSummary), args.Error(1)
}
