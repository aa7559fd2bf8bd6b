package mocks

import (
	"context"
	"time"

	"delish/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderRepository) RestaurantPolicy(id int) (domain.DeliveryPolicy, error) {
	args := m.Called(id)
	return args.Get(0).(domain.DeliveryPolicy), args.Error(1)
}

func (m *OrderRepository) TiffinPlan(id int) (*domain.TiffinPlan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TiffinPlan), args.Error(1)
}

func (m *OrderRepository) CreateOrder(order *domain.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *OrderRepository) GetOrder(id int) (*domain.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderRepository) ListOrders(userID int, filter domain.OrderFilter) ([]domain.Order, int, error) {
	args := m.Called(userID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *OrderRepository) ApplyTransition(orderID int, from, to domain.OrderStatus, entry domain.TrackingEntry, deliveredAt *time.Time) error {
	args := m.Called(orderID, from, to, entry, deliveredAt)
	return args.Error(0)
}

type SubscriptionRepository struct {
	mock.Mock
}

func NewSubscriptionRepository(t testingT) *SubscriptionRepository {
	m := &SubscriptionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SubscriptionRepository) TiffinPlan(id int) (*domain.TiffinPlan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TiffinPlan), args.Error(1)
}

func (m *SubscriptionRepository) CreateSubscription(sub *domain.Subscription, order *domain.Order) error {
	args := m.Called(sub, order)
	return args.Error(0)
}

func (m *SubscriptionRepository) ListSubscriptions(userID int) ([]domain.Subscription, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *SubscriptionRepository) GetSubscription(id int) (*domain.Subscription, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *SubscriptionRepository) SetSubscriptionStatus(id int, status domain.SubscriptionStatus, nextDelivery *time.Time) error {
	args := m.Called(id, status, nextDelivery)
	return args.Error(0)
}

type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EventPublisher) PublishOrderEvent(ctx context.Context, evt domain.OrderEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *QRGenerator) Generate(orderNumber string) ([]byte, error) {
	args := m.Called(orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
