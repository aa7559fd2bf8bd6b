package service

import (
	"context"
	"time"

	"delish/order-svc/internal/domain"
)

type OrderRepository interface {
	RestaurantPolicy(id int) (domain.DeliveryPolicy, error)
	TiffinPlan(id int) (*domain.TiffinPlan, error)
	CreateOrder(order *domain.Order) error
	GetOrder(id int) (*domain.Order, error)
	ListOrders(userID int, filter domain.OrderFilter) ([]domain.Order, int, error)
	// ApplyTransition updates the status and appends the tracking entry in one
	// transaction, guarded by the expected prior status. It returns
	// domain.ErrStatusConflict when the guard fails.
	ApplyTransition(orderID int, from, to domain.OrderStatus, entry domain.TrackingEntry, deliveredAt *time.Time) error
}

type SubscriptionRepository interface {
	TiffinPlan(id int) (*domain.TiffinPlan, error)
	CreateSubscription(sub *domain.Subscription, order *domain.Order) error
	ListSubscriptions(userID int) ([]domain.Subscription, error)
	GetSubscription(id int) (*domain.Subscription, error)
	SetSubscriptionStatus(id int, status domain.SubscriptionStatus, nextDelivery *time.Time) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, evt domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(orderNumber string) ([]byte, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, actor domain.Actor, req CreateOrderRequest) (*domain.Order, error)
	Get(actor domain.Actor, orderID int) (*domain.Order, error)
	List(actor domain.Actor, filter domain.OrderFilter) ([]domain.Order, domain.Pagination, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, orderID int, target domain.OrderStatus) (*domain.Order, error)
	Cancel(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error)
	Track(actor domain.Actor, orderID int) (*TrackingView, error)
	QRCode(actor domain.Actor, orderID int) ([]byte, error)
}

type SubscriptionServiceInterface interface {
	Subscribe(ctx context.Context, actor domain.Actor, req SubscribeRequest) (*domain.Subscription, *domain.Order, error)
	List(actor domain.Actor) ([]domain.Subscription, error)
	Pause(actor domain.Actor, subscriptionID int) (*domain.Subscription, error)
	Resume(actor domain.Actor, subscriptionID int) (*domain.Subscription, error)
}

var (
	_ OrderServiceInterface        = (*OrderService)(nil)
	_ SubscriptionServiceInterface = (*SubscriptionService)(nil)
)
