package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delish/order-svc/internal/domain"
	"delish/order-svc/internal/lifecycle"
	"delish/order-svc/internal/pricing"

	"github.com/google/uuid"
)

var ErrInvalidPayload = errors.New("invalid order payload")

const initialTrackingDescription = "Order placed successfully"

type CreateOrderRequest struct {
	OrderType            string            `json:"order_type"`
	RestaurantID         int               `json:"restaurant_id,omitempty"`
	TiffinPlanID         int               `json:"tiffin_plan_id,omitempty"`
	Items                []domain.LineItem `json:"items"`
	DeliveryAddressID    int               `json:"delivery_address_id"`
	PaymentMethod        string            `json:"payment_method"`
	DeliveryInstructions string            `json:"delivery_instructions,omitempty"`
}

// TrackingView is the read-only projection returned by the track endpoint.
type TrackingView struct {
	OrderNumber      string                 `json:"order_number"`
	Status           domain.OrderStatus     `json:"status"`
	Tracking         []domain.TrackingEntry `json:"tracking"`
	ExpectedDelivery *time.Time             `json:"expected_delivery,omitempty"`
	RiderID          *int                   `json:"rider_id,omitempty"`
}

type OrderService struct {
	repo      OrderRepository
	publisher EventPublisher
	qrEncoder QRGenerator
}

func NewOrderService(repo OrderRepository, publisher EventPublisher, qr QRGenerator) *OrderService {
	return &OrderService{repo: repo, publisher: publisher, qrEncoder: qr}
}

// NewOrderNumber generates an immutable, globally unique order number.
func NewOrderNumber(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

func (s *OrderService) Create(ctx context.Context, actor domain.Actor, req CreateOrderRequest) (*domain.Order, error) {
	orderType := domain.OrderType(req.OrderType)
	if !orderType.Valid() || req.DeliveryAddressID <= 0 || !domain.PaymentMethod(req.PaymentMethod).Valid() {
		return nil, ErrInvalidPayload
	}
	if len(req.Items) == 0 {
		return nil, pricing.ErrEmptyCart
	}

	order := &domain.Order{
		UserID:               actor.ID,
		UserEmail:            actor.Email,
		OrderType:            orderType,
		Items:                req.Items,
		DeliveryAddressID:    req.DeliveryAddressID,
		PaymentMethod:        domain.PaymentMethod(req.PaymentMethod),
		PaymentStatus:        domain.PaymentStatusPending,
		DeliveryInstructions: req.DeliveryInstructions,
	}

	var policy domain.DeliveryPolicy
	switch orderType {
	case domain.OrderTypeRestaurant:
		if req.RestaurantID <= 0 {
			return nil, ErrInvalidPayload
		}
		p, err := s.repo.RestaurantPolicy(req.RestaurantID)
		if err != nil {
			return nil, err
		}
		policy = p
		restaurantID := req.RestaurantID
		order.RestaurantID = &restaurantID
	case domain.OrderTypeTiffin:
		if req.TiffinPlanID <= 0 {
			return nil, ErrInvalidPayload
		}
		plan, err := s.repo.TiffinPlan(req.TiffinPlanID)
		if err != nil {
			return nil, err
		}
		policy = domain.DeliveryPolicy{MinOrder: plan.MinOrder, DeliveryFee: plan.DeliveryFee}
		planID := req.TiffinPlanID
		order.TiffinPlanID = &planID
	}

	breakdown, err := pricing.Calculate(req.Items, policy)
	if err != nil {
		return nil, err
	}
	order.Subtotal = breakdown.Subtotal
	order.DeliveryFee = breakdown.DeliveryFee
	order.Tax = breakdown.Tax
	order.Total = breakdown.Total

	now := time.Now()
	order.OrderNumber = NewOrderNumber("ORD")
	order.Status = domain.StatusPending
	order.Tracking = []domain.TrackingEntry{{
		Status:      domain.StatusPending,
		Description: initialTrackingDescription,
		Timestamp:   now,
	}}

	if err := s.repo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publish(ctx, domain.EventOrderCreated, order)
	return order, nil
}

func (s *OrderService) Get(actor domain.Actor, orderID int) (*domain.Order, error) {
	order, err := s.repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actor.ID && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrAccessDenied
	}
	return order, nil
}

func (s *OrderService) List(actor domain.Actor, filter domain.OrderFilter) ([]domain.Order, domain.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}
	orders, total, err := s.repo.ListOrders(actor.ID, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	pages := (total + filter.Limit - 1) / filter.Limit
	return orders, domain.Pagination{Page: filter.Page, Limit: filter.Limit, Total: total, Pages: pages}, nil
}

// UpdateStatus applies a lifecycle transition. Customers may only cancel,
// and only from pending/confirmed within the cancellation window; admins and
// provider operators may set any status except out of a terminal one.
func (s *OrderService) UpdateStatus(ctx context.Context, actor domain.Actor, orderID int, target domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCustomer && order.UserID != actor.ID {
		return nil, domain.ErrAccessDenied
	}

	now := time.Now()
	if err := lifecycle.Authorize(actor.Role, order.Status, target, order.CreatedAt, now); err != nil {
		return nil, err
	}

	entry := lifecycle.NewEntry(target, now)
	var deliveredAt *time.Time
	if target == domain.StatusDelivered {
		deliveredAt = &now
	}

	if err := s.repo.ApplyTransition(order.ID, order.Status, target, entry, deliveredAt); err != nil {
		return nil, err
	}

	order.Status = target
	if deliveredAt != nil {
		order.DeliveredAt = deliveredAt
	}
	order.Tracking = append(order.Tracking, entry)

	s.publish(ctx, domain.EventOrderStatusChanged, order)
	return order, nil
}

// Cancel is the dedicated cancellation entry point: owner-only and limited to
// pending/confirmed orders, with no time window. The looser rule relative to
// UpdateStatus is deliberate and covered by tests.
func (s *OrderService) Cancel(ctx context.Context, actor domain.Actor, orderID int) (*domain.Order, error) {
	order, err := s.repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actor.ID {
		return nil, domain.ErrAccessDenied
	}
	if lifecycle.IsTerminal(order.Status) {
		return nil, domain.ErrTerminalState
	}
	if !lifecycle.CancellableDirect(order.Status) {
		return nil, domain.ErrInvalidTransition
	}

	entry := domain.TrackingEntry{
		Status:      domain.StatusCancelled,
		Description: "Order cancelled by customer",
		Timestamp:   time.Now(),
	}
	if err := s.repo.ApplyTransition(order.ID, order.Status, domain.StatusCancelled, entry, nil); err != nil {
		return nil, err
	}

	order.Status = domain.StatusCancelled
	order.Tracking = append(order.Tracking, entry)

	s.publish(ctx, domain.EventOrderStatusChanged, order)
	return order, nil
}

func (s *OrderService) Track(actor domain.Actor, orderID int) (*TrackingView, error) {
	order, err := s.repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actor.ID {
		return nil, domain.ErrAccessDenied
	}
	return &TrackingView{
		OrderNumber:      order.OrderNumber,
		Status:           order.Status,
		Tracking:         order.Tracking,
		ExpectedDelivery: order.ExpectedDelivery,
		RiderID:          order.RiderID,
	}, nil
}

func (s *OrderService) QRCode(actor domain.Actor, orderID int) ([]byte, error) {
	order, err := s.Get(actor, orderID)
	if err != nil {
		return nil, err
	}
	return s.qrEncoder.Generate(order.OrderNumber)
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	// Notification dispatch stays outside the lifecycle core; a publish
	// failure never fails the order operation.
	_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		UserEmail:   order.UserEmail,
		Status:      order.Status,
		Total:       order.Total,
		Timestamp:   time.Now(),
	})
}
