package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delish/order-svc/internal/domain"
	"delish/order-svc/internal/lifecycle"

	"github.com/shopspring/decimal"
)

var ErrPlanUnavailable = errors.New("this tiffin plan is not currently available")

// subscriptionDays is the length of every tiffin subscription.
const subscriptionDays = 30

type SubscribeRequest struct {
	PlanID            int    `json:"plan_id"`
	StartDate         string `json:"start_date,omitempty"` // YYYY-MM-DD, defaults to today
	DeliveryAddressID int    `json:"delivery_address_id"`
}

type SubscriptionService struct {
	repo      SubscriptionRepository
	publisher EventPublisher
}

func NewSubscriptionService(repo SubscriptionRepository, publisher EventPublisher) *SubscriptionService {
	return &SubscriptionService{repo: repo, publisher: publisher}
}

// Subscribe creates a 30-day subscription plus its confirmed tiffin order in
// a single transaction.
func (s *SubscriptionService) Subscribe(ctx context.Context, actor domain.Actor, req SubscribeRequest) (*domain.Subscription, *domain.Order, error) {
	if req.PlanID <= 0 || req.DeliveryAddressID <= 0 {
		return nil, nil, ErrInvalidPayload
	}

	plan, err := s.repo.TiffinPlan(req.PlanID)
	if err != nil {
		return nil, nil, err
	}
	if !plan.IsActive {
		return nil, nil, ErrPlanUnavailable
	}

	now := time.Now()
	start := now
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, nil, ErrInvalidPayload
		}
		start = parsed
	}
	end := start.AddDate(0, 0, subscriptionDays)

	amount := plan.ChargeAmount().Round(2)
	nextDelivery := start

	sub := &domain.Subscription{
		UserID:            actor.ID,
		PlanID:            plan.ID,
		PlanName:          plan.Name,
		StartDate:         start,
		EndDate:           end,
		Status:            domain.SubscriptionActive,
		DeliveryAddressID: req.DeliveryAddressID,
		NextDeliveryDate:  &nextDelivery,
		Total:             amount,
	}

	planID := plan.ID
	order := &domain.Order{
		OrderNumber: NewOrderNumber("SUB"),
		UserID:      actor.ID,
		UserEmail:   actor.Email,
		OrderType:   domain.OrderTypeTiffin,
		TiffinPlanID: &planID,
		Items: []domain.LineItem{{
			Name:     plan.Name,
			Price:    amount,
			Quantity: 1,
		}},
		Subtotal:          amount,
		DeliveryFee:       decimal.Zero,
		Tax:               decimal.Zero,
		Total:             amount,
		DeliveryAddressID: req.DeliveryAddressID,
		Status:            domain.StatusConfirmed,
		PaymentMethod:     domain.PaymentCard,
		PaymentStatus:     domain.PaymentStatusPending,
		Tracking:          []domain.TrackingEntry{lifecycle.NewEntry(domain.StatusConfirmed, now)},
	}

	if err := s.repo.CreateSubscription(sub, order); err != nil {
		return nil, nil, fmt.Errorf("create subscription: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
			Type:        domain.EventOrderCreated,
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			UserID:      order.UserID,
			UserEmail:   order.UserEmail,
			Status:      order.Status,
			Total:       order.Total,
			Timestamp:   time.Now(),
		})
	}

	return sub, order, nil
}

func (s *SubscriptionService) List(actor domain.Actor) ([]domain.Subscription, error) {
	return s.repo.ListSubscriptions(actor.ID)
}

func (s *SubscriptionService) Pause(actor domain.Actor, subscriptionID int) (*domain.Subscription, error) {
	return s.setStatus(actor, subscriptionID, domain.SubscriptionPaused, nil)
}

// Resume reactivates a paused subscription and resets the next delivery to
// today.
func (s *SubscriptionService) Resume(actor domain.Actor, subscriptionID int) (*domain.Subscription, error) {
	next := time.Now()
	return s.setStatus(actor, subscriptionID, domain.SubscriptionActive, &next)
}

func (s *SubscriptionService) setStatus(actor domain.Actor, subscriptionID int, status domain.SubscriptionStatus, nextDelivery *time.Time) (*domain.Subscription, error) {
	sub, err := s.repo.GetSubscription(subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != actor.ID {
		return nil, domain.ErrAccessDenied
	}
	if err := s.repo.SetSubscriptionStatus(sub.ID, status, nextDelivery); err != nil {
		return nil, err
	}
	sub.Status = status
	if nextDelivery != nil {
		sub.NextDeliveryDate = nextDelivery
	}
	return sub, nil
}
