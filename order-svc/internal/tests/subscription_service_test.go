package tests

import (
	"context"
	"strings"
	"testing"
	"time"

	"delish/order-svc/internal/domain"
	"delish/order-svc/internal/mocks"
	"delish/order-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func activePlan() *domain.TiffinPlan {
	discounted := money("2499")
	return &domain.TiffinPlan{
		ID:              12,
		Name:            "Monthly Veg Thali",
		Price:           money("2999"),
		DiscountedPrice: &discounted,
		IsActive:        true,
	}
}

func TestSubscribe(t *testing.T) {
	repo := mocks.NewSubscriptionRepository(t)
	publisher := mocks.NewEventPublisher(t)
	svc := service.NewSubscriptionService(repo, publisher)

	repo.On("TiffinPlan", 12).Return(activePlan(), nil)
	repo.On("CreateSubscription", mock.AnythingOfType("*domain.Subscription"), mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*domain.Subscription).ID = 3
			args.Get(1).(*domain.Order).ID = 201
		}).Return(nil)
	publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)

	req := service.SubscribeRequest{PlanID: 12, StartDate: "2026-09-01", DeliveryAddressID: 3}
	sub, order, err := svc.Subscribe(context.Background(), customer, req)

	assert.NoError(t, err)
	assert.Equal(t, 3, sub.ID)
	assert.Equal(t, domain.SubscriptionActive, sub.Status)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), sub.StartDate)
	assert.Equal(t, sub.StartDate.AddDate(0, 0, 30), sub.EndDate)
	// Discounted price wins over the base price.
	assert.Equal(t, "2499.00", sub.Total.StringFixed(2))

	assert.Equal(t, 201, order.ID)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "SUB-"))
	assert.Equal(t, domain.OrderTypeTiffin, order.OrderType)
	assert.Equal(t, domain.StatusConfirmed, order.Status)
	assert.Equal(t, "2499.00", order.Total.StringFixed(2))
	assert.True(t, order.DeliveryFee.IsZero())
	assert.True(t, order.Tax.IsZero())
	if assert.Len(t, order.Tracking, 1) {
		assert.Equal(t, domain.StatusConfirmed, order.Tracking[0].Status)
	}
}

func TestSubscribe_InactivePlan(t *testing.T) {
	repo := mocks.NewSubscriptionRepository(t)
	svc := service.NewSubscriptionService(repo, nil)

	plan := activePlan()
	plan.IsActive = false
	repo.On("TiffinPlan", 12).Return(plan, nil)

	_, _, err := svc.Subscribe(context.Background(), customer, service.SubscribeRequest{PlanID: 12, DeliveryAddressID: 3})
	assert.ErrorIs(t, err, service.ErrPlanUnavailable)
	repo.AssertNotCalled(t, "CreateSubscription", mock.Anything, mock.Anything)
}

func TestSubscribe_PlanNotFound(t *testing.T) {
	repo := mocks.NewSubscriptionRepository(t)
	svc := service.NewSubscriptionService(repo, nil)

	repo.On("TiffinPlan", 12).Return(nil, domain.ErrProviderNotFound)

	_, _, err := svc.Subscribe(context.Background(), customer, service.SubscribeRequest{PlanID: 12, DeliveryAddressID: 3})
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}

func TestSubscribe_BadStartDate(t *testing.T) {
	repo := mocks.NewSubscriptionRepository(t)
	svc := service.NewSubscriptionService(repo, nil)

	repo.On("TiffinPlan", 12).Return(activePlan(), nil)

	req := service.SubscribeRequest{PlanID: 12, StartDate: "01-09-2026", DeliveryAddressID: 3}
	_, _, err := svc.Subscribe(context.Background(), customer, req)
	assert.ErrorIs(t, err, service.ErrInvalidPayload)
}

func TestPauseAndResume(t *testing.T) {
	repo := mocks.NewSubscriptionRepository(t)
	svc := service.NewSubscriptionService(repo, nil)

	stored := &domain.Subscription{ID: 3, UserID: customer.ID, Status: domain.SubscriptionActive}
	repo.On("GetSubscription", 3).Return(stored, nil)
	repo.On("SetSubscriptionStatus", 3, domain.SubscriptionPaused, (*time.Time)(nil)).Return(nil)

	sub, err := svc.Pause(customer, 3)
	assert.NoError(t, err)
	assert.Equal(t, domain.SubscriptionPaused, sub.Status)

	repo.On("SetSubscriptionStatus", 3, domain.SubscriptionActive, mock.AnythingOfType("*time.Time")).Return(nil)

	sub, err = svc.Resume(customer, 3)
	assert.NoError(t, err)
	assert.Equal(t, domain.SubscriptionActive, sub.Status)
	assert.NotNil(t, sub.NextDeliveryDate)
}

func TestPause_NotOwner(t *testing.T) {
	repo := mocks.NewSubscriptionRepository(t)
	svc := service.NewSubscriptionService(repo, nil)

	repo.On("GetSubscription", 3).Return(&domain.Subscription{ID: 3, UserID: 999}, nil)

	_, err := svc.Pause(customer, 3)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestListSubscriptions(t *testing.T) {
	repo := mocks.NewSubscriptionRepository(t)
	svc := service.NewSubscriptionService(repo, nil)

	repo.On("ListSubscriptions", customer.ID).Return([]domain.Subscription{
		{ID: 3, UserID: customer.ID, PlanName: "Monthly Veg Thali"},
	}, nil)

	subs, err := svc.List(customer)
	assert.NoError(t, err)
	assert.Len(t, subs, 1)
}
