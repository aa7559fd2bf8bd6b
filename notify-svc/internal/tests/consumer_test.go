package tests

import (
	"testing"
	"time"

	"delish/notify-svc/internal/domain"
	"delish/notify-svc/internal/mocks"
	"delish/notify-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func orderEvent(eventType, status string) domain.OrderEvent {
	return domain.OrderEvent{
		Type:        eventType,
		OrderID:     101,
		OrderNumber: "ORD-1700000000000-abcd1234",
		UserID:      42,
		UserEmail:   "asha@example.com",
		Status:      status,
		Total:       decimal.RequireFromString("230.00"),
		Timestamp:   time.Now(),
	}
}

func TestProcess_OrderCreated(t *testing.T) {
	sender := mocks.NewEmailSender(t)
	consumer := service.NewConsumer(nil, sender)

	sender.On("Send", "asha@example.com",
		"Order Placed - ORD-1700000000000-abcd1234",
		mock.MatchedBy(func(body string) bool {
			return len(body) > 0
		})).Return(nil)

	consumer.Process(orderEvent(domain.EventOrderCreated, "pending"))

	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestProcess_StatusChanged(t *testing.T) {
	tests := []struct {
		status    string
		wantEmail bool
	}{
		{"confirmed", true},
		{"preparing", true},
		{"out_for_delivery", true},
		{"delivered", true},
		{"cancelled", true},
		{"refunded", true},
		// No template for statuses outside the table.
		{"ready_for_delivery", false},
		{"pending", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.status, func(t *testing.T) {
			sender := mocks.NewEmailSender(t)
			consumer := service.NewConsumer(nil, sender)

			if testCase.wantEmail {
				sender.On("Send", "asha@example.com",
					"Order Update - ORD-1700000000000-abcd1234",
					mock.AnythingOfType("string")).Return(nil)
			}

			consumer.Process(orderEvent(domain.EventOrderStatusChanged, testCase.status))

			if !testCase.wantEmail {
				sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestProcess_NoRecipient(t *testing.T) {
	sender := mocks.NewEmailSender(t)
	consumer := service.NewConsumer(nil, sender)

	evt := orderEvent(domain.EventOrderCreated, "pending")
	evt.UserEmail = ""
	consumer.Process(evt)

	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcess_UnknownEventType(t *testing.T) {
	sender := mocks.NewEmailSender(t)
	consumer := service.NewConsumer(nil, sender)

	consumer.Process(orderEvent("payment_settled", "confirmed"))

	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcess_SendFailureDoesNotPanic(t *testing.T) {
	sender := mocks.NewEmailSender(t)
	consumer := service.NewConsumer(nil, sender)

	sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	consumer.Process(orderEvent(domain.EventOrderCreated, "pending"))
}
