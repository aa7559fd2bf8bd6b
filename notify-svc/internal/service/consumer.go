package service

import (
	"context"
	"encoding/json"
	"log"

	"delish/notify-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	Reader *kafka.Reader
	Sender EmailSender
}

func NewConsumer(reader *kafka.Reader, sender EmailSender) *Consumer {
	return &Consumer{
		Reader: reader,
		Sender: sender,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Notification Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			log.Printf("Error reading message: %v", err)
			continue
		}

		var evt domain.OrderEvent
		if err := json.Unmarshal(message.Value, &evt); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.Process(evt)
	}
}

// Process picks the template for the event and dispatches the email. Events
// without a recipient or without a mapped template are dropped.
func (c *Consumer) Process(evt domain.OrderEvent) {
	if evt.UserEmail == "" {
		return
	}

	var subject, body string
	switch evt.Type {
	case domain.EventOrderCreated:
		subject, body = orderCreatedEmail(evt)
	case domain.EventOrderStatusChanged:
		var ok bool
		subject, body, ok = statusChangedEmail(evt)
		if !ok {
			return
		}
	default:
		return
	}

	if err := c.Sender.Send(evt.UserEmail, subject, body); err != nil {
		log.Printf("Error sending email for order %s: %v", evt.OrderNumber, err)
		return
	}
	log.Printf("Notification sent for order %s (%s)", evt.OrderNumber, evt.Type)
}
