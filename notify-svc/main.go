package main

import (
	"context"

	"delish/config"
	"delish/notify-svc/internal/service"
	"delish/notify-svc/internal/storage"
)

func main() {
	reader := config.NewKafkaReader("order-events", "notify-svc")
	defer reader.Close()

	sender := storage.NewSMTPSender(
		config.GetEnv("SMTP_HOST", "localhost"),
		config.GetEnv("SMTP_PORT", "25"),
		config.GetEnv("SMTP_FROM", "no-reply@delish.local"),
		config.GetEnv("SMTP_USER", ""),
		config.GetEnv("SMTP_PASSWORD", ""),
	)

	consumer := service.NewConsumer(reader, sender)
	consumer.Start(context.Background())
}
