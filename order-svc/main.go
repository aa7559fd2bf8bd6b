package main

import (
	"database/sql"
	"fmt"
	"log"

	"delish/config"
	httpapi "delish/order-svc/internal/api/http"
	"delish/order-svc/internal/service"
	"delish/order-svc/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	kafkaWriter := config.NewKafkaWriter("order-events")
	defer kafkaWriter.Close()

	repo := storage.NewPostgresRepository(db)
	publisher := storage.NewKafkaPublisher(kafkaWriter)
	qr := service.TrackingQRGenerator{BaseURL: config.GetEnv("PUBLIC_URL", "http://localhost:8080")}

	orderSvc := service.NewOrderService(repo, publisher, qr)
	subSvc := service.NewSubscriptionService(repo, publisher)

	handler := httpapi.NewHandler(orderSvc, subSvc)
	router := httpapi.NewRouter(handler)

	httpapi.StartServer(":"+config.GetEnv("PORT", "8082"), router)
}

func ensureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			order_number TEXT UNIQUE NOT NULL,
			user_id INTEGER NOT NULL,
			user_email TEXT,
			order_type TEXT NOT NULL,
			restaurant_id INTEGER,
			tiffin_plan_id INTEGER,
			subtotal NUMERIC(12,2) NOT NULL,
			delivery_fee NUMERIC(12,2) NOT NULL DEFAULT 0,
			tax NUMERIC(12,2) NOT NULL DEFAULT 0,
			total_amount NUMERIC(12,2) NOT NULL,
			delivery_address_id INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			payment_method TEXT NOT NULL,
			payment_status TEXT NOT NULL DEFAULT 'pending',
			delivery_instructions TEXT,
			expected_delivery TIMESTAMPTZ,
			delivered_at TIMESTAMPTZ,
			rider_id INTEGER,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id),
			name TEXT NOT NULL,
			price NUMERIC(12,2) NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 1,
			instructions TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_tracking (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id),
			status TEXT NOT NULL,
			description TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS tiffin_subscriptions (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			plan_id INTEGER NOT NULL,
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			delivery_address_id INTEGER NOT NULL,
			next_delivery_date TIMESTAMPTZ,
			total_amount NUMERIC(12,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders (user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)`,
		`CREATE INDEX IF NOT EXISTS idx_order_tracking_order ON order_tracking (order_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
