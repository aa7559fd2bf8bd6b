package main

import (
	"database/sql"
	"log"
	"time"

	httpapi "delish/catalog-svc/internal/api/http"
	"delish/catalog-svc/internal/service"
	"delish/catalog-svc/internal/storage"
	"delish/config"

	_ "github.com/lib/pq"
)

func ensureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			owner_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			cuisine_types TEXT[] NOT NULL DEFAULT '{}',
			address TEXT,
			phone TEXT,
			image_url TEXT,
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			review_count INTEGER NOT NULL DEFAULT 0,
			min_order NUMERIC(12,2) NOT NULL DEFAULT 0,
			delivery_fee NUMERIC(12,2) NOT NULL DEFAULT 0,
			delivery_time_min INTEGER NOT NULL DEFAULT 30,
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			category TEXT,
			price NUMERIC(12,2) NOT NULL,
			is_veg BOOLEAN NOT NULL DEFAULT FALSE,
			image_url TEXT,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS tiffin_plans (
			id SERIAL PRIMARY KEY,
			provider_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			meal_type TEXT NOT NULL DEFAULT 'veg',
			duration_days INTEGER NOT NULL DEFAULT 30,
			meals_per_day INTEGER NOT NULL DEFAULT 1,
			price NUMERIC(12,2) NOT NULL,
			discounted_price NUMERIC(12,2),
			min_order NUMERIC(12,2) NOT NULL DEFAULT 0,
			delivery_fee NUMERIC(12,2) NOT NULL DEFAULT 0,
			image_url TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id SERIAL PRIMARY KEY,
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			user_id INTEGER NOT NULL,
			order_id INTEGER NOT NULL,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, order_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant ON menu_items (restaurant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_restaurant ON reviews (restaurant_id)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	redisClient := config.MustInitRedis()
	defer redisClient.Close()

	repo := storage.NewPostgresRepository(db)
	cache := storage.NewRedisCache(redisClient, 30*24*time.Hour)

	handler := httpapi.NewHandler(
		service.NewRestaurantService(repo),
		service.NewTiffinPlanService(repo),
		service.NewReviewService(repo, cache),
	)

	port := config.GetEnv("PORT", "8081")
	httpapi.StartServer(":"+port, httpapi.NewRouter(handler))
}
