package main

import (
	"database/sql"
	"log"

	httpapi "delish/account-svc/internal/api/http"
	"delish/account-svc/internal/service"
	"delish/account-svc/internal/storage"
	"delish/config"

	_ "github.com/lib/pq"
)

func ensureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS addresses (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			label TEXT NOT NULL DEFAULT 'home',
			line1 TEXT NOT NULL,
			line2 TEXT,
			city TEXT NOT NULL,
			pincode TEXT NOT NULL,
			phone TEXT,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			restaurant_id INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, restaurant_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_addresses_user ON addresses (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_favorites_user ON favorites (user_id)`,
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

	repo := storage.NewPostgresRepository(db)
	handler := httpapi.NewHandler(
		service.NewAddressService(repo),
		service.NewFavoriteService(repo),
	)

	port := config.GetEnv("PORT", "8083")
	httpapi.StartServer(":"+port, httpapi.NewRouter(handler))
}
