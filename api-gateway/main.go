package main

import (
	"log"
	"net/http"

	"delish/api-gateway/internal/gateway"
	"delish/config"

	"github.com/rs/cors"
)

func main() {
	cfg := gateway.Config{
		CatalogSvcURL: config.GetEnv("CATALOG_SVC_URL", "http://localhost:8081"),
		OrderSvcURL:   config.GetEnv("ORDER_SVC_URL", "http://localhost:8082"),
		AccountSvcURL: config.GetEnv("ACCOUNT_SVC_URL", "http://localhost:8083"),
	}

	gw := gateway.NewGateway(cfg, &http.Client{})

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	log.Println("API Gateway starting on port 8080")
	log.Fatal(http.ListenAndServe(":8080", handler))
}
