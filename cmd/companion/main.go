package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/enjoypark/companion/internal/app"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ companion failed to start: %v", err)
	}
}
