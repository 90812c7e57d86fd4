package main

import (
	"log/slog"
	"os"

	"github.com/cinebook/cinema-booking-system/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine, real environments set variables directly.
	_ = godotenv.Load()

	err := app.Run()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
