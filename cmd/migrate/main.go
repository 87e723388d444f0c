package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"userfiles/internal/config"
	"userfiles/internal/repository/postgres"
)

func main() {
	_ = godotenv.Load()

	databaseURL, err := config.LoadDatabaseURL()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := postgres.Migrate(databaseURL, logger); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}
