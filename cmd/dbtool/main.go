package main

import (
	"context"
	"fleet-route-planner/internal/adapters/repositories"
	"fleet-route-planner/internal/config"
	"fleet-route-planner/internal/platform/db"
	"time"

	log "github.com/sirupsen/logrus"
)

// dbtool prepares the Postgres schema used when the server runs with DB_DRIVER=postgres.
func main() {
	config.Load()

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Info("Initializing database schema...")
	if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Info("Schema ready.")
}
