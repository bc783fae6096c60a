package main

import (
	"context"
	"database/sql"
	"log"
	"waste-route-service/internal/adapters/repositories"
	"waste-route-service/internal/config"
	"waste-route-service/internal/platform/db"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, databaseURL, db.DefaultOptions)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	reportsPath := config.Get("SEED_REPORTS_PATH", "data/seeds/reports.json")
	driversPath := config.Get("SEED_DRIVERS_PATH", "data/seeds/drivers.json")
	if err := initAndSeed(ctx, conn, reportsPath, driversPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, reportsPath, driversPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	log.Println("Schema ready.")

	log.Printf("Seeding database reports=%s drivers=%s", reportsPath, driversPath)
	if err := repositories.SeedFromJSON(ctx, conn, reportsPath, driversPath); err != nil {
		return err
	}
	log.Println("Seeding complete.")

	return nil
}
