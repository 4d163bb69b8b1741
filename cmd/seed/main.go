// Command seed populates a fresh database with synthetic companies and a
// starter collection containing all of them, so the table UI has something
// to page through.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/ariqM1/fullstack-jam/internal/config"
	"github.com/ariqM1/fullstack-jam/internal/database"
	"github.com/ariqM1/fullstack-jam/internal/logging"
)

func main() {
	companies := flag.Int("companies", 10000, "number of companies to create")
	collection := flag.String("collection", "My List", "name of the starter collection")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	companyIDs, err := database.SeedCompanies(ctx, pool, *companies)
	if err != nil {
		log.Fatalf("Failed to seed companies: %v", err)
	}
	slog.Info("Seeded companies", "count", len(companyIDs))

	collectionID, err := database.SeedCollection(ctx, pool, *collection, companyIDs)
	if err != nil {
		log.Fatalf("Failed to seed collection: %v", err)
	}
	slog.Info("Seeded collection", "collection_id", collectionID.String(), "name", *collection, "companies", len(companyIDs))
}
