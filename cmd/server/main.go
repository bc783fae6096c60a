package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
	"waste-route-service/internal/adapters/cache"
	"waste-route-service/internal/adapters/repositories"
	"waste-route-service/internal/api"
	"waste-route-service/internal/config"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/db"
	"waste-route-service/internal/platform/obs"
	"waste-route-service/internal/ports"
	"waste-route-service/internal/services"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or in-memory, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.LoadServer()
	log.Printf("config: %s", cfg)

	opts, defaultCapacity, err := config.LoadOptimizer(cfg.OptimizerConfig)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	obs.RegisterDefault()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	var routeCache ports.RouteCache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisRouteCacheFromURL(ctx, cfg.RedisURL, cfg.RouteCacheTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer rc.Close()
		routeCache = rc
	}

	committer := services.NewAssignmentCommitter(store.writer, cfg.CommitConcurrency)
	planner := services.NewCollectionPlanner(
		store.reports,
		store.drivers,
		services.NewNormalizer(defaultCapacity),
		committer,
		routeCache,
		opts,
	)

	var limiter *rate.Limiter
	if cfg.OptimizeRateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.OptimizeRateLimit), cfg.OptimizeRateBurst)
	}

	router := api.NewRouter(api.Dependencies{
		Planner:         planner,
		Options:         opts,
		DefaultCapacity: defaultCapacity,
		Limiter:         limiter,
	})

	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

type store struct {
	reports ports.ReportRepository
	drivers ports.DriverRepository
	writer  ports.AssignmentWriter
}

// openStore uses Postgres when DATABASE_URL is set, otherwise an in-memory
// store seeded from the JSON seed files.
func openStore(ctx context.Context, cfg config.Server) (store, func(), error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL, db.DefaultOptions)
		if err != nil {
			return store{}, nil, err
		}
		if err := repositories.InitSchema(ctx, conn); err != nil {
			conn.Close()
			return store{}, nil, fmt.Errorf("open store: %w", err)
		}
		reports := repositories.NewPostgresReportRepository(conn)
		return store{
			reports: reports,
			drivers: repositories.NewPostgresDriverRepository(conn),
			writer:  reports,
		}, func() { conn.Close() }, nil
	}

	mem, err := seededMemory(cfg.SeedReportsPath, cfg.SeedDriversPath)
	if err != nil {
		return store{}, nil, fmt.Errorf("open store: %w", err)
	}
	log.Println("DATABASE_URL not set, using in-memory store")
	return store{reports: mem, drivers: mem, writer: mem}, func() {}, nil
}

func seededMemory(reportsPath, driversPath string) (*repositories.MemoryRepository, error) {
	var (
		reports []domain.Report
		drivers []domain.DriverRecord
		err     error
	)
	if reportsPath != "" {
		if reports, err = repositories.LoadReportSeeds(reportsPath); err != nil {
			return nil, err
		}
	}
	if driversPath != "" {
		if drivers, err = repositories.LoadDriverSeeds(driversPath); err != nil {
			return nil, err
		}
	}
	log.Printf("memory store seeded reports=%d drivers=%d", len(reports), len(drivers))
	return repositories.NewMemoryRepository(reports, drivers), nil
}
