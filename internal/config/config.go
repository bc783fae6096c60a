// Package config reads service settings from the environment and optimizer
// tuning from an optional YAML file.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the env var for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: key=%s value=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetFloat(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: key=%s value=%q is not a number, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: key=%s value=%q is not a duration, using %s", key, v, fallback)
		return fallback
	}
	return d
}

// Server holds the settings of cmd/server.
type Server struct {
	Port              string
	DatabaseURL       string
	RedisURL          string
	RouteCacheTTL     time.Duration
	OptimizeRateLimit float64
	OptimizeRateBurst int
	OptimizerConfig   string
	CommitConcurrency int
	SeedReportsPath   string
	SeedDriversPath   string
}

func LoadServer() Server {
	return Server{
		Port:              Get("PORT", "8080"),
		DatabaseURL:       Get("DATABASE_URL", ""),
		RedisURL:          Get("REDIS_URL", ""),
		RouteCacheTTL:     GetDuration("ROUTE_CACHE_TTL", 2*time.Minute),
		OptimizeRateLimit: GetFloat("OPTIMIZE_RATE_LIMIT", 10),
		OptimizeRateBurst: GetInt("OPTIMIZE_RATE_BURST", 20),
		OptimizerConfig:   Get("OPTIMIZER_CONFIG", ""),
		CommitConcurrency: GetInt("COMMIT_CONCURRENCY", 4),
		SeedReportsPath:   Get("SEED_REPORTS_PATH", ""),
		SeedDriversPath:   Get("SEED_DRIVERS_PATH", ""),
	}
}

func (s Server) String() string {
	return fmt.Sprintf("port=%s database=%t redis=%t cache_ttl=%s rate=%v burst=%d",
		s.Port, s.DatabaseURL != "", s.RedisURL != "", s.RouteCacheTTL, s.OptimizeRateLimit, s.OptimizeRateBurst)
}
