package config

import (
	"errors"
	"testing"
	"time"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/services"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("WR_STR", "  value ")
	t.Setenv("WR_INT", "7")
	t.Setenv("WR_BAD_INT", "seven")
	t.Setenv("WR_FLOAT", "2.5")
	t.Setenv("WR_DUR", "90s")

	if got := Get("WR_STR", "x"); got != "value" {
		t.Fatalf("Get = %q, want value", got)
	}
	if got := Get("WR_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("Get missing = %q", got)
	}
	if got := GetInt("WR_INT", 1); got != 7 {
		t.Fatalf("GetInt = %d, want 7", got)
	}
	if got := GetInt("WR_BAD_INT", 3); got != 3 {
		t.Fatalf("GetInt bad = %d, want fallback 3", got)
	}
	if got := GetFloat("WR_FLOAT", 0); got != 2.5 {
		t.Fatalf("GetFloat = %v, want 2.5", got)
	}
	if got := GetDuration("WR_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("GetDuration = %v, want 90s", got)
	}
}

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ROUTE_CACHE_TTL", "")
	s := LoadServer()
	if s.Port != "8080" || s.RouteCacheTTL != 2*time.Minute || s.CommitConcurrency != 4 {
		t.Fatalf("defaults = %+v", s)
	}
}

func TestParseOptimizer(t *testing.T) {
	opts, capacity, err := ParseOptimizer([]byte(`
weights:
  priority: 0.5
  distance: 0.3
  balance: 0.2
average_speed_kmh: 30
service_minutes_per_stop: 4
default_driver_capacity: 40
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Weights != (domain.Weights{Priority: 0.5, Distance: 0.3, Balance: 0.2}) {
		t.Fatalf("weights = %+v", opts.Weights)
	}
	if opts.AverageSpeedKmh != 30 || opts.ServiceMinutesPerStop != 4 || capacity != 40 {
		t.Fatalf("opts = %+v capacity = %v", opts, capacity)
	}

	opts, capacity, err = ParseOptimizer([]byte(`{}`))
	if err != nil {
		t.Fatalf("empty config: %v", err)
	}
	if opts.Weights != domain.DefaultWeights || opts.AverageSpeedKmh != services.DefaultAverageSpeedKmh || capacity != services.DefaultDriverCapacity {
		t.Fatalf("defaults = %+v capacity = %v", opts, capacity)
	}

	_, _, err = ParseOptimizer([]byte("weights:\n  priority: 0.9\n  distance: 0.9\n"))
	if !errors.Is(err, domain.ErrInvalidWeights) {
		t.Fatalf("err = %v, want ErrInvalidWeights", err)
	}
}
