package config

import (
	"fmt"
	"os"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/services"

	"gopkg.in/yaml.v3"
)

// Optimizer is the YAML shape of the optimizer tuning file.
type Optimizer struct {
	Weights struct {
		Priority float64 `yaml:"priority"`
		Distance float64 `yaml:"distance"`
		Balance  float64 `yaml:"balance"`
	} `yaml:"weights"`
	AverageSpeedKmh       float64 `yaml:"average_speed_kmh"`
	ServiceMinutesPerStop float64 `yaml:"service_minutes_per_stop"`
	DefaultDriverCapacity float64 `yaml:"default_driver_capacity"`
}

// LoadOptimizer reads tuning from path. An empty path yields the defaults.
func LoadOptimizer(path string) (services.OptimizeOptions, float64, error) {
	if path == "" {
		return services.OptimizeOptions{
			Weights:         domain.DefaultWeights,
			AverageSpeedKmh: services.DefaultAverageSpeedKmh,
		}, services.DefaultDriverCapacity, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return services.OptimizeOptions{}, 0, fmt.Errorf("load optimizer config: read %q: %w", path, err)
	}
	return ParseOptimizer(b)
}

// ParseOptimizer decodes and validates YAML tuning. Omitted fields take defaults.
func ParseOptimizer(b []byte) (services.OptimizeOptions, float64, error) {
	var raw Optimizer
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return services.OptimizeOptions{}, 0, fmt.Errorf("load optimizer config: parse yaml: %w", err)
	}

	w, err := domain.Weights{
		Priority: raw.Weights.Priority,
		Distance: raw.Weights.Distance,
		Balance:  raw.Weights.Balance,
	}.Resolve()
	if err != nil {
		return services.OptimizeOptions{}, 0, fmt.Errorf("load optimizer config: %w", err)
	}

	opts := services.OptimizeOptions{
		Weights:               w,
		AverageSpeedKmh:       raw.AverageSpeedKmh,
		ServiceMinutesPerStop: raw.ServiceMinutesPerStop,
	}
	if opts.AverageSpeedKmh == 0 {
		opts.AverageSpeedKmh = services.DefaultAverageSpeedKmh
	}
	if opts.AverageSpeedKmh < 0 || opts.ServiceMinutesPerStop < 0 {
		return services.OptimizeOptions{}, 0, fmt.Errorf("load optimizer config: speed and service time must be non-negative: %w", domain.ErrInvalidOptions)
	}

	capacity := raw.DefaultDriverCapacity
	if capacity == 0 {
		capacity = services.DefaultDriverCapacity
	}
	if capacity < 0 {
		return services.OptimizeOptions{}, 0, fmt.Errorf("load optimizer config: default driver capacity %v: %w", capacity, domain.ErrInvalidCapacity)
	}

	return opts, capacity, nil
}
