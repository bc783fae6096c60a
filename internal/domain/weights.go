package domain

import (
	"fmt"
	"math"
)

// Relative importance of priority, distance and balance in assignment and scoring.
// The zero value means DefaultWeights.
type Weights struct {
	Priority float64
	Distance float64
	Balance  float64
}

var DefaultWeights = Weights{Priority: 0.4, Distance: 0.4, Balance: 0.2}

const weightSumTolerance = 0.01

func (w Weights) IsZero() bool {
	return w == Weights{}
}

// Resolve returns DefaultWeights for the zero value, otherwise validates w.
func (w Weights) Resolve() (Weights, error) {
	if w.IsZero() {
		return DefaultWeights, nil
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// Validate requires each weight in [0, 1] and a sum within 0.01 of 1.
func (w Weights) Validate() error {
	named := []struct {
		name string
		v    float64
	}{{"priority", w.Priority}, {"distance", w.Distance}, {"balance", w.Balance}}
	for _, n := range named {
		if math.IsNaN(n.v) || n.v < 0 || n.v > 1 {
			return fmt.Errorf("%s weight %v outside [0,1]: %w", n.name, n.v, ErrInvalidWeights)
		}
	}
	sum := w.Priority + w.Distance + w.Balance
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("weights sum to %.3f, want 1.0: %w", sum, ErrInvalidWeights)
	}
	return nil
}
