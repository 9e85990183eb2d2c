package domain

import (
	"fmt"
	"math"
)

// Defaults used when a request leaves a planning field unset.
const (
	DefaultLocationCount       = 200
	DefaultMaxDistance         = 200.0
	DefaultMaxDeliveriesPerRun = 20
)

// Delivery vehicle constraints.
// MaxDistance bounds the cumulative distance across all of the vehicle's runs;
// MaxDeliveriesPerRun bounds the demand served by one run.
type Vehicle struct {
	ID                  int     `json:"id"`
	MaxDistance         float64 `json:"max_distance"`
	MaxDeliveriesPerRun int     `json:"max_deliveries_per_run"`
}

func NewVehicle(id int, maxDistance float64, maxDeliveriesPerRun int) Vehicle {
	return Vehicle{
		ID:                  id,
		MaxDistance:         maxDistance,
		MaxDeliveriesPerRun: maxDeliveriesPerRun,
	}
}

func (v Vehicle) Validate() error {
	if v.ID < 1 {
		return fmt.Errorf("vehicle id %d must be >= 1: %w", v.ID, ErrInvalidConfiguration)
	}
	if math.IsNaN(v.MaxDistance) || math.IsInf(v.MaxDistance, 0) || v.MaxDistance <= 0 {
		return fmt.Errorf("vehicle %d: max distance %v must be a positive finite number: %w", v.ID, v.MaxDistance, ErrInvalidConfiguration)
	}
	if v.MaxDeliveriesPerRun <= 0 {
		return fmt.Errorf("vehicle %d: max deliveries per run %d must be positive: %w", v.ID, v.MaxDeliveriesPerRun, ErrInvalidConfiguration)
	}
	return nil
}

// UniformFleet builds count vehicles numbered 1..count sharing the same caps.
func UniformFleet(count int, maxDistance float64, maxDeliveriesPerRun int) ([]Vehicle, error) {
	if count < 0 {
		return nil, fmt.Errorf("uniform fleet: vehicle count %d must be >= 0: %w", count, ErrInvalidConfiguration)
	}

	fleet := make([]Vehicle, 0, count)
	for i := 1; i <= count; i++ {
		fleet = append(fleet, NewVehicle(i, maxDistance, maxDeliveriesPerRun))
	}

	if err := ValidateFleet(fleet); err != nil {
		return nil, fmt.Errorf("uniform fleet: %w", err)
	}
	return fleet, nil
}

// ValidateFleet requires ids 1..len(fleet) in order and valid caps on every vehicle.
func ValidateFleet(fleet []Vehicle) error {
	for i, v := range fleet {
		if v.ID != i+1 {
			return fmt.Errorf("fleet: position %d has vehicle id %d, want %d: %w", i, v.ID, i+1, ErrInvalidConfiguration)
		}
		if err := v.Validate(); err != nil {
			return fmt.Errorf("fleet: %w", err)
		}
	}
	return nil
}
