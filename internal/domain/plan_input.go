package domain

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Per-vehicle overrides. A zero field inherits the fleet-wide value.
type VehicleLimits struct {
	MaxDistance         float64 `json:"max_distance,omitempty" yaml:"max_distance"`
	MaxDeliveriesPerRun int     `json:"max_deliveries_per_run,omitempty" yaml:"max_deliveries_per_run"`
}

// Everything needed to reproduce one plan: the instance (a seed and a count,
// or explicit locations) and the fleet constraints.
type PlanInput struct {
	Seed                  int64           `json:"seed"`
	LocationCount         int             `json:"location_count"`
	Locations             []Location      `json:"locations,omitempty"`
	VehicleCount          int             `json:"vehicle_count"`
	MaxDistancePerVehicle float64         `json:"max_distance_per_vehicle"`
	MaxDeliveriesPerRun   int             `json:"max_deliveries_per_run"`
	Vehicles              []VehicleLimits `json:"vehicles,omitempty"`
}

// Fleet expands the input into vehicles 1..VehicleCount, applying overrides in order.
func (in PlanInput) Fleet() ([]Vehicle, error) {
	if in.VehicleCount < 0 {
		return nil, fmt.Errorf("fleet: vehicle count %d must be >= 0: %w", in.VehicleCount, ErrInvalidConfiguration)
	}
	if len(in.Vehicles) > in.VehicleCount {
		return nil, fmt.Errorf(
			"fleet: %d vehicle overrides for %d vehicles: %w",
			len(in.Vehicles), in.VehicleCount, ErrInvalidConfiguration,
		)
	}

	fleet := make([]Vehicle, 0, in.VehicleCount)
	for i := 0; i < in.VehicleCount; i++ {
		v := NewVehicle(i+1, in.MaxDistancePerVehicle, in.MaxDeliveriesPerRun)
		if i < len(in.Vehicles) {
			if o := in.Vehicles[i]; o.MaxDistance != 0 {
				v.MaxDistance = o.MaxDistance
			}
			if o := in.Vehicles[i]; o.MaxDeliveriesPerRun != 0 {
				v.MaxDeliveriesPerRun = o.MaxDeliveriesPerRun
			}
		}
		fleet = append(fleet, v)
	}

	if err := ValidateFleet(fleet); err != nil {
		return nil, err
	}
	return fleet, nil
}

// Fingerprint identifies the input for caching; equal inputs give equal fingerprints.
func (in PlanInput) Fingerprint() (string, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("fingerprint plan input: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b)), nil
}
