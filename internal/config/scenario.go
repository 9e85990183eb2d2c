package config

import (
	"errors"
	"fleet-route-planner/internal/domain"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a planning request read from a YAML file.
// Unset fields take the same defaults as the HTTP API.
type Scenario struct {
	Seed                  *int64                 `yaml:"seed"`
	LocationCount         *int                   `yaml:"location_count"`
	LocationsFile         string                 `yaml:"locations_file"`
	VehicleCount          int                    `yaml:"vehicle_count"`
	MaxDistancePerVehicle *float64               `yaml:"max_distance_per_vehicle"`
	MaxDeliveriesPerRun   *int                   `yaml:"max_deliveries_per_run"`
	Vehicles              []domain.VehicleLimits `yaml:"vehicles"`
}

// LoadScenario parses a YAML scenario, rejecting unknown keys.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: open %q: %w", path, err)
	}
	defer f.Close()

	var s Scenario
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("load scenario: parse %q: %w", path, err)
	}

	return &s, nil
}

// PlanInput resolves defaults. fallbackSeed is used when the scenario has no seed.
func (s *Scenario) PlanInput(fallbackSeed int64) domain.PlanInput {
	in := domain.PlanInput{
		Seed:                  fallbackSeed,
		LocationCount:         domain.DefaultLocationCount,
		VehicleCount:          s.VehicleCount,
		MaxDistancePerVehicle: domain.DefaultMaxDistance,
		MaxDeliveriesPerRun:   domain.DefaultMaxDeliveriesPerRun,
		Vehicles:              s.Vehicles,
	}
	if s.Seed != nil {
		in.Seed = *s.Seed
	}
	if s.LocationCount != nil {
		in.LocationCount = *s.LocationCount
	}
	if s.MaxDistancePerVehicle != nil {
		in.MaxDistancePerVehicle = *s.MaxDistancePerVehicle
	}
	if s.MaxDeliveriesPerRun != nil {
		in.MaxDeliveriesPerRun = *s.MaxDeliveriesPerRun
	}
	return in
}
