package repositories

import (
	"encoding/json"
	"fleet-route-planner/internal/domain"
	"fmt"
	"os"
)

// Load an externally generated instance from a JSON array of locations.
// The depot must come first and ids must match positions.
func LoadLocationsJSON(jsonPath string) ([]domain.Location, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load locations: read %q: %w", jsonPath, err)
	}

	var data []domain.Location
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load locations: parse json: %w", err)
	}

	if err := domain.ValidateLocations(data); err != nil {
		return nil, fmt.Errorf("load locations %q: %w", jsonPath, err)
	}

	return data, nil
}
