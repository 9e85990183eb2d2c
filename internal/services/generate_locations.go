package services

import (
	"fleet-route-planner/internal/domain"
	"fmt"
	"math/rand/v2"
)

// NewRand returns a deterministic random source for a seed.
func NewRand(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// GenerateLocations builds a random instance: the depot at the center of the
// plane followed by n locations with ids 1..n. Coordinates are whole numbers
// drawn uniformly from the bounds; demand is drawn uniformly from the demand range.
func GenerateLocations(rng *rand.Rand, n int, bounds domain.Bounds) ([]domain.Location, error) {
	if n < 0 {
		return nil, fmt.Errorf("generate locations: location count %d must be >= 0: %w", n, domain.ErrInvalidConfiguration)
	}
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("generate locations: %w", err)
	}

	cx, cy := bounds.Center()
	locations := make([]domain.Location, 0, n+1)
	locations = append(locations, domain.Location{ID: domain.DepotID, X: cx, Y: cy})

	for id := 1; id <= n; id++ {
		x := uniformInt(rng, bounds.MinCoord, bounds.MaxCoord)
		y := uniformInt(rng, bounds.MinCoord, bounds.MaxCoord)
		demand := uniformInt(rng, bounds.MinDemand, bounds.MaxDemand)

		locations = append(locations, domain.Location{
			ID:     id,
			X:      float64(x),
			Y:      float64(y),
			Demand: demand,
		})
	}

	return locations, nil
}

func uniformInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}
