package domain

import (
	"fmt"
	"math"
)

// DepotID is reserved for the depot, which always sits at position 0 of an instance.
const DepotID = 0

// Immutable delivery point on the planning plane.
// The depot carries DepotID and zero demand; every other location
// carries the number of deliveries made when a vehicle stops there.
type Location struct {
	ID     int     `json:"id" yaml:"id"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Demand int     `json:"demand" yaml:"demand"`
}

func (l Location) IsDepot() bool { return l.ID == DepotID }

// Distance is the straight-line distance between two locations.
// The sum of squares is rounded once, so equal distances compare equal;
// math.Hypot does not guarantee that.
func Distance(a, b Location) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Bounds of the coordinate plane and of per-location demand, both inclusive.
type Bounds struct {
	MinCoord  int
	MaxCoord  int
	MinDemand int
	MaxDemand int
}

// DefaultBounds is the [0,100] plane with demand drawn from 1-5.
func DefaultBounds() Bounds {
	return Bounds{MinCoord: 0, MaxCoord: 100, MinDemand: 1, MaxDemand: 5}
}

// Center returns the depot position for the plane.
func (b Bounds) Center() (float64, float64) {
	c := float64(b.MinCoord+b.MaxCoord) / 2
	return c, c
}

func (b Bounds) Validate() error {
	if b.MinCoord > b.MaxCoord {
		return fmt.Errorf("bounds: coordinate range [%d,%d] is inverted: %w", b.MinCoord, b.MaxCoord, ErrInvalidConfiguration)
	}
	if b.MinDemand < 0 || b.MinDemand > b.MaxDemand {
		return fmt.Errorf("bounds: demand range [%d,%d] is invalid: %w", b.MinDemand, b.MaxDemand, ErrInvalidConfiguration)
	}
	return nil
}

// ValidateLocations checks an externally supplied instance.
// The depot must be first, ids must equal positions and demands must be non-negative.
func ValidateLocations(locations []Location) error {
	if len(locations) == 0 {
		return fmt.Errorf("locations: instance must contain the depot: %w", ErrInvalidConfiguration)
	}

	for i, l := range locations {
		if l.ID != i {
			return fmt.Errorf("locations: position %d has id %d, want %d: %w", i, l.ID, i, ErrInvalidConfiguration)
		}
		if l.Demand < 0 {
			return fmt.Errorf("locations: id %d has negative demand %d: %w", l.ID, l.Demand, ErrInvalidConfiguration)
		}
	}

	if locations[0].Demand != 0 {
		return fmt.Errorf("locations: depot demand must be 0, got %d: %w", locations[0].Demand, ErrInvalidConfiguration)
	}

	return nil
}
