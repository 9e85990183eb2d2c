package domain

import (
	"time"
)

// Represents one out-and-back trip of a vehicle.
// Stops start at the depot and, when anything was delivered, end at it.
// A run holding only the depot is valid output: the vehicle found no
// feasible location when the run started.
type Run struct {
	Stops    []Location `json:"stops"`
	Distance float64    `json:"distance"`
}

// Deliveries sums the demand of the non-depot stops.
func (r Run) Deliveries() int {
	total := 0
	for _, s := range r.Stops {
		if !s.IsDepot() {
			total += s.Demand
		}
	}
	return total
}

// LocationIDs lists visited ids in order, depot excluded.
func (r Run) LocationIDs() []int {
	ids := make([]int, 0, len(r.Stops))
	for _, s := range r.Stops {
		if !s.IsDepot() {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func (r Run) IsEmpty() bool { return len(r.LocationIDs()) == 0 }

// A single straight segment travelled between two consecutive stops.
type Leg struct {
	From     Location
	To       Location
	Distance float64
}

// Legs rebuilds the travelled segments from stop coordinates alone.
func (r Run) Legs() []Leg {
	if len(r.Stops) < 2 {
		return []Leg{}
	}

	legs := make([]Leg, 0, len(r.Stops)-1)
	for i := 1; i < len(r.Stops); i++ {
		from, to := r.Stops[i-1], r.Stops[i]
		legs = append(legs, Leg{
			From:     from,
			To:       to,
			Distance: Distance(from, to),
		})
	}
	return legs
}

// Represents every run of one vehicle, in the order they were built.
type VehiclePlan struct {
	VehicleID     int     `json:"vehicle_id"`
	Runs          []Run   `json:"runs"`
	TotalDistance float64 `json:"total_distance"`
}

func (v VehiclePlan) Deliveries() int {
	total := 0
	for _, r := range v.Runs {
		total += r.Deliveries()
	}
	return total
}

// Represents the output of the route planner for a whole fleet.
// Vehicles are ordered by id; Unvisited holds the ids no vehicle could reach.
// It is immutable planning data and contains no side effects.
type RoutePlan struct {
	Vehicles  []VehiclePlan `json:"vehicles"`
	Unvisited []int         `json:"unvisited"`
}

func (p RoutePlan) Vehicle(id int) (VehiclePlan, bool) {
	for _, v := range p.Vehicles {
		if v.VehicleID == id {
			return v, true
		}
	}
	return VehiclePlan{}, false
}

func (p RoutePlan) RunCount() int {
	n := 0
	for _, v := range p.Vehicles {
		n += len(v.Runs)
	}
	return n
}

func (p RoutePlan) TotalDistance() float64 {
	total := 0.0
	for _, v := range p.Vehicles {
		total += v.TotalDistance
	}
	return total
}

// A computed plan together with the input and instance that produced it.
type StoredPlan struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Input     PlanInput  `json:"input"`
	Locations []Location `json:"locations"`
	Plan      RoutePlan  `json:"plan"`
}
