package services

import (
	"fleet-route-planner/internal/domain"
	"fleet-route-planner/internal/ports"
	"fmt"
)

// Plan routes for a fleet using a greedy nearest-feasible-neighbor rule.
//
// Vehicles are processed in fleet order and draw from one shared pool of
// unvisited locations, so a location assigned to any run is never offered
// again. Each vehicle builds runs from the depot until its distance budget is
// spent or a search finds no feasible location. The algorithm makes no
// optimality claim; it is deterministic for identical inputs.
func PlanRoutes(
	locations []domain.Location,
	dm ports.DistanceMatrix,
	fleet []domain.Vehicle,
) (*domain.RoutePlan, error) {
	if len(locations) == 0 || !locations[depotPos].IsDepot() {
		return nil, fmt.Errorf("plan routes: depot must be the first location: %w", domain.ErrInvalidConfiguration)
	}

	if dm == nil || dm.Size() != len(locations) {
		return nil, fmt.Errorf("plan routes: distance matrix does not cover %d locations: %w", len(locations), domain.ErrInvalidConfiguration)
	}

	if err := domain.ValidateFleet(fleet); err != nil {
		return nil, fmt.Errorf("plan routes: %w", err)
	}

	visited := make(visitedSet, len(locations))

	plan := &domain.RoutePlan{
		Vehicles: make([]domain.VehiclePlan, 0, len(fleet)),
	}
	for _, v := range fleet {
		plan.Vehicles = append(plan.Vehicles, planVehicle(locations, dm, visited, v))
	}

	plan.Unvisited = make([]int, 0, len(locations)-1-len(visited))
	for pos := 1; pos < len(locations); pos++ {
		if !visited.has(pos) {
			plan.Unvisited = append(plan.Unvisited, locations[pos].ID)
		}
	}

	return plan, nil
}

// planVehicle keeps starting runs for v until the budget is used up or the
// last run's search came back empty.
func planVehicle(
	locations []domain.Location,
	dm ports.DistanceMatrix,
	visited visitedSet,
	v domain.Vehicle,
) domain.VehiclePlan {
	vp := domain.VehiclePlan{VehicleID: v.ID, Runs: []domain.Run{}}

	for {
		run, exhausted := buildRun(locations, dm, visited, v, vp.TotalDistance)
		vp.Runs = append(vp.Runs, run)
		vp.TotalDistance += run.Distance

		if vp.TotalDistance >= v.MaxDistance {
			break
		}
		if exhausted {
			break
		}
	}

	return vp
}
