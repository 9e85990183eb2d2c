package services

import (
	"fleet-route-planner/internal/domain"
	"fleet-route-planner/internal/ports"
	"math"
)

const depotPos = 0

// visitedSet holds the positions already assigned to a run. One set is shared
// by every vehicle and run of a single planning invocation.
type visitedSet map[int]struct{}

func (v visitedSet) has(pos int) bool {
	_, ok := v[pos]
	return ok
}

func (v visitedSet) mark(pos int) { v[pos] = struct{}{} }

// candidate is a location chosen by one greedy step.
type candidate struct {
	pos    int
	travel float64
}

// nearestFeasible picks the unvisited location closest to current whose
// projected vehicle total, return leg included, stays strictly below budget.
// Positions are scanned in ascending order and only a strictly shorter travel
// replaces the best so far, so ties go to the lowest id.
func nearestFeasible(
	dm ports.DistanceMatrix,
	visited visitedSet,
	current int,
	runDistance float64,
	vehicleTotal float64,
	budget float64,
) (candidate, bool) {
	best := candidate{pos: -1, travel: math.Inf(1)}
	found := false

	for pos := 1; pos < dm.Size(); pos++ {
		if visited.has(pos) {
			continue
		}

		travel := dm.Distance(current, pos)
		projected := runDistance + vehicleTotal + travel + dm.Distance(pos, depotPos)
		if projected < budget && travel < best.travel {
			best = candidate{pos: pos, travel: travel}
			found = true
		}
	}

	return best, found
}

// buildRun runs the greedy inner loop for one run of vehicle v.
//
// The loop continues while the run's deliveries are under the cap and the
// vehicle still has budget. Demand is added after a stop is accepted, so the
// stop that crosses the cap completes. The second result reports whether the
// loop ended because no feasible location was left.
func buildRun(
	locations []domain.Location,
	dm ports.DistanceMatrix,
	visited visitedSet,
	v domain.Vehicle,
	vehicleTotal float64,
) (domain.Run, bool) {
	stops := []domain.Location{locations[depotPos]}
	current := depotPos
	runDistance := 0.0
	deliveries := 0
	exhausted := false

	for deliveries < v.MaxDeliveriesPerRun && runDistance+vehicleTotal < v.MaxDistance {
		next, ok := nearestFeasible(dm, visited, current, runDistance, vehicleTotal, v.MaxDistance)
		if !ok {
			exhausted = true
			break
		}

		visited.mark(next.pos)
		stops = append(stops, locations[next.pos])
		current = next.pos
		runDistance += next.travel
		deliveries += locations[next.pos].Demand
	}

	if current != depotPos {
		runDistance += dm.Distance(current, depotPos)
		stops = append(stops, locations[depotPos])
	}

	return domain.Run{Stops: stops, Distance: runDistance}, exhausted
}
