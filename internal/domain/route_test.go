package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() Run {
	depot := Location{ID: DepotID, X: 50, Y: 50}
	return Run{
		Stops: []Location{
			depot,
			{ID: 4, X: 53, Y: 54, Demand: 2},
			{ID: 2, X: 53, Y: 50, Demand: 3},
			depot,
		},
		Distance: 12,
	}
}

func TestRunDeliveriesAndIDs(t *testing.T) {
	run := sampleRun()

	assert.Equal(t, 5, run.Deliveries())
	assert.Equal(t, []int{4, 2}, run.LocationIDs())
	assert.False(t, run.IsEmpty())
}

func TestRunLegs(t *testing.T) {
	legs := sampleRun().Legs()
	require.Len(t, legs, 3)

	assert.Equal(t, 4, legs[0].To.ID)
	assert.InDelta(t, 5.0, legs[0].Distance, 1e-12)
	assert.InDelta(t, 4.0, legs[1].Distance, 1e-12)
	assert.InDelta(t, 3.0, legs[2].Distance, 1e-12)

	total := 0.0
	for _, l := range legs {
		total += l.Distance
	}
	assert.InDelta(t, sampleRun().Distance, total, 1e-9)
}

func TestDistanceEquidistantPointsCompareEqual(t *testing.T) {
	depot := Location{ID: DepotID, X: 50, Y: 50}
	a := Location{ID: 1, X: 59, Y: 52}
	b := Location{ID: 2, X: 43, Y: 44}

	assert.Equal(t, Distance(depot, a), Distance(depot, b))
	assert.Equal(t, Distance(a, depot), Distance(depot, a))
}

func TestDepotOnlyRun(t *testing.T) {
	run := Run{Stops: []Location{{ID: DepotID, X: 50, Y: 50}}}

	assert.True(t, run.IsEmpty())
	assert.Equal(t, 0, run.Deliveries())
	assert.Empty(t, run.Legs())
}

func TestRoutePlanLookups(t *testing.T) {
	plan := RoutePlan{
		Vehicles: []VehiclePlan{
			{VehicleID: 1, Runs: []Run{sampleRun(), sampleRun()}, TotalDistance: 24},
			{VehicleID: 2, Runs: []Run{{Stops: []Location{{ID: DepotID}}}}},
		},
	}

	v, ok := plan.Vehicle(1)
	require.True(t, ok)
	assert.Equal(t, 10, v.Deliveries())

	_, ok = plan.Vehicle(3)
	assert.False(t, ok)

	assert.Equal(t, 3, plan.RunCount())
	assert.InDelta(t, 24.0, plan.TotalDistance(), 1e-12)
}

func TestValidateLocations(t *testing.T) {
	good := []Location{{ID: 0, X: 50, Y: 50}, {ID: 1, X: 1, Y: 2, Demand: 3}}
	require.NoError(t, ValidateLocations(good))

	bad := [][]Location{
		nil,
		{{ID: 1}},
		{{ID: 0, Demand: 1}},
		{{ID: 0}, {ID: 2}},
		{{ID: 0}, {ID: 1, Demand: -1}},
	}
	for _, locs := range bad {
		err := ValidateLocations(locs)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration), "locations %+v: err = %v", locs, err)
	}
}

func TestBoundsValidate(t *testing.T) {
	require.NoError(t, DefaultBounds().Validate())

	x, y := DefaultBounds().Center()
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 50.0, y)

	assert.ErrorIs(t, Bounds{MinCoord: 10, MaxCoord: 0, MinDemand: 1, MaxDemand: 5}.Validate(), ErrInvalidConfiguration)
	assert.ErrorIs(t, Bounds{MinCoord: 0, MaxCoord: 10, MinDemand: 6, MaxDemand: 5}.Validate(), ErrInvalidConfiguration)
}
