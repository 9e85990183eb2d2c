package services

import (
	"context"
	"errors"
	"fleet-route-planner/internal/domain"
	"fleet-route-planner/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	plans   map[string]*domain.StoredPlan
	saveErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{plans: map[string]*domain.StoredPlan{}}
}

func (m *memoryRepo) SavePlan(ctx context.Context, p *domain.StoredPlan) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.plans[p.ID] = p
	return nil
}

func (m *memoryRepo) GetPlan(ctx context.Context, id string) (*domain.StoredPlan, error) {
	p, ok := m.plans[id]
	if !ok {
		return nil, ports.ErrPlanNotFound
	}
	return p, nil
}

func (m *memoryRepo) ListPlans(ctx context.Context, limit int) ([]*domain.StoredPlan, error) {
	out := make([]*domain.StoredPlan, 0, len(m.plans))
	for _, p := range m.plans {
		out = append(out, p)
	}
	return out, nil
}

type memoryCache struct {
	entries map[string]*domain.StoredPlan
	getErr  error
	gets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]*domain.StoredPlan{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (*domain.StoredPlan, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	p, ok := c.entries[key]
	return p, ok, nil
}

func (c *memoryCache) Put(ctx context.Context, key string, p *domain.StoredPlan) error {
	c.entries[key] = p
	return nil
}

func sampleInput() domain.PlanInput {
	return domain.PlanInput{
		Seed:                  17,
		LocationCount:         60,
		VehicleCount:          3,
		MaxDistancePerVehicle: 200,
		MaxDeliveriesPerRun:   20,
	}
}

func TestPlanDeliveriesStoresPlan(t *testing.T) {
	repo := newMemoryRepo()

	stored, err := PlanDeliveries(context.Background(), sampleInput(), repo, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.Len(t, stored.Locations, 61)
	assert.Len(t, stored.Plan.Vehicles, 3)
	assert.Equal(t, sampleInput(), stored.Input)

	got, err := repo.GetPlan(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Same(t, stored, got)
}

func TestPlanDeliveriesMatchesCore(t *testing.T) {
	in := sampleInput()

	stored, err := PlanDeliveries(context.Background(), in, nil, nil)
	require.NoError(t, err)

	locations, err := GenerateLocations(NewRand(in.Seed), in.LocationCount, domain.DefaultBounds())
	require.NoError(t, err)
	fleet, err := in.Fleet()
	require.NoError(t, err)
	want, err := PlanRoutes(locations, BuildDistanceMatrix(locations), fleet)
	require.NoError(t, err)

	assert.Equal(t, *want, stored.Plan)
}

func TestPlanDeliveriesUsesCache(t *testing.T) {
	repo := newMemoryRepo()
	cache := newMemoryCache()

	first, err := PlanDeliveries(context.Background(), sampleInput(), repo, cache)
	require.NoError(t, err)
	second, err := PlanDeliveries(context.Background(), sampleInput(), repo, cache)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, repo.plans, 1)
	assert.Equal(t, 2, cache.gets)
}

func TestPlanDeliveriesCacheFailureIsNotFatal(t *testing.T) {
	cache := newMemoryCache()
	cache.getErr = errors.New("connection refused")

	stored, err := PlanDeliveries(context.Background(), sampleInput(), nil, cache)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestPlanDeliveriesExplicitLocations(t *testing.T) {
	in := domain.PlanInput{
		Locations: []domain.Location{
			{ID: 0, X: 50, Y: 50},
			{ID: 1, X: 55, Y: 50, Demand: 1},
		},
		VehicleCount:          1,
		MaxDistancePerVehicle: 100,
		MaxDeliveriesPerRun:   5,
	}

	stored, err := PlanDeliveries(context.Background(), in, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, in.Locations, stored.Locations)
	assert.Equal(t, []int{1}, stored.Plan.Vehicles[0].Runs[0].LocationIDs())
}

func TestPlanDeliveriesRejectsInvalidInput(t *testing.T) {
	cases := []domain.PlanInput{
		{LocationCount: -1, VehicleCount: 1, MaxDistancePerVehicle: 10, MaxDeliveriesPerRun: 1},
		{LocationCount: 5, VehicleCount: -2, MaxDistancePerVehicle: 10, MaxDeliveriesPerRun: 1},
		{LocationCount: 5, VehicleCount: 1, MaxDistancePerVehicle: 0, MaxDeliveriesPerRun: 1},
		{LocationCount: 5, VehicleCount: 1, MaxDistancePerVehicle: 10, MaxDeliveriesPerRun: 0},
		{Locations: []domain.Location{{ID: 3}}, VehicleCount: 1, MaxDistancePerVehicle: 10, MaxDeliveriesPerRun: 1},
	}

	for _, in := range cases {
		_, err := PlanDeliveries(context.Background(), in, newMemoryRepo(), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration, "input %+v", in)
	}
}

func TestPlanDeliveriesSaveFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.saveErr = errors.New("disk full")

	_, err := PlanDeliveries(context.Background(), sampleInput(), repo, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.saveErr)
	assert.NotErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestPlanDeliveriesCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PlanDeliveries(ctx, sampleInput(), nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
