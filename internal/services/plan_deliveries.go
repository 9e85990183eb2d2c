package services

import (
	"context"
	"errors"
	"fleet-route-planner/internal/domain"
	"fleet-route-planner/internal/platform/metrics"
	"fleet-route-planner/internal/platform/obs"
	"fleet-route-planner/internal/ports"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// PlanDeliveries builds the instance described by in, plans routes for its
// fleet and persists the result.
//
// A cached plan for an identical input is returned as-is. repo and cache may
// be nil, in which case the plan is computed and returned without storage.
func PlanDeliveries(
	ctx context.Context,
	in domain.PlanInput,
	repo ports.PlanRepository,
	cache ports.PlanCache,
) (_ *domain.StoredPlan, err error) {
	defer obs.Time(ctx, "services.PlanDeliveries")(&err)

	outcome := "ok"
	defer func() {
		switch {
		case errors.Is(err, domain.ErrInvalidConfiguration):
			outcome = "invalid"
		case err != nil:
			outcome = "error"
		}
		metrics.PlansTotal.WithLabelValues(outcome).Inc()
	}()

	fleet, err := in.Fleet()
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	key, err := in.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	if cache != nil {
		cached, ok, err := cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.PlanCacheLookups.WithLabelValues("error").Inc()
			log.WithFields(log.Fields{"req_id": obs.RequestID(ctx), "key": key}).WithError(err).Warn("plan cache read failed")
		case ok:
			metrics.PlanCacheLookups.WithLabelValues("hit").Inc()
			outcome = "cached"
			return cached, nil
		default:
			metrics.PlanCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	start := time.Now()

	locations, err := instanceLocations(in)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	dm := BuildDistanceMatrix(locations)
	plan, err := PlanRoutes(locations, dm, fleet)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	metrics.PlanningDuration.Observe(time.Since(start).Seconds())
	metrics.PlanRuns.Observe(float64(plan.RunCount()))
	metrics.PlanUnvisited.Observe(float64(len(plan.Unvisited)))

	stored := &domain.StoredPlan{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Input:     in,
		Locations: locations,
		Plan:      *plan,
	}

	if repo != nil {
		if err := repo.SavePlan(ctx, stored); err != nil {
			return nil, fmt.Errorf("plan deliveries: save plan: %w", err)
		}
	}

	if cache != nil {
		if err := cache.Put(ctx, key, stored); err != nil {
			log.WithFields(log.Fields{"req_id": obs.RequestID(ctx), "key": key}).WithError(err).Warn("plan cache write failed")
		}
	}

	return stored, nil
}

// instanceLocations returns the explicit locations of in, or generates
// LocationCount random ones from its seed.
func instanceLocations(in domain.PlanInput) ([]domain.Location, error) {
	if len(in.Locations) > 0 {
		if err := domain.ValidateLocations(in.Locations); err != nil {
			return nil, err
		}
		return in.Locations, nil
	}

	return GenerateLocations(NewRand(in.Seed), in.LocationCount, domain.DefaultBounds())
}
