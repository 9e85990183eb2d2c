package main

import (
	"context"
	"flag"
	"fleet-route-planner/internal/adapters/export"
	"fleet-route-planner/internal/adapters/repositories"
	"fleet-route-planner/internal/config"
	"fleet-route-planner/internal/domain"
	"fleet-route-planner/internal/services"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// planner computes one plan from a YAML scenario and writes the route data table.
func main() {
	scenarioPath := flag.String("scenario", "", "YAML scenario file (defaults apply when empty)")
	outPath := flag.String("out", "route_data.csv", "route data output file (tab separated)")
	flag.Parse()

	if err := run(*scenarioPath, *outPath); err != nil {
		log.Fatal(err)
	}
}

func run(scenarioPath, outPath string) error {
	sc := &config.Scenario{}
	if scenarioPath != "" {
		loaded, err := config.LoadScenario(scenarioPath)
		if err != nil {
			return err
		}
		sc = loaded
	}

	in := sc.PlanInput(time.Now().UnixNano())
	if sc.LocationsFile != "" {
		locations, err := repositories.LoadLocationsJSON(sc.LocationsFile)
		if err != nil {
			return err
		}
		in.Locations = locations
		in.LocationCount = len(locations) - 1
	}

	stored, err := services.PlanDeliveries(context.Background(), in, nil, nil)
	if err != nil {
		return err
	}

	logPlan(stored)

	if err := writeRouteData(outPath, stored.Plan); err != nil {
		return err
	}
	log.WithField("path", outPath).Info("Route file written successfully.")
	return nil
}

func logPlan(p *domain.StoredPlan) {
	for _, v := range p.Plan.Vehicles {
		for i, run := range v.Runs {
			log.WithFields(log.Fields{
				"vehicle":    v.VehicleID,
				"run":        i + 1,
				"deliveries": run.Deliveries(),
				"distance":   fmt.Sprintf("%.2f km", run.Distance),
				"locations":  run.LocationIDs(),
			}).Info("run planned")
		}
	}

	log.WithFields(log.Fields{
		"seed":           p.Input.Seed,
		"locations":      len(p.Locations) - 1,
		"runs":           p.Plan.RunCount(),
		"unvisited":      len(p.Plan.Unvisited),
		"total_distance": fmt.Sprintf("%.2f km", p.Plan.TotalDistance()),
	}).Info("plan complete")
}

func writeRouteData(path string, plan domain.RoutePlan) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write route data: create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write route data: close %q: %w", path, cerr)
		}
	}()

	return export.WriteTSV(f, plan)
}
