package export

import (
	"encoding/csv"
	"fleet-route-planner/internal/domain"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var header = []string{"VehicleID", "Run_No", "Deliveries", "Distance", "Locations"}

// One exported line: a single run of a single vehicle.
type RunRow struct {
	VehicleID   int
	RunNo       int
	Deliveries  int
	Distance    float64
	LocationIDs []int
}

// Rows flattens a plan into one row per run, vehicles in plan order and runs
// numbered from 1. Depot-only runs are kept.
func Rows(plan domain.RoutePlan) []RunRow {
	rows := make([]RunRow, 0, plan.RunCount())
	for _, v := range plan.Vehicles {
		for i, run := range v.Runs {
			rows = append(rows, RunRow{
				VehicleID:   v.VehicleID,
				RunNo:       i + 1,
				Deliveries:  run.Deliveries(),
				Distance:    run.Distance,
				LocationIDs: run.LocationIDs(),
			})
		}
	}
	return rows
}

func (r RunRow) record() []string {
	ids := make([]string, len(r.LocationIDs))
	for i, id := range r.LocationIDs {
		ids[i] = strconv.Itoa(id)
	}

	return []string{
		strconv.Itoa(r.VehicleID),
		strconv.Itoa(r.RunNo),
		strconv.Itoa(r.Deliveries),
		fmt.Sprintf("%.2f km", r.Distance),
		strings.Join(ids, ", "),
	}
}

// WriteTSV writes the route data table, tab separated with CRLF line endings.
func WriteTSV(w io.Writer, plan domain.RoutePlan) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	cw.UseCRLF = true

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write tsv: header: %w", err)
	}
	for _, row := range Rows(plan) {
		if err := cw.Write(row.record()); err != nil {
			return fmt.Errorf("write tsv: vehicle %d run %d: %w", row.VehicleID, row.RunNo, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write tsv: flush: %w", err)
	}
	return nil
}
