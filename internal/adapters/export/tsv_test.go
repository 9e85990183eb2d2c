package export

import (
	"bytes"
	"errors"
	"fleet-route-planner/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() domain.RoutePlan {
	depot := domain.Location{ID: domain.DepotID, X: 50, Y: 50}
	return domain.RoutePlan{
		Vehicles: []domain.VehiclePlan{
			{
				VehicleID: 1,
				Runs: []domain.Run{
					{
						Stops: []domain.Location{
							depot,
							{ID: 7, X: 51, Y: 50, Demand: 2},
							{ID: 3, X: 52, Y: 50, Demand: 4},
							depot,
						},
						Distance: 4,
					},
					{
						Stops:    []domain.Location{depot, {ID: 9, X: 60, Y: 50, Demand: 1}, depot},
						Distance: 20.004,
					},
				},
				TotalDistance: 24.004,
			},
			{
				VehicleID: 2,
				Runs:      []domain.Run{{Stops: []domain.Location{depot}}},
			},
		},
		Unvisited: []int{},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(samplePlan())
	require.Len(t, rows, 3)

	assert.Equal(t, RunRow{VehicleID: 1, RunNo: 1, Deliveries: 6, Distance: 4, LocationIDs: []int{7, 3}}, rows[0])
	assert.Equal(t, 2, rows[1].RunNo)
	assert.Equal(t, RunRow{VehicleID: 2, RunNo: 1, LocationIDs: []int{}}, rows[2])
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, samplePlan()))

	want := "VehicleID\tRun_No\tDeliveries\tDistance\tLocations\r\n" +
		"1\t1\t6\t4.00 km\t7, 3\r\n" +
		"1\t2\t1\t20.00 km\t9\r\n" +
		"2\t1\t0\t0.00 km\t\r\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTSVEmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, domain.RoutePlan{}))
	assert.Equal(t, "VehicleID\tRun_No\tDeliveries\tDistance\tLocations\r\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteTSVPropagatesWriteError(t *testing.T) {
	err := WriteTSV(failingWriter{}, samplePlan())
	assert.Error(t, err)
}
