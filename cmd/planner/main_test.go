package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWritesRouteData(t *testing.T) {
	dir := t.TempDir()
	scenario := filepath.Join(dir, "scenario.yaml")
	out := filepath.Join(dir, "route_data.csv")

	require.NoError(t, os.WriteFile(scenario, []byte(`
seed: 5
location_count: 25
vehicle_count: 2
max_distance_per_vehicle: 120
max_deliveries_per_run: 6
`), 0o600))

	require.NoError(t, run(scenario, out))

	b, err := os.ReadFile(out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(b), "\r\n"), "\r\n")
	assert.Equal(t, "VehicleID\tRun_No\tDeliveries\tDistance\tLocations", lines[0])
	assert.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[1], "1\t1\t"))
}

func TestRunWithLocationsFile(t *testing.T) {
	dir := t.TempDir()
	locations := filepath.Join(dir, "locations.json")
	scenario := filepath.Join(dir, "scenario.yaml")
	out := filepath.Join(dir, "route_data.csv")

	require.NoError(t, os.WriteFile(locations, []byte(`[
		{"id": 0, "x": 50, "y": 50, "demand": 0},
		{"id": 1, "x": 50, "y": 60, "demand": 4}
	]`), 0o600))
	require.NoError(t, os.WriteFile(scenario, []byte("vehicle_count: 1\nlocations_file: "+locations+"\n"), 0o600))

	require.NoError(t, run(scenario, out))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "VehicleID\tRun_No\tDeliveries\tDistance\tLocations\r\n1\t1\t4\t20.00 km\t1\r\n", string(b))
}

func TestRunRejectsInvalidScenario(t *testing.T) {
	dir := t.TempDir()
	scenario := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(scenario, []byte("vehicle_count: 1\nmax_deliveries_per_run: 0\n"), 0o600))

	assert.Error(t, run(scenario, filepath.Join(dir, "out.csv")))

	assert.Error(t, run(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "out.csv")))
}
