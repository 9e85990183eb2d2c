package services

import (
	"fleet-route-planner/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDistanceMatrix(t *testing.T) {
	locations := []domain.Location{
		depotAt(0, 0),
		{ID: 1, X: 3, Y: 4, Demand: 1},
		{ID: 2, X: 6, Y: 8, Demand: 1},
	}

	dm := BuildDistanceMatrix(locations)
	require.Equal(t, 3, dm.Size())

	assert.Equal(t, 5.0, dm.Distance(0, 1))
	assert.Equal(t, 10.0, dm.Distance(0, 2))
	assert.Equal(t, 5.0, dm.Distance(1, 2))
	assert.Equal(t, 5.0, dm.Distance(2, 1))
}

func TestDistanceMatrixInvariants(t *testing.T) {
	locations, err := GenerateLocations(NewRand(3), 40, domain.DefaultBounds())
	require.NoError(t, err)

	dm := BuildDistanceMatrix(locations)
	n := dm.Size()
	require.Equal(t, len(locations), n)

	for i := 0; i < n; i++ {
		assert.Zero(t, dm.Distance(i, i))
		for j := 0; j < n; j++ {
			dij := dm.Distance(i, j)
			assert.GreaterOrEqual(t, dij, 0.0)
			assert.Equal(t, dij, dm.Distance(j, i))

			want := domain.Distance(locations[i], locations[j])
			assert.Equal(t, want, dij)

			for k := 0; k < n; k += 7 {
				assert.LessOrEqual(t, dij, dm.Distance(i, k)+dm.Distance(k, j)+1e-9)
			}
		}
	}
}

func TestBuildDistanceMatrixEmpty(t *testing.T) {
	assert.Zero(t, BuildDistanceMatrix(nil).Size())
}
