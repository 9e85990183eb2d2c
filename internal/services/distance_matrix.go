package services

import (
	"fleet-route-planner/internal/domain"

	"gonum.org/v1/gonum/mat"
)

// DistanceMatrix is the symmetric Euclidean distance table of one instance.
// Each unordered pair is computed once and mirrored. It is read-only once
// built and safe to share.
type DistanceMatrix struct {
	sym *mat.SymDense
}

// BuildDistanceMatrix fills the table in O(N^2).
// The diagonal is zero.
func BuildDistanceMatrix(locations []domain.Location) *DistanceMatrix {
	n := len(locations)
	if n == 0 {
		return &DistanceMatrix{}
	}

	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sym.SetSym(i, j, domain.Distance(locations[i], locations[j]))
		}
	}

	return &DistanceMatrix{sym: sym}
}

func (m *DistanceMatrix) Size() int {
	if m.sym == nil {
		return 0
	}
	n, _ := m.sym.Dims()
	return n
}

func (m *DistanceMatrix) Distance(i, j int) float64 {
	return m.sym.At(i, j)
}
