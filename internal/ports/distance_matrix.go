package ports

// Read-only all-pairs distance table indexed by location position.
// Position 0 is the depot.
type DistanceMatrix interface {
	// Number of locations covered, depot included.
	Size() int
	// Distance between the locations at positions i and j.
	Distance(i, j int) float64
}
