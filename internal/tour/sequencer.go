package tour

// Sequencer computes a visiting order over the viewpoints of a distance
// matrix. Implementations return the order as zero-based viewpoint indices,
// already rotated to begin at the tour anchor. The subprocess-backed oracle
// and the in-process heuristic are interchangeable behind this interface.
type Sequencer interface {
	// Sequence returns a permutation of 0..n-1 for an n×n matrix.
	Sequence(m *DistanceMatrix) ([]int, error)

	// Name returns the backend name.
	Name() string
}
