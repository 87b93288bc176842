// Package tour implements the planning orchestration for one inspection
// tour: the pairwise cost/path matrix with its deferral policy, the
// sequencing backends, and the assembly of per-edge paths into one closed
// trajectory.
package tour

import "fmt"

// CellState tracks how a distance matrix cell was produced. An explicit
// tri-state replaces the reserved negative sentinel of older planners.
type CellState uint8

const (
	CellUnset    CellState = iota // never written
	CellDeferred                  // penalized cheap estimate, true path skipped
	CellConfirmed                 // exact distance with a stored path
)

// DistanceMatrix is the symmetric n×n inter-viewpoint cost matrix. The
// diagonal is exactly zero and confirmed from construction; every other
// write lands symmetrically in both cells.
type DistanceMatrix struct {
	n     int
	dist  []float64
	state []CellState
}

// NewDistanceMatrix creates an n×n matrix with a confirmed zero diagonal.
func NewDistanceMatrix(n int) *DistanceMatrix {
	m := &DistanceMatrix{
		n:     n,
		dist:  make([]float64, n*n),
		state: make([]CellState, n*n),
	}
	for i := 0; i < n; i++ {
		m.state[i*n+i] = CellConfirmed
	}
	return m
}

// Len returns the matrix dimension.
func (m *DistanceMatrix) Len() int { return m.n }

// Set writes a distance symmetrically into (a,b) and (b,a). Diagonal cells
// are fixed at zero and cannot be rewritten.
func (m *DistanceMatrix) Set(a, b int, d float64, st CellState) {
	if a == b {
		panic(fmt.Sprintf("tour: write to diagonal cell (%d,%d)", a, b))
	}
	m.dist[a*m.n+b] = d
	m.dist[b*m.n+a] = d
	m.state[a*m.n+b] = st
	m.state[b*m.n+a] = st
}

// Distance returns the stored distance for (a,b).
func (m *DistanceMatrix) Distance(a, b int) float64 {
	return m.dist[a*m.n+b]
}

// State returns the cell state for (a,b).
func (m *DistanceMatrix) State(a, b int) CellState {
	return m.state[a*m.n+b]
}

// Dense copies the matrix into a row-major [][]float64 for sequencer interop.
func (m *DistanceMatrix) Dense() [][]float64 {
	rows := make([][]float64, m.n)
	for i := 0; i < m.n; i++ {
		rows[i] = make([]float64, m.n)
		copy(rows[i], m.dist[i*m.n:(i+1)*m.n])
	}
	return rows
}
