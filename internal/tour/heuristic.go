package tour

import "math"

// HeuristicSequencer is the in-process sequencing backend: greedy
// nearest-neighbor construction polished by 2-opt. It trades tour quality
// for having no external solver dependency, and serves as the default when
// no oracle executable is configured.
type HeuristicSequencer struct{}

// NewHeuristicSequencer creates the in-process backend.
func NewHeuristicSequencer() *HeuristicSequencer {
	return &HeuristicSequencer{}
}

// Name returns the backend name.
func (h *HeuristicSequencer) Name() string { return "greedy-2opt" }

// Sequence builds a tour anchored at viewpoint 0, which plays the role of
// the depot for this backend.
func (h *HeuristicSequencer) Sequence(m *DistanceMatrix) ([]int, error) {
	n := m.Len()
	if n == 0 {
		return nil, ErrNoSequence
	}
	order := nearestNeighborOrder(m)
	twoOpt(m, order)
	return order, nil
}

// nearestNeighborOrder grows the tour by always visiting the closest
// unvisited viewpoint next.
func nearestNeighborOrder(m *DistanceMatrix) []int {
	n := m.Len()
	order := make([]int, 0, n)
	visited := make([]bool, n)

	current := 0
	order = append(order, current)
	visited[current] = true

	for len(order) < n {
		next, best := -1, math.Inf(1)
		for cand := 0; cand < n; cand++ {
			if visited[cand] {
				continue
			}
			if d := m.Distance(current, cand); d < best {
				next, best = cand, d
			}
		}
		order = append(order, next)
		visited[next] = true
		current = next
	}
	return order
}

// twoOpt improves the cyclic tour in place by reversing segments whenever
// the swap shortens the cycle, restarting until no improvement remains.
func twoOpt(m *DistanceMatrix, order []int) {
	n := len(order)
	if n < 4 {
		return
	}

	improved := true
	for improved {
		improved = false
		for i := 0; i < n-1; i++ {
			for j := i + 2; j < n; j++ {
				if i == 0 && j == n-1 {
					continue // same edge twice on the cycle
				}
				a, b := order[i], order[i+1]
				c, d := order[j], order[(j+1)%n]
				delta := m.Distance(a, c) + m.Distance(b, d) -
					m.Distance(a, b) - m.Distance(c, d)
				if delta < -1e-9 {
					reverseSegment(order, i+1, j)
					improved = true
				}
			}
		}
	}
}

func reverseSegment(order []int, i, j int) {
	for i < j {
		order[i], order[j] = order[j], order[i]
		i++
		j--
	}
}
