package tour

import "sync"

// pairKey normalizes an unordered viewpoint pair.
type pairKey struct {
	A, B int
}

func makePair(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{A: a, B: b}
}

// DeferredEdgeRegistry tracks viewpoint pairs whose true collision-aware
// path was skipped at matrix-build time. Each pair carries its raw cheap
// estimate (pre-penalty), so the penalized placeholder in the matrix can be
// traced back. The registry is shared by the parallel build workers and
// guards itself.
type DeferredEdgeRegistry struct {
	mu        sync.Mutex
	estimates map[pairKey]float64
}

// NewDeferredEdgeRegistry creates an empty registry.
func NewDeferredEdgeRegistry() *DeferredEdgeRegistry {
	return &DeferredEdgeRegistry{estimates: make(map[pairKey]float64)}
}

// Add registers a pair with its unpenalized estimate.
func (r *DeferredEdgeRegistry) Add(a, b int, estimate float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.estimates[makePair(a, b)] = estimate
}

// Contains reports whether the pair is still deferred.
func (r *DeferredEdgeRegistry) Contains(a, b int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.estimates[makePair(a, b)]
	return ok
}

// Estimate returns the raw cheap estimate recorded for the pair.
func (r *DeferredEdgeRegistry) Estimate(a, b int) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	est, ok := r.estimates[makePair(a, b)]
	return est, ok
}

// Resolve removes a pair once its true path has been planned.
func (r *DeferredEdgeRegistry) Resolve(a, b int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.estimates, makePair(a, b))
}

// Len returns the number of pairs still deferred.
func (r *DeferredEdgeRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.estimates)
}
