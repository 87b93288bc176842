package tour

import "github.com/aeroinspect/tourplan/internal/core"

// PathStore holds the per-edge path segments, addressed by the ordered
// viewpoint index pair (from,to). It is an array-backed arena rather than a
// tuple-keyed map: no hashing on the hot path, and tour assembly iterates
// it directly. Invariant: the (b,a) segment is always the exact reverse of
// the (a,b) segment, with the last pose's heading in each direction equal
// to the heading of its target viewpoint.
type PathStore struct {
	n    int
	segs []core.Path
}

// NewPathStore creates an empty store for n viewpoints.
func NewPathStore(n int) *PathStore {
	return &PathStore{n: n, segs: make([]core.Path, n*n)}
}

// Set records the segment for the ordered pair (from,to).
func (s *PathStore) Set(from, to int, p core.Path) {
	s.segs[from*s.n+to] = p
}

// Get returns the segment stored for the ordered pair (from,to), or nil.
func (s *PathStore) Get(from, to int) core.Path {
	return s.segs[from*s.n+to]
}
