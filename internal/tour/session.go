package tour

import (
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/aeroinspect/tourplan/internal/core"
	"github.com/aeroinspect/tourplan/internal/logging"
	"github.com/aeroinspect/tourplan/internal/planner"
)

// Session holds all mutable state of one tour computation: the distance
// matrix, the path store, and the deferred-edge registry. A session is
// created per planning call and discarded after the tour is returned;
// independent sessions never share state.
type Session struct {
	Viewpoints []core.Viewpoint
	Planner    *planner.Planner // nil selects pure-Euclidean mode
	Matrix     *DistanceMatrix
	Store      *PathStore
	Deferred   *DeferredEdgeRegistry

	// Workers bounds the pairwise build pool. Zero means GOMAXPROCS.
	Workers int

	log *slog.Logger
}

// NewSession creates a fresh session over the given viewpoints. A nil
// planner selects pure-Euclidean mode: every straight segment is accepted
// as both path and exact distance.
func NewSession(viewpoints []core.Viewpoint, pl *planner.Planner) *Session {
	n := len(viewpoints)
	return &Session{
		Viewpoints: viewpoints,
		Planner:    pl,
		Matrix:     NewDistanceMatrix(n),
		Store:      NewPathStore(n),
		Deferred:   NewDeferredEdgeRegistry(),
		log:        logging.New("tour"),
	}
}

// PlanTour runs the full pipeline: pairwise matrix build, sequencing, lazy
// deferred-edge resolution, and assembly into one closed trajectory. The
// first fatal failure aborts the session; no partial tour is returned.
func (s *Session) PlanTour(seq Sequencer) (core.Path, error) {
	if err := s.BuildMatrix(); err != nil {
		return nil, err
	}

	order, err := seq.Sequence(s.Matrix)
	if err != nil {
		return nil, err
	}
	if err := validateOrder(order, len(s.Viewpoints)); err != nil {
		return nil, err
	}
	s.log.Info("sequence computed", "backend", seq.Name(), "viewpoints", len(order))

	return s.AssembleTour(order)
}

// BuildMatrix fills the distance matrix and path store for every unordered
// viewpoint pair, applying the cheap-estimate / defer / expensive-plan
// policy. Pairs are planned by an errgroup pool: each pair owns its own
// matrix cells and store slots, so workers write without locks; the shared
// deferred registry guards itself.
func (s *Session) BuildMatrix() error {
	n := len(s.Viewpoints)

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			a, b := a, b
			g.Go(func() error { return s.buildPair(a, b) })
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if d := s.Deferred.Len(); d > 0 {
		s.log.Info("matrix built", "viewpoints", n, "deferred_pairs", d)
	}
	return nil
}

// buildPair applies the deferral policy to one unordered pair.
func (s *Session) buildPair(a, b int) error {
	va, vb := s.Viewpoints[a], s.Viewpoints[b]
	estimate := va.Pose.Dist(vb.Pose)
	segment := core.Path{va.Pose, vb.Pose}

	// Pure-Euclidean mode: the straight segment is always accepted.
	if s.Planner == nil {
		s.commitPair(a, b, segment, estimate, CellConfirmed)
		return nil
	}

	// An unobstructed straight segment is optimal; no planner can beat it.
	e := s.Planner.Environment()
	if e == nil || e.LineOfSight(va.Pose.Point, vb.Pose.Point) {
		s.commitPair(a, b, segment, estimate, CellConfirmed)
		return nil
	}

	cfg := s.Planner.Config()
	if estimate > cfg.DeferThreshold {
		// Too far to plan eagerly. Keep the straight segment as placeholder
		// geometry and bias the sequencer away from this edge without
		// forbidding it.
		s.Deferred.Add(a, b, estimate)
		s.commitPair(a, b, segment, estimate*cfg.DeferPenalty, CellDeferred)
		return nil
	}

	path, dist, err := s.Planner.Plan(va.Pose, vb.Pose, cfg.PathPlanningMethod)
	if err != nil {
		return fmt.Errorf("plan viewpoints %d->%d: %w", a, b, err)
	}
	s.commitPair(a, b, path, dist, CellConfirmed)
	return nil
}

// commitPair stores the segment and its exact reverse, forces the terminal
// heading in each direction to the target viewpoint's heading, and writes
// the distance symmetrically.
func (s *Session) commitPair(a, b int, path core.Path, dist float64, st CellState) {
	forward := path.Clone()
	forward[len(forward)-1].Heading = s.Viewpoints[b].Pose.Heading

	reverse := forward.Reversed()
	reverse[len(reverse)-1].Heading = s.Viewpoints[a].Pose.Heading

	s.Store.Set(a, b, forward)
	s.Store.Set(b, a, reverse)
	s.Matrix.Set(a, b, dist, st)
}

// validateOrder checks that the sequence is a permutation of 0..n-1.
func validateOrder(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("%w: got %d indices for %d viewpoints", ErrBadSequence, len(order), n)
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return fmt.Errorf("%w: index %d", ErrBadSequence, idx)
		}
		seen[idx] = true
	}
	return nil
}
