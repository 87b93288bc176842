package tour

import (
	"fmt"

	"github.com/aeroinspect/tourplan/internal/core"
)

// AssembleTour turns the anchored visiting order into one closed trajectory.
// Deferred pairs that ended up on the tour are resolved through the real
// planner first, so the returned geometry never contains a penalized
// placeholder segment. Edges the sequencer never selected stay unresolved
// and unpaid for.
func (s *Session) AssembleTour(order []int) (core.Path, error) {
	n := len(order)
	if n == 0 {
		return nil, ErrNoSequence
	}
	if n == 1 {
		return core.Path{s.Viewpoints[order[0]].Pose}, nil
	}

	// Resolve deferred edges actually used, including the wrap-around edge
	// closing the loop.
	for i := 0; i < n; i++ {
		a, b := order[i], order[(i+1)%n]
		if !s.Deferred.Contains(a, b) {
			continue
		}
		if err := s.resolveDeferred(a, b); err != nil {
			return nil, err
		}
	}

	// Stitch: every edge contributes its path minus the last pose, then the
	// tour start closes the loop explicitly. Interior boundary poses appear
	// exactly once.
	var tour core.Path
	for i := 0; i < n; i++ {
		a, b := order[i], order[(i+1)%n]
		seg := s.Store.Get(a, b)
		tour = append(tour, seg[:len(seg)-1]...)
	}
	return append(tour, s.Viewpoints[order[0]].Pose), nil
}

// resolveDeferred plans the true collision-aware path for a deferred pair
// and overwrites its placeholder store entry and matrix distance.
func (s *Session) resolveDeferred(a, b int) error {
	estimate, _ := s.Deferred.Estimate(a, b)
	s.log.Info("resolving deferred tour edge",
		"from", a, "to", b,
		"placeholder", s.Matrix.Distance(a, b),
		"estimate", estimate)

	cfg := s.Planner.Config()
	va, vb := s.Viewpoints[a], s.Viewpoints[b]
	path, dist, err := s.Planner.Plan(va.Pose, vb.Pose, cfg.PathPlanningMethod)
	if err != nil {
		return fmt.Errorf("resolve deferred edge %d->%d: %w", a, b, err)
	}

	s.commitPair(a, b, path, dist, CellConfirmed)
	s.Deferred.Resolve(a, b)
	return nil
}
