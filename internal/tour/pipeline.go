package tour

import (
	"github.com/aeroinspect/tourplan/internal/core"
	"github.com/aeroinspect/tourplan/internal/env"
	"github.com/aeroinspect/tourplan/internal/planner"
)

// PreparePlanner validates the configuration and builds the environment
// context the configured methods need: the obstacle index and bounds for
// anything beyond euclidean, plus the occupancy grid for grid methods. A
// nil config selects pure-Euclidean mode and returns a nil planner.
func PreparePlanner(problem *core.InspectionProblem, viewpoints []core.Viewpoint, cfg *planner.Config) (*planner.Planner, error) {
	if cfg == nil {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var e *env.Environment
	if cfg.NeedsEnvironment() {
		e = env.Build(problem, viewpoints, env.Options{
			SafetyDistance: cfg.SafetyDistance,
			BuildGrid:      cfg.NeedsGrid(),
			GridResolution: cfg.GridResolution,
		})
	}
	return planner.New(*cfg, e), nil
}
