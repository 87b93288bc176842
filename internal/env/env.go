// Package env builds the shared, read-only environment context consumed by
// the path planners: an obstacle spatial index, the flight envelope bounds,
// and an optional discretized occupancy grid for grid-based planning.
package env

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/aeroinspect/tourplan/internal/core"
)

// Environment is prepared once per planning session and only read afterwards,
// so it is safe to share across planner workers.
type Environment struct {
	Obstacles      []core.Point
	Bounds         Bounds
	Grid           *Grid // nil unless a grid-based method is configured
	SafetyDistance float64

	tree *kdtree.Tree
}

// Options controls environment construction.
type Options struct {
	SafetyDistance float64
	// BuildGrid requests the occupancy grid at the given resolution.
	BuildGrid      bool
	GridResolution float64
}

// Build prepares the environment context for one session: the KD-tree over
// obstacle points, the bounding volume from the safety area extended with the
// height band, and (for grid planners) the occupancy grid sized to bound both
// obstacles and viewpoints with one cell margin.
func Build(problem *core.InspectionProblem, viewpoints []core.Viewpoint, opts Options) *Environment {
	e := &Environment{
		Obstacles:      problem.ObstaclePoints,
		Bounds:         BoundsFromProblem(problem),
		SafetyDistance: opts.SafetyDistance,
	}

	if len(problem.ObstaclePoints) > 0 {
		pts := make(kdtree.Points, len(problem.ObstaclePoints))
		for i, o := range problem.ObstaclePoints {
			pts[i] = kdtree.Point{o.X, o.Y, o.Z}
		}
		e.tree = kdtree.New(pts, false)
	}

	if opts.BuildGrid {
		e.Grid = BuildGrid(problem.ObstaclePoints, viewpoints, opts.GridResolution, opts.SafetyDistance)
	}

	return e
}

// NearestObstacle returns the distance from p to the closest obstacle point,
// or +Inf when the environment has no obstacles.
func (e *Environment) NearestObstacle(p core.Point) float64 {
	if e.tree == nil {
		return math.Inf(1)
	}
	// kdtree.Point.Distance is the squared Euclidean metric.
	_, distSq := e.tree.Nearest(kdtree.Point{p.X, p.Y, p.Z})
	return math.Sqrt(distSq)
}

// LineOfSight reports whether the straight segment from a to b stays clear of
// every obstacle by at least the safety distance. Bounds are not checked here;
// the caller decides whether endpoints must lie inside the flight envelope.
func (e *Environment) LineOfSight(a, b core.Point) bool {
	if e.tree == nil {
		return true
	}

	step := e.SafetyDistance / 2
	if step <= 0 {
		step = 0.1
	}

	length := a.Dist(b)
	n := int(math.Ceil(length/step)) + 1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		sample := core.Point{
			X: a.X + t*(b.X-a.X),
			Y: a.Y + t*(b.Y-a.Y),
			Z: a.Z + t*(b.Z-a.Z),
		}
		if e.NearestObstacle(sample) < e.SafetyDistance {
			return false
		}
	}
	return true
}

// Contains reports whether p lies inside the flight envelope.
func (e *Environment) Contains(p core.Point) bool {
	return e.Bounds.Contains(p)
}
