// Package planner provides the path-planning capability: a cheap Euclidean
// mode plus collision-checked grid and sampling planners, all behind one
// Plan call parameterized by method.
package planner

import (
	"errors"
	"fmt"
)

// Method names a path-planning or distance-estimation algorithm.
type Method string

const (
	MethodEuclidean Method = "euclidean"
	MethodAStar     Method = "astar"
	MethodRRT       Method = "rrt"
	MethodRRTStar   Method = "rrtstar"
)

// ErrUnknownMethod marks a configuration naming an unsupported method.
// It is detected before any planning work starts.
var ErrUnknownMethod = errors.New("unknown planning method")

// ErrNoPath marks an expensive planner returning no feasible path. This is
// fatal to the session: it signals an un-navigable environment, not a
// transient fault, and is never retried.
var ErrNoPath = errors.New("no path found")

// ParseMethod validates a method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodEuclidean, MethodAStar, MethodRRT, MethodRRTStar:
		return Method(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// GridBased reports whether the method plans over the occupancy grid.
func (m Method) GridBased() bool {
	return m == MethodAStar
}

// SamplingBased reports whether the method grows a sampling tree.
func (m Method) SamplingBased() bool {
	return m == MethodRRT || m == MethodRRTStar
}

// Config enumerates every recognized planner option with explicit defaults.
// It is validated once at session start; unknown method names are rejected
// before any planning work.
type Config struct {
	PathPlanningMethod       Method  `yaml:"path_planning_method"`
	DistanceEstimationMethod Method  `yaml:"distance_estimation_method"`
	SafetyDistance           float64 `yaml:"safety_distance"`
	Timeout                  float64 `yaml:"timeout"` // seconds per planning call
	Straighten               bool    `yaml:"straighten"`
	GridResolution           float64 `yaml:"astar_grid_resolution"`

	// Deferral policy for the distance matrix build. The threshold and
	// penalty carry the historical defaults; both stay configurable.
	DeferThreshold float64 `yaml:"defer_threshold"`
	DeferPenalty   float64 `yaml:"defer_penalty"`

	// Seed fixes the sampling planners' random source. Zero selects a
	// time-based seed.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the historical defaults.
func DefaultConfig() Config {
	return Config{
		PathPlanningMethod:       MethodAStar,
		DistanceEstimationMethod: MethodAStar,
		SafetyDistance:           0.5,
		Timeout:                  5.0,
		Straighten:               true,
		GridResolution:           0.5,
		DeferThreshold:           5.0,
		DeferPenalty:             3.0,
	}
}

// Validate rejects unsupported method names and non-positive tunables.
func (c *Config) Validate() error {
	if _, err := ParseMethod(string(c.PathPlanningMethod)); err != nil {
		return fmt.Errorf("path_planning_method: %w", err)
	}
	if _, err := ParseMethod(string(c.DistanceEstimationMethod)); err != nil {
		return fmt.Errorf("distance_estimation_method: %w", err)
	}
	if c.PathPlanningMethod.GridBased() && c.GridResolution <= 0 {
		return fmt.Errorf("astar_grid_resolution must be positive, got %v", c.GridResolution)
	}
	if c.DeferThreshold <= 0 {
		return fmt.Errorf("defer_threshold must be positive, got %v", c.DeferThreshold)
	}
	if c.DeferPenalty < 1 {
		return fmt.Errorf("defer_penalty must be at least 1, got %v", c.DeferPenalty)
	}
	return nil
}

// NeedsGrid reports whether either configured method requires the occupancy
// grid.
func (c *Config) NeedsGrid() bool {
	return c.PathPlanningMethod.GridBased() || c.DistanceEstimationMethod.GridBased()
}

// NeedsEnvironment reports whether any configured method requires the
// obstacle index and bounds.
func (c *Config) NeedsEnvironment() bool {
	return c.PathPlanningMethod != MethodEuclidean || c.DistanceEstimationMethod != MethodEuclidean
}
