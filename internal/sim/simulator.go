// Package sim replays planned tours with constant-speed kinematics and
// collects fleet-level timing metrics.
package sim

import (
	"fmt"
	"math"

	"github.com/aeroinspect/tourplan/internal/core"
	"github.com/aeroinspect/tourplan/internal/logging"
)

// Config holds the simulation parameters.
type Config struct {
	Speed    float64 // robot cruise speed, units per second
	TimeStep float64 // sampling step, seconds
}

// DefaultConfig returns the standard replay settings.
func DefaultConfig() Config {
	return Config{
		Speed:    1.0,
		TimeStep: 0.1,
	}
}

// RobotResult summarizes one robot's tour execution.
type RobotResult struct {
	Robot      int
	TourLength float64
	Duration   float64 // seconds to complete the tour
	Samples    int     // number of sampled trajectory states
}

// Result summarizes a fleet replay.
type Result struct {
	Robots   []RobotResult
	Makespan float64 // slowest robot's completion time
}

// Replay runs every tour to completion and reports timings. Tours execute
// independently; the fleet makespan is the slowest robot's finish time.
func Replay(tours []core.Path, cfg Config) (*Result, error) {
	if cfg.Speed <= 0 {
		return nil, fmt.Errorf("speed must be positive, got %v", cfg.Speed)
	}
	if cfg.TimeStep <= 0 {
		return nil, fmt.Errorf("time step must be positive, got %v", cfg.TimeStep)
	}

	log := logging.New("sim")
	res := &Result{}

	for robot, t := range tours {
		length := t.Length()
		duration := length / cfg.Speed
		samples := int(math.Ceil(duration/cfg.TimeStep)) + 1

		res.Robots = append(res.Robots, RobotResult{
			Robot:      robot,
			TourLength: length,
			Duration:   duration,
			Samples:    samples,
		})
		if duration > res.Makespan {
			res.Makespan = duration
		}

		log.Debug("tour replayed", "robot", robot, "length", length, "duration", duration)
	}

	return res, nil
}

// StateAt returns the pose on a tour after traveling at the given speed
// for t seconds. Past the end of the tour the final pose is held.
func StateAt(tour core.Path, speed, t float64) core.Pose {
	if len(tour) == 0 {
		return core.Pose{}
	}

	remaining := speed * t
	for i := 0; i < len(tour)-1; i++ {
		seg := tour[i].Point.Dist(tour[i+1].Point)
		if remaining <= seg && seg > 0 {
			f := remaining / seg
			return interpolate(tour[i], tour[i+1], f)
		}
		remaining -= seg
	}
	return tour[len(tour)-1]
}

func interpolate(a, b core.Pose, f float64) core.Pose {
	return core.Pose{
		Point: core.Point{
			X: a.Point.X + (b.Point.X-a.Point.X)*f,
			Y: a.Point.Y + (b.Point.Y-a.Point.Y)*f,
			Z: a.Point.Z + (b.Point.Z-a.Point.Z)*f,
		},
		Heading: a.Heading + angleDiff(a.Heading, b.Heading)*f,
	}
}

// angleDiff returns the shortest signed angular distance from a to b.
func angleDiff(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
