// Package config loads inspection scenarios and planner settings from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aeroinspect/tourplan/internal/cluster"
	"github.com/aeroinspect/tourplan/internal/core"
	"github.com/aeroinspect/tourplan/internal/planner"
)

// Point is the YAML shape of a 3D position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Pose is the YAML shape of a position plus heading.
type Pose struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Z       float64 `yaml:"z"`
	Heading float64 `yaml:"heading"`
}

// Scenario is one complete inspection task: the world, the fleet, the
// viewpoints, and the planner settings. A nil planner section selects
// pure-Euclidean mode.
type Scenario struct {
	Name       string          `yaml:"name"`
	Viewpoints []Pose          `yaml:"viewpoints"`
	Obstacles  []Point         `yaml:"obstacles"`
	SafetyArea []Point         `yaml:"safety_area"`
	MinHeight  float64         `yaml:"min_height"`
	MaxHeight  float64         `yaml:"max_height"`
	Starts     []Pose          `yaml:"robot_starts"`
	Planner    *planner.Config `yaml:"planner"`
	Clustering string          `yaml:"clustering"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	// Reject bad configuration before any planning work starts.
	if s.Planner != nil {
		if err := s.Planner.Validate(); err != nil {
			return nil, err
		}
	}
	if s.Clustering != "" {
		if _, err := cluster.ParseMethod(s.Clustering); err != nil {
			return nil, err
		}
	}
	if err := s.Problem().Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the scenario as YAML.
func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	return nil
}

// Problem converts the scenario into the core problem description.
func (s *Scenario) Problem() *core.InspectionProblem {
	p := &core.InspectionProblem{
		Name:           s.Name,
		MinHeight:      s.MinHeight,
		MaxHeight:      s.MaxHeight,
		NumberOfRobots: len(s.Starts),
	}
	for _, o := range s.Obstacles {
		p.ObstaclePoints = append(p.ObstaclePoints, core.Point{X: o.X, Y: o.Y, Z: o.Z})
	}
	for _, a := range s.SafetyArea {
		p.SafetyArea = append(p.SafetyArea, core.Point{X: a.X, Y: a.Y})
	}
	for _, st := range s.Starts {
		p.StartPoses = append(p.StartPoses, core.NewPose(st.X, st.Y, st.Z, st.Heading))
	}
	return p
}

// ViewpointList converts the scenario viewpoints into indexed core types.
func (s *Scenario) ViewpointList() []core.Viewpoint {
	vps := make([]core.Viewpoint, len(s.Viewpoints))
	for i, vp := range s.Viewpoints {
		vps[i] = core.NewViewpoint(i, core.NewPose(vp.X, vp.Y, vp.Z, vp.Heading))
	}
	return vps
}
