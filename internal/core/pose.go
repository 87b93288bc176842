// Package core defines domain models for inspection tour planning.
package core

import "math"

// Point is a 3D position in world coordinates.
type Point struct {
	X, Y, Z float64
}

// Dist returns the Euclidean distance to another point.
func (p Point) Dist(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	dz := p.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// AsList flattens the point to a coordinate slice.
func (p Point) AsList() []float64 {
	return []float64{p.X, p.Y, p.Z}
}

// Pose is a 3D position plus heading. Poses compose and flatten; equality
// and ordering are intentionally not defined.
type Pose struct {
	Point   Point
	Heading float64
}

// NewPose creates a pose from raw coordinates.
func NewPose(x, y, z, heading float64) Pose {
	return Pose{Point: Point{X: x, Y: y, Z: z}, Heading: heading}
}

// Dist returns the Euclidean distance between the positions of two poses.
// Heading does not contribute.
func (p Pose) Dist(o Pose) float64 {
	return p.Point.Dist(o.Point)
}

// AsList flattens the pose to [x, y, z, heading] for planner interop.
func (p Pose) AsList() []float64 {
	return []float64{p.Point.X, p.Point.Y, p.Point.Z, p.Heading}
}

// WithHeading returns a copy of the pose with the heading replaced.
func (p Pose) WithHeading(h float64) Pose {
	p.Heading = h
	return p
}
