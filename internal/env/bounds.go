package env

import "github.com/aeroinspect/tourplan/internal/core"

// Bounds is the axis-aligned flight envelope: the 2D bounding box of the
// safety-area polygon extended with the configured height band.
type Bounds struct {
	Min, Max core.Point
}

// BoundsFromProblem computes the envelope from the problem's safety area and
// height limits.
func BoundsFromProblem(p *core.InspectionProblem) Bounds {
	b := Bounds{
		Min: core.Point{Z: p.MinHeight},
		Max: core.Point{Z: p.MaxHeight},
	}
	for i, pt := range p.SafetyArea {
		if i == 0 {
			b.Min.X, b.Max.X = pt.X, pt.X
			b.Min.Y, b.Max.Y = pt.Y, pt.Y
			continue
		}
		if pt.X < b.Min.X {
			b.Min.X = pt.X
		}
		if pt.X > b.Max.X {
			b.Max.X = pt.X
		}
		if pt.Y < b.Min.Y {
			b.Min.Y = pt.Y
		}
		if pt.Y > b.Max.Y {
			b.Max.Y = pt.Y
		}
	}
	return b
}

// Contains reports whether p lies inside the bounds.
func (b Bounds) Contains(p core.Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
