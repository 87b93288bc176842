package config

import (
	"fmt"
	"math"
	"math/rand"
)

// GenerateParams controls deterministic scenario generation.
type GenerateParams struct {
	Seed          int64
	NumViewpoints int
	NumRobots     int
	AreaSize      float64 // side of the square safety area
	MinHeight     float64
	MaxHeight     float64
	NumWalls      int // obstacle walls dropped into the area
}

// DefaultGenerateParams returns a small benchmark-sized scenario.
func DefaultGenerateParams() GenerateParams {
	return GenerateParams{
		Seed:          1,
		NumViewpoints: 12,
		NumRobots:     2,
		AreaSize:      20,
		MinHeight:     0.5,
		MaxHeight:     6,
		NumWalls:      3,
	}
}

// Generate builds a deterministic random scenario: wall-style obstacle
// blocks inside a square safety area, viewpoints scattered through the
// flight band, and robot starts along the area's lower edge.
func Generate(p GenerateParams) *Scenario {
	rng := rand.New(rand.NewSource(p.Seed))

	s := &Scenario{
		Name:      fmt.Sprintf("generated_%d_vp%d_r%d", p.Seed, p.NumViewpoints, p.NumRobots),
		MinHeight: p.MinHeight,
		MaxHeight: p.MaxHeight,
		SafetyArea: []Point{
			{X: 0, Y: 0},
			{X: p.AreaSize, Y: 0},
			{X: p.AreaSize, Y: p.AreaSize},
			{X: 0, Y: p.AreaSize},
		},
		Clustering: "kmeans",
	}

	// Obstacle walls: vertical planes sampled as point columns.
	const spacing = 0.5
	for w := 0; w < p.NumWalls; w++ {
		x0 := rng.Float64() * p.AreaSize
		y0 := rng.Float64() * p.AreaSize
		length := 2 + rng.Float64()*(p.AreaSize/3)
		angle := rng.Float64() * 2 * math.Pi
		height := p.MinHeight + rng.Float64()*(p.MaxHeight-p.MinHeight)

		for d := 0.0; d <= length; d += spacing {
			x := x0 + d*math.Cos(angle)
			y := y0 + d*math.Sin(angle)
			if x < 0 || x > p.AreaSize || y < 0 || y > p.AreaSize {
				continue
			}
			for z := 0.0; z <= height; z += spacing {
				s.Obstacles = append(s.Obstacles, Point{X: x, Y: y, Z: z})
			}
		}
	}

	for i := 0; i < p.NumViewpoints; i++ {
		s.Viewpoints = append(s.Viewpoints, Pose{
			X:       rng.Float64() * p.AreaSize,
			Y:       rng.Float64() * p.AreaSize,
			Z:       p.MinHeight + rng.Float64()*(p.MaxHeight-p.MinHeight),
			Heading: rng.Float64() * 2 * math.Pi,
		})
	}

	for r := 0; r < p.NumRobots; r++ {
		s.Starts = append(s.Starts, Pose{
			X:       (float64(r) + 0.5) * p.AreaSize / float64(p.NumRobots),
			Y:       0,
			Z:       p.MinHeight,
			Heading: math.Pi / 2,
		})
	}

	return s
}
