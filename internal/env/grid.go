package env

import (
	"math"

	"github.com/aeroinspect/tourplan/internal/core"
)

// Grid is a discretized 3D occupancy volume for grid-based planning. Cells
// within the safety distance of any obstacle are blocked.
type Grid struct {
	Origin     core.Point // world position of cell (0,0,0)
	Resolution float64
	DimX       int
	DimY       int
	DimZ       int

	blocked []bool
}

// BuildGrid discretizes a volume sized to bound both the obstacle points and
// the viewpoints with one cell margin on every side.
func BuildGrid(obstacles []core.Point, viewpoints []core.Viewpoint, resolution, safetyDistance float64) *Grid {
	if resolution <= 0 {
		resolution = 1.0
	}

	var pts []core.Point
	pts = append(pts, obstacles...)
	for _, vp := range viewpoints {
		pts = append(pts, vp.Pose.Point)
	}
	if len(pts) == 0 {
		return &Grid{Resolution: resolution, DimX: 1, DimY: 1, DimZ: 1, blocked: make([]bool, 1)}
	}

	min, max := pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
	}

	g := &Grid{
		Origin: core.Point{
			X: min.X - resolution,
			Y: min.Y - resolution,
			Z: min.Z - resolution,
		},
		Resolution: resolution,
		DimX:       int(math.Ceil((max.X-min.X)/resolution)) + 3,
		DimY:       int(math.Ceil((max.Y-min.Y)/resolution)) + 3,
		DimZ:       int(math.Ceil((max.Z-min.Z)/resolution)) + 3,
	}
	g.blocked = make([]bool, g.DimX*g.DimY*g.DimZ)
	g.setObstacles(obstacles, safetyDistance)
	return g
}

func (g *Grid) setObstacles(obstacles []core.Point, safetyDistance float64) {
	reach := int(math.Ceil(safetyDistance/g.Resolution)) + 1
	for _, o := range obstacles {
		ci, cj, ck := g.CellOf(o)
		for i := ci - reach; i <= ci+reach; i++ {
			for j := cj - reach; j <= cj+reach; j++ {
				for k := ck - reach; k <= ck+reach; k++ {
					if !g.InRange(i, j, k) {
						continue
					}
					if g.CellCenter(i, j, k).Dist(o) <= safetyDistance {
						g.blocked[g.index(i, j, k)] = true
					}
				}
			}
		}
	}
}

func (g *Grid) index(i, j, k int) int {
	return (k*g.DimY+j)*g.DimX + i
}

// InRange reports whether the cell indices lie inside the grid.
func (g *Grid) InRange(i, j, k int) bool {
	return i >= 0 && i < g.DimX && j >= 0 && j < g.DimY && k >= 0 && k < g.DimZ
}

// Blocked reports whether the cell is within the safety distance of an obstacle.
func (g *Grid) Blocked(i, j, k int) bool {
	return g.blocked[g.index(i, j, k)]
}

// CellOf returns the cell indices containing the world point.
func (g *Grid) CellOf(p core.Point) (i, j, k int) {
	i = int(math.Floor((p.X - g.Origin.X) / g.Resolution))
	j = int(math.Floor((p.Y - g.Origin.Y) / g.Resolution))
	k = int(math.Floor((p.Z - g.Origin.Z) / g.Resolution))
	return i, j, k
}

// CellCenter returns the world position of the cell center.
func (g *Grid) CellCenter(i, j, k int) core.Point {
	return core.Point{
		X: g.Origin.X + (float64(i)+0.5)*g.Resolution,
		Y: g.Origin.Y + (float64(j)+0.5)*g.Resolution,
		Z: g.Origin.Z + (float64(k)+0.5)*g.Resolution,
	}
}
