package env

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroinspect/tourplan/internal/core"
)

func squareProblem() *core.InspectionProblem {
	return &core.InspectionProblem{
		Name: "square",
		SafetyArea: []core.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
		MinHeight:      0.5,
		MaxHeight:      5,
		StartPoses:     []core.Pose{core.NewPose(1, 1, 1, 0)},
		NumberOfRobots: 1,
	}
}

// wall returns obstacle points forming a vertical plane at x=5
// spanning y in [2,8] and z in [0,5].
func wall() []core.Point {
	var pts []core.Point
	for y := 2.0; y <= 8.0; y += 0.25 {
		for z := 0.0; z <= 5.0; z += 0.25 {
			pts = append(pts, core.Point{X: 5, Y: y, Z: z})
		}
	}
	return pts
}

func TestBoundsFromProblem(t *testing.T) {
	b := BoundsFromProblem(squareProblem())

	assert.Equal(t, core.Point{X: 0, Y: 0, Z: 0.5}, b.Min)
	assert.Equal(t, core.Point{X: 10, Y: 10, Z: 5}, b.Max)

	assert.True(t, b.Contains(core.Point{X: 5, Y: 5, Z: 2}))
	assert.False(t, b.Contains(core.Point{X: 5, Y: 5, Z: 0.1}))
	assert.False(t, b.Contains(core.Point{X: -1, Y: 5, Z: 2}))
}

func TestNearestObstacle(t *testing.T) {
	problem := squareProblem()
	problem.ObstaclePoints = []core.Point{{X: 5, Y: 5, Z: 2}}

	e := Build(problem, nil, Options{SafetyDistance: 0.5})

	assert.InDelta(t, 2.0, e.NearestObstacle(core.Point{X: 3, Y: 5, Z: 2}), 1e-9)
	assert.InDelta(t, 0.0, e.NearestObstacle(core.Point{X: 5, Y: 5, Z: 2}), 1e-9)
}

func TestNearestObstacleEmpty(t *testing.T) {
	e := Build(squareProblem(), nil, Options{SafetyDistance: 0.5})
	assert.True(t, math.IsInf(e.NearestObstacle(core.Point{X: 1, Y: 1, Z: 1}), 1))
}

func TestLineOfSight(t *testing.T) {
	problem := squareProblem()
	problem.ObstaclePoints = wall()

	e := Build(problem, nil, Options{SafetyDistance: 0.5})

	t.Run("blocked through wall", func(t *testing.T) {
		assert.False(t, e.LineOfSight(core.Point{X: 2, Y: 5, Z: 2}, core.Point{X: 8, Y: 5, Z: 2}))
	})

	t.Run("clear around wall", func(t *testing.T) {
		assert.True(t, e.LineOfSight(core.Point{X: 2, Y: 0.5, Z: 2}, core.Point{X: 8, Y: 0.5, Z: 2}))
	})

	t.Run("clear on same side", func(t *testing.T) {
		assert.True(t, e.LineOfSight(core.Point{X: 1, Y: 5, Z: 2}, core.Point{X: 3, Y: 5, Z: 2}))
	})

	t.Run("no obstacles means always clear", func(t *testing.T) {
		empty := Build(squareProblem(), nil, Options{SafetyDistance: 0.5})
		assert.True(t, empty.LineOfSight(core.Point{X: 0, Y: 0, Z: 1}, core.Point{X: 10, Y: 10, Z: 1}))
	})
}

func TestBuildGridBlocksNearObstacles(t *testing.T) {
	obstacles := []core.Point{{X: 5, Y: 5, Z: 2}}
	viewpoints := []core.Viewpoint{
		core.NewViewpoint(0, core.NewPose(1, 1, 1, 0)),
		core.NewViewpoint(1, core.NewPose(9, 9, 3, 0)),
	}

	g := BuildGrid(obstacles, viewpoints, 0.5, 0.5)
	require.NotNil(t, g)

	// The cell holding the obstacle is blocked.
	i, j, k := g.CellOf(core.Point{X: 5, Y: 5, Z: 2})
	require.True(t, g.InRange(i, j, k))
	assert.True(t, g.Blocked(i, j, k))

	// Cell far from the obstacle is free.
	i, j, k = g.CellOf(core.Point{X: 1, Y: 1, Z: 1})
	require.True(t, g.InRange(i, j, k))
	assert.False(t, g.Blocked(i, j, k))
}

func TestGridCoversViewpointsWithMargin(t *testing.T) {
	viewpoints := []core.Viewpoint{
		core.NewViewpoint(0, core.NewPose(0, 0, 0, 0)),
		core.NewViewpoint(1, core.NewPose(4, 4, 4, 0)),
	}

	g := BuildGrid(nil, viewpoints, 1.0, 0.5)

	for _, vp := range viewpoints {
		i, j, k := g.CellOf(vp.Pose.Point)
		assert.True(t, g.InRange(i, j, k))
	}

	// One-cell margin beyond each extreme still lands in range.
	i, j, k := g.CellOf(core.Point{X: -0.5, Y: -0.5, Z: -0.5})
	assert.True(t, g.InRange(i, j, k))
}

func TestGridCellRoundTrip(t *testing.T) {
	g := BuildGrid(nil, []core.Viewpoint{
		core.NewViewpoint(0, core.NewPose(0, 0, 0, 0)),
		core.NewViewpoint(1, core.NewPose(10, 10, 10, 0)),
	}, 0.5, 0.5)

	p := core.Point{X: 3.3, Y: 7.1, Z: 2.9}
	i, j, k := g.CellOf(p)
	center := g.CellCenter(i, j, k)

	// Cell center is within half a resolution of the query on each axis.
	assert.LessOrEqual(t, math.Abs(center.X-p.X), g.Resolution/2+1e-9)
	assert.LessOrEqual(t, math.Abs(center.Y-p.Y), g.Resolution/2+1e-9)
	assert.LessOrEqual(t, math.Abs(center.Z-p.Z), g.Resolution/2+1e-9)
}
