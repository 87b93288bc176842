package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroinspect/tourplan/internal/core"
	"github.com/aeroinspect/tourplan/internal/env"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{in: "euclidean", want: MethodEuclidean},
		{in: "astar", want: MethodAStar},
		{in: "rrt", want: MethodRRT},
		{in: "rrtstar", want: MethodRRTStar},
		{in: "dijkstra", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := ParseMethod(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownMethod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown method", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PathPlanningMethod = "warp"
		assert.ErrorIs(t, cfg.Validate(), ErrUnknownMethod)
	})

	t.Run("unknown estimation method", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DistanceEstimationMethod = "warp"
		assert.ErrorIs(t, cfg.Validate(), ErrUnknownMethod)
	})

	t.Run("bad grid resolution", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.GridResolution = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad defer threshold", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DeferThreshold = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("penalty below one", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DeferPenalty = 0.5
		assert.Error(t, cfg.Validate())
	})
}

func TestConfigNeeds(t *testing.T) {
	pure := Config{PathPlanningMethod: MethodEuclidean, DistanceEstimationMethod: MethodEuclidean}
	assert.False(t, pure.NeedsEnvironment())
	assert.False(t, pure.NeedsGrid())

	grid := DefaultConfig()
	assert.True(t, grid.NeedsEnvironment())
	assert.True(t, grid.NeedsGrid())

	sampling := DefaultConfig()
	sampling.PathPlanningMethod = MethodRRT
	sampling.DistanceEstimationMethod = MethodEuclidean
	assert.True(t, sampling.NeedsEnvironment())
	assert.False(t, sampling.NeedsGrid())
}

func walledProblem() (*core.InspectionProblem, []core.Viewpoint) {
	problem := &core.InspectionProblem{
		Name: "walled",
		SafetyArea: []core.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
		MinHeight:      0.5,
		MaxHeight:      5,
		StartPoses:     []core.Pose{core.NewPose(1, 1, 1, 0)},
		NumberOfRobots: 1,
	}
	// Vertical wall at x=5 spanning most of the area but leaving room to
	// detour above.
	for y := 1.0; y <= 9.0; y += 0.25 {
		for z := 0.0; z <= 3.5; z += 0.25 {
			problem.ObstaclePoints = append(problem.ObstaclePoints, core.Point{X: 5, Y: y, Z: z})
		}
	}

	viewpoints := []core.Viewpoint{
		core.NewViewpoint(0, core.NewPose(2, 5, 2, 0)),
		core.NewViewpoint(1, core.NewPose(8, 5, 2, 0)),
	}
	return problem, viewpoints
}

func buildPlanner(t *testing.T, cfg Config, problem *core.InspectionProblem, viewpoints []core.Viewpoint) *Planner {
	t.Helper()
	e := env.Build(problem, viewpoints, env.Options{
		SafetyDistance: cfg.SafetyDistance,
		BuildGrid:      cfg.NeedsGrid(),
		GridResolution: cfg.GridResolution,
	})
	return New(cfg, e)
}

func TestPlanEuclidean(t *testing.T) {
	p := New(Config{PathPlanningMethod: MethodEuclidean}, nil)

	from := core.NewPose(0, 0, 0, 0)
	to := core.NewPose(3, 4, 0, 1)

	path, dist, err := p.Plan(from, to, MethodEuclidean)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, dist, 1e-12)
	require.Len(t, path, 2)
	assert.Equal(t, from, path[0])
	assert.Equal(t, to, path[1])
}

func TestPlanAStarDetoursAroundWall(t *testing.T) {
	problem, viewpoints := walledProblem()
	cfg := DefaultConfig()
	p := buildPlanner(t, cfg, problem, viewpoints)

	from := viewpoints[0].Pose
	to := viewpoints[1].Pose

	path, dist, err := p.Plan(from, to, MethodAStar)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(path), 2)

	// Exact endpoints survive grid discretization.
	assert.Equal(t, from.Point, path[0].Point)
	assert.Equal(t, to.Point, path[len(path)-1].Point)

	// The detour is strictly longer than the blocked straight line.
	straight := from.Dist(to)
	assert.Greater(t, dist, straight)
	assert.InDelta(t, path.Length(), dist, 1e-9)

	// Every waypoint keeps clearance from the wall.
	for _, pose := range path {
		assert.GreaterOrEqual(t, p.Environment().NearestObstacle(pose.Point), cfg.SafetyDistance-1e-9)
	}
}

func TestPlanAStarBlockedEndpoint(t *testing.T) {
	problem, viewpoints := walledProblem()
	cfg := DefaultConfig()
	p := buildPlanner(t, cfg, problem, viewpoints)

	inWall := core.NewPose(5, 5, 2, 0)
	_, _, err := p.Plan(inWall, viewpoints[1].Pose, MethodAStar)
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestPlanRRTFindsPath(t *testing.T) {
	problem, viewpoints := walledProblem()
	cfg := DefaultConfig()
	cfg.PathPlanningMethod = MethodRRT
	cfg.DistanceEstimationMethod = MethodEuclidean
	cfg.Seed = 7
	cfg.Timeout = 30
	p := buildPlanner(t, cfg, problem, viewpoints)

	from := viewpoints[0].Pose
	to := viewpoints[1].Pose

	path, dist, err := p.Plan(from, to, MethodRRT)
	require.NoError(t, err)
	assert.Equal(t, from.Point, path[0].Point)
	assert.Equal(t, to.Point, path[len(path)-1].Point)
	assert.Greater(t, dist, from.Dist(to))
}

func TestPlanUnknownMethod(t *testing.T) {
	p := New(DefaultConfig(), nil)
	_, _, err := p.Plan(core.NewPose(0, 0, 0, 0), core.NewPose(1, 0, 0, 0), "warp")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestStraighten(t *testing.T) {
	problem := &core.InspectionProblem{
		Name: "open",
		SafetyArea: []core.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
		MinHeight:      0,
		MaxHeight:      5,
		StartPoses:     []core.Pose{core.NewPose(0, 0, 1, 0)},
		NumberOfRobots: 1,
	}
	e := env.Build(problem, nil, env.Options{SafetyDistance: 0.5})
	p := New(DefaultConfig(), e)

	// Zig-zag detour in an empty world collapses to the endpoints.
	path := core.Path{
		core.NewPose(0, 0, 1, 0),
		core.NewPose(2, 3, 1, 0),
		core.NewPose(4, 0, 1, 0),
		core.NewPose(6, 3, 1, 0),
		core.NewPose(8, 0, 1, 0),
	}
	out := p.straighten(path)
	require.Len(t, out, 2)
	assert.Equal(t, path[0], out[0])
	assert.Equal(t, path[len(path)-1], out[len(out)-1])
}
