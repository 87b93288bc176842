package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroinspect/tourplan/internal/planner"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const validScenario = `
name: demo
min_height: 0.5
max_height: 5
safety_area:
  - {x: 0, y: 0}
  - {x: 10, y: 0}
  - {x: 10, y: 10}
  - {x: 0, y: 10}
viewpoints:
  - {x: 2, y: 2, z: 2, heading: 0}
  - {x: 8, y: 8, z: 2, heading: 1.5}
robot_starts:
  - {x: 1, y: 0, z: 1, heading: 0}
clustering: kmeans
planner:
  path_planning_method: astar
  distance_estimation_method: astar
  safety_distance: 0.5
  timeout: 5
  straighten: true
  astar_grid_resolution: 0.5
  defer_threshold: 5
  defer_penalty: 3
`

func TestLoadValid(t *testing.T) {
	s, err := Load(writeScenario(t, validScenario))
	require.NoError(t, err)

	assert.Equal(t, "demo", s.Name)
	assert.Len(t, s.Viewpoints, 2)
	require.NotNil(t, s.Planner)
	assert.Equal(t, planner.MethodAStar, s.Planner.PathPlanningMethod)
	assert.Equal(t, 3.0, s.Planner.DeferPenalty)

	problem := s.Problem()
	assert.Equal(t, 1, problem.NumberOfRobots)
	assert.Len(t, problem.SafetyArea, 4)

	vps := s.ViewpointList()
	require.Len(t, vps, 2)
	assert.Equal(t, 0, vps[0].Index)
	assert.Equal(t, 1.5, vps[1].Pose.Heading)
}

func TestLoadOmittedPlannerMeansPureEuclidean(t *testing.T) {
	body := `
name: bare
min_height: 0.5
max_height: 5
safety_area:
  - {x: 0, y: 0}
  - {x: 10, y: 10}
robot_starts:
  - {x: 1, y: 0, z: 1, heading: 0}
`
	s, err := Load(writeScenario(t, body))
	require.NoError(t, err)
	assert.Nil(t, s.Planner)
}

func TestLoadRejectsUnknownMethod(t *testing.T) {
	body := `
name: bad
min_height: 0.5
max_height: 5
robot_starts:
  - {x: 1, y: 0, z: 1, heading: 0}
planner:
  path_planning_method: warp
  distance_estimation_method: astar
  astar_grid_resolution: 0.5
  defer_threshold: 5
  defer_penalty: 3
`
	_, err := Load(writeScenario(t, body))
	assert.ErrorIs(t, err, planner.ErrUnknownMethod)
}

func TestLoadRejectsUnknownClustering(t *testing.T) {
	body := `
name: bad
min_height: 0.5
max_height: 5
robot_starts:
  - {x: 1, y: 0, z: 1, heading: 0}
clustering: spectral
`
	_, err := Load(writeScenario(t, body))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidProblem(t *testing.T) {
	body := `
name: bad
min_height: 5
max_height: 0.5
robot_starts:
  - {x: 1, y: 0, z: 1, heading: 0}
`
	_, err := Load(writeScenario(t, body))
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := Generate(DefaultGenerateParams())
	path := filepath.Join(t.TempDir(), "generated.yaml")

	require.NoError(t, Save(path, s))
	loaded, err := Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(s, loaded); diff != "" {
		t.Errorf("scenario round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := DefaultGenerateParams()
	a := Generate(p)
	b := Generate(p)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different scenarios (-a +b):\n%s", diff)
	}

	p.Seed = 2
	c := Generate(p)
	assert.NotEqual(t, a.Viewpoints, c.Viewpoints)
}

func TestGenerateShape(t *testing.T) {
	p := GenerateParams{
		Seed:          9,
		NumViewpoints: 7,
		NumRobots:     3,
		AreaSize:      15,
		MinHeight:     1,
		MaxHeight:     4,
		NumWalls:      2,
	}
	s := Generate(p)

	assert.Len(t, s.Viewpoints, 7)
	assert.Len(t, s.Starts, 3)
	assert.Len(t, s.SafetyArea, 4)
	assert.NotEmpty(t, s.Obstacles)

	for _, vp := range s.Viewpoints {
		assert.GreaterOrEqual(t, vp.Z, p.MinHeight)
		assert.LessOrEqual(t, vp.Z, p.MaxHeight)
		assert.GreaterOrEqual(t, vp.X, 0.0)
		assert.LessOrEqual(t, vp.X, p.AreaSize)
	}

	require.NoError(t, s.Problem().Validate())
}
