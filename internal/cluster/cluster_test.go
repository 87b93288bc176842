package cluster

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroinspect/tourplan/internal/core"
)

func TestParseMethod(t *testing.T) {
	for _, name := range []string{"random", "kmeans"} {
		m, err := ParseMethod(name)
		require.NoError(t, err)
		assert.Equal(t, Method(name), m)
	}

	_, err := ParseMethod("spectral")
	assert.ErrorIs(t, err, ErrUnknownClusterMethod)
}

func TestAssignRobotsGreedyClaims(t *testing.T) {
	// Both centroids are nearest to robot 0. Independent argmin would give
	// the duplicate [0, 0]; the claim pass forces centroid 1 onto robot 1.
	dmat := [][]float64{
		{1.0, 2.0},
		{1.5, 5.0},
	}

	assigned, err := assignRobots(dmat)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, assigned)
}

func TestAssignRobotsIdentity(t *testing.T) {
	dmat := [][]float64{
		{1, 9, 9},
		{9, 1, 9},
		{9, 9, 1},
	}
	assigned, err := assignRobots(dmat)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, assigned)
}

func TestAssignRobotsUnreachable(t *testing.T) {
	inf := math.Inf(1)
	dmat := [][]float64{
		{inf, inf},
		{inf, inf},
	}
	_, err := assignRobots(dmat)
	assert.ErrorIs(t, err, ErrBadAssignment)
}

func twoSiteProblem() (*core.InspectionProblem, []core.Viewpoint) {
	problem := &core.InspectionProblem{
		Name: "two-sites",
		SafetyArea: []core.Point{
			{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 10}, {X: 0, Y: 10},
		},
		MinHeight: 0.5,
		MaxHeight: 5,
		StartPoses: []core.Pose{
			core.NewPose(2, 0, 1, 0),
			core.NewPose(28, 0, 1, 0),
		},
		NumberOfRobots: 2,
	}

	// Two tight groups of viewpoints, one near each start.
	var vps []core.Viewpoint
	for i := 0; i < 5; i++ {
		vps = append(vps, core.NewViewpoint(len(vps),
			core.NewPose(1+float64(i)*0.5, 5, 2, 0)))
	}
	for i := 0; i < 5; i++ {
		vps = append(vps, core.NewViewpoint(len(vps),
			core.NewPose(27+float64(i)*0.5, 5, 2, 0)))
	}
	return problem, vps
}

func TestPartitionKMeans(t *testing.T) {
	problem, vps := twoSiteProblem()

	groups, err := Partition(vps, problem, MethodKMeans, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// Every viewpoint lands in exactly one group.
	seen := make(map[int]bool)
	for _, g := range groups {
		for _, vp := range g.Viewpoints {
			assert.False(t, seen[vp.Index], "viewpoint %d assigned twice", vp.Index)
			seen[vp.Index] = true
		}
	}
	assert.Len(t, seen, len(vps))

	// Separated sites go to their nearest robot: the left group (x < 15)
	// belongs to robot 0, the right group to robot 1.
	for _, g := range groups {
		require.NotEmpty(t, g.Viewpoints)
		for _, vp := range g.Viewpoints {
			if g.Robot == 0 {
				assert.Less(t, vp.Pose.Point.X, 15.0)
			} else {
				assert.Greater(t, vp.Pose.Point.X, 15.0)
			}
		}
	}
}

func TestPartitionRandom(t *testing.T) {
	problem, vps := twoSiteProblem()

	groups, err := Partition(vps, problem, MethodRandom, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	require.Len(t, groups, 2)

	total := 0
	for _, g := range groups {
		total += len(g.Viewpoints)
	}
	assert.Equal(t, len(vps), total)
}

func TestPartitionUnknownMethod(t *testing.T) {
	problem, vps := twoSiteProblem()
	_, err := Partition(vps, problem, Method("spectral"), rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrUnknownClusterMethod)
}
