// Package cluster partitions inspection viewpoints among robots and maps
// cluster labels to robot indices so that initial repositioning cost stays
// low.
package cluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/aeroinspect/tourplan/internal/core"
	"github.com/aeroinspect/tourplan/internal/logging"
)

// Method selects the partitioning strategy.
type Method string

const (
	MethodRandom Method = "random"
	MethodKMeans Method = "kmeans"
)

// ErrBadAssignment marks a centroid-to-robot mapping that is not a
// bijection. A duplicate assignment would leave a robot without work, so
// this is a fatal assertion rather than something to patch over.
var ErrBadAssignment = errors.New("cluster assignment is not a bijection")

// ErrUnknownClusterMethod marks an unsupported method name.
var ErrUnknownClusterMethod = errors.New("unknown clustering method")

// ParseMethod validates a clustering method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodRandom, MethodKMeans:
		return Method(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownClusterMethod, s)
	}
}

// Group is the set of viewpoints assigned to one robot.
type Group struct {
	Robot      int
	Viewpoints []core.Viewpoint
}

// viewpointObservation wraps a viewpoint position for the k-means library
// while keeping the identity index recoverable from cluster membership.
type viewpointObservation struct {
	index  int
	coords clusters.Coordinates
}

func (o viewpointObservation) Coordinates() clusters.Coordinates { return o.coords }
func (o viewpointObservation) Distance(p clusters.Coordinates) float64 {
	return o.coords.Distance(p)
}

// Partition splits the viewpoints into k groups, k = robot count, and
// labels each group with its assigned robot index.
func Partition(viewpoints []core.Viewpoint, problem *core.InspectionProblem, method Method, rng *rand.Rand) ([]Group, error) {
	k := problem.NumberOfRobots

	switch method {
	case MethodKMeans:
		return centroidPartition(viewpoints, problem, k)
	case MethodRandom:
		return randomPartition(viewpoints, k, rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownClusterMethod, method)
	}
}

// randomPartition gives every viewpoint an independent uniform label.
func randomPartition(viewpoints []core.Viewpoint, k int, rng *rand.Rand) []Group {
	groups := make([]Group, k)
	for r := range groups {
		groups[r].Robot = r
	}
	for _, vp := range viewpoints {
		r := rng.Intn(k)
		groups[r].Viewpoints = append(groups[r].Viewpoints, vp)
	}
	return groups
}

// centroidPartition runs k-means over viewpoint positions, then remaps the
// arbitrary cluster labels to robot indices by greedy nearest-unclaimed
// matching against the robot start poses.
func centroidPartition(viewpoints []core.Viewpoint, problem *core.InspectionProblem, k int) ([]Group, error) {
	obs := make(clusters.Observations, len(viewpoints))
	for i, vp := range viewpoints {
		obs[i] = viewpointObservation{
			index:  i,
			coords: clusters.Coordinates{vp.Pose.Point.X, vp.Pose.Point.Y, vp.Pose.Point.Z},
		}
	}

	km := kmeans.New()
	cc, err := km.Partition(obs, k)
	if err != nil {
		return nil, fmt.Errorf("k-means: %w", err)
	}

	// Pairwise distances between cluster centers and robot starts.
	dmat := make([][]float64, len(cc))
	for ci, c := range cc {
		dmat[ci] = make([]float64, k)
		center := core.Point{X: c.Center[0], Y: c.Center[1], Z: c.Center[2]}
		for ri := 0; ri < k; ri++ {
			dmat[ci][ri] = center.Dist(problem.StartPoses[ri].Point)
		}
	}

	assigned, err := assignRobots(dmat)
	if err != nil {
		return nil, err
	}

	log := logging.New("cluster")
	log.Debug("centroids assigned", "clusters", len(cc), "robots", k)

	groups := make([]Group, k)
	for r := range groups {
		groups[r].Robot = r
	}
	for ci, c := range cc {
		robot := assigned[ci]
		for _, o := range c.Observations {
			vo := o.(viewpointObservation)
			groups[robot].Viewpoints = append(groups[robot].Viewpoints, viewpoints[vo.index])
		}
	}
	return groups, nil
}

// assignRobots maps each centroid to its nearest robot that no earlier,
// closer pairing has claimed. Iterating centroids in index order gives
// lower-numbered centroids priority, matching the historical behavior. The
// result must be a bijection over 0..k-1.
func assignRobots(dmat [][]float64) ([]int, error) {
	k := len(dmat)
	assigned := make([]int, k)
	claimed := make([]bool, k)
	for ci := range assigned {
		assigned[ci] = -1
	}

	for ci := 0; ci < k; ci++ {
		best := math.Inf(1)
		for ri := 0; ri < k; ri++ {
			if !claimed[ri] && dmat[ci][ri] < best {
				assigned[ci] = ri
				best = dmat[ci][ri]
			}
		}
		if assigned[ci] >= 0 {
			claimed[assigned[ci]] = true
		}
	}

	// Assert the bijection before anyone flies with it.
	seen := make([]bool, k)
	for _, ri := range assigned {
		if ri < 0 || seen[ri] {
			return nil, fmt.Errorf("%w: %v", ErrBadAssignment, assigned)
		}
		seen[ri] = true
	}
	return assigned, nil
}
