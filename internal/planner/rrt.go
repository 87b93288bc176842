package planner

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/aeroinspect/tourplan/internal/core"
)

const (
	// rrtSteerStep bounds how far the tree extends toward a sample.
	rrtSteerStep = 1.0
	// rrtGoalBias is the fraction of samples drawn at the goal.
	rrtGoalBias = 0.1
	// rrtRewireRadius is the neighborhood examined by the star variant.
	rrtRewireRadius = 2.5
)

// rrtNode is one vertex of the sampling tree.
type rrtNode struct {
	point  core.Point
	parent int // index into the node slice, -1 for the root
	cost   float64
}

// planRRT grows a sampling tree from the start pose toward the goal. The
// star variant re-parents new nodes through the cheapest visible neighbor
// and rewires the neighborhood afterwards.
func (p *Planner) planRRT(from, to core.Pose, star bool) (core.Path, float64, error) {
	if p.env == nil {
		return nil, 0, fmt.Errorf("%w: no environment prepared", ErrNoPath)
	}

	rng := p.rng()
	bounds := p.env.Bounds
	deadline := p.deadline()

	nodes := []rrtNode{{point: from.Point, parent: -1}}

	for time.Now().Before(deadline) {
		sample := p.samplePoint(rng, to.Point)

		nearest := nearestNode(nodes, sample)
		candidate := steer(nodes[nearest].point, sample, rrtSteerStep)
		if !bounds.Contains(candidate) || !p.env.LineOfSight(nodes[nearest].point, candidate) {
			continue
		}

		parent := nearest
		cost := nodes[nearest].cost + nodes[nearest].point.Dist(candidate)

		if star {
			// Choose the cheapest visible parent in the neighborhood.
			for i, n := range nodes {
				if n.point.Dist(candidate) > rrtRewireRadius {
					continue
				}
				c := n.cost + n.point.Dist(candidate)
				if c < cost && p.env.LineOfSight(n.point, candidate) {
					parent, cost = i, c
				}
			}
		}

		nodes = append(nodes, rrtNode{point: candidate, parent: parent, cost: cost})
		added := len(nodes) - 1

		if star {
			// Rewire neighbors through the new node when that is cheaper.
			for i := range nodes[:added] {
				n := &nodes[i]
				c := cost + candidate.Dist(n.point)
				if c < n.cost && n.point.Dist(candidate) <= rrtRewireRadius &&
					p.env.LineOfSight(candidate, n.point) {
					n.parent = added
					n.cost = c
				}
			}
		}

		// Goal connection.
		if candidate.Dist(to.Point) <= rrtSteerStep && p.env.LineOfSight(candidate, to.Point) {
			path := p.extractTreePath(nodes, added, from, to)
			if p.cfg.Straighten {
				path = p.straighten(path)
			}
			return path, path.Length(), nil
		}
	}

	return nil, 0, fmt.Errorf("%w: sampling timed out", ErrNoPath)
}

// samplePoint draws a uniform point in bounds, biased toward the goal.
func (p *Planner) samplePoint(rng *rand.Rand, goal core.Point) core.Point {
	b := p.env.Bounds
	if rng.Float64() < rrtGoalBias {
		return goal
	}
	return core.Point{
		X: b.Min.X + rng.Float64()*(b.Max.X-b.Min.X),
		Y: b.Min.Y + rng.Float64()*(b.Max.Y-b.Min.Y),
		Z: b.Min.Z + rng.Float64()*(b.Max.Z-b.Min.Z),
	}
}

func nearestNode(nodes []rrtNode, p core.Point) int {
	best, bestDist := 0, math.Inf(1)
	for i, n := range nodes {
		if d := n.point.Dist(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// steer moves from a toward b by at most step.
func steer(a, b core.Point, step float64) core.Point {
	d := a.Dist(b)
	if d <= step {
		return b
	}
	t := step / d
	return core.Point{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
	}
}

// extractTreePath walks parents from the goal-connected node to the root.
func (p *Planner) extractTreePath(nodes []rrtNode, leaf int, from, to core.Pose) core.Path {
	var points []core.Point
	for i := leaf; i != -1; i = nodes[i].parent {
		points = append([]core.Point{nodes[i].point}, points...)
	}

	path := core.Path{from}
	for _, pt := range points[1:] {
		path = append(path, core.Pose{Point: pt, Heading: from.Heading})
	}
	return append(path, to)
}
