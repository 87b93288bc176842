package planner

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/aeroinspect/tourplan/internal/core"
)

// gridCell identifies one occupancy grid cell.
type gridCell struct {
	I, J, K int
}

// astarNode for the open-set priority queue.
type astarNode struct {
	cell   gridCell
	g      float64 // cost so far
	f      float64 // g + h
	parent *astarNode
	index  int // heap index
}

// astarHeap implements heap.Interface.
type astarHeap []*astarNode

func (h astarHeap) Len() int           { return len(h) }
func (h astarHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *astarHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// planAStar searches the occupancy grid with 26-connected A*.
func (p *Planner) planAStar(from, to core.Pose) (core.Path, float64, error) {
	if p.env == nil || p.env.Grid == nil {
		return nil, 0, fmt.Errorf("%w: no occupancy grid prepared", ErrNoPath)
	}
	grid := p.env.Grid

	si, sj, sk := grid.CellOf(from.Point)
	gi, gj, gk := grid.CellOf(to.Point)
	start := gridCell{si, sj, sk}
	goal := gridCell{gi, gj, gk}

	if !grid.InRange(start.I, start.J, start.K) || !grid.InRange(goal.I, goal.J, goal.K) {
		return nil, 0, fmt.Errorf("%w: endpoint outside grid", ErrNoPath)
	}
	if grid.Blocked(start.I, start.J, start.K) || grid.Blocked(goal.I, goal.J, goal.K) {
		return nil, 0, fmt.Errorf("%w: endpoint cell blocked", ErrNoPath)
	}

	h := func(c gridCell) float64 {
		return grid.CellCenter(c.I, c.J, c.K).Dist(grid.CellCenter(goal.I, goal.J, goal.K))
	}

	open := &astarHeap{}
	heap.Init(open)
	heap.Push(open, &astarNode{cell: start, f: h(start)})

	visited := make(map[gridCell]bool)
	deadline := p.deadline()

	for open.Len() > 0 {
		if time.Now().After(deadline) {
			return nil, 0, fmt.Errorf("%w: grid search timed out", ErrNoPath)
		}

		current := heap.Pop(open).(*astarNode)
		if current.cell == goal {
			path := p.reconstructGridPath(current, from, to)
			if p.cfg.Straighten {
				path = p.straighten(path)
			}
			return path, path.Length(), nil
		}

		if visited[current.cell] {
			continue
		}
		visited[current.cell] = true

		for di := -1; di <= 1; di++ {
			for dj := -1; dj <= 1; dj++ {
				for dk := -1; dk <= 1; dk++ {
					if di == 0 && dj == 0 && dk == 0 {
						continue
					}
					next := gridCell{current.cell.I + di, current.cell.J + dj, current.cell.K + dk}
					if !grid.InRange(next.I, next.J, next.K) || grid.Blocked(next.I, next.J, next.K) {
						continue
					}
					if visited[next] {
						continue
					}
					stepCost := grid.CellCenter(current.cell.I, current.cell.J, current.cell.K).
						Dist(grid.CellCenter(next.I, next.J, next.K))
					g := current.g + stepCost
					heap.Push(open, &astarNode{
						cell:   next,
						g:      g,
						f:      g + h(next),
						parent: current,
					})
				}
			}
		}
	}

	return nil, 0, fmt.Errorf("%w: grid exhausted", ErrNoPath)
}

// reconstructGridPath walks parents back to the start and rebuilds the pose
// sequence. The exact endpoint poses replace the coarse start and goal cell
// centers; interior waypoints carry the start heading until the matrix
// builder forces the terminal heading.
func (p *Planner) reconstructGridPath(node *astarNode, from, to core.Pose) core.Path {
	var cells []gridCell
	for n := node; n != nil; n = n.parent {
		cells = append([]gridCell{n.cell}, cells...)
	}

	path := core.Path{from}
	if len(cells) > 2 {
		for _, c := range cells[1 : len(cells)-1] {
			center := p.env.Grid.CellCenter(c.I, c.J, c.K)
			path = append(path, core.Pose{Point: center, Heading: from.Heading})
		}
	}
	return append(path, to)
}
