package planner

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/aeroinspect/tourplan/internal/core"
	"github.com/aeroinspect/tourplan/internal/env"
)

// Planner dispatches Plan calls to the configured algorithms over a shared,
// read-only environment context.
type Planner struct {
	cfg Config
	env *env.Environment
}

// New creates a planner over a prepared environment. The environment may be
// nil only when every requested method is euclidean.
func New(cfg Config, e *env.Environment) *Planner {
	return &Planner{cfg: cfg, env: e}
}

// Config returns the planner configuration.
func (p *Planner) Config() Config {
	return p.cfg
}

// Environment returns the shared environment context.
func (p *Planner) Environment() *env.Environment {
	return p.env
}

// Plan computes a collision-free path from one pose to another using the
// given method, returning the path and its length. The euclidean method
// never fails; the expensive methods return ErrNoPath when the environment
// offers no feasible connection, which callers treat as fatal.
func (p *Planner) Plan(from, to core.Pose, method Method) (core.Path, float64, error) {
	switch method {
	case MethodEuclidean:
		path := core.Path{from, to}
		return path, from.Dist(to), nil
	case MethodAStar:
		return p.planAStar(from, to)
	case MethodRRT:
		return p.planRRT(from, to, false)
	case MethodRRTStar:
		return p.planRRT(from, to, true)
	default:
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// deadline converts the configured per-call timeout to an absolute instant.
func (p *Planner) deadline() time.Time {
	timeout := p.cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return time.Now().Add(time.Duration(timeout * float64(time.Second)))
}

// rng returns the sampling source for one planning call. A fixed seed makes
// sampling planners reproducible across runs.
func (p *Planner) rng() *rand.Rand {
	seed := p.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// straighten drops waypoints whose bracketing sub-segments have line of
// sight, greedily extending each kept waypoint as far ahead as visibility
// allows. Endpoint poses are preserved.
func (p *Planner) straighten(path core.Path) core.Path {
	if len(path) <= 2 || p.env == nil {
		return path
	}

	out := core.Path{path[0]}
	i := 0
	for i < len(path)-1 {
		next := i + 1
		for j := len(path) - 1; j > next; j-- {
			if p.env.LineOfSight(path[i].Point, path[j].Point) {
				next = j
				break
			}
		}
		out = append(out, path[next])
		i = next
	}
	return out
}
