package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroinspect/tourplan/internal/core"
)

func squareTour() core.Path {
	return core.Path{
		core.NewPose(0, 0, 2, 0),
		core.NewPose(10, 0, 2, 0),
		core.NewPose(10, 10, 2, 0),
		core.NewPose(0, 10, 2, 0),
		core.NewPose(0, 0, 2, 0),
	}
}

func TestReplay(t *testing.T) {
	short := core.Path{core.NewPose(0, 0, 2, 0), core.NewPose(10, 0, 2, 0), core.NewPose(0, 0, 2, 0)}
	tours := []core.Path{squareTour(), short}

	cfg := DefaultConfig()
	cfg.Speed = 2.0

	res, err := Replay(tours, cfg)
	require.NoError(t, err)
	require.Len(t, res.Robots, 2)

	assert.InDelta(t, 40.0, res.Robots[0].TourLength, 1e-9)
	assert.InDelta(t, 20.0, res.Robots[0].Duration, 1e-9)
	assert.InDelta(t, 10.0, res.Robots[1].Duration, 1e-9)

	// Makespan is the slowest robot.
	assert.InDelta(t, 20.0, res.Makespan, 1e-9)
}

func TestReplayRejectsBadConfig(t *testing.T) {
	_, err := Replay(nil, Config{Speed: 0, TimeStep: 0.1})
	assert.Error(t, err)

	_, err = Replay(nil, Config{Speed: 1, TimeStep: 0})
	assert.Error(t, err)
}

func TestStateAt(t *testing.T) {
	tour := squareTour()

	t.Run("start", func(t *testing.T) {
		pose := StateAt(tour, 1.0, 0)
		assert.Equal(t, tour[0], pose)
	})

	t.Run("mid segment", func(t *testing.T) {
		pose := StateAt(tour, 1.0, 5) // 5 units along the first side
		assert.InDelta(t, 5.0, pose.Point.X, 1e-9)
		assert.InDelta(t, 0.0, pose.Point.Y, 1e-9)
	})

	t.Run("second segment", func(t *testing.T) {
		pose := StateAt(tour, 2.0, 7.5) // 15 units traveled
		assert.InDelta(t, 10.0, pose.Point.X, 1e-9)
		assert.InDelta(t, 5.0, pose.Point.Y, 1e-9)
	})

	t.Run("past the end holds final pose", func(t *testing.T) {
		pose := StateAt(tour, 1.0, 1000)
		assert.Equal(t, tour[len(tour)-1], pose)
	})

	t.Run("empty tour", func(t *testing.T) {
		assert.Equal(t, core.Pose{}, StateAt(nil, 1.0, 5))
	})
}

func TestStateAtHeadingInterpolation(t *testing.T) {
	tour := core.Path{
		core.NewPose(0, 0, 0, 0.1),
		core.NewPose(10, 0, 0, 2*math.Pi-0.1),
	}

	// Shortest angular direction goes through zero, not through pi.
	pose := StateAt(tour, 1.0, 5)
	assert.InDelta(t, 0.0, math.Mod(pose.Heading+2*math.Pi, 2*math.Pi), 1e-9)
}
