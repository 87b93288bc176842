// Package vis implements a Gio-based top-down viewer for inspection
// scenarios and the tours planned over them.
package vis

import (
	"image"
	"image/color"
	"math/rand"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/aeroinspect/tourplan/internal/cluster"
	"github.com/aeroinspect/tourplan/internal/config"
	"github.com/aeroinspect/tourplan/internal/core"
	"github.com/aeroinspect/tourplan/internal/logging"
	"github.com/aeroinspect/tourplan/internal/tour"
	"github.com/aeroinspect/tourplan/internal/vis/draw"
	"github.com/aeroinspect/tourplan/internal/vis/interact"
)

// Scene is everything the viewer renders: the world, the viewpoint
// partition, and one planned tour per robot.
type Scene struct {
	Scenario *config.Scenario
	Problem  *core.InspectionProblem
	Groups   []cluster.Group
	Tours    []core.Path
}

// BuildScene clusters the scenario's viewpoints and plans one tour per
// robot with the in-process heuristic sequencer.
func BuildScene(scenario *config.Scenario) (*Scene, error) {
	log := logging.New("vis")

	problem := scenario.Problem()
	viewpoints := scenario.ViewpointList()

	method := cluster.MethodKMeans
	if scenario.Clustering != "" {
		m, err := cluster.ParseMethod(scenario.Clustering)
		if err != nil {
			return nil, err
		}
		method = m
	}

	groups, err := cluster.Partition(viewpoints, problem, method, rand.New(rand.NewSource(1)))
	if err != nil {
		return nil, err
	}

	scene := &Scene{
		Scenario: scenario,
		Problem:  problem,
		Groups:   groups,
		Tours:    make([]core.Path, len(groups)),
	}

	for _, g := range groups {
		local := make([]core.Viewpoint, len(g.Viewpoints))
		for i, vp := range g.Viewpoints {
			local[i] = core.NewViewpoint(i, vp.Pose)
		}

		pl, err := tour.PreparePlanner(problem, local, scenario.Planner)
		if err != nil {
			return nil, err
		}

		session := tour.NewSession(local, pl)
		path, err := session.PlanTour(tour.NewHeuristicSequencer())
		if err != nil {
			return nil, err
		}
		scene.Tours[g.Robot] = path
		log.Info("tour planned", "robot", g.Robot, "viewpoints", len(local), "length", path.Length())
	}

	return scene, nil
}

// App is the viewer application.
type App struct {
	scene  *Scene
	camera *interact.Camera
	fitted bool
}

// NewApp creates a viewer over the given scene.
func NewApp(scene *Scene) *App {
	return &App{
		scene:  scene,
		camera: interact.NewCamera(),
	}
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke, gtx)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (a *App) handleKeyEvent(e key.Event, gtx layout.Context) {
	switch e.Name {
	case "R":
		a.camera.Reset()
	case "F":
		a.fitScene(gtx)
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	a.handlePointerEvents(gtx)

	if !a.fitted {
		a.fitScene(gtx)
		a.fitted = true
	}

	a.drawScene(gtx)
	return layout.Dimensions{Size: bounds}
}

func (a *App) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, a)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: a,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			a.camera.HandleEvent(gtx, pe)
		}
	}
}

func (a *App) fitScene(gtx layout.Context) {
	area := a.scene.Problem.SafetyArea
	if len(area) == 0 {
		return
	}

	minX, minY := area[0].X, area[0].Y
	maxX, maxY := minX, minY
	for _, p := range area[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}

	a.camera.FitBounds(minX, minY, maxX, maxY,
		float32(gtx.Constraints.Max.X), float32(gtx.Constraints.Max.Y), 40)
}

func (a *App) drawScene(gtx layout.Context) {
	scene := a.scene

	draw.Polygon(gtx, scene.Problem.SafetyArea, a.camera, draw.ColorSafetyArea, 2)

	for _, o := range scene.Problem.ObstaclePoints {
		x, y := a.camera.WorldToScreen(o.X, o.Y)
		draw.FillCircle(gtx, x, y, 2, draw.ColorObstacle)
	}

	for robot, t := range scene.Tours {
		col := draw.GroupColor(robot)
		col.A = 170
		draw.Tour(gtx, t, a.camera, col, 2)
	}

	for _, g := range scene.Groups {
		col := draw.GroupColor(g.Robot)
		for _, vp := range g.Viewpoints {
			x, y := a.camera.WorldToScreen(vp.Pose.Point.X, vp.Pose.Point.Y)
			draw.FillCircle(gtx, x, y, 5, col)
		}
	}

	for _, start := range scene.Problem.StartPoses {
		x, y := a.camera.WorldToScreen(start.Point.X, start.Point.Y)
		draw.FillSquare(gtx, x, y, 10, draw.ColorStart)
	}
}
