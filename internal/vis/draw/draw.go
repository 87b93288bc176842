// Package draw provides rendering primitives for the scene viewer.
package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/aeroinspect/tourplan/internal/core"
	"github.com/aeroinspect/tourplan/internal/vis/interact"
)

// Scene colors.
var (
	ColorObstacle   = color.NRGBA{R: 120, G: 120, B: 130, A: 255}
	ColorSafetyArea = color.NRGBA{R: 80, G: 180, B: 100, A: 200}
	ColorStart      = color.NRGBA{R: 255, G: 200, B: 80, A: 255}
)

var groupPalette = []color.NRGBA{
	{R: 100, G: 160, B: 240, A: 255},
	{R: 240, G: 120, B: 110, A: 255},
	{R: 130, G: 210, B: 130, A: 255},
	{R: 210, G: 140, B: 230, A: 255},
	{R: 240, G: 190, B: 90, A: 255},
	{R: 110, G: 210, B: 210, A: 255},
}

// GroupColor returns the display color for a robot's viewpoint group.
func GroupColor(robot int) color.NRGBA {
	return groupPalette[robot%len(groupPalette)]
}

// FillCircle draws a filled circle at screen coordinates.
func FillCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 16
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// FillSquare draws a filled axis-aligned square centered at screen coordinates.
func FillSquare(gtx layout.Context, cx, cy, size float32, col color.NRGBA) {
	half := size / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx-half, cy-half))
	path.LineTo(f32.Pt(cx+half, cy-half))
	path.LineTo(f32.Pt(cx+half, cy+half))
	path.LineTo(f32.Pt(cx-half, cy+half))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// Line draws a line segment between screen coordinates as a filled quad.
func Line(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}

	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// Tour draws a tour top-down as a polyline with direction arrows.
func Tour(gtx layout.Context, p core.Path, camera *interact.Camera, col color.NRGBA, width float32) {
	if len(p) < 2 {
		return
	}

	for i := 0; i < len(p)-1; i++ {
		x1, y1 := camera.WorldToScreen(p[i].Point.X, p[i].Point.Y)
		x2, y2 := camera.WorldToScreen(p[i+1].Point.X, p[i+1].Point.Y)
		Line(gtx, x1, y1, x2, y2, width, col)
	}

	for i := 0; i < len(p)-1; i++ {
		midX := (p[i].Point.X + p[i+1].Point.X) / 2
		midY := (p[i].Point.Y + p[i+1].Point.Y) / 2

		dx := p[i+1].Point.X - p[i].Point.X
		dy := p[i+1].Point.Y - p[i].Point.Y
		length := math.Sqrt(dx*dx + dy*dy)
		if length < 1 {
			continue
		}

		arrow(gtx, midX, midY, dx/length, dy/length, camera, col)
	}
}

// Polygon draws a closed polygon outline through world points.
func Polygon(gtx layout.Context, points []core.Point, camera *interact.Camera, col color.NRGBA, width float32) {
	if len(points) < 2 {
		return
	}
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		x1, y1 := camera.WorldToScreen(a.X, a.Y)
		x2, y2 := camera.WorldToScreen(b.X, b.Y)
		Line(gtx, x1, y1, x2, y2, width, col)
	}
}

func arrow(gtx layout.Context, x, y, dirX, dirY float64, camera *interact.Camera, col color.NRGBA) {
	screenX, screenY := camera.WorldToScreen(x, y)
	size := float32(6)

	tipX := screenX + float32(dirX)*size
	tipY := screenY + float32(dirY)*size
	perpX := -float32(dirY) * size * 0.5
	perpY := float32(dirX) * size * 0.5
	baseX := screenX - float32(dirX)*size*0.3
	baseY := screenY - float32(dirY)*size*0.3

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(tipX, tipY))
	path.LineTo(f32.Pt(baseX+perpX, baseY+perpY))
	path.LineTo(f32.Pt(baseX-perpX, baseY-perpY))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
