// Package interact handles user interactions like pan and zoom.
package interact

import (
	"gioui.org/io/pointer"
	"gioui.org/layout"
)

// Camera manages the view transformation (pan and zoom).
type Camera struct {
	OffsetX float32 // Pan offset in screen pixels
	OffsetY float32
	Zoom    float32 // Zoom level (1.0 = 100%)

	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a camera with default settings.
func NewCamera() *Camera {
	return &Camera{OffsetX: 100, OffsetY: 100, Zoom: 20}
}

// Reset resets the camera to the default view.
func (c *Camera) Reset() {
	c.OffsetX = 100
	c.OffsetY = 100
	c.Zoom = 20
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	screenX = float32(worldX)*c.Zoom + c.OffsetX
	screenY = float32(worldY)*c.Zoom + c.OffsetY
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	worldX = float64((screenX - c.OffsetX) / c.Zoom)
	worldY = float64((screenY - c.OffsetY) / c.Zoom)
	return
}

// HandleEvent processes pointer events for pan and zoom.
func (c *Camera) HandleEvent(gtx layout.Context, ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonPrimary) || ev.Buttons.Contain(pointer.ButtonSecondary) {
			c.dragging = true
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.OffsetX += ev.Position.X - c.lastX
			c.OffsetY += ev.Position.Y - c.lastY
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Release:
		c.dragging = false

	case pointer.Scroll:
		if ev.Scroll.Y == 0 {
			return
		}

		// Zoom centered on the mouse position: keep the world point
		// under the cursor fixed across the zoom change.
		worldX, worldY := c.ScreenToWorld(ev.Position.X, ev.Position.Y)

		factor := float32(1.1)
		if ev.Scroll.Y > 0 {
			c.Zoom /= factor
		} else {
			c.Zoom *= factor
		}
		c.clampZoom()

		newX, newY := c.WorldToScreen(worldX, worldY)
		c.OffsetX += ev.Position.X - newX
		c.OffsetY += ev.Position.Y - newY
	}
}

// FitBounds adjusts the camera so the given world bounds fill the screen.
func (c *Camera) FitBounds(minX, minY, maxX, maxY float64, screenWidth, screenHeight, margin float32) {
	worldW := maxX - minX
	worldH := maxY - minY
	if worldW <= 0 || worldH <= 0 {
		return
	}

	zoomX := (screenWidth - 2*margin) / float32(worldW)
	zoomY := (screenHeight - 2*margin) / float32(worldH)
	c.Zoom = zoomX
	if zoomY < zoomX {
		c.Zoom = zoomY
	}
	c.clampZoom()

	centerX := (minX + maxX) / 2
	centerY := (minY + maxY) / 2
	c.OffsetX = screenWidth/2 - float32(centerX)*c.Zoom
	c.OffsetY = screenHeight/2 - float32(centerY)*c.Zoom
}

func (c *Camera) clampZoom() {
	if c.Zoom < 0.5 {
		c.Zoom = 0.5
	}
	if c.Zoom > 200 {
		c.Zoom = 200
	}
}
