package render

import (
	"math"

	"github.com/1siamBot/creature-waves/engine/core"
)

// Camera maps the centered, y-up world onto the screen
type Camera struct {
	X, Y    float64 // camera center position (world coords)
	Zoom    float64 // zoom level (1.0 = one world unit per pixel)
	MinZoom float64
	MaxZoom float64
	ScreenW int // viewport width in pixels
	ScreenH int // viewport height in pixels
}

// NewCamera creates a camera centered on the world origin
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: 0.25,
		MaxZoom: 3.0,
		ScreenW: screenW,
		ScreenH: screenH,
	}
}

// SetScreen updates the viewport size after a window resize
func (c *Camera) SetScreen(w, h int) {
	c.ScreenW, c.ScreenH = w, h
}

// PlayArea is the world-space size visible on screen
func (c *Camera) PlayArea() core.Vec2 {
	return core.Vec2{X: float64(c.ScreenW), Y: float64(c.ScreenH)}.Scale(1 / c.Zoom)
}

// Pan moves the camera by pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y -= dy / c.Zoom
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt zooms toward a screen point
func (c *Camera) ZoomAt(delta float64, screenX, screenY int) {
	before := c.ScreenToWorld(screenX, screenY)
	c.SetZoom(c.Zoom + delta)
	after := c.ScreenToWorld(screenX, screenY)
	// keep the point under the cursor stationary
	c.X += before.X - after.X
	c.Y += before.Y - after.Y
}

// WorldToScreen converts a world position to screen pixels
func (c *Camera) WorldToScreen(p core.Vec2) (float64, float64) {
	sx := (p.X-c.X)*c.Zoom + float64(c.ScreenW)/2
	sy := float64(c.ScreenH)/2 - (p.Y-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts a screen pixel to world coordinates
func (c *Camera) ScreenToWorld(sx, sy int) core.Vec2 {
	return core.Vec2{
		X: (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.X,
		Y: (float64(c.ScreenH)/2-float64(sy))/c.Zoom + c.Y,
	}
}
