// Package camera maps world coordinates in AU to screen pixels.
//
// The screen origin is the top-left corner; the world origin starts at the
// center of the surface. Zoom is a multiplier on BaseScale and is kept inside
// [MinZoom, MaxZoom] so the inverse transform never divides by zero.
package camera

import "math"

const (
	MinZoom = 1e-3
	MaxZoom = 1e4

	// DefaultBaseScale is 100 px per AU at zoom 1.
	DefaultBaseScale = 100.0
)

type Camera struct {
	OffsetX, OffsetY float64 // px
	Zoom             float64
	BaseScale        float64 // px per AU at zoom 1
	Width, Height    float64 // px

	dragging     bool
	lastX, lastY float64
}

func New(width, height int, baseScale float64) *Camera {
	if !(baseScale > 0) {
		baseScale = DefaultBaseScale
	}
	return &Camera{
		Zoom:      1,
		BaseScale: baseScale,
		Width:     float64(width),
		Height:    float64(height),
	}
}

// PixelsPerAU is the current world-to-screen scale.
func (c *Camera) PixelsPerAU() float64 { return c.BaseScale * c.Zoom }

func (c *Camera) WorldToScreen(x, y float64) (sx, sy float64) {
	s := c.PixelsPerAU()
	return x*s + c.OffsetX + c.Width/2, y*s + c.OffsetY + c.Height/2
}

func (c *Camera) ScreenToWorld(sx, sy float64) (x, y float64) {
	s := c.PixelsPerAU()
	return (sx - c.OffsetX - c.Width/2) / s, (sy - c.OffsetY - c.Height/2) / s
}

// Pan shifts the view by a screen-space delta. Zoom is not involved.
func (c *Camera) Pan(dx, dy float64) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomAt multiplies the zoom by factor while keeping the world point under
// (cx, cy) fixed on screen. Non-positive or non-finite factors are ignored.
func (c *Camera) ZoomAt(cx, cy, factor float64) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return
	}
	wx, wy := c.ScreenToWorld(cx, cy)
	c.SetZoom(c.Zoom * factor)
	nx, ny := c.WorldToScreen(wx, wy)
	c.OffsetX += cx - nx
	c.OffsetY += cy - ny
}

// SetZoom sets the zoom, clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(z float64) {
	switch {
	case math.IsNaN(z), z < MinZoom:
		z = MinZoom
	case z > MaxZoom:
		z = MaxZoom
	}
	c.Zoom = z
}

func (c *Camera) BeginDrag(x, y float64) {
	c.dragging = true
	c.lastX, c.lastY = x, y
}

// DragTo pans by the cursor movement since the last drag position. It does
// nothing unless a drag is in progress.
func (c *Camera) DragTo(x, y float64) {
	if !c.dragging {
		return
	}
	c.Pan(x-c.lastX, y-c.lastY)
	c.lastX, c.lastY = x, y
}

func (c *Camera) EndDrag()       { c.dragging = false }
func (c *Camera) Dragging() bool { return c.dragging }

// Resize keeps the world point at the old center on the new center.
func (c *Camera) Resize(width, height int) {
	c.Width, c.Height = float64(width), float64(height)
}

func (c *Camera) Reset() {
	c.OffsetX, c.OffsetY = 0, 0
	c.Zoom = 1
	c.dragging = false
}
