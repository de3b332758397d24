package sim

import "image/color"

// Point is a screen position in pixels.
type Point struct {
	X, Y float64
}

// Surface is the drawing target of the loop. Coordinates are pixels from
// the top-left corner.
type Surface interface {
	Size() (w, h int)
	Clear(c color.RGBA)
	Circle(x, y, r float64, c color.RGBA)
	Polyline(pts []Point, c color.RGBA)
	Text(s string, x, y float64, size int, c color.RGBA)
	MeasureText(s string, size int) (w, h float64)
}

// EventSource is polled once per frame and must not block.
type EventSource interface {
	PollEvents() []Event
}
