package viz

import (
	"image/color"
	"math"

	"github.com/san-kum/orbitsim/internal/sim"
)

// RadiusScale shrinks window-sized body radii to braille sub-pixels.
const RadiusScale = 0.25

// Surface draws a sim.Loop onto a Canvas. One surface pixel is one braille
// sub-pixel; text takes one cell per rune.
type Surface struct {
	*Canvas
}

func NewSurface(w, h int) *Surface {
	return &Surface{Canvas: NewCanvas(w, h)}
}

func (s *Surface) Size() (int, int) { return s.Width * 2, s.Height * 4 }

func (s *Surface) Clear(color.RGBA) { s.Canvas.Clear() }

func (s *Surface) Circle(x, y, r float64, c color.RGBA) {
	s.SetColor(c)
	s.FillCircle(round(x), round(y), int(math.Max(0, math.Round(r*RadiusScale)-1)))
}

func (s *Surface) Polyline(pts []sim.Point, c color.RGBA) {
	s.SetColor(c)
	w, h := s.Size()
	for i := 1; i < len(pts); i++ {
		a, b, ok := clip(pts[i-1], pts[i], float64(w-1), float64(h-1))
		if !ok {
			continue
		}
		s.DrawLine(round(a.X), round(a.Y), round(b.X), round(b.Y))
	}
}

func (s *Surface) Text(str string, x, y float64, _ int, c color.RGBA) {
	s.SetColor(c)
	s.PutText(round(x)/2, round(y)/4, str)
}

func (s *Surface) MeasureText(str string, _ int) (float64, float64) {
	return float64(2 * len([]rune(str))), 4
}

const inside = 0

const (
	left = 1 << iota
	right
	below
	above
)

func outcode(p sim.Point, xmax, ymax float64) int {
	code := inside
	switch {
	case p.X < 0:
		code |= left
	case p.X > xmax:
		code |= right
	}
	switch {
	case p.Y < 0:
		code |= below
	case p.Y > ymax:
		code |= above
	}
	return code
}

// clip cuts the segment a-b to the rectangle [0, xmax] x [0, ymax]
// (Cohen-Sutherland). ok is false when nothing of it is inside.
func clip(a, b sim.Point, xmax, ymax float64) (sim.Point, sim.Point, bool) {
	for _, v := range []float64{a.X, a.Y, b.X, b.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return a, b, false
		}
	}
	ca, cb := outcode(a, xmax, ymax), outcode(b, xmax, ymax)
	// Each pass moves one endpoint onto an edge, so four per end suffice.
	for i := 0; i < 8; i++ {
		switch {
		case ca|cb == inside:
			return a, b, true
		case ca&cb != inside:
			return a, b, false
		}

		code := ca
		if code == inside {
			code = cb
		}
		var p sim.Point
		switch {
		case code&above != 0:
			p = sim.Point{X: a.X + (b.X-a.X)*(ymax-a.Y)/(b.Y-a.Y), Y: ymax}
		case code&below != 0:
			p = sim.Point{X: a.X + (b.X-a.X)*(0-a.Y)/(b.Y-a.Y), Y: 0}
		case code&right != 0:
			p = sim.Point{X: xmax, Y: a.Y + (b.Y-a.Y)*(xmax-a.X)/(b.X-a.X)}
		default:
			p = sim.Point{X: 0, Y: a.Y + (b.Y-a.Y)*(0-a.X)/(b.X-a.X)}
		}

		if code == ca {
			a, ca = p, outcode(p, xmax, ymax)
		} else {
			b, cb = p, outcode(p, xmax, ymax)
		}
	}
	return a, b, false
}

func round(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	return int(math.Round(math.Max(math.Min(v, math.MaxInt32), math.MinInt32)))
}
