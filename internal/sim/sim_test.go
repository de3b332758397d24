package sim

import (
	"image/color"
	"testing"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/orbit"
)

type textCall struct {
	s    string
	x, y float64
}

type fakeSurface struct {
	w, h      int
	clears    int
	circles   int
	polylines [][]Point
	texts     []textCall
}

func (f *fakeSurface) Size() (int, int)                     { return f.w, f.h }
func (f *fakeSurface) Clear(color.RGBA)                     { f.clears++ }
func (f *fakeSurface) Circle(_, _, _ float64, _ color.RGBA) { f.circles++ }
func (f *fakeSurface) Polyline(pts []Point, _ color.RGBA) {
	f.polylines = append(f.polylines, append([]Point(nil), pts...))
}
func (f *fakeSurface) Text(s string, x, y float64, _ int, _ color.RGBA) {
	f.texts = append(f.texts, textCall{s, x, y})
}
func (f *fakeSurface) MeasureText(s string, size int) (float64, float64) {
	return float64(len(s) * size / 2), float64(size)
}

type fakeEvents struct {
	frames [][]Event
}

func (f *fakeEvents) PollEvents() []Event {
	if len(f.frames) == 0 {
		return nil
	}
	ev := f.frames[0]
	f.frames = f.frames[1:]
	return ev
}

func newTestSystem(t *testing.T) *orbit.System {
	t.Helper()
	sun, err := orbit.NewBody("Sun", 0, 0, 1.98892e30, orbit.DefaultTrailLength)
	if err != nil {
		t.Fatal(err)
	}
	sun.IsSun = true
	sun.Radius = 16
	earth, err := orbit.NewBody("Earth", -1, 0, 5.97219e24, orbit.DefaultTrailLength)
	if err != nil {
		t.Fatal(err)
	}
	earth.SetVelocity(0, 29.783e3)
	earth.Radius = 6
	mars, err := orbit.NewBody("Mars", -1.524, 0, 6.4171e23, orbit.DefaultTrailLength)
	if err != nil {
		t.Fatal(err)
	}
	mars.SetVelocity(0, 24.077e3)
	mars.Radius = 4

	sys, err := orbit.NewSystem([]*orbit.Body{sun, earth, mars}, orbit.Pairwise)
	if err != nil {
		t.Fatal(err)
	}
	return sys
}

func newTestLoop(t *testing.T) *Loop {
	t.Helper()
	return NewLoop(newTestSystem(t), camera.New(1000, 1000, camera.DefaultBaseScale), orbit.Day)
}
