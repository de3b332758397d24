package sim

import (
	"fmt"
	"image/color"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/orbit"
)

var (
	Background = color.RGBA{0, 0, 0, 255}
	FontColor  = color.RGBA{255, 255, 255, 255}
)

const (
	FontSize        = 20
	DefaultZoomStep = 1.1
)

var controls = []string{
	"Controls:",
	"Left Click + Drag - Pan",
	"Mouse Wheel - Zoom",
	"Space - Pause/Resume",
	"R - Reset  C - Center",
	"Esc - Quit",
}

// Loop is the per-frame update/render cycle. It owns the camera and the
// pause flag; nothing here is global.
type Loop struct {
	System   *orbit.System
	Camera   *camera.Camera
	Dt       float64
	ZoomStep float64

	// HUD and Labels toggle the text overlays drawn by Render.
	HUD    bool
	Labels bool

	paused  bool
	stopped bool
	single  bool

	printer *message.Printer
	scratch []Point
}

func NewLoop(sys *orbit.System, cam *camera.Camera, dt float64) *Loop {
	return &Loop{
		System:   sys,
		Camera:   cam,
		Dt:       dt,
		ZoomStep: DefaultZoomStep,
		HUD:      true,
		Labels:   true,
		printer:  message.NewPrinter(language.English),
	}
}

func (l *Loop) Paused() bool  { return l.paused }
func (l *Loop) Running() bool { return !l.stopped }

func (l *Loop) TogglePause() { l.paused = !l.paused }
func (l *Loop) Stop()        { l.stopped = true }

// HandleEvent applies one input event. Camera input keeps working while
// paused.
func (l *Loop) HandleEvent(ev Event) {
	switch ev := ev.(type) {
	case MouseDown:
		if ev.Button == ButtonLeft {
			l.Camera.BeginDrag(ev.X, ev.Y)
		}
	case MouseUp:
		if ev.Button == ButtonLeft {
			l.Camera.EndDrag()
		}
	case MouseMove:
		l.Camera.DragTo(ev.X, ev.Y)
	case Wheel:
		if ev.Delta != 0 {
			l.Camera.ZoomAt(ev.X, ev.Y, math.Pow(l.ZoomStep, ev.Delta))
		}
	case KeyDown:
		l.handleKey(ev.Key)
	case Close:
		l.stopped = true
	}
}

func (l *Loop) handleKey(k Key) {
	cx, cy := l.Camera.Width/2, l.Camera.Height/2
	switch k {
	case KeySpace:
		l.TogglePause()
	case KeyEscape:
		l.stopped = true
	case KeyR:
		l.System.Reset()
	case KeyC:
		l.Camera.Reset()
	case KeyPlus:
		l.Camera.ZoomAt(cx, cy, l.ZoomStep)
	case KeyMinus:
		l.Camera.ZoomAt(cx, cy, 1/l.ZoomStep)
	case KeyPeriod:
		if l.paused {
			l.single = true
		}
	}
}

// Update advances physics by one timestep unless paused.
func (l *Loop) Update() {
	if l.paused && !l.single {
		return
	}
	l.single = false
	l.System.Step(l.Dt)
}

// Frame runs one full cycle: input, physics, drawing.
func (l *Loop) Frame(src EventSource, s Surface) {
	for _, ev := range src.PollEvents() {
		l.HandleEvent(ev)
	}
	if l.stopped {
		return
	}
	l.Update()
	l.Render(s)
}

func (l *Loop) Render(s Surface) {
	if w, h := s.Size(); float64(w) != l.Camera.Width || float64(h) != l.Camera.Height {
		l.Camera.Resize(w, h)
	}
	s.Clear(Background)
	for _, b := range l.System.Bodies() {
		l.drawBody(s, b)
	}
	if l.HUD {
		l.drawHUD(s)
	}
}

// BodyRadius scales the drawing radius with zoom, never above the
// configured radius and never below one pixel.
func BodyRadius(base, zoom float64) float64 {
	r := base * math.Log2(zoom+1)
	return math.Max(1, math.Min(base, r))
}

func (l *Loop) drawBody(s Surface, b *orbit.Body) {
	sx, sy := l.Camera.WorldToScreen(b.X, b.Y)

	if trail := b.Trail(); len(trail) > 2 {
		l.scratch = l.scratch[:0]
		for _, p := range trail {
			x, y := l.Camera.WorldToScreen(p.X, p.Y)
			l.scratch = append(l.scratch, Point{x, y})
		}
		s.Polyline(l.scratch, b.Color)
	}

	s.Circle(sx, sy, BodyRadius(b.Radius, l.Camera.Zoom), b.Color)

	if l.Labels && !b.IsSun {
		label := l.DistanceLabel(b)
		w, h := s.MeasureText(label, FontSize)
		s.Text(label, sx-w/2, sy-h/2, FontSize, FontColor)
	}
}

// DistanceLabel formats the distance of b from the sun in kilometers.
func (l *Loop) DistanceLabel(b *orbit.Body) string {
	km := l.System.DistanceToSun(b) / 1000
	return l.printer.Sprintf("%s: %.1f km", b.Name, km)
}

func (l *Loop) drawHUD(s Surface) {
	y := 10.0
	for _, line := range controls {
		s.Text(line, 10, y, FontSize, FontColor)
		y += 20
	}

	status := "Running"
	if l.paused {
		status = "Paused"
	}
	kmPerPx := orbit.AU / 1000 / l.Camera.PixelsPerAU()
	info := []string{
		l.printer.Sprintf("Scale: 1 px = %.0f km", kmPerPx),
		fmt.Sprintf("Status: %s  Day: %.0f  Gravity: %s", status, l.System.Time()/orbit.Day, l.System.Gravity),
	}

	_, h := s.Size()
	y = float64(h) - 60
	for _, line := range info {
		s.Text(line, 10, y, FontSize, FontColor)
		y += 20
	}
}
