package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/sim"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	sun, _ := orbit.NewBody("Sun", 0, 0, 1.98892e30, 100)
	sun.IsSun = true
	sun.Radius = 16
	earth, _ := orbit.NewBody("Earth", -1, 0, 5.97219e24, 100)
	earth.SetVelocity(0, 29.783e3)
	earth.Radius = 6
	mars, _ := orbit.NewBody("Mars", -1.524, 0, 6.4171e23, 100)
	mars.SetVelocity(0, 24.077e3)
	mars.Radius = 4
	sys, err := orbit.NewSystem([]*orbit.Body{sun, earth, mars}, orbit.Pairwise)
	if err != nil {
		t.Fatal(err)
	}
	loop := sim.NewLoop(sys, camera.New(80, 80, 25), orbit.Day)
	return NewModel(loop, 40, 20, 60, ThemeSpace)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTickAndPause(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)

	_, cmd := m.Update(TickMsg{})
	g.Expect(cmd).NotTo(BeNil())
	g.Expect(m.loop.System.Steps()).To(Equal(1))
	g.Expect(m.distance).To(HaveLen(1))

	m.Update(key(" "))
	m.Update(TickMsg{})
	g.Expect(m.loop.System.Steps()).To(Equal(1))
	g.Expect(m.View()).To(ContainSubstring("PAUSED"))

	m.Update(key("."))
	m.Update(TickMsg{})
	g.Expect(m.loop.System.Steps()).To(Equal(2))
	g.Expect(m.distance).To(HaveLen(2))
}

func TestModelMouseDragPans(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 15, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 15, Y: 12, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	m.Update(tea.MouseMsg{X: 20, Y: 20, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})

	cam := m.loop.Camera
	if cam.OffsetX != 10 || cam.OffsetY != 8 {
		t.Errorf("expected offset (10, 8), got (%f, %f)", cam.OffsetX, cam.OffsetY)
	}
}

func TestModelWheelZoomsAtCursor(t *testing.T) {
	m := newTestModel(t)
	m.View()

	msg := tea.MouseMsg{X: 12, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}
	ev, ok := m.mouseEvent(msg)
	if !ok {
		t.Fatal("wheel not translated")
	}
	w := ev.(sim.Wheel)
	wx, wy := m.loop.Camera.ScreenToWorld(w.X, w.Y)

	m.Update(msg)

	if math.Abs(m.loop.Camera.Zoom-sim.DefaultZoomStep) > 1e-12 {
		t.Errorf("zoom = %f", m.loop.Camera.Zoom)
	}
	ax, ay := m.loop.Camera.ScreenToWorld(w.X, w.Y)
	if math.Abs(ax-wx) > 1e-9 || math.Abs(ay-wy) > 1e-9 {
		t.Error("point under cursor moved")
	}

	m.Update(tea.MouseMsg{X: 12, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if math.Abs(m.loop.Camera.Zoom-1) > 1e-12 {
		t.Errorf("zoom = %f after wheel down", m.loop.Camera.Zoom)
	}
}

func TestModelQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m := newTestModel(t)
		var msg tea.KeyMsg
		if k == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = key(k)
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestModelSelectAndReset(t *testing.T) {
	g := NewWithT(t)
	m := newTestModel(t)
	g.Expect(m.selected).To(Equal(1))

	m.Update(TickMsg{})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	g.Expect(m.selected).To(Equal(2))
	g.Expect(m.distance).To(BeEmpty())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	g.Expect(m.selected).To(Equal(1))

	m.Update(TickMsg{})
	m.Update(key("r"))
	g.Expect(m.loop.System.Steps()).To(BeZero())
	g.Expect(m.distance).To(BeEmpty())
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 5; i++ {
		m.Update(TickMsg{})
	}
	view := m.View()

	for _, want := range []string{"RUNNING", "Earth", "Mars", "distance (AU)", "pairwise"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if m.loop.HUD || m.loop.Labels {
		t.Error("loop overlays should be disabled in the terminal")
	}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.surface.Width != 120-panelWidth-6 || m.surface.Height != 38 {
		t.Errorf("unexpected canvas size %dx%d", m.surface.Width, m.surface.Height)
	}

	theme := m.theme.Name
	m.Update(key("t"))
	if m.theme.Name == theme {
		t.Error("theme not cycled")
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 4); got != "────" {
		t.Errorf("unexpected empty chart %q", got)
	}
	if got := SparklineChart([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8); got != "▁▂▃▄▅▆▇█" {
		t.Errorf("unexpected chart %q", got)
	}
	if got := []rune(SparklineChart([]float64{0, 1, 2, 3}, 2)); len(got) != 2 || got[1] != '█' {
		t.Errorf("expected the most recent values, got %q", string(got))
	}
}
