package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-kit/kit/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	panelWidth      = 44
	historyCapacity = 600

	// Cell offset of the canvas inside the view, from canvasStyle padding.
	canvasLeft = 2
	canvasTop  = 1
)

type TickMsg time.Time

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the bubbletea program state: the loop it drives plus the
// terminal-only panel state.
type Model struct {
	loop     *sim.Loop
	surface  *Surface
	theme    Theme
	fps      int
	selected int
	distance []float64
	speed    []float64
}

// NewModel wraps loop for a w x h cell canvas. The loop's own text
// overlays are turned off; the side panel replaces them.
func NewModel(loop *sim.Loop, w, h, fps int, theme Theme) *Model {
	if fps <= 0 {
		fps = 60
	}
	loop.HUD = false
	loop.Labels = false
	m := &Model{
		loop:     loop,
		surface:  NewSurface(w, h),
		theme:    theme,
		fps:      fps,
		distance: make([]float64, 0, historyCapacity),
		speed:    make([]float64, 0, historyCapacity),
	}
	m.selected = m.nextPlanet(-1)
	return m
}

func (m *Model) Init() tea.Cmd {
	return tick(m.fps)
}

// Update handles input events and steps the simulation.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.MouseMsg:
		if ev, ok := m.mouseEvent(msg); ok {
			m.loop.HandleEvent(ev)
		}
	case tea.WindowSizeMsg:
		m.surface.Resize(max(msg.Width-panelWidth-2*canvasLeft-2, 10), max(msg.Height-2*canvasTop, 5))
	case TickMsg:
		before := m.loop.System.Steps()
		m.loop.Update()
		if m.loop.System.Steps() != before {
			m.record()
		}
		cmd = tick(m.fps)
	}

	if !m.loop.Running() {
		return m, tea.Quit
	}
	return m, cmd
}

var keyBindings = map[string]sim.Key{
	" ":      sim.KeySpace,
	"esc":    sim.KeyEscape,
	"q":      sim.KeyEscape,
	"ctrl+c": sim.KeyEscape,
	"r":      sim.KeyR,
	"c":      sim.KeyC,
	"+":      sim.KeyPlus,
	"=":      sim.KeyPlus,
	"-":      sim.KeyMinus,
	".":      sim.KeyPeriod,
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch s := msg.String(); s {
	case "tab":
		m.selected = m.nextPlanet(m.selected)
		m.clearHistory()
	case "t":
		m.theme = NextTheme(m.theme)
	default:
		if k, ok := keyBindings[s]; ok {
			m.loop.HandleEvent(sim.KeyDown{Key: k})
			if k == sim.KeyR {
				m.clearHistory()
			}
		}
	}
}

// mouseEvent converts terminal cells to canvas sub-pixels.
func (m *Model) mouseEvent(msg tea.MouseMsg) (sim.Event, bool) {
	x := float64((msg.X - canvasLeft) * 2)
	y := float64((msg.Y - canvasTop) * 4)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return sim.Wheel{X: x, Y: y, Delta: 1}, true
	case msg.Button == tea.MouseButtonWheelDown:
		return sim.Wheel{X: x, Y: y, Delta: -1}, true
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return sim.MouseDown{Button: sim.ButtonLeft, X: x, Y: y}, true
	case msg.Action == tea.MouseActionRelease:
		// Some terminals report releases without a button.
		return sim.MouseUp{Button: sim.ButtonLeft, X: x, Y: y}, true
	case msg.Action == tea.MouseActionMotion:
		return sim.MouseMove{X: x, Y: y}, true
	}
	return nil, false
}

func (m *Model) nextPlanet(from int) int {
	bodies := m.loop.System.Bodies()
	for i := 1; i <= len(bodies); i++ {
		j := (from + i) % len(bodies)
		if j >= 0 && !bodies[j].IsSun {
			return j
		}
	}
	return 0
}

func (m *Model) record() {
	b := m.loop.System.Bodies()[m.selected]
	m.distance = appendCapped(m.distance, m.loop.System.DistanceToSun(b)/orbit.AU)
	m.speed = appendCapped(m.speed, b.Speed()/1000)
}

func (m *Model) clearHistory() {
	m.distance = m.distance[:0]
	m.speed = m.speed[:0]
}

func appendCapped(s []float64, v float64) []float64 {
	if len(s) == historyCapacity {
		copy(s, s[1:])
		s = s[:len(s)-1]
	}
	return append(s, v)
}

// View renders the canvas and the side panel.
func (m *Model) View() string {
	m.loop.Render(m.surface)
	canvasView := canvasStyle.Render(m.surface.Render())

	st := NewStyles(m.theme)
	sys := m.loop.System

	var s strings.Builder
	s.WriteString(st.Header.Render("PLANET SIMULATION") + "\n\n")

	if m.loop.Paused() {
		s.WriteString(st.StatusPaused.Render("PAUSED"))
	} else {
		s.WriteString(st.StatusRunning.Render("RUNNING"))
	}
	s.WriteString("\n\n")

	kmPerCell := 2 * orbit.AU / 1000 / m.loop.Camera.PixelsPerAU()
	rows := [][2]string{
		{"Day", fmt.Sprintf("%.0f", sys.Time()/orbit.Day)},
		{"Gravity", sys.Gravity.String()},
		{"Zoom", fmt.Sprintf("%.3gx", m.loop.Camera.Zoom)},
		{"Cell", fmt.Sprintf("%.3g km", kmPerCell)},
	}
	for _, r := range rows {
		s.WriteString(st.MetricLabel.Render(r[0]) + st.MetricValue.Render(r[1]) + "\n")
	}

	s.WriteString("\n")
	for i, b := range sys.Bodies() {
		if b.IsSun {
			continue
		}
		line := fmt.Sprintf("%-8s %7.3f AU", b.Name, sys.DistanceToSun(b)/orbit.AU)
		if i == m.selected {
			s.WriteString(st.Selected.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	if len(m.distance) > 1 {
		chart := asciigraph.Plot(m.distance,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-14),
			asciigraph.Caption(sys.Bodies()[m.selected].Name+" distance (AU)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
		s.WriteString(st.MetricLabel.Render("km/s") + SparklineChart(m.speed, panelWidth-16) + "\n")
	}

	s.WriteString("\n" + Separator(panelWidth-6) + "\n")
	s.WriteString(st.KeyHint.Render("drag:Pan  wheel/+-:Zoom  SP:Pause\n.:Step  R:Reset  C:Center\nTab:Body  T:Theme  Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Panel.Render(s.String()))
}

// Run starts the terminal UI and blocks until the user quits.
func Run(loop *sim.Loop, w, h, fps int, theme Theme, logger log.Logger) error {
	logger = log.With(logger, "subsys", "tui")
	logger.Log("level", "info", "message", "starting", "theme", theme.Name)

	p := tea.NewProgram(NewModel(loop, w, h, fps, theme), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	logger.Log("level", "info", "message", "stopped", "steps", loop.System.Steps())
	return nil
}
