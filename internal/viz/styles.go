package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
)

// Styles are derived from a Theme each frame so theme switching applies
// immediately.
type Styles struct {
	Panel         lipgloss.Style
	Header        lipgloss.Style
	StatusRunning lipgloss.Style
	StatusPaused  lipgloss.Style
	MetricLabel   lipgloss.Style
	MetricValue   lipgloss.Style
	Selected      lipgloss.Style
	KeyHint       lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(panelWidth),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Title).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		StatusRunning: lipgloss.NewStyle().Bold(true).Foreground(t.Running),
		StatusPaused:  lipgloss.NewStyle().Bold(true).Foreground(t.Paused),
		MetricLabel:   lipgloss.NewStyle().Foreground(t.Border).Width(10),
		MetricValue:   lipgloss.NewStyle().Foreground(t.Value).Bold(true),
		Selected:      lipgloss.NewStyle().Bold(true).Foreground(t.Selected),
		KeyHint:       lipgloss.NewStyle().Foreground(t.Border).Italic(true),
	}
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	// Sparkline characters from low to high
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	// Sample the most recent values to fit width
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var result strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		result.WriteRune(chars[idx])
	}

	return result.String()
}

// Separator is a horizontal rule with a centered diamond.
func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return left + " ◆ " + right
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
