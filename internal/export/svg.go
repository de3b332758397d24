package export

import (
	"fmt"
	"html"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orbitsim/internal/sim"
)

// SVG is a sim.Surface that records drawing calls as an SVG document.
type SVG struct {
	width, height int
	body          strings.Builder
}

func NewSVG(width, height int) *SVG {
	return &SVG{width: width, height: height}
}

func (s *SVG) Size() (int, int) { return s.width, s.height }

// Clear discards everything drawn so far.
func (s *SVG) Clear(c color.RGBA) {
	s.body.Reset()
	fmt.Fprintf(&s.body, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", Hex(c))
}

func (s *SVG) Circle(x, y, r float64, c color.RGBA) {
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", x, y, r, Hex(c))
}

func (s *SVG) Polyline(pts []sim.Point, c color.RGBA) {
	if len(pts) < 2 {
		return
	}
	s.body.WriteString(`<path fill="none" stroke-width="1.5" stroke="`)
	s.body.WriteString(Hex(c))
	s.body.WriteString(`" d="M`)
	for i, p := range pts {
		if i == 0 {
			fmt.Fprintf(&s.body, "%.1f,%.1f", p.X, p.Y)
		} else {
			fmt.Fprintf(&s.body, " L%.1f,%.1f", p.X, p.Y)
		}
	}
	s.body.WriteString("\"/>\n")
}

// Text places s with its top-left corner at (x, y).
func (s *SVG) Text(str string, x, y float64, size int, c color.RGBA) {
	fmt.Fprintf(&s.body, `<text x="%.1f" y="%.1f" font-family="monospace" font-size="%d" fill="%s">%s</text>`+"\n",
		x, y+float64(size), size, Hex(c), html.EscapeString(str))
}

// MeasureText approximates a monospace font at 0.6 em per glyph.
func (s *SVG) MeasureText(str string, size int) (float64, float64) {
	return 0.6 * float64(size) * float64(len([]rune(str))), float64(size)
}

func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.width, s.height, s.width, s.height)
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	cf, _ := colorful.MakeColor(color.RGBA{c.R, c.G, c.B, 255})
	return cf.Hex()
}
