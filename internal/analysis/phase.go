package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/orbitsim/internal/orbit"
)

var trackRunes = []rune{'•', '◦', '∙', '·', '+', 'x', 'o', '*'}

// TracksToASCII plots tracks on a width x height character grid with equal
// scale on both axes. The sun at the origin is drawn as '☉'.
func TracksToASCII(tracks [][]orbit.Point, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}

	// Find bounds
	extent := 0.0
	for _, tr := range tracks {
		for _, p := range tr {
			extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Y)))
		}
	}
	if extent == 0 {
		return ""
	}
	extent *= 1.1

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	plot := func(x, y float64) (row, col int, ok bool) {
		col = int((x + extent) / (2 * extent) * float64(width-1))
		row = height - 1 - int((y+extent)/(2*extent)*float64(height-1))
		return row, col, row >= 0 && row < height && col >= 0 && col < width
	}

	// Axes first so tracks draw over them
	if row, col, ok := plot(0, 0); ok {
		for r := 0; r < height; r++ {
			canvas[r][col] = '│'
		}
		for c := 0; c < width; c++ {
			canvas[row][c] = '─'
		}
		canvas[row][col] = '┼'
	}

	for i, tr := range tracks {
		mark := trackRunes[i%len(trackRunes)]
		for _, p := range tr {
			if row, col, ok := plot(p.X, p.Y); ok {
				canvas[row][col] = mark
			}
		}
	}

	if row, col, ok := plot(0, 0); ok {
		canvas[row][col] = '☉'
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Crossings returns the interpolated times at which track crosses the
// x axis going from negative to non-negative y.
func Crossings(track []orbit.Point, times []float64) []float64 {
	out := make([]float64, 0)
	n := len(track)
	if len(times) < n {
		n = len(times)
	}
	for i := 1; i < n; i++ {
		prev, curr := track[i-1].Y, track[i].Y
		if prev < 0 && curr >= 0 {
			frac := -prev / (curr - prev)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			out = append(out, times[i-1]+frac*(times[i]-times[i-1]))
		}
	}
	return out
}

// CrossingPeriod is the mean interval between successive crossings. It
// needs at least two crossings.
func CrossingPeriod(track []orbit.Point, times []float64) (float64, error) {
	c := Crossings(track, times)
	if len(c) < 2 {
		return 0, ErrFlatSignal
	}
	return (c[len(c)-1] - c[0]) / float64(len(c)-1), nil
}
