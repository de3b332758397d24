package export

import (
	"image/color"
	"math"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/sim"
)

// Track is the recorded path of one body.
type Track struct {
	Name   string
	Color  color.RGBA
	Points []orbit.Point
}

// FitCamera returns a camera centered on the origin whose scale keeps every
// track point inside the surface with a margin.
func FitCamera(tracks []Track, width, height int) *camera.Camera {
	extent := 0.0
	for _, tr := range tracks {
		for _, p := range tr.Points {
			extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Y)))
		}
	}
	cam := camera.New(width, height, camera.DefaultBaseScale)
	if extent > 0 {
		cam.BaseScale = 0.45 * math.Min(float64(width), float64(height)) / extent
	}
	return cam
}

// TracksToSVG draws every track as a path with its body at the final
// position, labelled with its name.
func TracksToSVG(tracks []Track, width, height int) string {
	cam := FitCamera(tracks, width, height)
	svg := NewSVG(width, height)
	svg.Clear(sim.Background)

	pts := make([]sim.Point, 0)
	for _, tr := range tracks {
		if len(tr.Points) == 0 {
			continue
		}
		pts = pts[:0]
		for _, p := range tr.Points {
			x, y := cam.WorldToScreen(p.X, p.Y)
			pts = append(pts, sim.Point{X: x, Y: y})
		}
		svg.Polyline(pts, tr.Color)

		last := pts[len(pts)-1]
		svg.Circle(last.X, last.Y, 4, tr.Color)
		svg.Text(tr.Name, last.X+6, last.Y-6, 12, sim.FontColor)
	}
	return svg.String()
}

// ResultTracks pairs the sampled positions of result with colors looked up
// by body name. Bodies without a color are drawn white.
func ResultTracks(result *sim.Result, colors map[string]color.RGBA) []Track {
	tracks := make([]Track, 0, len(result.Names))
	for _, name := range result.Names {
		pts, err := result.Track(name)
		if err != nil {
			continue
		}
		c, ok := colors[name]
		if !ok {
			c = sim.FontColor
		}
		tracks = append(tracks, Track{Name: name, Color: c, Points: pts})
	}
	return tracks
}
