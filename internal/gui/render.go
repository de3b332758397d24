package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orbitsim/internal/sim"
)

func (a *App) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

func (a *App) Clear(c color.RGBA) {
	rl.ClearBackground(c)
}

func (a *App) Circle(x, y, r float64, c color.RGBA) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), c)
}

// Polyline fades the trail from the background color at its oldest point
// to c at its newest.
func (a *App) Polyline(pts []sim.Point, c color.RGBA) {
	if len(pts) < 2 {
		return
	}
	from, _ := colorful.MakeColor(sim.Background)
	to, _ := colorful.MakeColor(c)

	n := len(pts) - 1
	for i := 0; i < n; i++ {
		t := float64(i+1) / float64(n)
		seg := FadeColor(from, to, t)
		rl.DrawLineEx(
			rl.NewVector2(float32(pts[i].X), float32(pts[i].Y)),
			rl.NewVector2(float32(pts[i+1].X), float32(pts[i+1].Y)),
			2, seg,
		)
	}
}

// FadeColor blends in Lab space so the trail darkens evenly.
func FadeColor(from, to colorful.Color, t float64) color.RGBA {
	r, g, b := from.BlendLab(to, t).Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

func (a *App) Text(s string, x, y float64, size int, c color.RGBA) {
	rl.DrawTextEx(a.Font, s, rl.NewVector2(float32(x), float32(y)), float32(size), 1, c)
}

func (a *App) MeasureText(s string, size int) (float64, float64) {
	v := rl.MeasureTextEx(a.Font, s, float32(size), 1)
	return float64(v.X), float64(v.Y)
}
