package gui

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-kit/kit/log"

	"github.com/san-kum/orbitsim/internal/sim"
)

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

type Options struct {
	Width, Height int
	FPS           int
	Title         string
}

// App drives a sim.Loop inside a raylib window. It is both the event
// source and the drawing surface of the loop.
type App struct {
	Loop   *sim.Loop
	Font   rl.Font
	Logger log.Logger

	lastMouse rl.Vector2
}

// initWindow opens a resizable window and disables the default exit key so
// Escape reaches the loop as a key event.
func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Run opens the window and blocks until the loop stops or the window is
// closed.
func Run(loop *sim.Loop, opts Options, logger log.Logger) {
	if opts.Title == "" {
		opts.Title = "Planet Simulation"
	}
	initWindow(opts)
	defer rl.CloseWindow()

	app := &App{
		Loop:      loop,
		Font:      loadFont(),
		Logger:    log.With(logger, "subsys", "gui"),
		lastMouse: rl.GetMousePosition(),
	}
	app.Logger.Log("level", "info", "message", "window opened", "width", opts.Width, "height", opts.Height, "fps", opts.FPS)
	app.RunLoop()
	app.Logger.Log("level", "info", "message", "window closed", "steps", loop.System.Steps())
}

func (a *App) RunLoop() {
	for a.Loop.Running() {
		rl.BeginDrawing()
		a.Loop.Frame(a, a)
		rl.EndDrawing()
	}
}
