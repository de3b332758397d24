package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/orbitsim/internal/sim"
)

var keyMap = []struct {
	rl  int32
	key sim.Key
}{
	{rl.KeySpace, sim.KeySpace},
	{rl.KeyEscape, sim.KeyEscape},
	{rl.KeyR, sim.KeyR},
	{rl.KeyC, sim.KeyC},
	{rl.KeyEqual, sim.KeyPlus},
	{rl.KeyKpAdd, sim.KeyPlus},
	{rl.KeyMinus, sim.KeyMinus},
	{rl.KeyKpSubtract, sim.KeyMinus},
	{rl.KeyPeriod, sim.KeyPeriod},
}

var buttonMap = []struct {
	rl     rl.MouseButton
	button sim.MouseButton
}{
	{rl.MouseButtonLeft, sim.ButtonLeft},
	{rl.MouseButtonRight, sim.ButtonRight},
	{rl.MouseButtonMiddle, sim.ButtonMiddle},
}

// PollEvents translates this frame's raylib input state into loop events.
func (a *App) PollEvents() []sim.Event {
	events := make([]sim.Event, 0, 4)

	if rl.WindowShouldClose() {
		return append(events, sim.Close{})
	}

	pos := rl.GetMousePosition()
	x, y := float64(pos.X), float64(pos.Y)

	for _, b := range buttonMap {
		if rl.IsMouseButtonPressed(b.rl) {
			events = append(events, sim.MouseDown{Button: b.button, X: x, Y: y})
		}
		if rl.IsMouseButtonReleased(b.rl) {
			events = append(events, sim.MouseUp{Button: b.button, X: x, Y: y})
		}
	}

	if pos != a.lastMouse {
		events = append(events, sim.MouseMove{
			X: x, Y: y,
			DX: x - float64(a.lastMouse.X),
			DY: y - float64(a.lastMouse.Y),
		})
		a.lastMouse = pos
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		events = append(events, sim.Wheel{X: x, Y: y, Delta: float64(wheel)})
	}

	for _, k := range keyMap {
		if rl.IsKeyPressed(k.rl) {
			events = append(events, sim.KeyDown{Key: k.key})
		}
	}

	return events
}
