package sim

// Event is an input reported by a Surface once per frame.
type Event interface {
	event()
}

type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	KeyEscape
	KeyR      // reset bodies
	KeyC      // reset camera
	KeyPlus   // zoom in at screen center
	KeyMinus  // zoom out at screen center
	KeyPeriod // single step while paused
)

type MouseDown struct {
	Button MouseButton
	X, Y   float64
}

type MouseUp struct {
	Button MouseButton
	X, Y   float64
}

// MouseMove carries the cursor position and its delta since the last frame.
type MouseMove struct {
	X, Y   float64
	DX, DY float64
}

// Wheel carries the cursor position and the scroll amount; positive zooms in.
type Wheel struct {
	X, Y  float64
	Delta float64
}

type KeyDown struct {
	Key Key
}

type Close struct{}

func (MouseDown) event() {}
func (MouseUp) event()   {}
func (MouseMove) event() {}
func (Wheel) event()     {}
func (KeyDown) event()   {}
func (Close) event()     {}
