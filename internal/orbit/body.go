package orbit

import (
	"fmt"
	"image/color"
	"math"
)

// Point is a position in AU.
type Point struct {
	X, Y float64
}

type Body struct {
	Name   string
	X, Y   float64 // AU
	VX, VY float64 // m/s
	Mass   float64 // kg
	Color  color.RGBA
	Radius float64 // px, drawing only
	IsSun  bool

	trail    []Point
	trailCap int
}

// NewBody returns a body at (x, y) AU with the given mass. trailCap bounds
// the orbit trail; 0 keeps every point.
func NewBody(name string, x, y, mass float64, trailCap int) (*Body, error) {
	if !(mass > 0) {
		return nil, fmt.Errorf("%s: %w", name, ErrNonPositiveMass)
	}
	if !finite(x, y, mass) {
		return nil, fmt.Errorf("%s: %w", name, ErrNonFinite)
	}
	if trailCap < 0 {
		trailCap = 0
	}
	return &Body{Name: name, X: x, Y: y, Mass: mass, trailCap: trailCap}, nil
}

func (b *Body) SetVelocity(vx, vy float64) *Body {
	b.VX, b.VY = vx, vy
	return b
}

// Acceleration sums the Newtonian pull of others on b and returns it in
// m/s^2. b itself and any body closer than MinSeparation are skipped.
func (b *Body) Acceleration(others []*Body) (ax, ay float64) {
	var fx, fy float64
	for _, o := range others {
		if o == b {
			continue
		}
		dx := (o.X - b.X) * AU
		dy := (o.Y - b.Y) * AU
		r := math.Hypot(dx, dy)
		if r < MinSeparation {
			continue
		}
		f := G * b.Mass * o.Mass / (r * r)
		fx += f * dx / r
		fy += f * dy / r
	}
	return fx / b.Mass, fy / b.Mass
}

// Integrate advances b by one explicit Euler step of dt seconds and records
// the new position on the trail.
func (b *Body) Integrate(ax, ay, dt float64) {
	b.VX += ax * dt
	b.VY += ay * dt
	b.X += b.VX * dt / AU
	b.Y += b.VY * dt / AU
	b.record()
}

func (b *Body) record() {
	b.trail = append(b.trail, Point{b.X, b.Y})
	if b.trailCap > 0 && len(b.trail) > b.trailCap {
		n := copy(b.trail, b.trail[len(b.trail)-b.trailCap:])
		b.trail = b.trail[:n]
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// DistanceTo returns the distance between b and o in meters.
func (b *Body) DistanceTo(o *Body) float64 {
	return math.Hypot(o.X-b.X, o.Y-b.Y) * AU
}

// Trail returns the recorded positions, oldest first. The slice is owned by
// b and is only valid until the next Integrate.
func (b *Body) Trail() []Point { return b.trail }

func (b *Body) TrailCap() int { return b.trailCap }

func (b *Body) ClearTrail() { b.trail = b.trail[:0] }

// Speed returns |v| in m/s.
func (b *Body) Speed() float64 { return math.Hypot(b.VX, b.VY) }

// Clone returns a deep copy of b, trail included.
func (b *Body) Clone() *Body {
	c := *b
	c.trail = append([]Point(nil), b.trail...)
	return &c
}
