package orbit

import (
	"fmt"
	"strings"
)

// Gravity selects which bodies attract a planet.
type Gravity int

const (
	Pairwise Gravity = iota
	SunOnly
)

func (g Gravity) String() string {
	switch g {
	case Pairwise:
		return "pairwise"
	case SunOnly:
		return "sun"
	}
	return fmt.Sprintf("gravity(%d)", int(g))
}

// ParseGravity accepts "pairwise" (or "nbody") and "sun" (or "sun-only").
func ParseGravity(s string) (Gravity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pairwise", "nbody":
		return Pairwise, nil
	case "sun", "sun-only", "sunonly":
		return SunOnly, nil
	}
	return Pairwise, fmt.Errorf("%q: %w", s, ErrUnknownGravity)
}

type accel struct{ x, y float64 }

// System is the ordered collection of bodies advanced together.
type System struct {
	Gravity Gravity

	bodies  []*Body
	initial []*Body
	suns    []*Body
	acc     []accel
	t       float64
	steps   int
}

func NewSystem(bodies []*Body, gravity Gravity) (*System, error) {
	s := &System{Gravity: gravity, bodies: bodies}
	for _, b := range bodies {
		if b.IsSun {
			s.suns = append(s.suns, b)
		}
		s.initial = append(s.initial, b.Clone())
	}
	if len(s.suns) == 0 {
		return nil, ErrNoSun
	}
	s.acc = make([]accel, len(bodies))
	return s, nil
}

func (s *System) Bodies() []*Body { return s.bodies }

// Sun returns the first body flagged IsSun.
func (s *System) Sun() *Body { return s.suns[0] }

func (s *System) Time() float64 { return s.t }
func (s *System) Steps() int    { return s.steps }

// Body looks a body up by name.
func (s *System) Body(name string) (*Body, bool) {
	for _, b := range s.bodies {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return nil, false
}

// DistanceToSun returns the distance of b from the sun in meters.
func (s *System) DistanceToSun(b *Body) float64 {
	return b.DistanceTo(s.Sun())
}

func (s *System) attractors() []*Body {
	if s.Gravity == SunOnly {
		return s.suns
	}
	return s.bodies
}

// Step advances every body by dt seconds.
//
// Simultaneous update: all accelerations are computed from the positions at
// the start of the step before any body moves. Sun bodies are pinned.
func (s *System) Step(dt float64) {
	s.accelerate()
	s.commit(dt)
}

// TryStep is Step that leaves the system untouched and returns false when
// the step would produce a NaN or infinite position or velocity.
func (s *System) TryStep(dt float64) bool {
	s.accelerate()
	for i, b := range s.bodies {
		if b.IsSun {
			if !finite(b.X, b.Y, b.VX, b.VY) {
				return false
			}
			continue
		}
		vx := b.VX + s.acc[i].x*dt
		vy := b.VY + s.acc[i].y*dt
		if !finite(vx, vy, b.X+vx*dt/AU, b.Y+vy*dt/AU) {
			return false
		}
	}
	s.commit(dt)
	return true
}

func (s *System) accelerate() {
	from := s.attractors()
	for i, b := range s.bodies {
		if b.IsSun {
			s.acc[i] = accel{}
			continue
		}
		s.acc[i].x, s.acc[i].y = b.Acceleration(from)
	}
}

func (s *System) commit(dt float64) {
	for i, b := range s.bodies {
		if b.IsSun {
			continue
		}
		b.Integrate(s.acc[i].x, s.acc[i].y, dt)
	}
	s.t += dt
	s.steps++
}

// Reset restores every body to its state at construction and clears trails.
func (s *System) Reset() {
	for i, b := range s.bodies {
		init := s.initial[i]
		b.X, b.Y = init.X, init.Y
		b.VX, b.VY = init.VX, init.VY
		b.ClearTrail()
	}
	s.t = 0
	s.steps = 0
}

// Positions appends [x0, y0, x1, y1, ...] in AU to dst.
func (s *System) Positions(dst []float64) []float64 {
	for _, b := range s.bodies {
		dst = append(dst, b.X, b.Y)
	}
	return dst
}

// Valid reports whether every position and velocity is finite.
func (s *System) Valid() bool {
	for _, b := range s.bodies {
		if !finite(b.X, b.Y, b.VX, b.VY) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the system in its current state.
// The copy resets to the same initial configuration as s.
func (s *System) Clone() *System {
	c := &System{Gravity: s.Gravity, t: s.t, steps: s.steps}
	for i, b := range s.bodies {
		cb := b.Clone()
		c.bodies = append(c.bodies, cb)
		c.initial = append(c.initial, s.initial[i].Clone())
		if cb.IsSun {
			c.suns = append(c.suns, cb)
		}
	}
	c.acc = make([]accel, len(c.bodies))
	return c
}
