package metrics

import (
	"github.com/san-kum/orbitsim/internal/orbit"
)

// DefaultEscapeAU is the threshold past which a body counts as escaped.
const DefaultEscapeAU = 100.0

// Stability is the fraction of observed steps in which every body stayed
// within escapeAU of the sun. A system that loses a body scores below 1.
type Stability struct {
	escapeAU float64
	escaped  int
	observed int
}

func NewStability(escapeAU float64) *Stability {
	if !(escapeAU > 0) {
		escapeAU = DefaultEscapeAU
	}
	return &Stability{escapeAU: escapeAU}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(sys *orbit.System, t float64) {
	s.observed++
	sun := sys.Sun()
	if sun == nil {
		return
	}
	limit := s.escapeAU * orbit.AU
	for _, b := range sys.Bodies() {
		if b != sun && b.DistanceTo(sun) > limit {
			s.escaped++
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.observed == 0 {
		return 1
	}
	return 1 - float64(s.escaped)/float64(s.observed)
}

func (s *Stability) Reset() { s.escaped, s.observed = 0, 0 }
