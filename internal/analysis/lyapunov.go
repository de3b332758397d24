package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/orbit"
)

// LyapunovExponent estimates the largest Lyapunov exponent (1/s) of sys by
// following a copy with the named body displaced by perturbation AU along
// x. After every step the copy is pulled back to distance perturbation
// from the reference. A positive value means nearby orbits separate
// exponentially; a two-body orbit gives a value near zero.
//
// sys itself is not modified.
func LyapunovExponent(sys *orbit.System, body string, perturbation, dt, duration float64) (float64, error) {
	if !(perturbation > 0) || !(dt > 0) || !(duration > 0) {
		return 0, fmt.Errorf("perturbation, dt and duration must be positive")
	}

	ref := sys.Clone()
	pert := sys.Clone()
	b, ok := pert.Body(body)
	if !ok {
		return 0, fmt.Errorf("unknown body: %s", body)
	}
	if b.IsSun {
		return 0, fmt.Errorf("%s is pinned and cannot be perturbed", body)
	}
	b.X += perturbation

	d0 := perturbation
	sumLog := 0.0
	t := 0.0

	for t < duration {
		ref.Step(dt)
		pert.Step(dt)
		t += dt

		// Calculate separation
		sep := separation(ref, pert)
		if !(sep > 0) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / d0)
		renormalize(ref, pert, d0/sep)
	}

	if t == 0 {
		return 0, nil
	}
	return sumLog / t, nil
}

func separation(a, b *orbit.System) float64 {
	sep := 0.0
	bb := b.Bodies()
	for i, x := range a.Bodies() {
		dx, dy := bb[i].X-x.X, bb[i].Y-x.Y
		sep += dx*dx + dy*dy
	}
	return math.Sqrt(sep)
}

func renormalize(ref, pert *orbit.System, scale float64) {
	pb := pert.Bodies()
	for i, r := range ref.Bodies() {
		p := pb[i]
		p.X = r.X + (p.X-r.X)*scale
		p.Y = r.Y + (p.Y-r.Y)*scale
		p.VX = r.VX + (p.VX-r.VX)*scale
		p.VY = r.VY + (p.VY-r.VY)*scale
	}
}
