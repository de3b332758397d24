package orbit

// Energy returns the total mechanical energy in joules under the system's
// gravity mode. Coincident pairs are left out, as in Step.
func (s *System) Energy() float64 {
	ke := 0.0
	for _, b := range s.bodies {
		v2 := b.VX*b.VX + b.VY*b.VY
		ke += 0.5 * b.Mass * v2
	}

	pe := 0.0
	for i, a := range s.bodies {
		for _, b := range s.bodies[i+1:] {
			if s.Gravity == SunOnly && !a.IsSun && !b.IsSun {
				continue
			}
			r := a.DistanceTo(b)
			if r < MinSeparation {
				continue
			}
			pe -= G * a.Mass * b.Mass / r
		}
	}
	return ke + pe
}

// Momentum returns the total linear momentum in kg m/s.
func (s *System) Momentum() (px, py float64) {
	for _, b := range s.bodies {
		px += b.Mass * b.VX
		py += b.Mass * b.VY
	}
	return
}

// AngularMomentum returns the z component of total angular momentum about
// the origin, in kg m^2/s.
func (s *System) AngularMomentum() float64 {
	L := 0.0
	for _, b := range s.bodies {
		L += b.Mass * (b.X*AU*b.VY - b.Y*AU*b.VX)
	}
	return L
}
