package orbit

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

const (
	sunMass   = 1.989e30
	earthMass = 5.972e24
)

func mustBody(t *testing.T, name string, x, y, mass float64) *Body {
	t.Helper()
	b, err := NewBody(name, x, y, mass, DefaultTrailLength)
	if err != nil {
		t.Fatalf("new body %s: %v", name, err)
	}
	return b
}

func TestNewBodyRejectsNonPositiveMass(t *testing.T) {
	for _, m := range []float64{0, -1, math.NaN()} {
		_, err := NewBody("x", 0, 0, m, 0)
		if !errors.Is(err, ErrNonPositiveMass) {
			t.Errorf("mass %v: expected ErrNonPositiveMass, got %v", m, err)
		}
	}
}

func TestNewBodyRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name       string
		x, y, mass float64
	}{
		{"infinite mass", 0, 0, math.Inf(1)},
		{"NaN x", math.NaN(), 0, 1},
		{"infinite y", 0, math.Inf(-1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBody("x", tt.x, tt.y, tt.mass, 0); !errors.Is(err, ErrNonFinite) {
				t.Errorf("expected ErrNonFinite, got %v", err)
			}
		})
	}
}

func TestDayIsFloat(t *testing.T) {
	var v interface{} = Day / 4
	if _, ok := v.(float64); !ok {
		t.Errorf("Day / 4 has type %T, want float64", v)
	}
}

func TestAccelerationInverseSquare(t *testing.T) {
	tests := []struct {
		name   string
		dist   float64 // AU
		mass   float64
		source float64
	}{
		{"earth at 1 AU", 1.0, earthMass, sunMass},
		{"earth at 2 AU", 2.0, earthMass, sunMass},
		{"mars at 1.524 AU", 1.524, 6.4171e23, sunMass},
		{"light body near jupiter", 0.01, 1e3, 1.898e27},
		{"heavy body at 30 AU", 30.069, 1.024e26, sunMass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := mustBody(t, "src", 0, 0, tt.source)
			b := mustBody(t, "b", tt.dist, 0, tt.mass)

			ax, ay := b.Acceleration([]*Body{src, b})

			r := tt.dist * AU
			wantForce := G * tt.mass * tt.source / (r * r)
			gotForce := math.Hypot(ax, ay) * tt.mass
			if math.Abs(gotForce-wantForce)/wantForce > 1e-12 {
				t.Errorf("force = %e, want %e", gotForce, wantForce)
			}
			if ax >= 0 {
				t.Errorf("expected pull toward the source, got ax=%e", ax)
			}
			if ay != 0 {
				t.Errorf("expected no y component, got %e", ay)
			}
		})
	}
}

func TestAccelerationScaling(t *testing.T) {
	g := NewWithT(t)

	src := mustBody(t, "src", 0, 0, sunMass)
	near := mustBody(t, "near", 0.5, 0.5, earthMass)
	far := mustBody(t, "far", 1.0, 1.0, earthMass)

	anx, any := near.Acceleration([]*Body{src})
	afx, afy := far.Acceleration([]*Body{src})

	// Doubling r quarters the pull.
	g.Expect(math.Hypot(anx, any) / math.Hypot(afx, afy)).To(BeNumerically("~", 4.0, 1e-12))

	heavy := mustBody(t, "heavy", 0, 0, 2*sunMass)
	ahx, ahy := far.Acceleration([]*Body{heavy})
	g.Expect(math.Hypot(ahx, ahy) / math.Hypot(afx, afy)).To(BeNumerically("~", 2.0, 1e-12))
}

func TestAccelerationSkipsCoincidentBodies(t *testing.T) {
	a := mustBody(t, "a", 1, 1, earthMass)
	b := mustBody(t, "b", 1, 1, earthMass)

	ax, ay := a.Acceleration([]*Body{a, b})
	if ax != 0 || ay != 0 {
		t.Errorf("expected zero acceleration for coincident bodies, got (%e, %e)", ax, ay)
	}
	if math.IsNaN(ax) || math.IsNaN(ay) {
		t.Error("acceleration is NaN")
	}
}

func TestIntegrateOneDayEarthStep(t *testing.T) {
	g := NewWithT(t)

	sun := mustBody(t, "Sun", 0, 0, sunMass)
	earth := mustBody(t, "Earth", 1, 0, earthMass).SetVelocity(0, 29.78e3)
	dt := 86400.0

	ax, ay := earth.Acceleration([]*Body{sun, earth})
	earth.Integrate(ax, ay, dt)

	// Closed form for one explicit Euler step.
	wantAx := -G * sunMass / (AU * AU)
	wantVx := wantAx * dt
	wantVy := 29.78e3
	wantX := 1 + wantVx*dt/AU
	wantY := wantVy * dt / AU

	g.Expect(earth.VX).To(BeNumerically("~", wantVx, math.Abs(wantVx)*1e-12))
	g.Expect(earth.VY).To(Equal(wantVy))
	g.Expect(earth.X-1).To(BeNumerically("~", wantX-1, math.Abs(wantX-1)*1e-9))
	g.Expect(earth.Y).To(BeNumerically("~", wantY, wantY*1e-12))

	// Moved toward the sun along x, along the velocity along y.
	g.Expect(earth.X).To(BeNumerically("<", 1.0))
	g.Expect(earth.Y).To(BeNumerically(">", 0.0))
	g.Expect(earth.Trail()).To(HaveLen(1))
}

func TestTrailEvictsOldestFirst(t *testing.T) {
	b, err := NewBody("b", 0, 0, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	b.SetVelocity(AU, 0)

	for i := 0; i < 5; i++ {
		b.Integrate(0, 0, 1)
	}

	trail := b.Trail()
	if len(trail) != 3 {
		t.Fatalf("expected 3 trail points, got %d", len(trail))
	}
	for i, want := range []float64{3, 4, 5} {
		if math.Abs(trail[i].X-want) > 1e-12 {
			t.Errorf("trail[%d].X = %f, want %f", i, trail[i].X, want)
		}
	}
}

func TestTrailUnbounded(t *testing.T) {
	b, err := NewBody("b", 0, 0, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2500; i++ {
		b.Integrate(0, 0, 1)
	}
	if len(b.Trail()) != 2500 {
		t.Errorf("expected 2500 trail points, got %d", len(b.Trail()))
	}
}

func TestDistanceTo(t *testing.T) {
	sun := mustBody(t, "Sun", 0, 0, sunMass)
	b := mustBody(t, "b", 3, 4, 1)

	if got := b.DistanceTo(sun); math.Abs(got-5*AU) > 1e-3 {
		t.Errorf("DistanceTo = %f, want %f", got, 5*AU)
	}
}

func TestClone(t *testing.T) {
	b := mustBody(t, "b", 1, 0, 1)
	b.Integrate(0, 0, 1)

	c := b.Clone()
	c.X = 42
	c.Integrate(0, 0, 1)

	if b.X == 42 {
		t.Error("clone shares position with original")
	}
	if len(b.Trail()) != 1 {
		t.Errorf("clone shares trail with original, len=%d", len(b.Trail()))
	}
}
