package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/orbit"
)

// DistanceRange tracks perihelion and aphelion of one body. Its value is
// the eccentricity estimate (max-min)/(max+min).
type DistanceRange struct {
	body     string
	min, max float64
	samples  int
}

func NewDistanceRange(body string) *DistanceRange {
	d := &DistanceRange{body: body}
	d.Reset()
	return d
}

func (d *DistanceRange) Name() string { return "eccentricity_" + d.body }
func (d *DistanceRange) Body() string { return d.body }

func (d *DistanceRange) Observe(sys *orbit.System, t float64) {
	b, ok := sys.Body(d.body)
	if !ok {
		return
	}
	r := sys.DistanceToSun(b) / orbit.AU
	d.min = math.Min(d.min, r)
	d.max = math.Max(d.max, r)
	d.samples++
}

// Perihelion returns the closest observed distance to the sun in AU.
func (d *DistanceRange) Perihelion() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.min
}

// Aphelion returns the farthest observed distance to the sun in AU.
func (d *DistanceRange) Aphelion() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.max
}

func (d *DistanceRange) Value() float64 {
	if d.samples == 0 || d.max+d.min == 0 {
		return 0
	}
	return (d.max - d.min) / (d.max + d.min)
}

func (d *DistanceRange) Reset() {
	d.min = math.Inf(1)
	d.max = math.Inf(-1)
	d.samples = 0
}
