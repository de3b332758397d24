package sim

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/orbit"
)

// Metric accumulates a scalar over a headless run.
type Metric interface {
	Name() string
	Observe(sys *orbit.System, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(sys *orbit.System, t float64)
}

type Config struct {
	Dt            float64 // seconds per step
	Duration      float64 // seconds
	SampleEvery   int     // record positions every n steps
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            orbit.Day,
		Duration:      365.25 * orbit.Day,
		SampleEvery:   1,
		ValidateState: true,
	}
}

// Result holds sampled positions of a headless run. States[i] is
// [x0, y0, x1, y1, ...] in AU, in the order of Names.
type Result struct {
	Names       []string
	States      [][]float64
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

// Track returns the sampled (x, y) positions of the named body.
func (r *Result) Track(name string) ([]orbit.Point, error) {
	idx := -1
	for i, n := range r.Names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("unknown body: %s", name)
	}
	pts := make([]orbit.Point, 0, len(r.States))
	for _, s := range r.States {
		if 2*idx+1 < len(s) {
			pts = append(pts, orbit.Point{X: s[2*idx], Y: s[2*idx+1]})
		}
	}
	return pts, nil
}

// SimError records where a run stopped. Err, when set, is the cause and
// is matched by errors.Is.
type SimError struct {
	Time    float64
	Step    int
	Message string
	Err     error
}

func (e SimError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, msg)
}

func (e SimError) Unwrap() error { return e.Err }
