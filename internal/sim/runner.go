package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/orbit"
)

// Runner advances a System without rendering.
type Runner struct {
	sys       *orbit.System
	metrics   []Metric
	observers []Observer
}

func NewRunner(sys *orbit.System) *Runner {
	return &Runner{
		sys:       sys,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	every := cfg.SampleEvery
	if every < 1 {
		every = 1
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	bodies := r.sys.Bodies()
	result := &Result{
		Names:   make([]string, len(bodies)),
		States:  make([][]float64, 0, steps/every+1),
		Times:   make([]float64, 0, steps/every+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
	for i, b := range bodies {
		result.Names[i] = b.Name
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t0 := r.sys.Time()
	r.sample(result, t0)
	initialEnergy := r.sys.Energy()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := r.sys.Time() - t0
		r.observe(t)

		if cfg.ValidateState {
			if !r.sys.TryStep(cfg.Dt) {
				result.Errors = append(result.Errors, SimError{Time: t, Step: i, Err: ErrInvalidState})
				break
			}
		} else {
			r.sys.Step(cfg.Dt)
		}
		result.StepsTaken++

		if (i+1)%every == 0 || i == steps-1 {
			r.sample(result, r.sys.Time()-t0)
		}
	}

	// The state after the last step has not been observed yet.
	if len(result.Errors) == 0 {
		r.observe(r.sys.Time() - t0)
	}

	if final := r.sys.Energy(); initialEnergy != 0 && finite(initialEnergy, final) {
		result.EnergyDrift = math.Abs(final-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Runner) observe(t float64) {
	for _, m := range r.metrics {
		m.Observe(r.sys, t)
	}
	for _, obs := range r.observers {
		obs.OnStep(r.sys, t)
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

func (r *Runner) sample(result *Result, t float64) {
	result.States = append(result.States, r.sys.Positions(make([]float64, 0, 2*len(r.sys.Bodies()))))
	result.Times = append(result.Times, t)
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if !finite(cfg.Dt, cfg.Duration) {
		return fmt.Errorf("%w: dt and duration must be finite", ErrInvalidConfig)
	}
	return nil
}
