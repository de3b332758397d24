package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/orbit"
)

type countMetric struct {
	count int
}

func (c *countMetric) Name() string                   { return "count" }
func (c *countMetric) Observe(*orbit.System, float64) { c.count++ }
func (c *countMetric) Value() float64                 { return float64(c.count) }
func (c *countMetric) Reset()                         { c.count = 0 }

type cancelAfter struct {
	n      int
	cancel context.CancelFunc
}

func (c *cancelAfter) OnStep(*orbit.System, float64) {
	c.n--
	if c.n == 0 {
		c.cancel()
	}
}

func TestRunnerRun(t *testing.T) {
	r := NewRunner(newTestSystem(t))
	m := &countMetric{}
	r.AddMetric(m)

	cfg := Config{Dt: orbit.Day, Duration: 10 * orbit.Day, SampleEvery: 1, ValidateState: true}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 || len(result.Times) != 11 {
		t.Errorf("expected 11 samples, got %d states, %d times", len(result.States), len(result.Times))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	// Ten pre-step observations plus the final state.
	if result.Metrics["count"] != 11 {
		t.Errorf("expected 11 observations, got %v", result.Metrics["count"])
	}
	if math.Abs(result.Times[10]-10*orbit.Day) > 1e-6 {
		t.Errorf("final time = %f", result.Times[10])
	}
	if len(result.States[0]) != 6 {
		t.Errorf("expected 6 coordinates per sample, got %d", len(result.States[0]))
	}
	if result.EnergyDrift > 1e-2 {
		t.Errorf("energy drift %e too large", result.EnergyDrift)
	}
}

func TestRunnerSampleEvery(t *testing.T) {
	r := NewRunner(newTestSystem(t))
	cfg := Config{Dt: orbit.Day, Duration: 10 * orbit.Day, SampleEvery: 3}

	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.States) != 5 {
		t.Errorf("expected 5 samples, got %d", len(result.States))
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := NewRunner(newTestSystem(t))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1}},
		{"negative dt", Config{Dt: -1, Duration: 1}},
		{"zero duration", Config{Dt: 1, Duration: 0}},
		{"NaN duration", Config{Dt: 1, Duration: math.NaN()}},
		{"infinite dt", Config{Dt: math.Inf(1), Duration: 1}},
		{"infinite duration", Config{Dt: 1, Duration: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Run(context.Background(), tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRunnerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRunner(newTestSystem(t))
	r.AddObserver(&cancelAfter{n: 4, cancel: cancel})

	result, err := r.Run(ctx, Config{Dt: orbit.Day, Duration: 100 * orbit.Day})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 4 {
		t.Errorf("expected 4 steps before cancel, got %d", result.StepsTaken)
	}
}

func TestRunnerStopsOnInvalidState(t *testing.T) {
	sys := newTestSystem(t)
	sys.Bodies()[1].VX = math.NaN()

	result, err := NewRunner(sys).Run(context.Background(), Config{Dt: orbit.Day, Duration: 5 * orbit.Day, ValidateState: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one error, got %v", result.Errors)
	}
	var se SimError
	if !errors.As(result.Errors[0], &se) || se.Step != 0 {
		t.Errorf("expected SimError at step 0, got %v", result.Errors[0])
	}
	if !errors.Is(result.Errors[0], ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", result.Errors[0])
	}
	if result.StepsTaken != 0 {
		t.Errorf("invalid step should not be counted, got %d", result.StepsTaken)
	}
}

func TestRunnerInfiniteMassDoesNotCommit(t *testing.T) {
	sys := newTestSystem(t)
	sys.Sun().Mass = math.Inf(1)
	earth, _ := sys.Body("earth")
	x, y := earth.X, earth.Y

	result, err := NewRunner(sys).Run(context.Background(), Config{Dt: orbit.Day, Duration: 5 * orbit.Day, ValidateState: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) != 1 || !errors.Is(result.Errors[0], ErrInvalidState) {
		t.Fatalf("expected one ErrInvalidState, got %v", result.Errors)
	}
	if result.StepsTaken != 0 || sys.Steps() != 0 {
		t.Errorf("expected no committed steps, got %d (system %d)", result.StepsTaken, sys.Steps())
	}
	if earth.X != x || earth.Y != y || math.IsNaN(earth.VX) || math.IsNaN(earth.VY) {
		t.Errorf("earth state changed: (%v, %v) v=(%v, %v)", earth.X, earth.Y, earth.VX, earth.VY)
	}
	if math.IsNaN(result.EnergyDrift) || math.IsInf(result.EnergyDrift, 0) {
		t.Errorf("drift should be finite, got %v", result.EnergyDrift)
	}
	if len(result.States) != 1 {
		t.Errorf("expected only the initial sample, got %d", len(result.States))
	}
}

type lastTime struct{ t float64 }

func (l *lastTime) OnStep(_ *orbit.System, t float64) { l.t = t }

func TestRunnerObservesFinalState(t *testing.T) {
	r := NewRunner(newTestSystem(t))
	last := &lastTime{}
	r.AddObserver(last)

	if _, err := r.Run(context.Background(), Config{Dt: orbit.Day, Duration: 3 * orbit.Day}); err != nil {
		t.Fatal(err)
	}
	if math.Abs(last.t-3*orbit.Day) > 1e-6 {
		t.Errorf("last observed t = %f, want %f", last.t, 3*orbit.Day)
	}
}

func TestResultTrack(t *testing.T) {
	r := NewRunner(newTestSystem(t))
	result, err := r.Run(context.Background(), Config{Dt: orbit.Day, Duration: 3 * orbit.Day})
	if err != nil {
		t.Fatal(err)
	}

	track, err := result.Track("Earth")
	if err != nil {
		t.Fatal(err)
	}
	if len(track) != 4 || track[0].X != -1 {
		t.Errorf("unexpected track %v", track)
	}
	if _, err := result.Track("Pluto"); err == nil {
		t.Error("expected error for unknown body")
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "test error"}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}

	wrapped := SimError{Time: 2, Step: 3, Err: ErrInvalidState}
	if !errors.Is(wrapped, ErrInvalidState) {
		t.Error("expected SimError to unwrap to ErrInvalidState")
	}
	if want := "step 3 (t=2.0000): " + ErrInvalidState.Error(); wrapped.Error() != want {
		t.Errorf("got %q, want %q", wrapped.Error(), want)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Dt <= 0 || cfg.Duration <= 0 || cfg.SampleEvery < 1 {
		t.Errorf("invalid default config %+v", cfg)
	}
}
