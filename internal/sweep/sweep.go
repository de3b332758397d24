// Package sweep runs batches of headless simulations over a grid of
// configuration values or random perturbations of the initial velocities.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-kit/kit/log"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/sim"
)

var ErrUnknownParam = errors.New("unknown parameter")

// Param is one axis of a grid. Name is "dt", "duration", or
// "mass.<body>", "velocity.<body>", "distance.<body>".
type Param struct {
	Name   string
	Values []float64
}

// ParseParam reads "name=min:max:n" or "name=v1,v2,...".
func ParseParam(s string) (Param, error) {
	name, rhs, ok := strings.Cut(s, "=")
	if !ok || name == "" || rhs == "" {
		return Param{}, fmt.Errorf("param %q: want name=min:max:n or name=v1,v2", s)
	}
	p := Param{Name: name}

	if parts := strings.Split(rhs, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err := errors.Join(err1, err2, err3); err != nil {
			return Param{}, fmt.Errorf("param %q: %w", s, err)
		}
		p.Values = Linspace(lo, hi, n)
		return p, nil
	}

	for _, f := range strings.Split(rhs, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Param{}, fmt.Errorf("param %q: %w", s, err)
		}
		p.Values = append(p.Values, v)
	}
	return p, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	step := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Apply sets the named parameter on cfg.
func Apply(cfg *config.Config, name string, v float64) error {
	switch name {
	case "dt":
		cfg.Dt = v
		return nil
	case "duration":
		cfg.Duration = v
		return nil
	}

	field, body, ok := strings.Cut(name, ".")
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	for i := range cfg.Bodies {
		b := &cfg.Bodies[i]
		if !strings.EqualFold(b.Name, body) {
			continue
		}
		switch field {
		case "mass":
			b.MassKg = v
		case "velocity":
			b.VelocityMPS = v
		case "distance":
			b.DistanceAU = v
		default:
			return fmt.Errorf("%w: %s", ErrUnknownParam, name)
		}
		return nil
	}
	return fmt.Errorf("%w: no body %q", ErrUnknownParam, body)
}

// Point is the outcome of one run of a grid.
type Point struct {
	Params      map[string]float64
	EnergyDrift float64
	Stability   float64
	Steps       int
	Err         error
}

// Grid runs base once for every combination of params.
type Grid struct {
	Base   *config.Config
	Params []Param
	Logger log.Logger
}

func (g *Grid) Size() int {
	n := 1
	for _, p := range g.Params {
		n *= len(p.Values)
	}
	return n
}

// Run walks the grid depth-first. A run whose config is invalid or that
// diverges is kept with Err set; only cancellation stops the walk.
func (g *Grid) Run(ctx context.Context) ([]Point, error) {
	logger := g.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = log.With(logger, "subsys", "sweep")

	points := make([]Point, 0, g.Size())
	err := g.walk(ctx, 0, make(map[string]float64), func(params map[string]float64) error {
		pt := runPoint(ctx, g.Base, params)
		if errors.Is(pt.Err, context.Canceled) || errors.Is(pt.Err, context.DeadlineExceeded) {
			return pt.Err
		}
		points = append(points, pt)
		logger.Log("level", "debug", "message", "point done", "n", len(points), "of", g.Size(), "drift", pt.EnergyDrift)
		return nil
	})
	return points, err
}

func (g *Grid) walk(ctx context.Context, depth int, current map[string]float64, visit func(map[string]float64) error) error {
	if depth == len(g.Params) {
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		return visit(params)
	}

	p := g.Params[depth]
	for _, v := range p.Values {
		if err := ctx.Err(); err != nil {
			return err
		}
		current[p.Name] = v
		if err := g.walk(ctx, depth+1, current, visit); err != nil {
			return err
		}
	}
	delete(current, p.Name)
	return nil
}

func runPoint(ctx context.Context, base *config.Config, params map[string]float64) Point {
	pt := Point{Params: params}
	cfg := base.Clone()
	for name, v := range params {
		if err := Apply(cfg, name, v); err != nil {
			pt.Err = err
			return pt
		}
	}
	res, err := runConfig(ctx, cfg)
	if err != nil {
		pt.Err = err
		return pt
	}
	pt.EnergyDrift = res.EnergyDrift
	pt.Stability = res.Metrics["stability"]
	pt.Steps = res.StepsTaken
	if len(res.Errors) > 0 {
		pt.Err = res.Errors[0]
	}
	return pt
}

func runConfig(ctx context.Context, cfg *config.Config) (*sim.Result, error) {
	sys, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	runner := sim.NewRunner(sys)
	runner.AddMetric(metrics.NewStability(metrics.DefaultEscapeAU))

	simCfg := cfg.SimConfig()
	// Positions are not needed; sample once at the end.
	simCfg.SampleEvery = math.MaxInt32
	return runner.Run(ctx, simCfg)
}

// Best returns the successful point with the lowest energy drift.
func Best(points []Point) (Point, bool) {
	var (
		best  Point
		found bool
	)
	for _, pt := range points {
		if pt.Err != nil {
			continue
		}
		if !found || pt.EnergyDrift < best.EnergyDrift {
			best, found = pt, true
		}
	}
	return best, found
}
