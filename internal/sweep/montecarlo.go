package sweep

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-kit/kit/log"

	"github.com/san-kum/orbitsim/internal/config"
)

type MonteCarloConfig struct {
	Base *config.Config
	// Perturbation is the largest relative change applied to each
	// planet's initial velocity.
	Perturbation float64
	Trials       int
	Seed         int64
	Logger       log.Logger
}

type Trial struct {
	ID          int
	Velocities  map[string]float64
	EnergyDrift float64
	Stable      bool
	Err         error
}

// RunMonteCarlo perturbs the initial velocity of every non-sun body by a
// uniform factor in [1-p, 1+p] and runs each trial to completion. A trial
// is stable when no body left the escape radius.
func RunMonteCarlo(ctx context.Context, cfg MonteCarloConfig) ([]Trial, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.Trials)
	}
	if cfg.Perturbation < 0 {
		return nil, fmt.Errorf("perturbation must not be negative, got %g", cfg.Perturbation)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = log.With(logger, "subsys", "montecarlo")

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	trials := make([]Trial, 0, cfg.Trials)
	for i := 0; i < cfg.Trials; i++ {
		params := make(map[string]float64)
		for _, b := range cfg.Base.Bodies {
			if b.Sun {
				continue
			}
			scale := 1 + (rng.Float64()-0.5)*2*cfg.Perturbation
			params["velocity."+b.Name] = b.VelocityMPS * scale
		}

		pt := runPoint(ctx, cfg.Base, params)
		if err := ctx.Err(); err != nil {
			return trials, err
		}

		trial := Trial{
			ID:          i,
			Velocities:  make(map[string]float64, len(params)),
			EnergyDrift: pt.EnergyDrift,
			Stable:      pt.Err == nil && pt.Stability == 1,
			Err:         pt.Err,
		}
		for k, v := range params {
			trial.Velocities[k[len("velocity."):]] = v
		}
		trials = append(trials, trial)

		if (i+1)%10 == 0 {
			logger.Log("level", "info", "message", "trials complete", "n", i+1, "of", cfg.Trials)
		}
	}
	return trials, nil
}

func MonteCarloStats(trials []Trial) (stable, unstable int) {
	for _, t := range trials {
		if t.Stable {
			stable++
		} else {
			unstable++
		}
	}
	return
}
