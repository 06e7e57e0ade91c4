package sim

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"miner-sim/internal/mev"
	"miner-sim/internal/model"
)

// FailedRun marks a configuration that did not produce a RunResult. Failures
// never abort the sweep; they are collected and surfaced at the end.
type FailedRun struct {
	Label string
	Err   string
}

// SweepResult is the output of one orchestrator invocation: one slot per
// configuration, filled with either a result or a failure marker.
type SweepResult struct {
	ID       string
	Results  []model.RunResult
	Failures []FailedRun
}

// SweepOptions tunes the sweep. Workers defaults to GOMAXPROCS; runs within a
// configuration stay strictly sequential, only configurations parallelize.
type SweepOptions struct {
	Workers int
	Run     Options
	Logger  *zap.Logger

	// NewSampler builds a fresh MEV sampler per configuration. Samplers carry
	// RNG state, so one instance must never be shared across workers; every
	// configuration drawing the same seeded sequence also keeps grid points
	// comparable. Nil leaves Run.Sampler as-is.
	NewSampler func() (mev.Sampler, error)
}

// Sweep runs every spec against the shared read-only inputs. Each worker owns
// its configuration's policy state and writes into a dedicated output slot,
// so no synchronization beyond the final collection is needed. A panicking
// configuration is recorded as a failure and the sweep continues.
func (e *Engine) Sweep(ds *model.BlockDataset, miners model.MinerSet, costs *model.CostTable, specs []RunSpec, opts SweepOptions) *SweepResult {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(specs) && len(specs) > 0 {
		workers = len(specs)
	}

	sweepID := uuid.NewString()
	logger.Info("starting sweep",
		zap.String("sweep_id", sweepID),
		zap.Int("configurations", len(specs)),
		zap.Int("workers", workers),
	)

	type slot struct {
		result *model.RunResult
		failed *FailedRun
	}
	slots := make([]slot, len(specs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				spec := specs[idx]
				runOpts := opts.Run
				if opts.NewSampler != nil {
					sampler, err := opts.NewSampler()
					if err != nil {
						logger.Warn("sampler construction failed",
							zap.String("label", spec.Label),
							zap.Error(err),
						)
						slots[idx].failed = &FailedRun{Label: spec.Label, Err: err.Error()}
						continue
					}
					runOpts.Sampler = sampler
				}
				report, err := e.runIsolated(ds, miners, costs, spec, runOpts)
				if err != nil {
					logger.Warn("configuration failed",
						zap.String("label", spec.Label),
						zap.Error(err),
					)
					slots[idx].failed = &FailedRun{Label: spec.Label, Err: err.Error()}
					continue
				}
				res := report.Result
				res.Label = spec.Label
				slots[idx].result = &res
				logger.Info("configuration complete",
					zap.String("label", spec.Label),
					zap.Float64("beta_bar", res.BetaBar),
					zap.Float64("roi_mean", res.ROIMean),
					zap.Bool("stable_bft", res.StableBFT),
				)
			}
		}()
	}
	for idx := range specs {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	out := &SweepResult{ID: sweepID}
	for _, s := range slots {
		if s.result != nil {
			out.Results = append(out.Results, *s.result)
		}
		if s.failed != nil {
			out.Failures = append(out.Failures, *s.failed)
		}
	}
	logger.Info("sweep finished",
		zap.String("sweep_id", sweepID),
		zap.Int("completed", len(out.Results)),
		zap.Int("failed", len(out.Failures)),
	)
	return out
}

// runIsolated converts a panic inside one configuration into an error so a
// degenerate parameter combination cannot take down the rest of the grid.
func (e *Engine) runIsolated(ds *model.BlockDataset, miners model.MinerSet, costs *model.CostTable, spec RunSpec, opts Options) (report *RunReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = fmt.Errorf("run panicked: %v", r)
		}
	}()
	return e.Run(ds, miners, costs, spec.Config, opts)
}
