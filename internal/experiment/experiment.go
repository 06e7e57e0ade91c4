// Package experiment wires a loaded configuration to the input tables and the
// simulation engine. Both the CLI and the API front-ends go through it.
package experiment

import (
	"fmt"

	"go.uber.org/zap"

	"miner-sim/internal/config"
	"miner-sim/internal/data"
	"miner-sim/internal/mev"
	"miner-sim/internal/model"
	"miner-sim/internal/sim"
)

// Inputs bundles the immutable tables every run of an experiment shares.
type Inputs struct {
	Dataset *model.BlockDataset
	Miners  model.MinerSet
	Costs   *model.CostTable
}

// LoadInputs reads the block dataset and pool cost table named by the config
// and derives the miner set and the per-(date, miner) cost table.
func LoadInputs(cfg *config.Config) (*Inputs, error) {
	ds, err := data.LoadBlockDataset(cfg.Dataset)
	if err != nil {
		return nil, err
	}
	poolRows, err := data.LoadPoolCosts(cfg.PoolCosts)
	if err != nil {
		return nil, err
	}
	miners, err := data.BuildMinerSet(poolRows, cfg.TopMiners, ds.MeanPriceUSD())
	if err != nil {
		return nil, fmt.Errorf("build miner set: %w", err)
	}
	costs, err := data.BuildCostTable(poolRows, ds.PriceByDate(), ds.MeanPriceUSD())
	if err != nil {
		return nil, fmt.Errorf("build cost table: %w", err)
	}
	return &Inputs{Dataset: ds, Miners: miners, Costs: costs}, nil
}

// BuildGrid materializes the config's sweep grid into run specs.
func BuildGrid(cfg *config.Config) ([]sim.RunSpec, error) {
	groups, err := cfg.PolicyGroups()
	if err != nil {
		return nil, err
	}
	grid := sim.Grid{
		Base:         cfg.BasePolicy(),
		PolicyGroups: groups,
		GainRatios:   cfg.Grid.GainRatios,
		FeeFloors:    cfg.Grid.FeeFloors,
	}
	return grid.Materialize()
}

// BuildSampler constructs the configured MEV sampler over the dataset's
// observed amounts. A "data" sampler is nil: the engine replays the column.
func BuildSampler(cfg *config.Config, ds *model.BlockDataset) (mev.Sampler, error) {
	switch cfg.Sim.MEVSampler {
	case "data":
		return nil, nil
	case "lognormal":
		samples := make([]float64, 0, len(ds.Rows))
		for _, r := range ds.Rows {
			samples = append(samples, r.MEVSat)
		}
		mu, sigma, err := mev.FitLogNormal(samples)
		if err != nil {
			return nil, fmt.Errorf("fit mev sampler: %w", err)
		}
		return mev.NewLogNormal(mu, sigma, cfg.Sim.MEVSeed), nil
	case "empirical":
		samples := make([]float64, 0, len(ds.Rows))
		for _, r := range ds.Rows {
			samples = append(samples, r.MEVSat)
		}
		return mev.NewEmpirical(samples, cfg.Sim.MEVSeed)
	default:
		return nil, fmt.Errorf("unknown mev sampler %q", cfg.Sim.MEVSampler)
	}
}

// RunSweep executes the full grid and persists the results under the config's
// output directory. Returns the sweep result and the run directory.
func RunSweep(cfg *config.Config, logger *zap.Logger) (*sim.SweepResult, string, error) {
	in, err := LoadInputs(cfg)
	if err != nil {
		return nil, "", err
	}
	specs, err := BuildGrid(cfg)
	if err != nil {
		return nil, "", err
	}
	// Fail fast on a misconfigured sampler before spinning up the grid.
	if _, err := BuildSampler(cfg, in.Dataset); err != nil {
		return nil, "", err
	}

	engine := sim.New()
	res := engine.Sweep(in.Dataset, in.Miners, in.Costs, specs, sim.SweepOptions{
		Workers: cfg.Sim.Workers,
		Logger:  logger,
		NewSampler: func() (mev.Sampler, error) {
			return BuildSampler(cfg, in.Dataset)
		},
	})

	echo, err := cfg.Echo()
	if err != nil {
		return nil, "", fmt.Errorf("serialize config echo: %w", err)
	}
	runDir, err := sim.PersistSweep(cfg.OutDir, res, echo)
	if err != nil {
		return nil, "", err
	}
	return res, runDir, nil
}

// RunSingle executes one configuration: the named policy group at one point
// of the gain/fee-floor space.
func RunSingle(cfg *config.Config, groupName string, gainRatio, feeFloorSat float64, opts sim.Options) (*sim.RunReport, error) {
	in, err := LoadInputs(cfg)
	if err != nil {
		return nil, err
	}
	group, err := model.PolicyGroupByName(groupName)
	if err != nil {
		return nil, err
	}
	if opts.Sampler == nil {
		if opts.Sampler, err = BuildSampler(cfg, in.Dataset); err != nil {
			return nil, err
		}
	}

	run := cfg.BasePolicy()
	run.Flags = group.Flags
	run.Group = group.Name
	run.GainRatio = gainRatio
	run.FeeFloorSat = feeFloorSat

	return sim.New().Run(in.Dataset, in.Miners, in.Costs, run, opts)
}
