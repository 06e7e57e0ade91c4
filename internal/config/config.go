package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"miner-sim/internal/model"
)

// Config is the on-disk experiment configuration (YAML). One file describes
// the input tables, the base simulation parameters, and the sweep grid.
type Config struct {
	Dataset   string `yaml:"dataset"`
	PoolCosts string `yaml:"pool_costs"`
	OutDir    string `yaml:"out_dir"`
	TopMiners int    `yaml:"top_miners"`

	Sim  SimConfig  `yaml:"sim"`
	Grid GridConfig `yaml:"grid"`
}

// SimConfig carries the numeric parameters shared by every configuration in
// the sweep.
type SimConfig struct {
	RunLength    int     `yaml:"run_length"`
	Gamma        float64 `yaml:"gamma"`
	Lambda       float64 `yaml:"lambda_block_rate"`
	BaseDelayMs  float64 `yaml:"base_delay_ms"`
	KappaMsPerMB float64 `yaml:"kappa_ms_per_mb"`
	WSeconds     float64 `yaml:"w_seconds"`
	Alpha        float64 `yaml:"alpha"`
	UStar        float64 `yaml:"u_star"`
	DeltaStep    float64 `yaml:"delta_step"`
	BMinVB       float64 `yaml:"b_min_vb"`
	BMaxVB       float64 `yaml:"b_max_vb"`
	BaseFee0     float64 `yaml:"basefee0"`

	// IncludeBlockReward keeps the historical subsidy in X_t; setting it to
	// false models the post-subsidy regime (R_t = 0). Defaults to true.
	IncludeBlockReward *bool `yaml:"include_block_reward"`

	// MEVSampler is one of "data" (replay the dataset column), "lognormal"
	// (fit + draw), or "empirical" (resample the column). Defaults to "data".
	MEVSampler string `yaml:"mev_sampler"`
	MEVSeed    uint64 `yaml:"mev_seed"`

	Workers int `yaml:"workers"`
}

// GridConfig spans the swept axes. Policy groups are given by their canonical
// names; an empty list means all six.
type GridConfig struct {
	GainRatios   []float64 `yaml:"g_ratio_grid"`
	FeeFloors    []float64 `yaml:"fee_floor_grid"`
	PolicyGroups []string  `yaml:"policy_flags_grid"`
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// LoadUnchecked loads a config without defaulting or validating it. Useful
// for debugging partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.OutDir == "" {
		c.OutDir = "results/sim_runs"
	}
	if c.TopMiners == 0 {
		c.TopMiners = 13
	}
	s := &c.Sim
	if s.RunLength == 0 {
		s.RunLength = 100_000
	}
	if s.Gamma == 0 {
		s.Gamma = 0.99
	}
	if s.Lambda == 0 {
		s.Lambda = 1.0 / 600.0
	}
	if s.UStar == 0 {
		s.UStar = 0.80
	}
	if s.DeltaStep == 0 {
		s.DeltaStep = 0.10
	}
	if s.BMinVB == 0 {
		s.BMinVB = 1_000_000
	}
	if s.BMaxVB == 0 {
		s.BMaxVB = 2_000_000
	}
	if s.BaseFee0 == 0 {
		s.BaseFee0 = 1.0
	}
	if s.Alpha == 0 {
		s.Alpha = 0.125
	}
	if s.MEVSampler == "" {
		s.MEVSampler = "data"
	}
	if len(c.Grid.PolicyGroups) == 0 {
		for _, g := range model.DefaultPolicyGroups() {
			c.Grid.PolicyGroups = append(c.Grid.PolicyGroups, g.Name)
		}
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Dataset == "" {
		return errors.New("dataset path is required")
	}
	if c.PoolCosts == "" {
		return errors.New("pool_costs path is required")
	}
	if c.TopMiners <= 0 {
		return errors.New("top_miners must be > 0")
	}
	if len(c.Grid.GainRatios) == 0 {
		return errors.New("g_ratio_grid must not be empty")
	}
	if len(c.Grid.FeeFloors) == 0 {
		return errors.New("fee_floor_grid must not be empty")
	}
	for _, v := range c.Grid.GainRatios {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("g_ratio_grid value %v must be finite and >= 0", v)
		}
	}
	for _, v := range c.Grid.FeeFloors {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("fee_floor_grid value %v must be finite and >= 0", v)
		}
	}
	if _, err := c.PolicyGroups(); err != nil {
		return err
	}
	switch c.Sim.MEVSampler {
	case "data", "lognormal", "empirical":
	default:
		return fmt.Errorf("mev_sampler must be data, lognormal or empirical, got %q", c.Sim.MEVSampler)
	}
	// The remaining numeric checks live on PolicyConfig; validate the base
	// configuration the grid will be built from.
	if err := c.BasePolicy().Validate(); err != nil {
		return err
	}
	return nil
}

// BasePolicy builds the PolicyConfig every grid point starts from. Flags,
// gain ratio and fee floor are filled in per grid point.
func (c *Config) BasePolicy() model.PolicyConfig {
	include := true
	if c.Sim.IncludeBlockReward != nil {
		include = *c.Sim.IncludeBlockReward
	}
	return model.PolicyConfig{
		BaseFee0:       c.Sim.BaseFee0,
		Alpha:          c.Sim.Alpha,
		TargetUtil:     c.Sim.UStar,
		CapacityMinVB:  c.Sim.BMinVB,
		CapacityMaxVB:  c.Sim.BMaxVB,
		CapacityStep:   c.Sim.DeltaStep,
		WithholdSec:    c.Sim.WSeconds,
		DiscountFactor: c.Sim.Gamma,
		BlockRate:      c.Sim.Lambda,
		BaseDelayMs:    c.Sim.BaseDelayMs,
		KappaMsPerMB:   c.Sim.KappaMsPerMB,
		IncludeSubsidy: include,
		RunLength:      c.Sim.RunLength,
	}
}

// PolicyGroups resolves the configured group names.
func (c *Config) PolicyGroups() ([]model.PolicyGroup, error) {
	groups := make([]model.PolicyGroup, 0, len(c.Grid.PolicyGroups))
	for _, name := range c.Grid.PolicyGroups {
		g, err := model.PolicyGroupByName(name)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// Echo serializes the resolved config for persisting alongside results.
func (c *Config) Echo() ([]byte, error) {
	return yaml.Marshal(c)
}
