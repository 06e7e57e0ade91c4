package model

import (
	"errors"
	"fmt"
	"math"
)

// PolicyFlags selects which fee/capacity mechanisms are active for a run.
type PolicyFlags struct {
	BaseFee          bool
	FeeFloor         bool
	AdaptiveCapacity bool
}

// PolicyGroup is a named flag combination. The six canonical groups cover
// every mechanism pairing the experiments sweep over.
type PolicyGroup struct {
	Name        string
	Description string
	Flags       PolicyFlags
}

// DefaultPolicyGroups returns the canonical groups A-F, from all mechanisms on
// down to the unmodified baseline.
func DefaultPolicyGroups() []PolicyGroup {
	return []PolicyGroup{
		{Name: "A_BF_FF_AD", Description: "Base fee + fee floor + adaptive capacity", Flags: PolicyFlags{BaseFee: true, FeeFloor: true, AdaptiveCapacity: true}},
		{Name: "B_BF_AD", Description: "Base fee + adaptive capacity", Flags: PolicyFlags{BaseFee: true, AdaptiveCapacity: true}},
		{Name: "C_BF_FF", Description: "Base fee + fee floor", Flags: PolicyFlags{BaseFee: true, FeeFloor: true}},
		{Name: "D_BF", Description: "Base fee only", Flags: PolicyFlags{BaseFee: true}},
		{Name: "E_FF_AD", Description: "Fee floor + adaptive capacity", Flags: PolicyFlags{FeeFloor: true, AdaptiveCapacity: true}},
		{Name: "F_NONE", Description: "No mechanism (baseline)", Flags: PolicyFlags{}},
	}
}

// PolicyGroupByName resolves a canonical group name.
func PolicyGroupByName(name string) (PolicyGroup, error) {
	for _, g := range DefaultPolicyGroups() {
		if g.Name == name {
			return g, nil
		}
	}
	return PolicyGroup{}, fmt.Errorf("unknown policy group %q", name)
}

// PolicyConfig is the full, immutable configuration of one run: mechanism
// flags plus every numeric parameter of the delay model, the policy
// recurrence, and the payoff rule.
type PolicyConfig struct {
	Flags PolicyFlags
	Group string // canonical group name, echoed into results

	// Fee mechanism parameters.
	BaseFee0    float64 // initial base fee, sat/vB
	Alpha       float64 // base fee adjustment speed
	TargetUtil  float64 // U*, target utilization
	FeeFloorSat float64 // minimum total fee when the floor is active

	// Capacity parameters, virtual bytes.
	CapacityMinVB float64
	CapacityMaxVB float64
	CapacityStep  float64 // fractional step per adaptive adjustment

	// Propagation / payoff parameters.
	WithholdSec    float64 // w, extra delay a deviating miner incurs
	DiscountFactor float64 // gamma
	BlockRate      float64 // lambda, blocks per second
	BaseDelayMs    float64
	KappaMsPerMB   float64

	GainRatio      float64 // G_ratio; G_norm = GainRatio * mean contestable value
	IncludeSubsidy bool    // false forces R_t = 0 (post-subsidy regime)
	RunLength      int     // T
}

func (c PolicyConfig) Validate() error {
	for name, v := range map[string]float64{
		"basefee0":        c.BaseFee0,
		"alpha":           c.Alpha,
		"target_util":     c.TargetUtil,
		"fee_floor_sat":   c.FeeFloorSat,
		"capacity_min_vb": c.CapacityMinVB,
		"capacity_max_vb": c.CapacityMaxVB,
		"capacity_step":   c.CapacityStep,
		"w_seconds":       c.WithholdSec,
		"gamma":           c.DiscountFactor,
		"lambda":          c.BlockRate,
		"base_delay_ms":   c.BaseDelayMs,
		"kappa_ms_per_mb": c.KappaMsPerMB,
		"g_ratio":         c.GainRatio,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not finite", name)
		}
	}
	if c.RunLength <= 0 {
		return errors.New("run_length must be > 0")
	}
	if c.DiscountFactor <= 0 || c.DiscountFactor >= 1 {
		return errors.New("gamma must be in (0, 1)")
	}
	if c.BlockRate <= 0 {
		return errors.New("lambda must be > 0")
	}
	if c.TargetUtil <= 0 || c.TargetUtil > 1 {
		return errors.New("target utilization must be in (0, 1]")
	}
	if c.CapacityMinVB <= 0 || c.CapacityMaxVB < c.CapacityMinVB {
		return errors.New("capacity bounds must satisfy 0 < min <= max")
	}
	if c.CapacityStep < 0 || c.CapacityStep >= 1 {
		return errors.New("capacity_step must be in [0, 1)")
	}
	if c.WithholdSec < 0 {
		return errors.New("w_seconds must be >= 0")
	}
	if c.BaseDelayMs < 0 || c.KappaMsPerMB < 0 {
		return errors.New("delay parameters must be >= 0")
	}
	if c.BaseFee0 < 0 || c.FeeFloorSat < 0 || c.GainRatio < 0 || c.Alpha < 0 {
		return errors.New("fee and gain parameters must be >= 0")
	}
	return nil
}

// PolicyState is the only mutable cross-round state: current block capacity
// and current base fee. It is threaded by value through the round loop.
type PolicyState struct {
	CapacityVB      float64
	BaseFeeSatPerVB float64
}

// InitialState seeds round 0: capacity at the lower bound, base fee at its
// configured starting value.
func InitialState(c PolicyConfig) PolicyState {
	return PolicyState{
		CapacityVB:      c.CapacityMinVB,
		BaseFeeSatPerVB: c.BaseFee0,
	}
}

// CapacityMB converts the current capacity to megabytes for the delay model.
func (s PolicyState) CapacityMB() float64 {
	return s.CapacityVB / 1e6
}
