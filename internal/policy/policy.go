// Package policy implements the per-round recurrence over block capacity and
// base fee. The transition is strictly sequential: the next state depends only
// on the current state and the round's observed utilization.
package policy

import "miner-sim/internal/model"

const (
	// baseFeeMin keeps an enabled base fee strictly positive so the
	// multiplicative update can always recover from a quiet stretch.
	baseFeeMin = 1e-9
	// baseFeeCap bounds the base fee against runaway growth (1e15 sat/vB is
	// far beyond any plausible fee level).
	baseFeeCap = 1e15
)

// Utilization returns vbytesUsed / capacity clamped to [0, 1].
func Utilization(vbytesUsed, capacityVB float64) float64 {
	if capacityVB <= 0 {
		return 0
	}
	u := vbytesUsed / capacityVB
	if u > 1 {
		return 1
	}
	if u < 0 {
		return 0
	}
	return u
}

// Step advances the policy state one round given the observed utilization.
// With adaptive capacity disabled the capacity is left untouched; with the
// base fee disabled the fee is left untouched. The input state is not
// modified.
func Step(cfg model.PolicyConfig, st model.PolicyState, utilization float64) model.PolicyState {
	next := st

	if cfg.Flags.AdaptiveCapacity {
		switch {
		case utilization > cfg.TargetUtil:
			next.CapacityVB = min(cfg.CapacityMaxVB, st.CapacityVB*(1+cfg.CapacityStep))
		case utilization < cfg.TargetUtil:
			next.CapacityVB = max(cfg.CapacityMinVB, st.CapacityVB*(1-cfg.CapacityStep))
		}
	}

	if cfg.Flags.BaseFee {
		delta := cfg.Alpha * (utilization - cfg.TargetUtil) / cfg.TargetUtil
		fee := st.BaseFeeSatPerVB * (1 + delta)
		if fee < baseFeeMin {
			fee = baseFeeMin
		}
		if fee > baseFeeCap {
			fee = baseFeeCap
		}
		next.BaseFeeSatPerVB = fee
	}

	return next
}

// EffectiveFee applies the active fee mechanisms to the raw fee observed in
// the data for a block of vbytesUsed virtual bytes:
// max(raw, basefee*vbytes) when the base fee is on, then max(.., floor) when
// the fee floor is on.
func EffectiveFee(cfg model.PolicyConfig, st model.PolicyState, rawFeeSat, vbytesUsed float64) float64 {
	fee := rawFeeSat
	if cfg.Flags.BaseFee {
		if base := st.BaseFeeSatPerVB * vbytesUsed; base > fee {
			fee = base
		}
	}
	if cfg.Flags.FeeFloor && cfg.FeeFloorSat > fee {
		fee = cfg.FeeFloorSat
	}
	return fee
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
