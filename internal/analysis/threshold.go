package analysis

import (
	"miner-sim/internal/payoff"
	"miner-sim/internal/propagation"
)

// ThresholdPoint is one point of the analytic deviation threshold surface:
// for a block size and withholding delay, the orphan rates and the gain
// fraction of X_t at which deviation starts to pay.
type ThresholdPoint struct {
	WithholdSec float64
	CapacityMB  float64

	DelayHonestSec float64
	DelayDevSec    float64
	RhoHonest      float64
	RhoDev         float64

	// Ratio is (rho_dev - rho_honest) / (1 - rho_dev); the gain threshold is
	// Ratio * X_t.
	Ratio float64
}

// ThresholdCurve evaluates the threshold along a list of withholding delays
// at a fixed block size. Ratio is non-decreasing in the delay.
func ThresholdCurve(m propagation.Model, capacityMB float64, withholdSecs []float64) []ThresholdPoint {
	out := make([]ThresholdPoint, 0, len(withholdSecs))
	for _, w := range withholdSecs {
		out = append(out, thresholdPoint(m, capacityMB, w))
	}
	return out
}

// ThresholdSurface evaluates the threshold over the cross product of block
// sizes and withholding delays, sizes outermost.
func ThresholdSurface(m propagation.Model, capacityMBs, withholdSecs []float64) []ThresholdPoint {
	out := make([]ThresholdPoint, 0, len(capacityMBs)*len(withholdSecs))
	for _, b := range capacityMBs {
		for _, w := range withholdSecs {
			out = append(out, thresholdPoint(m, b, w))
		}
	}
	return out
}

func thresholdPoint(m propagation.Model, capacityMB, withholdSec float64) ThresholdPoint {
	r := m.Evaluate(capacityMB, withholdSec)
	return ThresholdPoint{
		WithholdSec:    withholdSec,
		CapacityMB:     capacityMB,
		DelayHonestSec: r.DelayHonestSec,
		DelayDevSec:    r.DelayDevSec,
		RhoHonest:      r.RhoHonest,
		RhoDev:         r.RhoDev,
		Ratio:          payoff.DeviationRatio(r.RhoHonest, r.RhoDev),
	}
}
