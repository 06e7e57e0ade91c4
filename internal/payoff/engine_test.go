package payoff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"miner-sim/internal/propagation"
)

// Orphan rates at 1 MB with a 0.5 s withhold under the default network model.
const (
	rhoHon = 0.0012798470
	rhoDev = 0.0021117680
)

func TestEvaluateHonestWhenGainIsSmall(t *testing.T) {
	res := Evaluate(Inputs{
		ContestableSat: 27_256_474,
		GainSat:        10_000,
		RhoHonest:      rhoHon,
		RhoDev:         rhoDev,
		HashShare:      1.0,
		CostSat:        5_000_000,
	})

	assert.False(t, res.Deviate)
	assert.Greater(t, res.Honest, res.Dev)
	assert.InDelta(t, 1-rhoHon, res.ProbHonest, 1e-12)
	assert.InDelta(t, 1-rhoDev, res.ProbDev, 1e-12)
}

func TestGainThreshold(t *testing.T) {
	ratio := DeviationRatio(rhoHon, rhoDev)
	assert.InDelta(t, 0.00083368, ratio, 1e-7)

	threshold := GainThreshold(rhoHon, rhoDev, 27_256_474)
	assert.InDelta(t, 22_723, threshold, 5)
}

func TestDecisionFlipsAtThreshold(t *testing.T) {
	const x = 27_256_474.0
	threshold := GainThreshold(rhoHon, rhoDev, x)

	for _, share := range []float64{0.05, 0.25, 1.0} {
		below := Evaluate(Inputs{ContestableSat: x, GainSat: threshold * 0.999,
			RhoHonest: rhoHon, RhoDev: rhoDev, HashShare: share})
		above := Evaluate(Inputs{ContestableSat: x, GainSat: threshold * 1.001,
			RhoHonest: rhoHon, RhoDev: rhoDev, HashShare: share})

		// The threshold is share-independent: the hash share cancels.
		assert.False(t, below.Deviate, "share %v", share)
		assert.True(t, above.Deviate, "share %v", share)
	}
}

func TestCostShiftsBothPayoffsEqually(t *testing.T) {
	base := Inputs{ContestableSat: 1e7, GainSat: 5e4,
		RhoHonest: rhoHon, RhoDev: rhoDev, HashShare: 0.3}

	free := Evaluate(base)
	base.CostSat = 2e6
	costly := Evaluate(base)

	assert.InDelta(t, free.Honest-2e6, costly.Honest, 1e-6)
	assert.InDelta(t, free.Dev-2e6, costly.Dev, 1e-6)
	assert.Equal(t, free.Deviate, costly.Deviate)
}

func TestDeviationRatioMonotoneInWithhold(t *testing.T) {
	m := propagation.Model{BaseDelayMs: 742, KappaMsPerMB: 26.40, BlockRate: 1.0 / 600.0}

	prev := 0.0
	for _, w := range []float64{0.25, 0.5, 1.0, 2.0, 10.0} {
		res := m.Evaluate(1.0, w)
		ratio := DeviationRatio(res.RhoHonest, res.RhoDev)
		assert.Greater(t, ratio, prev, "w %v", w)
		prev = ratio
	}
}

func TestMargin(t *testing.T) {
	threshold := GainThreshold(rhoHon, rhoDev, 1e7)

	assert.InDelta(t, 1.0, Margin(threshold, rhoHon, rhoDev, 1e7), 1e-9)
	assert.Less(t, Margin(threshold/2, rhoHon, rhoDev, 1e7), 1.0)
	assert.Greater(t, Margin(threshold*2, rhoHon, rhoDev, 1e7), 1.0)

	// Guarded denominator keeps the margin finite even with zero stakes.
	assert.NotPanics(t, func() { Margin(100, 0, 0, 0) })
}
