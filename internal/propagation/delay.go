// Package propagation models how block size and announcement withholding turn
// into propagation delay, and delay into orphan probability under a Poisson
// block-arrival process.
package propagation

import "math"

// rhoCap keeps orphan probabilities strictly below 1 so downstream ratios
// never divide by zero.
const rhoCap = 1 - 1e-12

// Model holds the network parameters. All methods are pure and safe for
// concurrent use.
type Model struct {
	BaseDelayMs  float64 // fixed propagation latency
	KappaMsPerMB float64 // marginal delay per megabyte of block size
	BlockRate    float64 // lambda, expected blocks per second (~1/600)
}

// Result bundles the honest and withheld delays (seconds) with their orphan
// probabilities for one block size.
type Result struct {
	DelayHonestSec float64
	DelayDevSec    float64
	RhoHonest      float64
	RhoDev         float64
}

// Delays returns the honest propagation delay for a block of the given size
// and the delay of a withholding miner, both in seconds.
func (m Model) Delays(capacityMB, withholdSec float64) (honestSec, devSec float64) {
	honestSec = (m.BaseDelayMs + m.KappaMsPerMB*capacityMB) / 1000.0
	devSec = honestSec + withholdSec
	return honestSec, devSec
}

// OrphanRate converts a propagation delay to the probability that a competing
// block arrives first: 1 - exp(-lambda * delay), capped strictly below 1.
func (m Model) OrphanRate(delaySec float64) float64 {
	rho := 1 - math.Exp(-m.BlockRate*delaySec)
	if rho < 0 {
		return 0
	}
	if rho > rhoCap {
		return rhoCap
	}
	return rho
}

// Evaluate computes the full delay/orphan result for one block size and
// withholding delay. rho_dev >= rho_honest holds for all withholdSec >= 0,
// with equality only at zero.
func (m Model) Evaluate(capacityMB, withholdSec float64) Result {
	hon, dev := m.Delays(capacityMB, withholdSec)
	return Result{
		DelayHonestSec: hon,
		DelayDevSec:    dev,
		RhoHonest:      m.OrphanRate(hon),
		RhoDev:         m.OrphanRate(dev),
	}
}
