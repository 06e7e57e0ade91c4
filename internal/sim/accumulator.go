package sim

// DiscountedAccumulator tracks, per miner, the discounted sums of the honest
// and deviating payoff paths: V = sum_t gamma^t * Pi_t. Both counterfactual
// paths are kept so the single-round decision rule can be compared against the
// multi-round value after the run. Diagnostics only; nothing in the round loop
// reads these back.
type DiscountedAccumulator struct {
	gamma    float64
	gammaPow float64
	honest   []float64
	dev      []float64
}

func NewDiscountedAccumulator(gamma float64, miners int) *DiscountedAccumulator {
	return &DiscountedAccumulator{
		gamma:    gamma,
		gammaPow: 1,
		honest:   make([]float64, miners),
		dev:      make([]float64, miners),
	}
}

// Observe adds one miner's round payoffs at the current discount weight.
func (a *DiscountedAccumulator) Observe(minerIdx int, payoffHonest, payoffDev float64) {
	a.honest[minerIdx] += a.gammaPow * payoffHonest
	a.dev[minerIdx] += a.gammaPow * payoffDev
}

// Advance moves to the next round's discount weight. Call once per round,
// after all miners have been observed.
func (a *DiscountedAccumulator) Advance() {
	a.gammaPow *= a.gamma
}

// Honest returns the per-miner discounted honest-path values.
func (a *DiscountedAccumulator) Honest() []float64 { return a.honest }

// Dev returns the per-miner discounted deviating-path values.
func (a *DiscountedAccumulator) Dev() []float64 { return a.dev }
