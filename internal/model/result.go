package model

// BFTThreshold is the deviation fraction below which the network is considered
// BFT-stable.
const BFTThreshold = 1.0 / 3.0

// RunResult is the aggregate row persisted for one configuration of the sweep.
// Created at run completion, immutable thereafter.
type RunResult struct {
	Label  string
	Config PolicyConfig

	// GainNormSat is the resolved G_norm = GainRatio * mean contestable value.
	GainNormSat float64

	// BetaBar is the fraction of deviating (round, miner) decisions across the
	// whole run.
	BetaBar   float64
	StableBFT bool

	// BetaProducer restricts the deviation ratio to the round's historical
	// block producer, when that producer is in the simulated miner set.
	BetaProducer float64

	ROIMean float64
	ROIStd  float64

	RhoHonestMean float64
	RhoDevMean    float64

	// PrMarginGE1 is the fraction of rounds whose deviation margin
	// G_t / (ratio * X_t) reached 1.
	PrMarginGE1 float64

	// Discounted per-miner values along each counterfactual path, averaged
	// over miners. Diagnostics only; the decision rule never reads these.
	DiscountedHonestMean float64
	DiscountedDevMean    float64

	Rounds int
	Miners int
}
