// Package payoff computes per-round honest and deviating miner payoffs and
// the myopic deviation decision, plus the closed-form threshold used for
// diagnostics.
package payoff

// ratioGuard bounds the divisors in the diagnostic ratio and margin when
// rho_dev saturates; it matches the clamp applied to orphan probabilities.
const ratioGuard = 1e-12

// Inputs is everything the engine needs for one (round, miner) evaluation.
// ContestableSat is X_t = R_t + F_eff + M_t; GainSat is G_t, the extra value
// only a deviating miner can capture.
type Inputs struct {
	ContestableSat float64
	GainSat        float64
	RhoHonest      float64
	RhoDev         float64
	HashShare      float64
	CostSat        float64
}

// Result is the evaluated payoff pair and decision. Deviate is true exactly
// when the deviating payoff strictly exceeds the honest one; ties stay honest.
type Result struct {
	ProbHonest float64
	ProbDev    float64
	Honest     float64
	Dev        float64
	Deviate    bool
}

// Evaluate is a pure function of its inputs: no randomness, no state.
//
//	p_hon = h_i * (1 - rho_honest)      Pi_hon = p_hon * X_t - C_i
//	p_dev = h_i * (1 - rho_dev)         Pi_dev = p_dev * (X_t + G_t) - C_i
func Evaluate(in Inputs) Result {
	pHon := in.HashShare * (1 - in.RhoHonest)
	pDev := in.HashShare * (1 - in.RhoDev)
	honest := pHon*in.ContestableSat - in.CostSat
	dev := pDev*(in.ContestableSat+in.GainSat) - in.CostSat
	return Result{
		ProbHonest: pHon,
		ProbDev:    pDev,
		Honest:     honest,
		Dev:        dev,
		Deviate:    dev > honest,
	}
}

// DeviationRatio is (rho_dev - rho_honest) / (1 - rho_dev). The hash share
// cancels out of the deviation condition, so the ratio is miner-independent.
func DeviationRatio(rhoHonest, rhoDev float64) float64 {
	denom := 1 - rhoDev
	if denom < ratioGuard {
		denom = ratioGuard
	}
	return (rhoDev - rhoHonest) / denom
}

// GainThreshold is the gain level at which honest and deviating payoffs meet:
// deviation pays exactly when G_t exceeds ratio * X_t.
func GainThreshold(rhoHonest, rhoDev, contestableSat float64) float64 {
	return DeviationRatio(rhoHonest, rhoDev) * contestableSat
}

// Margin is D_t = G_t / (ratio * X_t); values >= 1 mean the round's gain
// clears the deviation threshold.
func Margin(gainSat, rhoHonest, rhoDev, contestableSat float64) float64 {
	denom := DeviationRatio(rhoHonest, rhoDev) * contestableSat
	if denom < ratioGuard {
		denom = ratioGuard
	}
	return gainSat / denom
}
