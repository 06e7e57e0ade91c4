package data

import "fmt"

// Two per-block cost formulas circulate in the upstream cost data. The
// electricity-consumption one is canonical here; the one-coin proxy is kept
// only as a validation cross-check and never feeds payoffs.

// CostPerBlockUSD computes the canonical per-block mining cost from an
// annualised electricity consumption estimate:
//
//	cost = (guessTWhAnnual / 365.25) * 1e9 * priceUSDPerKWh / blocksThatDay
//
// guessTWhAnnual is the network-wide annualised consumption in TWh; the 1e9
// factor converts TWh to kWh.
func CostPerBlockUSD(guessTWhAnnual, priceUSDPerKWh float64, blocksThatDay int) (float64, error) {
	if blocksThatDay <= 0 {
		return 0, fmt.Errorf("blocks per day must be > 0, got %d", blocksThatDay)
	}
	if guessTWhAnnual < 0 || priceUSDPerKWh < 0 {
		return 0, fmt.Errorf("consumption and electricity price must be >= 0")
	}
	return guessTWhAnnual / 365.25 * 1e9 * priceUSDPerKWh / float64(blocksThatDay), nil
}

// CrossCheckCostPerBlockUSD is the older one-coin proxy:
//
//	cost = costToMineOneBTCUSD * subsidyBTC * dailyShare
//
// Kept for comparison against the canonical formula only.
func CrossCheckCostPerBlockUSD(costToMineOneBTCUSD, subsidyBTC, dailyShare float64) float64 {
	return costToMineOneBTCUSD * subsidyBTC * dailyShare
}

// CostCrossCheckRatio reports how far the proxy deviates from the canonical
// cost (proxy / canonical). A ratio near 1 means the two cost sources agree.
func CostCrossCheckRatio(canonicalUSD, proxyUSD float64) (float64, error) {
	if canonicalUSD <= 0 {
		return 0, fmt.Errorf("canonical cost must be > 0, got %v", canonicalUSD)
	}
	return proxyUSD / canonicalUSD, nil
}
