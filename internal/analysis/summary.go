// Package analysis turns persisted run results into the cross-run summary and
// ranking tables an experiment report is built from.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"miner-sim/internal/model"
)

// Summary aggregates a whole sweep into one row of headline figures.
type Summary struct {
	Runs int

	BetaBarMean float64
	BetaBarMin  float64
	BetaBarMax  float64

	ROIMeanMean float64
	ROIMeanMin  float64
	ROIMeanMax  float64

	StableCount int

	RhoHonestMean   float64
	RhoDevMean      float64
	PrMarginGE1Mean float64
}

func Summarize(results []model.RunResult) Summary {
	s := Summary{Runs: len(results)}
	if len(results) == 0 {
		return s
	}

	betas := make([]float64, len(results))
	rois := make([]float64, len(results))
	rhoHon := make([]float64, len(results))
	rhoDev := make([]float64, len(results))
	margins := make([]float64, len(results))
	s.BetaBarMin, s.ROIMeanMin = math.Inf(1), math.Inf(1)
	s.BetaBarMax, s.ROIMeanMax = math.Inf(-1), math.Inf(-1)

	for i, r := range results {
		betas[i] = r.BetaBar
		rois[i] = r.ROIMean
		rhoHon[i] = r.RhoHonestMean
		rhoDev[i] = r.RhoDevMean
		margins[i] = r.PrMarginGE1
		if r.StableBFT {
			s.StableCount++
		}
		s.BetaBarMin = math.Min(s.BetaBarMin, r.BetaBar)
		s.BetaBarMax = math.Max(s.BetaBarMax, r.BetaBar)
		s.ROIMeanMin = math.Min(s.ROIMeanMin, r.ROIMean)
		s.ROIMeanMax = math.Max(s.ROIMeanMax, r.ROIMean)
	}

	s.BetaBarMean = stat.Mean(betas, nil)
	s.ROIMeanMean = stat.Mean(rois, nil)
	s.RhoHonestMean = stat.Mean(rhoHon, nil)
	s.RhoDevMean = stat.Mean(rhoDev, nil)
	s.PrMarginGE1Mean = stat.Mean(margins, nil)
	return s
}
