package analysis

import (
	"sort"

	"miner-sim/internal/model"
)

type RankedResult struct {
	model.RunResult
}

// RankBySuppression orders results by how well the configuration suppressed
// deviation: lowest beta_bar first, ties broken by higher honest ROI.
func RankBySuppression(results []model.RunResult) []RankedResult {
	out := make([]RankedResult, 0, len(results))
	for _, r := range results {
		out = append(out, RankedResult{RunResult: r})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BetaBar != out[j].BetaBar {
			return out[i].BetaBar < out[j].BetaBar
		}
		return out[i].ROIMean > out[j].ROIMean
	})
	return out
}
