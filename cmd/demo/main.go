package main

import (
	"flag"
	"fmt"
	"math"

	"miner-sim/internal/data"
	"miner-sim/internal/model"
	"miner-sim/internal/sim"
)

// Demo:
// - Build a small synthetic block dataset and miner set in memory
// - Run the baseline (no mechanisms) and the full policy stack over it
// - Print a few per-round outcomes to show how the pieces fit together
func main() {
	rounds := flag.Int("n", 2000, "Number of rounds to simulate")
	gRatio := flag.Float64("g-ratio", 0.002, "Deviation gain ratio")
	flag.Parse()

	ds := syntheticDataset(1000)
	miners, costs := syntheticMiners(ds)

	base := model.PolicyConfig{
		BaseFee0:       1.0,
		Alpha:          0.125,
		TargetUtil:     0.80,
		CapacityMinVB:  1_000_000,
		CapacityMaxVB:  2_000_000,
		CapacityStep:   0.10,
		WithholdSec:    1.0,
		DiscountFactor: 0.99,
		BlockRate:      1.0 / 600.0,
		BaseDelayMs:    742,
		KappaMsPerMB:   26.40,
		GainRatio:      *gRatio,
		IncludeSubsidy: false, // post-subsidy regime
		RunLength:      *rounds,
	}

	engine := sim.New()
	for _, name := range []string{"F_NONE", "A_BF_FF_AD"} {
		group, err := model.PolicyGroupByName(name)
		if err != nil {
			panic(err)
		}
		cfg := base
		cfg.Flags = group.Flags
		cfg.Group = group.Name
		if group.Flags.FeeFloor {
			cfg.FeeFloorSat = 5_000_000
		}

		report, err := engine.Run(ds, miners, costs, cfg, sim.Options{RecordOutcomes: name == "F_NONE"})
		if err != nil {
			panic(err)
		}
		r := report.Result

		fmt.Printf("== %s (%s)\n", group.Name, group.Description)
		fmt.Printf("   beta_bar=%.4f stable_bft=%v roi_mean=%.4f rho_dev=%.6f\n",
			r.BetaBar, r.StableBFT, r.ROIMean, r.RhoDevMean)
		fmt.Printf("   V_honest=%.0f V_dev=%.0f pr(D>=1)=%.4f\n\n",
			r.DiscountedHonestMean, r.DiscountedDevMean, r.PrMarginGE1)

		for i := 0; i < len(report.Outcomes) && i < 6; i++ {
			o := report.Outcomes[i]
			fmt.Printf("   t=%d miner=%d p_hon=%.4f p_dev=%.4f pi_hon=%.0f pi_dev=%.0f %s\n",
				o.Round, o.MinerID, o.ProbHonest, o.ProbDev,
				o.PayoffHonestSat, o.PayoffDevSat, o.Decision())
		}
		if len(report.Outcomes) > 0 {
			fmt.Println()
		}
	}

	fmt.Println("Done.")
}

// syntheticDataset fabricates a fee/MEV profile with a mild congestion cycle.
func syntheticDataset(n int) *model.BlockDataset {
	ds := &model.BlockDataset{Rows: make([]model.BlockRecord, 0, n)}
	for i := 0; i < n; i++ {
		cycle := math.Sin(float64(i) / 50.0)
		ds.Rows = append(ds.Rows, model.BlockRecord{
			Height:     840_000 + int64(i),
			Date:       fmt.Sprintf("2024-05-%02d", i%28+1),
			VBytesUsed: 900_000 + 250_000*cycle,
			FeeRateSat: 18 + 10*cycle,
			MEVSat:     4_000_000 + 2_000_000*cycle,
			SubsidySat: 312_500_000,
			PriceUSD:   60_000,
			MinerID:    i % 3,
		})
	}
	return ds
}

// syntheticMiners builds a three-pool miner set with electricity-based costs.
func syntheticMiners(ds *model.BlockDataset) (model.MinerSet, *model.CostTable) {
	costUSD, err := data.CostPerBlockUSD(120.0, 0.05, data.BlocksPerDay)
	if err != nil {
		panic(err)
	}

	shares := []float64{0.5, 0.3, 0.2}
	set := model.MinerSet{}
	costs := model.NewCostTable()
	price := ds.MeanPriceUSD()
	for id, share := range shares {
		// A pool's share of a day's blocks scales its share of the day's cost.
		perBlockSat := costUSD * share / price * 1e8
		set.Miners = append(set.Miners, model.Miner{
			ID:              id,
			Name:            fmt.Sprintf("pool-%d", id),
			HashShare:       share,
			CostSatPerBlock: perBlockSat,
		})
		for _, row := range ds.Rows {
			costs.Set(row.Date, id, perBlockSat)
		}
	}
	return set, costs
}
