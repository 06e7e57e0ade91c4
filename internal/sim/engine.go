package sim

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"miner-sim/internal/mev"
	"miner-sim/internal/model"
	"miner-sim/internal/payoff"
	"miner-sim/internal/policy"
	"miner-sim/internal/propagation"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Options tunes one run without changing its economics.
type Options struct {
	// Sampler overrides the dataset's MEV column with externally drawn
	// values. Nil replays the column as-is.
	Sampler mev.Sampler

	// RecordOutcomes keeps the full (round, miner) ledger in memory. Off by
	// default: a 100k-round run over 13 miners is 1.3M rows.
	RecordOutcomes bool

	// LimitRounds caps the round count below the configured run length.
	// Zero means run the full length.
	LimitRounds int
}

// RunReport is the output of one run: the persisted aggregate plus the
// diagnostics and, optionally, the full ledger.
type RunReport struct {
	Result model.RunResult

	// Per-miner discounted values along each counterfactual path.
	DiscountedHonest []float64
	DiscountedDev    []float64

	FinalState model.PolicyState

	Outcomes []model.RoundOutcome
}

// Run executes the round sequence for one configuration, threading the policy
// state from round 0 to T-1 and aggregating the per-round outcomes.
func (e *Engine) Run(ds *model.BlockDataset, miners model.MinerSet, costs *model.CostTable, cfg model.PolicyConfig, opts Options) (*RunReport, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("block dataset: %w", err)
	}
	if err := miners.Validate(); err != nil {
		return nil, fmt.Errorf("miner set: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("policy config: %w", err)
	}

	rounds := cfg.RunLength
	if opts.LimitRounds > 0 && opts.LimitRounds < rounds {
		rounds = opts.LimitRounds
	}
	n := len(miners.Miners)

	net := propagation.Model{
		BaseDelayMs:  cfg.BaseDelayMs,
		KappaMsPerMB: cfg.KappaMsPerMB,
		BlockRate:    cfg.BlockRate,
	}

	// G_norm is resolved once per run from the dataset-wide mean contestable
	// value; the per-round gain scales it by observed congestion.
	gainNorm := cfg.GainRatio * ds.MeanContestableSat()

	state := model.InitialState(cfg)
	acc := NewDiscountedAccumulator(cfg.DiscountFactor, n)

	roiNumer := make([]float64, n)
	costAccum := make([]float64, n)

	var (
		devDecisions  int
		producerDev   int
		producerSeen  int
		rhoHonestSum  float64
		rhoDevSum     float64
		marginGE1     int
		outcomes      []model.RoundOutcome
	)
	if opts.RecordOutcomes {
		outcomes = make([]model.RoundOutcome, 0, rounds*n)
	}

	for t := 0; t < rounds; t++ {
		row := ds.Row(t)

		subsidy := 0.0
		if cfg.IncludeSubsidy {
			subsidy = row.SubsidySat
		}
		mevSat := row.MEVSat
		if opts.Sampler != nil {
			mevSat = opts.Sampler.Draw()
		}

		// Observed utilization against the incoming capacity drives both the
		// state transition and this round's congestion-scaled gain.
		util := policy.Utilization(row.VBytesUsed, state.CapacityVB)
		state = policy.Step(cfg, state, util)

		fee := policy.EffectiveFee(cfg, state, row.RawFeeSat(), row.VBytesUsed)
		prop := net.Evaluate(state.CapacityMB(), cfg.WithholdSec)

		contestable := subsidy + fee + mevSat
		gain := gainNorm * (util / cfg.TargetUtil)

		rhoHonestSum += prop.RhoHonest
		rhoDevSum += prop.RhoDev
		if payoff.Margin(gain, prop.RhoHonest, prop.RhoDev, contestable) >= 1 {
			marginGE1++
		}

		producerIdx, producerKnown := miners.IndexByID(row.MinerID)

		for i, m := range miners.Miners {
			cost := costs.Lookup(row.Date, m.ID, m.CostSatPerBlock)
			res := payoff.Evaluate(payoff.Inputs{
				ContestableSat: contestable,
				GainSat:        gain,
				RhoHonest:      prop.RhoHonest,
				RhoDev:         prop.RhoDev,
				HashShare:      m.HashShare,
				CostSat:        cost,
			})

			if res.Deviate {
				devDecisions++
			}
			if producerKnown && i == producerIdx {
				producerSeen++
				if res.Deviate {
					producerDev++
				}
			}

			roiNumer[i] += res.Honest
			costAccum[i] += cost
			acc.Observe(i, res.Honest, res.Dev)

			if opts.RecordOutcomes {
				outcomes = append(outcomes, model.RoundOutcome{
					Round:           t,
					MinerIndex:      i,
					MinerID:         m.ID,
					ProbHonest:      res.ProbHonest,
					ProbDev:         res.ProbDev,
					PayoffHonestSat: res.Honest,
					PayoffDevSat:    res.Dev,
					Deviate:         res.Deviate,
					RhoHonest:       prop.RhoHonest,
					RhoDev:          prop.RhoDev,
				})
			}
		}
		acc.Advance()
	}

	roi := make([]float64, n)
	for i := range roi {
		if costAccum[i] > 0 {
			roi[i] = roiNumer[i] / costAccum[i]
		}
	}

	betaBar := float64(devDecisions) / float64(rounds*n)
	betaProducer := 0.0
	if producerSeen > 0 {
		betaProducer = float64(producerDev) / float64(producerSeen)
	}

	result := model.RunResult{
		Label:                cfg.Group,
		Config:               cfg,
		GainNormSat:          gainNorm,
		BetaBar:              betaBar,
		StableBFT:            betaBar < model.BFTThreshold,
		BetaProducer:         betaProducer,
		ROIMean:              stat.Mean(roi, nil),
		ROIStd:               stdDevOrZero(roi),
		RhoHonestMean:        rhoHonestSum / float64(rounds),
		RhoDevMean:           rhoDevSum / float64(rounds),
		PrMarginGE1:          float64(marginGE1) / float64(rounds),
		DiscountedHonestMean: stat.Mean(acc.Honest(), nil),
		DiscountedDevMean:    stat.Mean(acc.Dev(), nil),
		Rounds:               rounds,
		Miners:               n,
	}

	return &RunReport{
		Result:           result,
		DiscountedHonest: acc.Honest(),
		DiscountedDev:    acc.Dev(),
		FinalState:       state,
		Outcomes:         outcomes,
	}, nil
}

// stdDevOrZero avoids the NaN gonum returns for a single observation.
func stdDevOrZero(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}
