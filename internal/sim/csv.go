package sim

import (
	"encoding/csv"
	"os"
	"strconv"

	"miner-sim/internal/model"
)

// WriteResultsCSV persists one row per completed configuration.
func WriteResultsCSV(path string, results []model.RunResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"label",
		"policy_group",
		"base_fee",
		"fee_floor",
		"adaptive_capacity",
		"g_ratio",
		"g_norm_sat",
		"fee_floor_sat",
		"w_seconds",
		"gamma",
		"run_length",
		"beta_bar",
		"beta_producer",
		"stable_bft",
		"roi_mean",
		"roi_std",
		"rho_honest_mean",
		"rho_dev_mean",
		"pr_margin_ge_1",
		"v_honest_mean",
		"v_dev_mean",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Label,
			r.Config.Group,
			strconv.FormatBool(r.Config.Flags.BaseFee),
			strconv.FormatBool(r.Config.Flags.FeeFloor),
			strconv.FormatBool(r.Config.Flags.AdaptiveCapacity),
			fmtFloat(r.Config.GainRatio),
			fmtFloat(r.GainNormSat),
			fmtFloat(r.Config.FeeFloorSat),
			fmtFloat(r.Config.WithholdSec),
			fmtFloat(r.Config.DiscountFactor),
			strconv.Itoa(r.Rounds),
			fmtFloat(r.BetaBar),
			fmtFloat(r.BetaProducer),
			strconv.FormatBool(r.StableBFT),
			fmtFloat(r.ROIMean),
			fmtFloat(r.ROIStd),
			fmtFloat(r.RhoHonestMean),
			fmtFloat(r.RhoDevMean),
			fmtFloat(r.PrMarginGE1),
			fmtFloat(r.DiscountedHonestMean),
			fmtFloat(r.DiscountedDevMean),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteFailuresCSV persists the failure markers collected during a sweep.
func WriteFailuresCSV(path string, failures []FailedRun) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"label", "error"}); err != nil {
		return err
	}
	for _, fr := range failures {
		if err := w.Write([]string{fr.Label, fr.Err}); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteOutcomesCSV persists a run's full (round, miner) ledger.
func WriteOutcomesCSV(path string, outcomes []model.RoundOutcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"round",
		"miner_id",
		"p_honest",
		"p_dev",
		"payoff_honest_sat",
		"payoff_dev_sat",
		"decision",
		"rho_honest",
		"rho_dev",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, o := range outcomes {
		row := []string{
			strconv.Itoa(o.Round),
			strconv.Itoa(o.MinerID),
			fmtFloat(o.ProbHonest),
			fmtFloat(o.ProbDev),
			fmtFloat(o.PayoffHonestSat),
			fmtFloat(o.PayoffDevSat),
			string(o.Decision()),
			fmtFloat(o.RhoHonest),
			fmtFloat(o.RhoDev),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
