package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"miner-sim/internal/analysis"
	"miner-sim/internal/config"
	"miner-sim/internal/experiment"
	"miner-sim/internal/propagation"
	"miner-sim/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "sweep":
		cmdSweep(os.Args[2:])
	case "run":
		cmdRun(os.Args[2:])
	case "threshold":
		cmdThreshold(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli sweep --config examples/config.yaml")
	fmt.Println("  cli run --config examples/config.yaml --group F_NONE --g-ratio 0.002")
	fmt.Println("  cli threshold --base-delay 742 --kappa 26.40 --b-mb 1 --w 0,0.5,1,2,5")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - sweep runs the full policy/parameter grid and writes one results.csv per invocation")
	fmt.Println("  - run executes a single configuration and can dump the per-round ledger")
	fmt.Println("  - threshold prints the analytic deviation threshold, no dataset needed")
}

func newLogger() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}

func cmdSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML experiment config")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	res, runDir, err := experiment.RunSweep(cfg, logger)
	if err != nil {
		logger.Fatal("sweep failed", zap.Error(err))
	}

	s := analysis.Summarize(res.Results)
	fmt.Printf("\nWrote %d result rows to %s\n", len(res.Results), filepath.Join(runDir, "results.csv"))
	if len(res.Failures) > 0 {
		fmt.Printf("%d configurations failed (see failures.csv):\n", len(res.Failures))
		for _, f := range res.Failures {
			fmt.Printf("  %s: %s\n", f.Label, f.Err)
		}
	}
	fmt.Printf("beta_bar mean=%.4f range=[%.4f, %.4f]\n", s.BetaBarMean, s.BetaBarMin, s.BetaBarMax)
	fmt.Printf("ROI mean=%.4f range=[%.4f, %.4f]\n", s.ROIMeanMean, s.ROIMeanMin, s.ROIMeanMax)
	fmt.Printf("BFT-stable: %d/%d configurations\n", s.StableCount, s.Runs)

	fmt.Println("\nTop configurations by deviation suppression:")
	ranked := analysis.RankBySuppression(res.Results)
	fmt.Printf("%-4s %-28s %-10s %-10s %-8s\n", "rank", "label", "beta_bar", "roi_mean", "stable")
	for i, r := range ranked {
		if i >= 10 {
			break
		}
		fmt.Printf("%-4d %-28s %-10.4f %-10.4f %-8v\n", i+1, r.Label, r.BetaBar, r.ROIMean, r.StableBFT)
	}
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML experiment config")
	group := fs.String("group", "F_NONE", "Policy group name (A_BF_FF_AD ... F_NONE)")
	gRatio := fs.Float64("g-ratio", 0, "Deviation gain ratio G_ratio")
	feeFloor := fs.Float64("fee-floor", 0, "Fee floor in sat (used by floor-enabled groups)")
	limit := fs.Int("n", 0, "Optional: limit to first N rounds (0=all)")
	outPath := fs.String("out", "", "Optional: write the per-round ledger CSV here")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	report, err := experiment.RunSingle(cfg, *group, *gRatio, *feeFloor, sim.Options{
		LimitRounds:    *limit,
		RecordOutcomes: *outPath != "",
	})
	if err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}

	r := report.Result
	fmt.Printf("group=%s g_ratio=%g fee_floor=%g rounds=%d miners=%d\n",
		r.Config.Group, r.Config.GainRatio, r.Config.FeeFloorSat, r.Rounds, r.Miners)
	fmt.Printf("beta_bar=%.4f (producer %.4f) stable_bft=%v\n", r.BetaBar, r.BetaProducer, r.StableBFT)
	fmt.Printf("ROI mean=%.4f std=%.4f\n", r.ROIMean, r.ROIStd)
	fmt.Printf("rho_honest=%.6f rho_dev=%.6f pr(D>=1)=%.4f\n", r.RhoHonestMean, r.RhoDevMean, r.PrMarginGE1)
	fmt.Printf("V_honest mean=%.1f V_dev mean=%.1f\n", r.DiscountedHonestMean, r.DiscountedDevMean)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			logger.Fatal("create output dir", zap.Error(err))
		}
		if err := sim.WriteOutcomesCSV(*outPath, report.Outcomes); err != nil {
			logger.Fatal("write outcomes", zap.Error(err))
		}
		fmt.Printf("Wrote %d ledger rows to %s\n", len(report.Outcomes), *outPath)
	}
}

func cmdThreshold(args []string) {
	fs := flag.NewFlagSet("threshold", flag.ExitOnError)
	baseDelay := fs.Float64("base-delay", 742, "Base propagation delay, ms")
	kappa := fs.Float64("kappa", 26.40, "Marginal delay per MB, ms")
	lambda := fs.Float64("lambda", 1.0/600.0, "Block arrival rate per second")
	bMB := fs.Float64("b-mb", 1.0, "Block size, MB")
	ws := fs.String("w", "0,0.5,1,2,5,10", "Comma-separated withholding delays, seconds")
	_ = fs.Parse(args)

	withholds, err := parseFloats(*ws)
	if err != nil {
		fmt.Printf("invalid --w: %v\n", err)
		os.Exit(2)
	}

	m := propagation.Model{BaseDelayMs: *baseDelay, KappaMsPerMB: *kappa, BlockRate: *lambda}
	curve := analysis.ThresholdCurve(m, *bMB, withholds)

	fmt.Printf("%-8s %-8s %-12s %-12s %-12s %-12s %-12s\n",
		"w_sec", "b_mb", "delay_hon_s", "delay_dev_s", "rho_honest", "rho_dev", "ratio")
	for _, p := range curve {
		fmt.Printf("%-8.2f %-8.2f %-12.4f %-12.4f %-12.6f %-12.6f %-12.6f\n",
			p.WithholdSec, p.CapacityMB, p.DelayHonestSec, p.DelayDevSec, p.RhoHonest, p.RhoDev, p.Ratio)
	}
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no values in %q", s)
	}
	return out, nil
}
