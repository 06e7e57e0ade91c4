package sim

import (
	"fmt"
	"os"
	"path/filepath"
)

// PersistSweep writes a sweep's results under a run-scoped directory,
// <outDir>/run_id=<id>/, together with an echo of the configuration that
// produced them. Returns the run directory path.
func PersistSweep(outDir string, res *SweepResult, configEcho []byte) (string, error) {
	runDir := filepath.Join(outDir, fmt.Sprintf("run_id=%s", res.ID))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	if err := WriteResultsCSV(filepath.Join(runDir, "results.csv"), res.Results); err != nil {
		return "", fmt.Errorf("write results: %w", err)
	}
	if len(res.Failures) > 0 {
		if err := WriteFailuresCSV(filepath.Join(runDir, "failures.csv"), res.Failures); err != nil {
			return "", fmt.Errorf("write failures: %w", err)
		}
	}
	if len(configEcho) > 0 {
		if err := os.WriteFile(filepath.Join(runDir, "config.yaml"), configEcho, 0o644); err != nil {
			return "", fmt.Errorf("write config echo: %w", err)
		}
	}
	return runDir, nil
}
