package experiment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"miner-sim/internal/config"
	"miner-sim/internal/sim"
)

const blocksCSV = `date,total_vbytes,avg_sat_per_vb,mev_sat,block_subsidy_sat,btc_usd,miner_id
2024-04-20,998000,25.5,4200000,312500000,64000,0
2024-04-20,760500,18.0,3100000,312500000,64000,1
2024-04-21,1100000,31.2,5050000,312500000,65500,0
2024-04-21,905000,22.1,3900000,312500000,65500,2
`

const poolsCSV = `date,miner_id,pool_name,daily_share,cost_usd_per_day
2024-04-20,0,foundry,0.55,4000000
2024-04-20,1,antpool,0.30,3400000
2024-04-20,2,viabtc,0.15,2000000
2024-04-21,0,foundry,0.55,4100000
2024-04-21,1,antpool,0.30,3300000
2024-04-21,2,viabtc,0.15,2000000
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	blocks := filepath.Join(dir, "blocks.csv")
	pools := filepath.Join(dir, "pools.csv")
	require.NoError(t, os.WriteFile(blocks, []byte(blocksCSV), 0o644))
	require.NoError(t, os.WriteFile(pools, []byte(poolsCSV), 0o644))

	cfgYAML := `
dataset: ` + blocks + `
pool_costs: ` + pools + `
out_dir: ` + filepath.Join(dir, "out") + `
top_miners: 3
sim:
  run_length: 50
  w_seconds: 0.5
  base_delay_ms: 742
  kappa_ms_per_mb: 26.4
grid:
  g_ratio_grid: [0.0005]
  fee_floor_grid: [0, 2000000]
  policy_flags_grid: [F_NONE, C_BF_FF]
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfgYAML), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func TestLoadInputs(t *testing.T) {
	in, err := LoadInputs(testConfig(t))
	require.NoError(t, err)

	assert.Len(t, in.Dataset.Rows, 4)
	assert.Len(t, in.Miners.Miners, 3)
	assert.Equal(t, 6, in.Costs.Len())
	assert.Equal(t, "foundry", in.Miners.Miners[0].Name)
}

func TestBuildGrid(t *testing.T) {
	specs, err := BuildGrid(testConfig(t))
	require.NoError(t, err)

	// F_NONE collapses the floor axis, C_BF_FF takes both floors.
	require.Len(t, specs, 3)
}

func TestBuildSampler(t *testing.T) {
	cfg := testConfig(t)
	in, err := LoadInputs(cfg)
	require.NoError(t, err)

	s, err := BuildSampler(cfg, in.Dataset)
	require.NoError(t, err)
	assert.Nil(t, s) // "data" mode replays the column

	cfg.Sim.MEVSampler = "lognormal"
	s, err = BuildSampler(cfg, in.Dataset)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Greater(t, s.Draw(), 0.0)

	cfg.Sim.MEVSampler = "empirical"
	s, err = BuildSampler(cfg, in.Dataset)
	require.NoError(t, err)
	require.NotNil(t, s)

	cfg.Sim.MEVSampler = "bogus"
	_, err = BuildSampler(cfg, in.Dataset)
	assert.Error(t, err)
}

func TestRunSweep(t *testing.T) {
	cfg := testConfig(t)

	res, runDir, err := RunSweep(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, res.Results, 3)
	assert.Empty(t, res.Failures)
	assert.FileExists(t, filepath.Join(runDir, "results.csv"))
	assert.FileExists(t, filepath.Join(runDir, "config.yaml"))
}

func TestRunSingle(t *testing.T) {
	cfg := testConfig(t)

	report, err := RunSingle(cfg, "F_NONE", 0.0005, 0, sim.Options{})
	require.NoError(t, err)
	assert.Equal(t, 50, report.Result.Rounds)
	assert.Equal(t, "F_NONE", report.Result.Config.Group)

	_, err = RunSingle(cfg, "NOPE", 0.0005, 0, sim.Options{})
	assert.ErrorContains(t, err, "unknown policy group")
}
