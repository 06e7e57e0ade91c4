package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const poolsCSV = `date,miner_id,pool_name,daily_share,cost_usd_per_day
2024-04-20,0,foundry,0.30,4000000
2024-04-20,1,antpool,0.25,3400000
2024-04-20,2,viabtc,0.15,2000000
2024-04-20,3,smallpool,0.05,700000
2024-04-21,0,foundry,0.32,4100000
2024-04-21,1,antpool,0.23,3300000
2024-04-21,2,viabtc,0.15,2000000
2024-04-21,3,smallpool,0.05,700000
`

func TestLoadPoolCosts(t *testing.T) {
	path := writeFile(t, "pools.csv", poolsCSV)

	rows, err := LoadPoolCosts(path)
	require.NoError(t, err)
	require.Len(t, rows, 8)

	assert.Equal(t, "2024-04-20", rows[0].Date)
	assert.Equal(t, 0, rows[0].MinerID)
	assert.Equal(t, "foundry", rows[0].PoolName)
	assert.Equal(t, 0.30, rows[0].DailyShare)
	assert.Equal(t, 4_000_000.0, rows[0].CostUSDPerDay)
}

func TestLoadPoolCostsMissingColumns(t *testing.T) {
	path := writeFile(t, "pools.csv", "date,miner_id\n2024-04-20,0\n")

	_, err := LoadPoolCosts(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "daily_share")
	assert.ErrorContains(t, err, "cost_usd_per_day")
}

func TestBuildMinerSet(t *testing.T) {
	path := writeFile(t, "pools.csv", poolsCSV)
	rows, err := LoadPoolCosts(path)
	require.NoError(t, err)

	set, err := BuildMinerSet(rows, 3, 64_000)
	require.NoError(t, err)
	require.Len(t, set.Miners, 3)

	// Largest average share first; the tail pool is dropped.
	assert.Equal(t, "foundry", set.Miners[0].Name)
	assert.Equal(t, "antpool", set.Miners[1].Name)
	assert.Equal(t, "viabtc", set.Miners[2].Name)

	// Shares renormalize over the selection.
	total := 0.0
	for _, m := range set.Miners {
		total += m.HashShare
	}
	assert.InDelta(t, 1.0, total, 1e-12)
	assert.InDelta(t, 0.31/0.70, set.Miners[0].HashShare, 1e-12)

	// Fallback cost prices the average daily cost at the mean exchange rate.
	wantCost := USDPerDayToSatPerBlock(4_050_000, 64_000)
	assert.InDelta(t, wantCost, set.Miners[0].CostSatPerBlock, 1e-6)
}

func TestBuildMinerSetClampsTopN(t *testing.T) {
	path := writeFile(t, "pools.csv", poolsCSV)
	rows, err := LoadPoolCosts(path)
	require.NoError(t, err)

	set, err := BuildMinerSet(rows, 50, 64_000)
	require.NoError(t, err)
	assert.Len(t, set.Miners, 4)
}

func TestBuildMinerSetRejectsBadArgs(t *testing.T) {
	_, err := BuildMinerSet(nil, 0, 64_000)
	assert.ErrorContains(t, err, "top miner count")

	_, err = BuildMinerSet(nil, 5, 0)
	assert.ErrorContains(t, err, "mean price")
}

func TestBuildCostTable(t *testing.T) {
	rows := []PoolCostRow{
		{Date: "2024-04-20", MinerID: 0, CostUSDPerDay: 4_000_000},
		{Date: "2024-04-22", MinerID: 0, CostUSDPerDay: 4_000_000}, // date missing a price
	}
	prices := map[string]float64{"2024-04-20": 64_000}

	table, err := BuildCostTable(rows, prices, 50_000)
	require.NoError(t, err)

	got := table.Lookup("2024-04-20", 0, -1)
	assert.InDelta(t, USDPerDayToSatPerBlock(4_000_000, 64_000), got, 1e-6)

	got = table.Lookup("2024-04-22", 0, -1)
	assert.InDelta(t, USDPerDayToSatPerBlock(4_000_000, 50_000), got, 1e-6)

	// Unknown (date, miner) pairs fall through to the caller's default.
	assert.Equal(t, 123.0, table.Lookup("2024-04-25", 9, 123.0))
}

func TestUSDPerDayToSatPerBlock(t *testing.T) {
	// $4.032M/day at $70k/BTC: $28k per block, 0.4 BTC, 4e7 sat.
	got := USDPerDayToSatPerBlock(4_032_000, 70_000)
	assert.InDelta(t, 4e7, got, 1e-3)
}
