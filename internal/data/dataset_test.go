package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const blocksCSV = `height,date,total_vbytes,avg_sat_per_vb,mev_sat,block_subsidy_sat,btc_usd,miner_id
840000,2024-04-20,998000,25.5,4200000,312500000,64000,2
840001,2024-04-20,760500,18.0,3100000,312500000,64000,0
840002,2024-04-21,1100000,31.2,5050000,312500000,65500,1
`

func TestLoadBlockDatasetCSV(t *testing.T) {
	path := writeFile(t, "blocks.csv", blocksCSV)

	ds, err := LoadBlockDatasetCSV(path)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 3)

	first := ds.Rows[0]
	assert.Equal(t, int64(840000), first.Height)
	assert.Equal(t, "2024-04-20", first.Date)
	assert.Equal(t, 998000.0, first.VBytesUsed)
	assert.Equal(t, 25.5, first.FeeRateSat)
	assert.Equal(t, 2, first.MinerID)
	assert.InDelta(t, 998000*25.5, first.RawFeeSat(), 1e-6)
}

func TestLoadBlockDatasetCSVOptionalColumns(t *testing.T) {
	path := writeFile(t, "blocks.csv", `date,total_vbytes,avg_sat_per_vb,mev_sat,block_subsidy_sat,btc_usd
2024-04-20,998000,25.5,4200000,312500000,64000
`)

	ds, err := LoadBlockDatasetCSV(path)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, int64(0), ds.Rows[0].Height)
	assert.Equal(t, -1, ds.Rows[0].MinerID) // unknown producer
}

func TestLoadBlockDatasetCSVMissingColumns(t *testing.T) {
	path := writeFile(t, "blocks.csv", `date,total_vbytes,btc_usd
2024-04-20,998000,64000
`)

	_, err := LoadBlockDatasetCSV(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "missing required columns")
	assert.ErrorContains(t, err, "avg_sat_per_vb")
	assert.ErrorContains(t, err, "mev_sat")
}

func TestLoadBlockDatasetCSVBadValue(t *testing.T) {
	path := writeFile(t, "blocks.csv", `date,total_vbytes,avg_sat_per_vb,mev_sat,block_subsidy_sat,btc_usd
2024-04-20,998000,25.5,4200000,312500000,64000
2024-04-21,not-a-number,25.5,4200000,312500000,64000
`)

	_, err := LoadBlockDatasetCSV(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "row 2")
}

func TestLoadBlockDatasetJSON(t *testing.T) {
	path := writeFile(t, "blocks.json", `{"rows":[
		{"height":840000,"date":"2024-04-20","total_vbytes":998000,"avg_sat_per_vb":25.5,"mev_sat":4200000,"block_subsidy_sat":312500000,"btc_usd":64000,"miner_id":2}
	]}`)

	ds, err := LoadBlockDataset(path)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, 2, ds.Rows[0].MinerID)
	assert.Equal(t, 25.5, ds.Rows[0].FeeRateSat)
}

func TestLoadBlockDatasetMissingFile(t *testing.T) {
	_, err := LoadBlockDataset(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
