// Package data loads the two read-only input tables the simulator consumes:
// the consolidated block dataset and the pool daily cost table. Fetching and
// consolidation happen upstream; this package only reads their outputs.
package data

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"miner-sim/internal/model"
)

var requiredBlockColumns = []string{
	"date",
	"total_vbytes",
	"avg_sat_per_vb",
	"mev_sat",
	"block_subsidy_sat",
	"btc_usd",
}

// LoadBlockDatasetCSV reads a consolidated block dataset. A missing required
// column fails the whole invocation; rows with unparseable required values
// are rejected rather than skipped.
func LoadBlockDatasetCSV(path string) (*model.BlockDataset, error) {
	rows, cols, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if missing := missingColumns(cols, requiredBlockColumns); len(missing) != 0 {
		return nil, fmt.Errorf("block dataset %s missing required columns: %s", path, strings.Join(missing, ", "))
	}

	ds := &model.BlockDataset{Rows: make([]model.BlockRecord, 0, len(rows))}
	for i, row := range rows {
		rec := model.BlockRecord{MinerID: -1}
		rec.Date = row[cols["date"]]
		if rec.VBytesUsed, err = parseFloat(row, cols, "total_vbytes"); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if rec.FeeRateSat, err = parseFloat(row, cols, "avg_sat_per_vb"); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if rec.MEVSat, err = parseFloat(row, cols, "mev_sat"); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if rec.SubsidySat, err = parseFloat(row, cols, "block_subsidy_sat"); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if rec.PriceUSD, err = parseFloat(row, cols, "btc_usd"); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if idx, ok := cols["height"]; ok && row[idx] != "" {
			h, err := strconv.ParseInt(row[idx], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: height: %w", i+1, err)
			}
			rec.Height = h
		}
		if idx, ok := cols["miner_id"]; ok && row[idx] != "" {
			id, err := strconv.Atoi(row[idx])
			if err != nil {
				return nil, fmt.Errorf("row %d: miner_id: %w", i+1, err)
			}
			rec.MinerID = id
		}
		ds.Rows = append(ds.Rows, rec)
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("block dataset %s: %w", path, err)
	}
	return ds, nil
}

// blockDatasetFile is the JSON shape of an exported dataset.
type blockDatasetFile struct {
	Rows []model.BlockRecord `json:"rows"`
}

// LoadBlockDatasetJSON reads a dataset exported as JSON ({"rows": [...]}).
func LoadBlockDatasetJSON(path string) (*model.BlockDataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file blockDatasetFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse block dataset %s: %w", path, err)
	}
	ds := &model.BlockDataset{Rows: file.Rows}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("block dataset %s: %w", path, err)
	}
	return ds, nil
}

// LoadBlockDataset picks the loader from the file extension.
func LoadBlockDataset(path string) (*model.BlockDataset, error) {
	if strings.HasSuffix(path, ".json") {
		return LoadBlockDatasetJSON(path)
	}
	return LoadBlockDatasetCSV(path)
}
