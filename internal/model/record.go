package model

import (
	"errors"
	"fmt"
	"math"
)

// BlockRecord is one historical block's economic facts. Rows are immutable
// inputs to the simulator; nothing in the round loop writes back to them.
//
// Amounts are satoshi unless noted. MinerID is -1 when the block could not be
// attributed to a known pool.
type BlockRecord struct {
	Height     int64   `json:"height"`
	Date       string  `json:"date"` // YYYY-MM-DD
	VBytesUsed float64 `json:"total_vbytes"`
	FeeRateSat float64 `json:"avg_sat_per_vb"`
	MEVSat     float64 `json:"mev_sat"`
	SubsidySat float64 `json:"block_subsidy_sat"`
	PriceUSD   float64 `json:"btc_usd"`
	MinerID    int     `json:"miner_id"`
}

// RawFeeSat is the total fee carried by the block as observed in the data.
func (r BlockRecord) RawFeeSat() float64 {
	return r.FeeRateSat * r.VBytesUsed
}

// BlockDataset is the read-only round input table. Runs longer than the table
// reuse rows cyclically.
type BlockDataset struct {
	Rows []BlockRecord
}

func (d *BlockDataset) Validate() error {
	if d == nil || len(d.Rows) == 0 {
		return errors.New("block dataset is empty")
	}
	for i, r := range d.Rows {
		for name, v := range map[string]float64{
			"total_vbytes":      r.VBytesUsed,
			"avg_sat_per_vb":    r.FeeRateSat,
			"mev_sat":           r.MEVSat,
			"block_subsidy_sat": r.SubsidySat,
			"btc_usd":           r.PriceUSD,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("row %d: %s is not finite", i, name)
			}
		}
		if r.VBytesUsed <= 0 {
			return fmt.Errorf("row %d: total_vbytes must be > 0", i)
		}
	}
	return nil
}

// Row returns the record for round t, cycling when t exceeds the table.
func (d *BlockDataset) Row(t int) BlockRecord {
	return d.Rows[t%len(d.Rows)]
}

// MeanContestableSat is the dataset-wide average contestable value in the
// post-subsidy form (R_t = 0): mean fee rate times mean block size, plus mean
// MEV. Resolved once per run to scale the deviation gain.
func (d *BlockDataset) MeanContestableSat() float64 {
	if len(d.Rows) == 0 {
		return 0
	}
	var rate, vbytes, mev float64
	for _, r := range d.Rows {
		rate += r.FeeRateSat
		vbytes += r.VBytesUsed
		mev += r.MEVSat
	}
	n := float64(len(d.Rows))
	return (rate/n)*(vbytes/n) + mev/n
}

// MeanPriceUSD is the average exchange price across the table, used as the
// fallback when a cost row's date has no matching block.
func (d *BlockDataset) MeanPriceUSD() float64 {
	if len(d.Rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range d.Rows {
		sum += r.PriceUSD
	}
	return sum / float64(len(d.Rows))
}

// PriceByDate maps each date to the first observed exchange price on that day.
func (d *BlockDataset) PriceByDate() map[string]float64 {
	out := make(map[string]float64)
	for _, r := range d.Rows {
		if _, ok := out[r.Date]; !ok {
			out[r.Date] = r.PriceUSD
		}
	}
	return out
}
