package data

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"miner-sim/internal/model"
)

// BlocksPerDay converts a daily pool cost to a per-block cost; the cost table
// reports the total cost of mining a day's ~144 blocks.
const BlocksPerDay = 144

var requiredPoolColumns = []string{
	"date",
	"miner_id",
	"daily_share",
	"cost_usd_per_day",
}

// PoolCostRow is one (date, miner) row of the pool daily cost table.
type PoolCostRow struct {
	Date          string
	MinerID       int
	PoolName      string
	DailyShare    float64
	CostUSDPerDay float64
}

// LoadPoolCosts reads the pool daily cost table.
func LoadPoolCosts(path string) ([]PoolCostRow, error) {
	rows, cols, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if missing := missingColumns(cols, requiredPoolColumns); len(missing) != 0 {
		return nil, fmt.Errorf("pool cost table %s missing required columns: %s", path, strings.Join(missing, ", "))
	}

	out := make([]PoolCostRow, 0, len(rows))
	for i, row := range rows {
		var r PoolCostRow
		r.Date = row[cols["date"]]
		id, err := strconv.Atoi(strings.TrimSpace(row[cols["miner_id"]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: miner_id: %w", i+1, err)
		}
		r.MinerID = id
		if idx, ok := cols["pool_name"]; ok {
			r.PoolName = row[idx]
		}
		if r.DailyShare, err = parseFloat(row, cols, "daily_share"); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if r.CostUSDPerDay, err = parseFloat(row, cols, "cost_usd_per_day"); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("pool cost table %s has no rows", path)
	}
	return out, nil
}

// BuildMinerSet selects the topN pools by average daily share, normalizes the
// shares to sum to 1 across the selection, and derives a fallback per-block
// cost from each pool's average daily cost at the dataset's mean price.
func BuildMinerSet(rows []PoolCostRow, topN int, meanPriceUSD float64) (model.MinerSet, error) {
	if topN <= 0 {
		return model.MinerSet{}, fmt.Errorf("top miner count must be > 0, got %d", topN)
	}
	if meanPriceUSD <= 0 {
		return model.MinerSet{}, fmt.Errorf("mean price must be > 0, got %v", meanPriceUSD)
	}

	type agg struct {
		name     string
		shareSum float64
		costSum  float64
		rowCount int
	}
	byMiner := make(map[int]*agg)
	for _, r := range rows {
		a, ok := byMiner[r.MinerID]
		if !ok {
			a = &agg{name: r.PoolName}
			byMiner[r.MinerID] = a
		}
		a.shareSum += r.DailyShare
		a.costSum += r.CostUSDPerDay
		a.rowCount++
	}

	type pool struct {
		id       int
		name     string
		avgShare float64
		avgCost  float64
	}
	pools := make([]pool, 0, len(byMiner))
	for id, a := range byMiner {
		pools = append(pools, pool{
			id:       id,
			name:     a.name,
			avgShare: a.shareSum / float64(a.rowCount),
			avgCost:  a.costSum / float64(a.rowCount),
		})
	}
	sort.Slice(pools, func(i, j int) bool {
		if pools[i].avgShare != pools[j].avgShare {
			return pools[i].avgShare > pools[j].avgShare
		}
		return pools[i].id < pools[j].id
	})
	if topN > len(pools) {
		topN = len(pools)
	}
	pools = pools[:topN]

	total := 0.0
	for _, p := range pools {
		total += p.avgShare
	}
	if total <= 0 {
		return model.MinerSet{}, fmt.Errorf("selected pools have zero total share")
	}

	set := model.MinerSet{Miners: make([]model.Miner, 0, len(pools))}
	for _, p := range pools {
		set.Miners = append(set.Miners, model.Miner{
			ID:              p.id,
			Name:            p.name,
			HashShare:       p.avgShare / total,
			CostSatPerBlock: USDPerDayToSatPerBlock(p.avgCost, meanPriceUSD),
		})
	}
	if err := set.Validate(); err != nil {
		return model.MinerSet{}, err
	}
	return set, nil
}

// BuildCostTable converts the daily USD costs into per-(date, miner) satoshi
// per-block costs, pricing each date with that day's exchange rate and
// falling back to the dataset mean when the date is missing.
func BuildCostTable(rows []PoolCostRow, priceByDate map[string]float64, fallbackPriceUSD float64) (*model.CostTable, error) {
	if fallbackPriceUSD <= 0 {
		return nil, fmt.Errorf("fallback price must be > 0, got %v", fallbackPriceUSD)
	}
	table := model.NewCostTable()
	for _, r := range rows {
		price, ok := priceByDate[r.Date]
		if !ok || price <= 0 {
			price = fallbackPriceUSD
		}
		table.Set(r.Date, r.MinerID, USDPerDayToSatPerBlock(r.CostUSDPerDay, price))
	}
	return table, nil
}

// USDPerDayToSatPerBlock converts a pool's daily USD cost to satoshi per
// block at the given exchange price.
func USDPerDayToSatPerBlock(costUSDPerDay, priceUSD float64) float64 {
	return costUSDPerDay / BlocksPerDay / priceUSD * 1e8
}
