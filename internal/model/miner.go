package model

import (
	"errors"
	"fmt"
	"math"
)

// ShareSumTolerance bounds how far the hash shares of the active miner set may
// drift from 1 before the set is rejected as misconfigured.
const ShareSumTolerance = 1e-6

// Miner is one pool in the active miner set. HashShare is h_i, the fraction of
// network hash rate; CostSatPerBlock is the fallback per-round operating cost
// used when no dated cost row matches.
type Miner struct {
	ID              int
	Name            string
	HashShare       float64
	CostSatPerBlock float64
}

// MinerSet is the read-only miner table for a run. Shares are expected to be
// normalized so they sum to ~1.
type MinerSet struct {
	Miners []Miner
}

func (s MinerSet) Validate() error {
	if len(s.Miners) == 0 {
		return errors.New("miner set is empty")
	}
	sum := 0.0
	seen := make(map[int]bool, len(s.Miners))
	for _, m := range s.Miners {
		if math.IsNaN(m.HashShare) || m.HashShare <= 0 || m.HashShare > 1 {
			return fmt.Errorf("miner %d: hash share %v must be in (0, 1]", m.ID, m.HashShare)
		}
		if math.IsNaN(m.CostSatPerBlock) || math.IsInf(m.CostSatPerBlock, 0) || m.CostSatPerBlock < 0 {
			return fmt.Errorf("miner %d: cost per block must be finite and >= 0", m.ID)
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate miner id %d", m.ID)
		}
		seen[m.ID] = true
		sum += m.HashShare
	}
	if math.Abs(sum-1) > ShareSumTolerance {
		return fmt.Errorf("hash shares sum to %v, want 1 within %v", sum, ShareSumTolerance)
	}
	return nil
}

// IndexByID returns the position of the miner with the given id, or false when
// the id is not part of the set.
func (s MinerSet) IndexByID(id int) (int, bool) {
	for i, m := range s.Miners {
		if m.ID == id {
			return i, true
		}
	}
	return -1, false
}

// CostTable maps (date, miner) to a per-block operating cost in satoshi.
// Built once from the pool cost table, read-only during simulation.
type CostTable struct {
	costs map[string]map[int]float64
}

func NewCostTable() *CostTable {
	return &CostTable{costs: make(map[string]map[int]float64)}
}

func (t *CostTable) Set(date string, minerID int, costSat float64) {
	day, ok := t.costs[date]
	if !ok {
		day = make(map[int]float64)
		t.costs[date] = day
	}
	day[minerID] = costSat
}

// Lookup returns the cost for (date, minerID), falling back to the supplied
// value when the date or miner is missing.
func (t *CostTable) Lookup(date string, minerID int, fallback float64) float64 {
	if t == nil {
		return fallback
	}
	if day, ok := t.costs[date]; ok {
		if c, ok := day[minerID]; ok {
			return c
		}
	}
	return fallback
}

func (t *CostTable) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, day := range t.costs {
		n += len(day)
	}
	return n
}
