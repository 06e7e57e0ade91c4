package sim

import (
	"errors"
	"fmt"

	"miner-sim/internal/model"
)

// RunSpec is one fully resolved configuration in a sweep, with a label unique
// within the sweep.
type RunSpec struct {
	Label  string
	Config model.PolicyConfig
}

// Grid describes the cartesian experiment space: a base configuration crossed
// with policy groups, gain ratios and fee floor levels.
type Grid struct {
	Base         model.PolicyConfig
	PolicyGroups []model.PolicyGroup
	GainRatios   []float64
	FeeFloors    []float64
}

// Materialize expands the grid into concrete run specs. Groups with the fee
// floor disabled collapse the floor axis to a single zero value, so the floor
// grid only multiplies configurations that can use it.
func (g Grid) Materialize() ([]RunSpec, error) {
	if len(g.PolicyGroups) == 0 {
		return nil, errors.New("policy group grid is empty")
	}
	if len(g.GainRatios) == 0 {
		return nil, errors.New("g_ratio grid is empty")
	}
	if len(g.FeeFloors) == 0 {
		return nil, errors.New("fee floor grid is empty")
	}

	specs := make([]RunSpec, 0, len(g.GainRatios)*len(g.PolicyGroups)*len(g.FeeFloors))
	for _, ratio := range g.GainRatios {
		for _, group := range g.PolicyGroups {
			floors := g.FeeFloors
			if !group.Flags.FeeFloor {
				floors = []float64{0}
			}
			for _, floor := range floors {
				cfg := g.Base
				cfg.Flags = group.Flags
				cfg.Group = group.Name
				cfg.GainRatio = ratio
				cfg.FeeFloorSat = floor
				specs = append(specs, RunSpec{
					Label:  fmt.Sprintf("%s_g%.4f_ff%.0f", group.Name, ratio, floor),
					Config: cfg,
				})
			}
		}
	}
	return specs, nil
}
