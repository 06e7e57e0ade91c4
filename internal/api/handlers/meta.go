package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"miner-sim/internal/analysis"
	"miner-sim/internal/api/models"
	"miner-sim/internal/model"
	"miner-sim/internal/propagation"
)

// ListPolicyGroups handles GET /api/v1/policies.
func ListPolicyGroups(c *gin.Context) {
	groups := model.DefaultPolicyGroups()
	out := make([]models.PolicyGroupInfo, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.PolicyGroupInfo{
			Name:             g.Name,
			Description:      g.Description,
			BaseFee:          g.Flags.BaseFee,
			FeeFloor:         g.Flags.FeeFloor,
			AdaptiveCapacity: g.Flags.AdaptiveCapacity,
		})
	}
	c.JSON(http.StatusOK, gin.H{"policy_groups": out})
}

// Threshold handles GET /api/v1/threshold: the analytic deviation threshold
// curve for a parameterized delay model.
func Threshold(c *gin.Context) {
	var req models.ThresholdRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}
	if req.BaseDelayMs <= 0 {
		req.BaseDelayMs = 742
	}
	if req.KappaMsPerMB <= 0 {
		req.KappaMsPerMB = 26.40
	}
	if req.Lambda <= 0 {
		req.Lambda = 1.0 / 600.0
	}
	if req.CapacityMB <= 0 {
		req.CapacityMB = 1.0
	}
	if len(req.WithholdSecs) == 0 {
		req.WithholdSecs = []float64{0, 0.5, 1, 2, 5, 10}
	}

	m := propagation.Model{
		BaseDelayMs:  req.BaseDelayMs,
		KappaMsPerMB: req.KappaMsPerMB,
		BlockRate:    req.Lambda,
	}
	curve := analysis.ThresholdCurve(m, req.CapacityMB, req.WithholdSecs)

	out := make([]models.ThresholdPointView, 0, len(curve))
	for _, p := range curve {
		out = append(out, models.ThresholdPointView{
			WithholdSec:    p.WithholdSec,
			CapacityMB:     p.CapacityMB,
			DelayHonestSec: p.DelayHonestSec,
			DelayDevSec:    p.DelayDevSec,
			RhoHonest:      p.RhoHonest,
			RhoDev:         p.RhoDev,
			Ratio:          p.Ratio,
		})
	}
	c.JSON(http.StatusOK, gin.H{"points": out})
}
