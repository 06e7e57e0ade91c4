package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"miner-sim/internal/api/models"
	"miner-sim/internal/config"
	"miner-sim/internal/experiment"
	"miner-sim/internal/model"
	"miner-sim/internal/sim"
)

// SimulateHandler runs single configurations on demand.
type SimulateHandler struct {
	logger *zap.Logger
}

func NewSimulateHandler(logger *zap.Logger) *SimulateHandler {
	return &SimulateHandler{logger: logger}
}

// Run handles POST /api/v1/simulate.
func (h *SimulateHandler) Run(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	cfg, err := config.Load(req.ConfigPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_CONFIG", Message: err.Error()},
		})
		return
	}

	report, err := experiment.RunSingle(cfg, req.PolicyGroup, req.GainRatio, req.FeeFloorSat, sim.Options{
		LimitRounds: req.LimitRounds,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "SIMULATION_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.SimulateResponse{
		Status: "completed",
		Result: resultView(report.Result),
	})
}

func resultView(r model.RunResult) models.RunResultView {
	return models.RunResultView{
		Label:        r.Label,
		PolicyGroup:  r.Config.Group,
		GainRatio:    r.Config.GainRatio,
		GainNormSat:  r.GainNormSat,
		FeeFloorSat:  r.Config.FeeFloorSat,
		BetaBar:      r.BetaBar,
		BetaProducer: r.BetaProducer,
		StableBFT:    r.StableBFT,
		ROIMean:      r.ROIMean,
		ROIStd:       r.ROIStd,
		RhoHonest:    r.RhoHonestMean,
		RhoDev:       r.RhoDevMean,
		PrMarginGE1:  r.PrMarginGE1,
		VHonestMean:  r.DiscountedHonestMean,
		VDevMean:     r.DiscountedDevMean,
		Rounds:       r.Rounds,
		Miners:       r.Miners,
	}
}
