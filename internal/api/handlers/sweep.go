package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"miner-sim/internal/analysis"
	"miner-sim/internal/api/models"
	"miner-sim/internal/config"
	"miner-sim/internal/experiment"
)

// SweepHandler runs full grid sweeps on demand.
type SweepHandler struct {
	logger *zap.Logger
}

func NewSweepHandler(logger *zap.Logger) *SweepHandler {
	return &SweepHandler{logger: logger}
}

// Run handles POST /api/v1/sweep. The whole grid runs synchronously; sweeps
// over large round counts are CLI territory.
func (h *SweepHandler) Run(c *gin.Context) {
	var req models.SweepRequest
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

	res, runDir, err := experiment.RunSweep(cfg, h.logger)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "SWEEP_ERROR", Message: err.Error()},
		})
		return
	}

	resp := models.SweepResponse{
		Status:  "completed",
		SweepID: res.ID,
		RunDir:  runDir,
	}
	for _, r := range res.Results {
		resp.Results = append(resp.Results, resultView(r))
	}
	for _, f := range res.Failures {
		resp.Failures = append(resp.Failures, models.FailureView{Label: f.Label, Error: f.Err})
	}
	s := analysis.Summarize(res.Results)
	resp.Summary = models.SummaryView{
		Runs:            s.Runs,
		BetaBarMean:     s.BetaBarMean,
		BetaBarMin:      s.BetaBarMin,
		BetaBarMax:      s.BetaBarMax,
		ROIMeanMean:     s.ROIMeanMean,
		ROIMeanMin:      s.ROIMeanMin,
		ROIMeanMax:      s.ROIMeanMax,
		StableCount:     s.StableCount,
		RhoHonestMean:   s.RhoHonestMean,
		RhoDevMean:      s.RhoDevMean,
		PrMarginGE1Mean: s.PrMarginGE1Mean,
	}

	c.JSON(http.StatusOK, resp)
}
