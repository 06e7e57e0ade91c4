package models

// SimulateRequest runs one configuration from an experiment config on disk.
// Grid axes are pinned to a single point by the request.
type SimulateRequest struct {
	ConfigPath  string  `json:"config_path" binding:"required"`
	PolicyGroup string  `json:"policy_group" binding:"required"`
	GainRatio   float64 `json:"g_ratio"`
	FeeFloorSat float64 `json:"fee_floor_sat"`

	// LimitRounds optionally caps the run below the configured length so
	// interactive callers get fast answers. 0 = full length.
	LimitRounds int `json:"limit_rounds,omitempty"`
}

// SweepRequest runs the full grid described by an experiment config.
type SweepRequest struct {
	ConfigPath string `json:"config_path" binding:"required"`
}

// ThresholdRequest evaluates the analytic deviation threshold curve.
type ThresholdRequest struct {
	BaseDelayMs  float64   `form:"base_delay_ms"`
	KappaMsPerMB float64   `form:"kappa_ms_per_mb"`
	Lambda       float64   `form:"lambda"`
	CapacityMB   float64   `form:"capacity_mb"`
	WithholdSecs []float64 `form:"w_seconds"`
}
