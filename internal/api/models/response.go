package models

// RunResultView is the JSON shape of one run's aggregate.
type RunResultView struct {
	Label        string  `json:"label"`
	PolicyGroup  string  `json:"policy_group"`
	GainRatio    float64 `json:"g_ratio"`
	GainNormSat  float64 `json:"g_norm_sat"`
	FeeFloorSat  float64 `json:"fee_floor_sat"`
	BetaBar      float64 `json:"beta_bar"`
	BetaProducer float64 `json:"beta_producer"`
	StableBFT    bool    `json:"stable_bft"`
	ROIMean      float64 `json:"roi_mean"`
	ROIStd       float64 `json:"roi_std"`
	RhoHonest    float64 `json:"rho_honest_mean"`
	RhoDev       float64 `json:"rho_dev_mean"`
	PrMarginGE1  float64 `json:"pr_margin_ge_1"`
	VHonestMean  float64 `json:"v_honest_mean"`
	VDevMean     float64 `json:"v_dev_mean"`
	Rounds       int     `json:"rounds"`
	Miners       int     `json:"miners"`
}

// SimulateResponse wraps a single run.
type SimulateResponse struct {
	Status string        `json:"status"`
	Result RunResultView `json:"result"`
}

// SweepResponse wraps a full grid sweep.
type SweepResponse struct {
	Status   string          `json:"status"`
	SweepID  string          `json:"sweep_id"`
	RunDir   string          `json:"run_dir"`
	Results  []RunResultView `json:"results"`
	Failures []FailureView   `json:"failures,omitempty"`
	Summary  SummaryView     `json:"summary"`
}

// FailureView is a failed configuration marker.
type FailureView struct {
	Label string `json:"label"`
	Error string `json:"error"`
}

// SummaryView is the cross-run headline table.
type SummaryView struct {
	Runs            int     `json:"runs"`
	BetaBarMean     float64 `json:"beta_bar_mean"`
	BetaBarMin      float64 `json:"beta_bar_min"`
	BetaBarMax      float64 `json:"beta_bar_max"`
	ROIMeanMean     float64 `json:"roi_mean_mean"`
	ROIMeanMin      float64 `json:"roi_mean_min"`
	ROIMeanMax      float64 `json:"roi_mean_max"`
	StableCount     int     `json:"stable_count"`
	RhoHonestMean   float64 `json:"rho_honest_mean"`
	RhoDevMean      float64 `json:"rho_dev_mean"`
	PrMarginGE1Mean float64 `json:"pr_margin_ge_1_mean"`
}

// PolicyGroupInfo describes one canonical policy group.
type PolicyGroupInfo struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	BaseFee          bool   `json:"base_fee"`
	FeeFloor         bool   `json:"fee_floor"`
	AdaptiveCapacity bool   `json:"adaptive_capacity"`
}

// ThresholdPointView is one point of the analytic threshold curve.
type ThresholdPointView struct {
	WithholdSec    float64 `json:"w_seconds"`
	CapacityMB     float64 `json:"capacity_mb"`
	DelayHonestSec float64 `json:"delay_honest_sec"`
	DelayDevSec    float64 `json:"delay_dev_sec"`
	RhoHonest      float64 `json:"rho_honest"`
	RhoDev         float64 `json:"rho_dev"`
	Ratio          float64 `json:"ratio"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
