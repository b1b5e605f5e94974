package dto

// UpdateAlgorithmConfigRequest patches the lottery tuning knobs. Updating
// thresholds does not retier anyone; staff follow up with an explicit
// reclassify call.
type UpdateAlgorithmConfigRequest struct {
	FastThresholdMinutes    *int `json:"fast_threshold_minutes"    binding:"omitempty,min=60,max=600"`
	AverageThresholdMinutes *int `json:"average_threshold_minutes" binding:"omitempty,min=60,max=600"`
	FairnessWeight          *int `json:"fairness_weight"           binding:"omitempty,min=0,max=100"`
	SpeedBiasWeight         *int `json:"speed_bias_weight"         binding:"omitempty,min=0,max=100"`
	DeniedStreakWeight      *int `json:"denied_streak_weight"      binding:"omitempty,min=0,max=100"`
}

// AlgorithmConfigResponse is the current tuning row.
type AlgorithmConfigResponse struct {
	FastThresholdMinutes    int    `json:"fast_threshold_minutes"`
	AverageThresholdMinutes int    `json:"average_threshold_minutes"`
	FairnessWeight          int    `json:"fairness_weight"`
	SpeedBiasWeight         int    `json:"speed_bias_weight"`
	DeniedStreakWeight      int    `json:"denied_streak_weight"`
	UpdatedAt               string `json:"updated_at"`
}
