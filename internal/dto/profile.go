package dto

// ── speed profile requests ──

// UpdateSpeedProfileRequest is the staff patch surface for one member's
// profile.
type UpdateSpeedProfileRequest struct {
	SpeedTier               *string `json:"speed_tier"                binding:"omitempty,oneof=FAST AVERAGE SLOW"`
	AdminPriorityAdjustment *int    `json:"admin_priority_adjustment" binding:"omitempty"`
	ManualOverride          *bool   `json:"manual_override"           binding:"omitempty"`
	Notes                   *string `json:"notes"                     binding:"omitempty,max=500"`
}

// RecordRoundRequest reports one completed round's duration.
type RecordRoundRequest struct {
	Minutes int `json:"minutes" binding:"required,min=1"`
}

// ── responses ──

// SpeedProfileResponse is one member's pace-of-play profile.
type SpeedProfileResponse struct {
	MemberID                string       `json:"member_id"`
	Member                  *MemberBrief `json:"member,omitempty"`
	AverageMinutes          float64      `json:"average_minutes"`
	RoundsSampled           int          `json:"rounds_sampled"`
	SpeedTier               string       `json:"speed_tier"`
	HasData                 bool         `json:"has_data"`
	ManualOverride          bool         `json:"manual_override"`
	AdminPriorityAdjustment int          `json:"admin_priority_adjustment"`
	Notes                   string       `json:"notes,omitempty"`
	LastCalculated          *string      `json:"last_calculated,omitempty"`
	UpdatedAt               string       `json:"updated_at"`
}

// ReclassifyResponse reports a batch reclassification.
type ReclassifyResponse struct {
	ReclassifiedCount int `json:"reclassified_count"`
}

// FairnessScoreResponse is one member's fairness ledger for a month.
type FairnessScoreResponse struct {
	MemberID                  string  `json:"member_id"`
	Month                     string  `json:"month"`
	TotalEntriesMonth         int     `json:"total_entries_month"`
	PreferencesGrantedMonth   int     `json:"preferences_granted_month"`
	PreferenceFulfillmentRate float64 `json:"preference_fulfillment_rate"`
	DaysWithoutGoodTime       int     `json:"days_without_good_time"`
	FairnessScore             int     `json:"fairness_score"`
	Band                      string  `json:"band"` // high | medium | low
}

// EnsureFairnessMonthRequest pre-creates zeroed fairness rows for a month.
type EnsureFairnessMonthRequest struct {
	Month string `json:"month" binding:"required,len=7"` // YYYY-MM
}

// EnsureFairnessMonthResponse reports how many rows were created.
type EnsureFairnessMonthResponse struct {
	Month        string `json:"month"`
	CreatedCount int64  `json:"created_count"`
}
