package model

// MemberFairnessScore is one member's lottery luck ledger for one calendar
// month. Rows are created lazily in bulk and zeroed by the monthly reset;
// prior months stay untouched under their own key.
type MemberFairnessScore struct {
	MemberID                  string  `gorm:"type:uuid;primaryKey"               json:"member_id"`
	Month                     string  `gorm:"type:varchar(7);primaryKey"         json:"month"` // YYYY-MM
	TotalEntriesMonth         int     `gorm:"not null;default:0"                 json:"total_entries_month"`
	PreferencesGrantedMonth   int     `gorm:"not null;default:0"                 json:"preferences_granted_month"`
	PreferenceFulfillmentRate float64 `gorm:"type:numeric(5,4);not null;default:0" json:"preference_fulfillment_rate"`
	DaysWithoutGoodTime       int     `gorm:"not null;default:0"                 json:"days_without_good_time"`
	FairnessScore             int     `gorm:"not null;default:0"                 json:"fairness_score"`
	BaseModel

	// relations
	Member *Member `gorm:"foreignKey:MemberID;references:MemberID" json:"member,omitempty"`
}

func (MemberFairnessScore) TableName() string { return "member_fairness_scores" }
