package model

import "time"

// Pace-of-play tiers.
const (
	SpeedTierFast    = "FAST"
	SpeedTierAverage = "AVERAGE"
	SpeedTierSlow    = "SLOW"
)

// MaxAdminAdjustment bounds the staff priority nudge in either direction.
const MaxAdminAdjustment = 20

// MemberSpeedProfile tracks a member's pace of play. AverageMinutes is
// maintained incrementally from recorded rounds; ManualOverride pins the
// tier against automatic reclassification.
type MemberSpeedProfile struct {
	MemberID                string     `gorm:"type:uuid;primaryKey"                        json:"member_id"`
	AverageMinutes          float64    `gorm:"type:numeric(6,2);not null;default:0"        json:"average_minutes"`
	RoundsSampled           int        `gorm:"not null;default:0"                          json:"rounds_sampled"`
	SpeedTier               string     `gorm:"type:varchar(10);not null;default:'AVERAGE'" json:"speed_tier"` // FAST | AVERAGE | SLOW
	HasData                 bool       `gorm:"not null;default:false"                      json:"has_data"`
	ManualOverride          bool       `gorm:"not null;default:false"                      json:"manual_override"`
	AdminPriorityAdjustment int        `gorm:"type:smallint;not null;default:0"            json:"admin_priority_adjustment"` // -20..20
	Notes                   string     `gorm:"type:varchar(500)"                           json:"notes,omitempty"`
	LastCalculated          *time.Time `json:"last_calculated,omitempty"`
	VersionedModel

	// relations
	Member *Member `gorm:"foreignKey:MemberID;references:MemberID" json:"member,omitempty"`
}

func (MemberSpeedProfile) TableName() string { return "member_speed_profiles" }
