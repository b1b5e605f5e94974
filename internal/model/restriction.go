package model

import "github.com/shopspring/decimal"

// Restriction categories the lottery understands.
const (
	RestrictionTimeOfDay    = "TIME_OF_DAY"
	RestrictionFrequency    = "FREQUENCY"
	RestrictionAvailability = "AVAILABILITY"
)

// LotteryRestriction is a club rule the allocator must honor. The admin CRUD
// screens own these rows; the lottery consumes them read-only. Which columns
// apply depends on RestrictionType.
type LotteryRestriction struct {
	RestrictionID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"restriction_id"`
	Name              string  `gorm:"type:varchar(200);not null"                     json:"name"`
	RestrictionType   string  `gorm:"type:varchar(20);not null"                      json:"restriction_type"` // TIME_OF_DAY | FREQUENCY | AVAILABILITY
	MemberClass       *string `gorm:"type:varchar(20)"                               json:"member_class,omitempty"` // TIME_OF_DAY scope, nil = all classes
	StartTime         *string `gorm:"type:varchar(5)"                                json:"start_time,omitempty"`   // TIME_OF_DAY ban window, HH:MM
	EndTime           *string `gorm:"type:varchar(5)"                                json:"end_time,omitempty"`
	MaxRoundsPerMonth *int    `gorm:"type:smallint"                                  json:"max_rounds_per_month,omitempty"` // FREQUENCY cap
	ChargeOnOverride  bool    `gorm:"not null;default:false"                         json:"charge_on_override"`
	OverrideCharge    *decimal.Decimal `gorm:"type:numeric(10,2)"                    json:"override_charge,omitempty"` // fee applied when an override plays through the cap
	StartDate         *string `gorm:"type:varchar(10)"                               json:"start_date,omitempty"` // AVAILABILITY blackout range, YYYY-MM-DD
	EndDate           *string `gorm:"type:varchar(10)"                               json:"end_date,omitempty"`
	IsActive          bool    `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

func (LotteryRestriction) TableName() string { return "lottery_restrictions" }

// RestrictionOverride exempts one member from one restriction. Staff grant
// these through the admin screens.
type RestrictionOverride struct {
	OverrideID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"override_id"`
	RestrictionID string `gorm:"type:uuid;not null;uniqueIndex:uq_override_restriction_member" json:"restriction_id"`
	MemberID      string `gorm:"type:uuid;not null;uniqueIndex:uq_override_restriction_member" json:"member_id"`
	Note          string `gorm:"type:varchar(500)"                              json:"note,omitempty"`
	BaseModel

	// relations
	Restriction *LotteryRestriction `gorm:"foreignKey:RestrictionID;references:RestrictionID" json:"restriction,omitempty"`
}

func (RestrictionOverride) TableName() string { return "restriction_overrides" }
