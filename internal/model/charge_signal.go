package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChargeSignal is an outbox row telling the billing system a fee should be
// applied. This service only records the signal; charge execution lives
// entirely in the billing system, which polls these rows.
type ChargeSignal struct {
	SignalID      string          `gorm:"type:uuid;primaryKey"               json:"signal_id"`
	MemberID      string          `gorm:"type:uuid;not null;index"           json:"member_id"`
	EntryID       string          `gorm:"type:uuid;not null"                 json:"entry_id"`
	RestrictionID string          `gorm:"type:uuid;not null"                 json:"restriction_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(10,2);not null"        json:"amount"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'CAD'" json:"currency"`
	Reason        string          `gorm:"type:varchar(200);not null"         json:"reason"`
	EmittedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"emitted_at"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// relations
	Member *Member `gorm:"foreignKey:MemberID;references:MemberID" json:"member,omitempty"`
}

func (ChargeSignal) TableName() string { return "charge_signals" }
