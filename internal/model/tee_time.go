package model

import "time"

// TeeTimeBlock is one bookable slot on a date's tee sheet. The tee sheet
// configuration screen owns block creation; the lottery only reads blocks
// and consumes their capacity.
type TeeTimeBlock struct {
	BlockID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"block_id"`
	BlockDate  string `gorm:"type:varchar(10);not null;uniqueIndex:uq_blocks_date_time" json:"block_date"` // YYYY-MM-DD
	StartTime  string `gorm:"type:varchar(5);not null;uniqueIndex:uq_blocks_date_time"  json:"start_time"` // HH:MM
	MaxPlayers int    `gorm:"type:smallint;not null;default:4"               json:"max_players"`
	BaseModel
}

func (TeeTimeBlock) TableName() string { return "tee_time_blocks" }

// TeeTimeBooking is one seat materialized by a lottery assignment. Real
// members carry MemberID; group fills carry FillLabel instead. Pure append
// log, never updated.
type TeeTimeBooking struct {
	BookingID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"booking_id"`
	BlockID   string    `gorm:"type:uuid;not null;index"                       json:"block_id"`
	BlockDate string    `gorm:"type:varchar(10);not null;index"                json:"block_date"`
	MemberID  *string   `gorm:"type:uuid;index"                                json:"member_id,omitempty"`
	FillLabel *string   `gorm:"type:varchar(100)"                              json:"fill_label,omitempty"`
	EntryID   string    `gorm:"type:uuid;not null;index"                       json:"entry_id"`
	BookedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"booked_at"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// relations
	Block  *TeeTimeBlock `gorm:"foreignKey:BlockID;references:BlockID"   json:"block,omitempty"`
	Member *Member       `gorm:"foreignKey:MemberID;references:MemberID" json:"member,omitempty"`
}

func (TeeTimeBooking) TableName() string { return "tee_time_bookings" }
