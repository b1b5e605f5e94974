package model

import "time"

// Entry shapes.
const (
	EntryTypeIndividual = "INDIVIDUAL"
	EntryTypeGroup      = "GROUP"
)

// Entry lifecycle states.
const (
	EntryStatusPending   = "PENDING"
	EntryStatusAssigned  = "ASSIGNED"
	EntryStatusCancelled = "CANCELLED"
)

// MaxPartySize caps members plus fills on one entry (one tee time foursome).
const MaxPartySize = 4

// LotteryEntry is one lottery request for a date. MemberIDs always includes
// the organizer; fills are anonymous placeholders a group reserves capacity
// for.
type LotteryEntry struct {
	EntryID         string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	LotteryDate     string      `gorm:"type:varchar(10);not null;index:idx_lottery_entries_date" json:"lottery_date"` // YYYY-MM-DD
	EntryType       string      `gorm:"type:varchar(20);not null"                      json:"entry_type"` // INDIVIDUAL | GROUP
	OrganizerID     string      `gorm:"type:uuid;not null;index"                       json:"organizer_id"`
	MemberIDs       UUIDArray   `gorm:"type:uuid[];not null"                           json:"member_ids"`
	Fills           StringArray `gorm:"type:text[]"                                    json:"fills,omitempty"`
	PreferredWindow string      `gorm:"type:varchar(20);not null"                      json:"preferred_window"` // MORNING | MIDDAY | AFTERNOON | EVENING
	AlternateWindow *string     `gorm:"type:varchar(20)"                               json:"alternate_window,omitempty"`
	Status          string      `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"` // PENDING | ASSIGNED | CANCELLED
	AssignedBlockID *string     `gorm:"type:uuid"                                      json:"assigned_block_id,omitempty"`
	SubmittedAt     time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"submitted_at"`
	ProcessedAt     *time.Time  `json:"processed_at,omitempty"`
	CancelledAt     *time.Time  `json:"cancelled_at,omitempty"`
	BaseModel

	// relations
	Organizer     *Member       `gorm:"foreignKey:OrganizerID;references:MemberID"    json:"organizer,omitempty"`
	AssignedBlock *TeeTimeBlock `gorm:"foreignKey:AssignedBlockID;references:BlockID" json:"assigned_block,omitempty"`
}

func (LotteryEntry) TableName() string { return "lottery_entries" }

// PartySize is the capacity the entry consumes when seated: real members plus
// fills.
func (e *LotteryEntry) PartySize() int {
	return len(e.MemberIDs) + len(e.Fills)
}

// IsGroup reports whether the entry was submitted as a group.
func (e *LotteryEntry) IsGroup() bool {
	return e.EntryType == EntryTypeGroup
}
