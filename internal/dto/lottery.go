package dto

// ── lottery entry requests ──

// SubmitEntryRequest submits an individual or group lottery entry. For group
// entries MemberIDs lists the partners beyond the organizer; fills reserve
// anonymous spots.
type SubmitEntryRequest struct {
	LotteryDate     string   `json:"lottery_date"     binding:"required,len=10"`
	EntryType       string   `json:"entry_type"       binding:"required,oneof=INDIVIDUAL GROUP"`
	MemberIDs       []string `json:"member_ids"       binding:"omitempty,dive,uuid"`
	Fills           []string `json:"fills"            binding:"omitempty,dive,min=1,max=100"`
	PreferredWindow string   `json:"preferred_window" binding:"required"`
	AlternateWindow *string  `json:"alternate_window" binding:"omitempty"`
}

// CancelEntryRequest cancels a pending entry. IsGroup must match the stored
// entry shape.
type CancelEntryRequest struct {
	IsGroup bool `json:"is_group"`
}

// ProcessLotteryRequest runs the lottery for a date against the day's tee
// sheet configuration.
type ProcessLotteryRequest struct {
	StartTime string `json:"start_time" binding:"required"` // HH:MM
	EndTime   string `json:"end_time"   binding:"required"` // HH:MM
	Custom    bool   `json:"custom"`
}

// ── lottery entry responses ──

// EntryResponse is one lottery entry.
type EntryResponse struct {
	ID              string             `json:"id"`
	LotteryDate     string             `json:"lottery_date"`
	EntryType       string             `json:"entry_type"`
	Organizer       *MemberBrief       `json:"organizer,omitempty"`
	MemberIDs       []string           `json:"member_ids"`
	Members         []MemberBrief      `json:"members,omitempty"`
	Fills           []string           `json:"fills,omitempty"`
	PartySize       int                `json:"party_size"`
	PreferredWindow string             `json:"preferred_window"`
	AlternateWindow *string            `json:"alternate_window,omitempty"`
	Status          string             `json:"status"`
	AssignedBlock   *TeeTimeBlockBrief `json:"assigned_block,omitempty"`
	SubmittedAt     string             `json:"submitted_at"`
	ProcessedAt     *string            `json:"processed_at,omitempty"`
}

// LotteryDateStats summarizes one date's lottery demand.
type LotteryDateStats struct {
	TotalEntries     int            `json:"total_entries"`
	PendingEntries   int            `json:"pending_entries"`
	AssignedEntries  int            `json:"assigned_entries"`
	CancelledEntries int            `json:"cancelled_entries"`
	TotalPlayers     int            `json:"total_players"`
	BlockCount       int            `json:"block_count"`
	WindowDemand     map[string]int `json:"window_demand"`
}

// LotteryDateDataResponse is the full lottery picture for one date.
type LotteryDateDataResponse struct {
	Date       string           `json:"date"`
	Stats      LotteryDateStats `json:"stats"`
	Individual []EntryResponse  `json:"individual"`
	Groups     []EntryResponse  `json:"groups"`
}

// AssignmentResponse is one seated entry from a processing pass.
type AssignmentResponse struct {
	EntryID   string   `json:"entry_id"`
	EntryType string   `json:"entry_type"`
	BlockID   string   `json:"block_id"`
	StartTime string   `json:"start_time"`
	Window    string   `json:"window"`
	Players   []string `json:"players"`
	Granted   bool     `json:"granted"` // preferred window honored
}

// ProcessLotteryResponse reports a processing pass. Partial placement is a
// normal outcome, not an error.
type ProcessLotteryResponse struct {
	Date           string               `json:"date"`
	TotalPending   int                  `json:"total_pending"`
	ProcessedCount int                  `json:"processed_count"`
	UnplacedCount  int                  `json:"unplaced_count"`
	Assignments    []AssignmentResponse `json:"assignments"`
	Warnings       []string             `json:"warnings,omitempty"`
}
