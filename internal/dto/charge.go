package dto

// ChargeSignalListRequest filters the billing outbox.
type ChargeSignalListRequest struct {
	Since string `form:"since" binding:"omitempty"` // RFC 3339, default beginning of time
	PaginationRequest
}

// ChargeSignalResponse is one billing signal. Amount is a decimal string,
// never a float.
type ChargeSignalResponse struct {
	SignalID      string       `json:"signal_id"`
	Member        *MemberBrief `json:"member,omitempty"`
	MemberID      string       `json:"member_id"`
	EntryID       string       `json:"entry_id"`
	RestrictionID string       `json:"restriction_id"`
	Amount        string       `json:"amount"`
	Currency      string       `json:"currency"`
	Reason        string       `json:"reason"`
	EmittedAt     string       `json:"emitted_at"`
}
