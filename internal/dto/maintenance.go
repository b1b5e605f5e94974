package dto

// MaintenanceResultResponse reports one maintenance invocation. A repeat run
// in the same month is an informational success, never an error.
type MaintenanceResultResponse struct {
	RunType          string `json:"run_type"`
	Month            string `json:"month"`
	AlreadyCompleted bool   `json:"already_completed"`
	RecordsAffected  int    `json:"records_affected"`
	TriggeredBy      string `json:"triggered_by"`
	Note             string `json:"note,omitempty"`
	RanAt            string `json:"ran_at"`
}
