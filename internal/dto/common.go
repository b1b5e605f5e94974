package dto

// ── shared briefs ──

// MemberBrief is the member summary embedded in other responses.
type MemberBrief struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberClass string `json:"member_class"`
}

// TeeTimeBlockBrief is the block summary embedded in other responses.
type TeeTimeBlockBrief struct {
	ID         string `json:"id"`
	BlockDate  string `json:"block_date"`
	StartTime  string `json:"start_time"`
	MaxPlayers int    `json:"max_players"`
}

// ── pagination ──

// PaginationRequest carries the shared paging query parameters.
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage returns the page number with its default applied.
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize returns the page size with its default applied.
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset computes the row offset.
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
