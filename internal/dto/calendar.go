package dto

// CalendarFeedRequest bounds a member's tee time feed.
type CalendarFeedRequest struct {
	From string `form:"from" binding:"required,len=10"` // YYYY-MM-DD
	To   string `form:"to"   binding:"required,len=10"` // YYYY-MM-DD
}
