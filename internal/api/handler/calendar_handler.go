package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/dto"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/service"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/response"
)

// CalendarHandler serves iCalendar feeds of assigned tee times.
type CalendarHandler struct {
	calendarService service.CalendarService
}

// NewCalendarHandler creates the calendar handler.
func NewCalendarHandler(calendarService service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// MemberFeed downloads the caller's confirmed tee times as an .ics file
// for the requested date range.
// GET /api/v1/calendar/feed?from=2026-06-01&to=2026-06-30
func (h *CalendarHandler) MemberFeed(c *gin.Context) {
	memberID, ok := MustGetMemberID(c)
	if !ok {
		return
	}

	var req dto.CalendarFeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 17001, "invalid request: "+err.Error())
		return
	}

	feed, filename, err := h.calendarService.MemberFeed(c.Request.Context(), memberID, req.From, req.To)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// handleCalendarError maps calendar business errors to responses.
func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 17101, err.Error())
	case errors.Is(err, service.ErrDateRangeTooWide):
		response.BadRequest(c, 17102, err.Error())
	default:
		response.InternalError(c)
	}
}
