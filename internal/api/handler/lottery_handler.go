package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/dto"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/service"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/jwt"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/redis"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/response"
)

// LotteryHandler serves lottery entry submission and the draw itself.
type LotteryHandler struct {
	entryService      service.LotteryEntryService
	processingService service.LotteryProcessingService
	rdb               *redis.Client
	lockTTL           time.Duration
}

// NewLotteryHandler creates the lottery handler. rdb may be nil; processing
// then runs without the cross-instance lock.
func NewLotteryHandler(entryService service.LotteryEntryService, processingService service.LotteryProcessingService, rdb *redis.Client, lockTTL time.Duration) *LotteryHandler {
	return &LotteryHandler{
		entryService:      entryService,
		processingService: processingService,
		rdb:               rdb,
		lockTTL:           lockTTL,
	}
}

// Submit creates a lottery entry with the caller as organizer.
// POST /api/v1/lottery/entries
func (h *LotteryHandler) Submit(c *gin.Context) {
	memberID, ok := MustGetMemberID(c)
	if !ok {
		return
	}

	var req dto.SubmitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "invalid request: "+err.Error())
		return
	}

	entry, err := h.entryService.Submit(c.Request.Context(), memberID, &req)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.Created(c, entry)
}

// Cancel withdraws a pending entry. Only the organizer or staff may cancel.
// DELETE /api/v1/lottery/entries/:id
func (h *LotteryHandler) Cancel(c *gin.Context) {
	memberID, ok := MustGetMemberID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	// The body only carries the entry shape flag, so an empty body is fine.
	var req dto.CancelEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 11001, "invalid request: "+err.Error())
			return
		}
	}

	entry, err := h.entryService.Cancel(c.Request.Context(), c.Param("id"), memberID, role == jwt.RoleStaff, req.IsGroup)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, entry)
}

// Get returns a single entry with its members and assignment state.
// GET /api/v1/lottery/entries/:id
func (h *LotteryHandler) Get(c *gin.Context) {
	entry, err := h.entryService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, entry)
}

// DateData returns all entries for a date with summary stats. Staff view
// backing the lottery dashboard.
// GET /api/v1/lottery/dates/:date
func (h *LotteryHandler) DateData(c *gin.Context) {
	data, err := h.entryService.DataForDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, data)
}

// Process runs the lottery draw for a date. A Redis lock keeps concurrent
// runs for the same date from double-assigning; when Redis is down the
// draw still runs, relying on the pending-status guard for idempotence.
// POST /api/v1/lottery/process/:date
func (h *LotteryHandler) Process(c *gin.Context) {
	date := c.Param("date")

	var req dto.ProcessLotteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid request: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	if h.rdb != nil {
		acquired, err := h.rdb.AcquireProcessingLock(ctx, date, h.lockTTL)
		if err == nil {
			if !acquired {
				response.Conflict(c, 12103, "lottery processing is already running for this date")
				return
			}
			defer h.rdb.ReleaseProcessingLock(ctx, date)
		}
	}

	result, err := h.processingService.ProcessDate(ctx, date, &req)
	if err != nil {
		h.handleProcessError(c, err)
		return
	}

	response.OK(c, result)
}

// handleEntryError maps lottery entry business errors to responses.
func (h *LotteryHandler) handleEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, 11101, err.Error())
	case errors.Is(err, service.ErrEntryNotPending):
		response.Conflict(c, 11102, err.Error())
	case errors.Is(err, service.ErrEntryTypeMismatch):
		response.BadRequest(c, 11103, err.Error())
	case errors.Is(err, service.ErrNotEntryOrganizer):
		response.Forbidden(c, 11104, err.Error())
	case errors.Is(err, service.ErrInvalidLotteryDate):
		response.BadRequest(c, 11105, err.Error())
	case errors.Is(err, service.ErrInvalidWindow):
		response.BadRequest(c, 11106, err.Error())
	case errors.Is(err, service.ErrAlternateSameAsPreferred):
		response.BadRequest(c, 11107, err.Error())
	case errors.Is(err, service.ErrInvalidGroupSize):
		response.BadRequest(c, 11108, err.Error())
	case errors.Is(err, service.ErrPartyTooLarge):
		response.BadRequest(c, 11109, err.Error())
	case errors.Is(err, service.ErrFillsNotAllowed):
		response.BadRequest(c, 11110, err.Error())
	case errors.Is(err, service.ErrMembersNotAllowed):
		response.BadRequest(c, 11111, err.Error())
	case errors.Is(err, service.ErrDuplicateMember):
		response.BadRequest(c, 11112, err.Error())
	case errors.Is(err, service.ErrMemberAlreadyEntered):
		response.Conflict(c, 11113, err.Error())
	case errors.Is(err, service.ErrMemberInGroupEntry):
		response.Conflict(c, 11114, err.Error())
	case errors.Is(err, service.ErrGroupMemberConflict):
		response.Conflict(c, 11115, err.Error())
	case errors.Is(err, service.ErrOrganizerGroupExists):
		response.Conflict(c, 11116, err.Error())
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 11117, err.Error())
	case errors.Is(err, service.ErrMemberInactive):
		response.Conflict(c, 11118, err.Error())
	default:
		response.InternalError(c)
	}
}

// handleProcessError maps draw-time business errors to responses.
func (h *LotteryHandler) handleProcessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidLotteryDate):
		response.BadRequest(c, 12001, err.Error())
	case errors.Is(err, service.ErrLotteryNotAvailable):
		response.Conflict(c, 12101, err.Error())
	case errors.Is(err, service.ErrNoTimeBlocks):
		response.NotFound(c, 12102, err.Error())
	default:
		response.InternalError(c)
	}
}
