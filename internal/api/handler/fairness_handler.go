package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/dto"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/service"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/response"
)

// FairnessHandler serves monthly fairness scores.
type FairnessHandler struct {
	fairnessService service.FairnessService
}

// NewFairnessHandler creates the fairness handler.
func NewFairnessHandler(fairnessService service.FairnessService) *FairnessHandler {
	return &FairnessHandler{fairnessService: fairnessService}
}

// Get returns one member's fairness score for a month. Month defaults to
// the current month when omitted.
// GET /api/v1/fairness-scores/:memberId
func (h *FairnessHandler) Get(c *gin.Context) {
	score, err := h.fairnessService.Get(c.Request.Context(), c.Param("memberId"), monthOrCurrent(c))
	if err != nil {
		h.handleFairnessError(c, err)
		return
	}

	response.OK(c, score)
}

// ListByMonth returns every member's fairness score for a month. Month
// defaults to the current month when omitted.
// GET /api/v1/fairness-scores
func (h *FairnessHandler) ListByMonth(c *gin.Context) {
	scores, err := h.fairnessService.ListByMonth(c.Request.Context(), monthOrCurrent(c))
	if err != nil {
		h.handleFairnessError(c, err)
		return
	}

	response.OK(c, scores)
}

// EnsureMonth pre-creates zeroed fairness rows for every active member
// missing one. The draw does this on demand; staff can do it ahead of time.
// POST /api/v1/fairness-scores/ensure
func (h *FairnessHandler) EnsureMonth(c *gin.Context) {
	var req dto.EnsureFairnessMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid request: "+err.Error())
		return
	}

	created, err := h.fairnessService.EnsureMonth(c.Request.Context(), req.Month)
	if err != nil {
		h.handleFairnessError(c, err)
		return
	}

	response.OK(c, dto.EnsureFairnessMonthResponse{Month: req.Month, CreatedCount: created})
}

func monthOrCurrent(c *gin.Context) string {
	if month := c.Query("month"); month != "" {
		return month
	}
	return time.Now().Format("2006-01")
}

// handleFairnessError maps fairness business errors to responses.
func (h *FairnessHandler) handleFairnessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFairnessScoreNotFound):
		response.NotFound(c, 14101, err.Error())
	case errors.Is(err, service.ErrInvalidMonth):
		response.BadRequest(c, 14102, err.Error())
	default:
		response.InternalError(c)
	}
}
