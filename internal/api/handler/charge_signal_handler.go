package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/dto"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/service"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/response"
)

// ChargeSignalHandler serves restriction billing signals for the billing
// system to poll.
type ChargeSignalHandler struct {
	chargeService service.ChargeSignalService
}

// NewChargeSignalHandler creates the charge signal handler.
func NewChargeSignalHandler(chargeService service.ChargeSignalService) *ChargeSignalHandler {
	return &ChargeSignalHandler{chargeService: chargeService}
}

// List returns charge signals created at or after the since cursor, oldest
// first, page by page.
// GET /api/v1/charge-signals?since=2026-06-01T00:00:00Z
func (h *ChargeSignalHandler) List(c *gin.Context) {
	var req dto.ChargeSignalListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 18001, "invalid request: "+err.Error())
		return
	}

	signals, total, err := h.chargeService.List(c.Request.Context(), &req)
	if err != nil {
		h.handleChargeError(c, err)
		return
	}

	response.OKPage(c, signals, total, req.GetPage(), req.GetPageSize())
}

// handleChargeError maps charge signal business errors to responses.
func (h *ChargeSignalHandler) handleChargeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSince):
		response.BadRequest(c, 18101, err.Error())
	default:
		response.InternalError(c)
	}
}
