package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/dto"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/service"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/response"
)

// AlgorithmConfigHandler serves the allocation tuning knobs.
type AlgorithmConfigHandler struct {
	configService service.AlgorithmConfigService
}

// NewAlgorithmConfigHandler creates the algorithm config handler.
func NewAlgorithmConfigHandler(configService service.AlgorithmConfigService) *AlgorithmConfigHandler {
	return &AlgorithmConfigHandler{configService: configService}
}

// Get returns the current tuning row, creating the default one on first
// read.
// GET /api/v1/algorithm-config
func (h *AlgorithmConfigHandler) Get(c *gin.Context) {
	cfg, err := h.configService.Get(c.Request.Context())
	if err != nil {
		h.handleConfigError(c, err)
		return
	}

	response.OK(c, cfg)
}

// Update patches the tuning row. Omitted fields keep their value.
// PUT /api/v1/algorithm-config
func (h *AlgorithmConfigHandler) Update(c *gin.Context) {
	callerID, ok := MustGetMemberID(c)
	if !ok {
		return
	}

	var req dto.UpdateAlgorithmConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid request: "+err.Error())
		return
	}

	cfg, err := h.configService.Update(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleConfigError(c, err)
		return
	}

	response.OK(c, cfg)
}

// handleConfigError maps config business errors to responses.
func (h *AlgorithmConfigHandler) handleConfigError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrThresholdOrder):
		response.BadRequest(c, 15101, err.Error())
	default:
		response.InternalError(c)
	}
}
