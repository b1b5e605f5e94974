package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/service"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/response"
)

// MaintenanceHandler triggers the monthly maintenance tasks.
type MaintenanceHandler struct {
	maintenanceService service.MaintenanceService
}

// NewMaintenanceHandler creates the maintenance handler.
func NewMaintenanceHandler(maintenanceService service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// MonthlyReset runs the current month's reset if it has not run yet.
// Safe to call repeatedly; completed months report already_completed.
// POST /api/v1/maintenance/monthly-reset
func (h *MaintenanceHandler) MonthlyReset(c *gin.Context) {
	result, err := h.maintenanceService.CheckAndRun(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// TriggerReset re-runs the current month's reset even when the completion
// marker exists. Recovery path after a partial run.
// POST /api/v1/maintenance/monthly-reset/trigger
func (h *MaintenanceHandler) TriggerReset(c *gin.Context) {
	result, err := h.maintenanceService.TriggerManual(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
