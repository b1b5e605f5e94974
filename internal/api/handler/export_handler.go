package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/service"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/timewindow"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/response"
)

// ExportHandler serves the printable tee sheet.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates the export handler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// TeeSheet downloads the day's tee sheet as an Excel workbook. start_time,
// end_time and custom describe the sheet configuration so rows can be
// grouped by lottery window.
// GET /api/v1/export/tee-sheet?date=2026-06-01&start_time=07:00&end_time=15:00
func (h *ExportHandler) TeeSheet(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date is required")
		return
	}

	sheetCfg := timewindow.SheetConfig{
		StartTime: c.Query("start_time"),
		EndTime:   c.Query("end_time"),
		Custom:    c.Query("custom") == "true",
	}

	buf, filename, err := h.exportSvc.ExportTeeSheet(c.Request.Context(), date, sheetCfg)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidLotteryDate):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrExportNoBlocks):
		response.NotFound(c, 16101, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
