package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/dto"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/service"
	pkgerrors "github.com/SwiftWareCo/GolfSync-sub005/pkg/errors"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/response"
)

// SpeedProfileHandler serves pace-of-play profiles.
type SpeedProfileHandler struct {
	profileService service.SpeedProfileService
}

// NewSpeedProfileHandler creates the speed profile handler.
func NewSpeedProfileHandler(profileService service.SpeedProfileService) *SpeedProfileHandler {
	return &SpeedProfileHandler{profileService: profileService}
}

// Get returns one member's speed profile.
// GET /api/v1/speed-profiles/:memberId
func (h *SpeedProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context(), c.Param("memberId"))
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, profile)
}

// List returns speed profiles page by page.
// GET /api/v1/speed-profiles
func (h *SpeedProfileHandler) List(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request: "+err.Error())
		return
	}

	profiles, total, err := h.profileService.List(c.Request.Context(), &req)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OKPage(c, profiles, total, req.GetPage(), req.GetPageSize())
}

// Update edits a member's tier, admin adjustment or override flag.
// PUT /api/v1/speed-profiles/:memberId
func (h *SpeedProfileHandler) Update(c *gin.Context) {
	callerID, ok := MustGetMemberID(c)
	if !ok {
		return
	}

	var req dto.UpdateSpeedProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request: "+err.Error())
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), c.Param("memberId"), &req, callerID)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, profile)
}

// RecordRound folds one completed round's duration into the member's
// rolling average.
// POST /api/v1/speed-profiles/:memberId/rounds
func (h *SpeedProfileHandler) RecordRound(c *gin.Context) {
	var req dto.RecordRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request: "+err.Error())
		return
	}

	profile, err := h.profileService.RecordRound(c.Request.Context(), c.Param("memberId"), &req)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, profile)
}

// ReclassifyAll re-runs tier classification over every profile, skipping
// manual overrides.
// POST /api/v1/speed-profiles/reclassify
func (h *SpeedProfileHandler) ReclassifyAll(c *gin.Context) {
	callerID, ok := MustGetMemberID(c)
	if !ok {
		return
	}

	result, err := h.profileService.ReclassifyAll(c.Request.Context(), callerID)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, result)
}

// handleProfileError maps speed profile business errors to responses.
func (h *SpeedProfileHandler) handleProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		response.NotFound(c, 13101, err.Error())
	case errors.Is(err, service.ErrInvalidSpeedTier):
		response.BadRequest(c, 13102, err.Error())
	case errors.Is(err, service.ErrAdjustmentOutOfRange):
		response.BadRequest(c, 13103, err.Error())
	case errors.Is(err, service.ErrInvalidRoundMinutes):
		response.BadRequest(c, 13104, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 13105, err.Error())
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 13106, err.Error())
	default:
		response.InternalError(c)
	}
}
