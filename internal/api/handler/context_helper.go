package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SwiftWareCo/GolfSync-sub005/pkg/response"
)

// MustGetMemberID safely extracts member_id from the Gin context. If the
// JWT middleware did not inject it, a 401 is written and ok is false; the
// caller should return immediately.
func MustGetMemberID(c *gin.Context) (string, bool) {
	v, exists := c.Get("member_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole safely extracts the caller's role from the Gin context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}
