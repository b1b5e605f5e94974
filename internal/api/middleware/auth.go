package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SwiftWareCo/GolfSync-sub005/pkg/jwt"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/response"
)

// JWTAuth validates the Authorization: Bearer <token> header against the
// club SSO's signing secret and injects the caller identity into the
// context.
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		c.Set("member_id", claims.MemberID)
		c.Set("role", claims.Role)
		c.Set("name", claims.Name)

		c.Next()
	}
}

// RoleAuth allows the request through only when the caller holds one of
// the given roles. Must run after JWTAuth.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		callerRole := role.(string)
		for _, r := range allowedRoles {
			if callerRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "insufficient permissions")
		c.Abort()
	}
}
