package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"

	"sharedeck/internal/apperr"
	"sharedeck/internal/httpx"
)

// RequireRole only lets through users whose stored role is one of roles.
// It must run after CurrentUser.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(httpx.KeyRole)
		if role == "" || !slices.Contains(roles, role) {
			httpx.Error(c, apperr.Forbidden("%s access required", roles[0]))
			c.Abort()
			return
		}
		c.Next()
	}
}
