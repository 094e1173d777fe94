package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sharedeck/internal/apperr"
	"sharedeck/internal/auth"
	"sharedeck/internal/httpx"
	"sharedeck/internal/user"
)

// AuthMiddleware verifies the bearer token and attaches its claims.
func AuthMiddleware(tokens *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(httpx.KeyClaims, claims)
		c.Set(httpx.KeyGoogleID, claims.Subject)
		c.Set(httpx.KeyEmail, claims.Email)
		c.Next()
	}
}

type UserResolver interface {
	ResolveGoogleID(ctx context.Context, googleID string) (*user.User, error)
}

// CurrentUser maps the token subject to a stored user. It must run after
// AuthMiddleware.
func CurrentUser(users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		googleID := c.GetString(httpx.KeyGoogleID)
		if googleID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := users.ResolveGoogleID(c.Request.Context(), googleID)
		if err != nil {
			c.AbortWithStatusJSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
			return
		}
		if !u.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		c.Set(httpx.KeyUserID, u.ID)
		c.Set(httpx.KeyRole, u.Role)
		c.Next()
	}
}
