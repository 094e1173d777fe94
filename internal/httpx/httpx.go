// Package httpx holds the small gin helpers shared by every handler.
package httpx

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sharedeck/internal/apperr"
)

// Keys under which the auth middleware stores request identity.
const (
	KeyUserID   = "userID"
	KeyGoogleID = "googleID"
	KeyEmail    = "userEmail"
	KeyRole     = "userRole"
	KeyClaims   = "claims"
)

// UserID returns the resolved user id, writing a 401 when it is missing.
func UserID(c *gin.Context) (string, bool) {
	val, exists := c.Get(KeyUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	userID, ok := val.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user context"})
		return "", false
	}
	return userID, true
}

// BindJSON decodes the request body, writing a 400 when it is malformed.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// Error writes err using its apperr kind. Internal failures are logged and
// reported without detail.
func Error(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
