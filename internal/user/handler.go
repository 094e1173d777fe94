package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sharedeck/internal/auth"
	"sharedeck/internal/httpx"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Sync upserts the caller from the verified token claims. Only the token is
// required; the user row may not exist yet.
func (h *Handler) Sync(c *gin.Context) {
	val, exists := c.Get(httpx.KeyClaims)
	claims, ok := val.(*auth.Claims)
	if !exists || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	u, err := h.service.Sync(c.Request.Context(), Profile{
		GoogleID: claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Picture:  claims.Picture,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) Me(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	u, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
