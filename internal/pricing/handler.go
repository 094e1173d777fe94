package pricing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sharedeck/internal/httpx"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	entries, err := h.service.List(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) Put(c *gin.Context) {
	var req struct {
		Price *int `json:"price"`
	}
	if !httpx.BindJSON(c, &req) {
		return
	}
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	entry, err := h.service.Set(c.Request.Context(), userID, c.Param("id"), c.Param("store_id"), req.Price)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) Delete(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id"), c.Param("store_id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
