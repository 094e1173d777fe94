package allocation

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

// List serves GET /items/:id/allocations.
func (h *Handler) List(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	views, err := h.service.List(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// Create serves POST /items/:id/allocations.
func (h *Handler) Create(c *gin.Context) {
	var req struct {
		StoreID  string `json:"store_id" binding:"required"`
		Quantity int    `json:"quantity"`
	}
	if !httpx.BindJSON(c, &req) {
		return
	}
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	a, err := h.service.Create(c.Request.Context(), userID, c.Param("id"), req.StoreID, req.Quantity)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) Update(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !httpx.BindJSON(c, &req) {
		return
	}
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	a, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), req.Quantity)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
