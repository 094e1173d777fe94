package deck

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sharedeck/internal/card"
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

	decks, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, decks)
}

// Grouped lists every user's decks for the shared board.
func (h *Handler) Grouped(c *gin.Context) {
	g, err := h.service.Grouped(c.Request.Context())
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *Handler) Get(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	d, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name         string  `json:"name"`
		Status       *string `json:"status"`
		LeaderCardID *string `json:"leader_card_id"`
		CustomCardID *string `json:"custom_card_id"`
	}
	if !httpx.BindJSON(c, &req) {
		return
	}
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	leader, err := card.ParseReference(req.LeaderCardID, req.CustomCardID)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	d, err := h.service.Create(c.Request.Context(), userID, req.Name, req.Status, leader)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) Update(c *gin.Context) {
	var req struct {
		Name   *string `json:"name"`
		Status *string `json:"status"`
	}
	if !httpx.BindJSON(c, &req) {
		return
	}
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	d, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), req.Name, req.Status)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
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
