package card

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

func (h *Handler) ListCards(c *gin.Context) {
	cards, err := h.service.ListCards(c.Request.Context())
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *Handler) CreateCustomCard(c *gin.Context) {
	var req struct {
		Name   string  `json:"name"`
		Color  string  `json:"color"`
		Color2 *string `json:"color2"`
	}
	if !httpx.BindJSON(c, &req) {
		return
	}
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	cc, err := h.service.CreateCustomCard(c.Request.Context(), userID, req.Name, req.Color, req.Color2)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, cc)
}

func (h *Handler) ListCustomCards(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	cards, err := h.service.ListCustomCards(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}
