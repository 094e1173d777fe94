package admin

import (
	"errors"
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

func (h *Handler) Stats(c *gin.Context) {
	st, err := h.service.Stats(c.Request.Context())
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) ScrapeCards(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Scrape(c.Request.Context()))
}

func (h *Handler) CheckImageURLs(c *gin.Context) {
	report, err := h.service.CheckImageURLs(c.Request.Context())
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) MigrateImageURLs(c *gin.Context) {
	res, err := h.service.MigrateImageURLs(c.Request.Context())
	if errors.Is(err, ErrNoPublicURL) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
