package planner

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

// OptimalPlan serves GET /purchase-lists/:id/optimal-plan.
func (h *Handler) OptimalPlan(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	plan, err := h.service.OptimalPlan(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
