package purchase

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

type listRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

// --------------------------------------------------
// Lists
// --------------------------------------------------

func (h *Handler) ListLists(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	lists, err := h.service.Lists(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

func (h *Handler) CreateList(c *gin.Context) {
	var req listRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	l, err := h.service.CreateList(c.Request.Context(), userID, req.Name, req.Status)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *Handler) GetList(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	l, err := h.service.GetList(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *Handler) UpdateList(c *gin.Context) {
	var req listRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	l, err := h.service.UpdateList(c.Request.Context(), userID, c.Param("id"), req.Name, req.Status)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *Handler) DeleteList(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteList(c.Request.Context(), userID, c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// Items
// --------------------------------------------------

func (h *Handler) ListItems(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	items, err := h.service.Items(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req struct {
		CardID          *string `json:"card_id"`
		CustomCardID    *string `json:"custom_card_id"`
		Quantity        int     `json:"quantity"`
		SelectedStoreID *string `json:"selected_store_id"`
	}
	if !httpx.BindJSON(c, &req) {
		return
	}
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	ref, err := card.ParseReference(req.CardID, req.CustomCardID)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), userID, c.Param("id"), ref, req.Quantity, req.SelectedStoreID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req struct {
		Quantity        *int    `json:"quantity"`
		SelectedStoreID *string `json:"selected_store_id"`
	}
	if !httpx.BindJSON(c, &req) {
		return
	}
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), userID, c.Param("id"), c.Param("item_id"), req.Quantity, req.SelectedStoreID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	userID, ok := httpx.UserID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), userID, c.Param("id"), c.Param("item_id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
