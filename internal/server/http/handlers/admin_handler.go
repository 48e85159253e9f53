package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/iowasensors/internal/server/http/dto"
)

// AdminHandler manages the admin order board.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Board handles GET /api/admin/orders.
func (h *AdminHandler) Board(c *gin.Context) {
	c.JSON(http.StatusOK, h.snapshot())
}

// Refresh handles POST /api/admin/orders/refresh.
func (h *AdminHandler) Refresh(c *gin.Context) {
	h.fetch(c, 1)
}

// More handles POST /api/admin/orders/more?page=n.
func (h *AdminHandler) More(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		badRequest(c, "page must be a positive integer")
		return
	}
	h.fetch(c, page)
}

// Complete handles POST /api/admin/orders/:id/complete.
func (h *AdminHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "order id must be an integer")
		return
	}
	var req dto.CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed tracking payload")
		return
	}

	order, err := h.facade.CompleteOrder(c.Request.Context(), id, req.TrackingNumber)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *AdminHandler) fetch(c *gin.Context, page int) {
	if _, err := h.facade.FetchOrders(c.Request.Context(), page); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.snapshot())
}

func (h *AdminHandler) snapshot() dto.BoardResponse {
	return dto.NewBoardResponse(h.facade.Buckets(), h.facade.OrdersLoading(), h.facade.HasMoreOrders())
}
