package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/iowasensors/internal/domain/model"
	"github.com/polkiloo/iowasensors/internal/server/http/dto"
)

// CartHandler serves the device cart.
type CartHandler struct {
	facade CartFacade
}

func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Items handles GET /api/cart.
func (h *CartHandler) Items(c *gin.Context) {
	cart, err := h.facade.Cart(c.Request.Context())
	h.respond(c, cart, err)
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed cart item")
		return
	}
	cart, err := h.facade.AddToCart(c.Request.Context(), req.Item(), req.Quantity)
	h.respond(c, cart, err)
}

// UpdateQuantity handles PUT /api/cart/items/:id.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	var req dto.UpdateCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed quantity payload")
		return
	}
	cart, err := h.facade.UpdateCartQuantity(c.Request.Context(), id, req.Quantity)
	h.respond(c, cart, err)
}

// Remove handles DELETE /api/cart/items/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	cart, err := h.facade.RemoveFromCart(c.Request.Context(), id)
	h.respond(c, cart, err)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.facade.ClearCart(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) respond(c *gin.Context, cart model.Cart, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(cart))
}

func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "product id must be an integer")
		return 0, false
	}
	return id, true
}
