package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/iowasensors/internal/server/http/dto"
)

// StoreHandler serves the catalog and the checkout return page.
type StoreHandler struct {
	facade StoreFacade
}

func NewStoreHandler(facade StoreFacade) *StoreHandler {
	return &StoreHandler{facade: facade}
}

// Products handles GET /api/store/products.
func (h *StoreHandler) Products(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// ConfirmPayment handles GET /api/payment/confirm?session_id=.
func (h *StoreHandler) ConfirmPayment(c *gin.Context) {
	redirect, err := h.facade.ConfirmCheckout(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RedirectResponse{Redirect: redirect})
}
