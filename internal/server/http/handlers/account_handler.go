package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/iowasensors/internal/server/http/dto"
)

// AccountHandler processes registration and password reset forms.
type AccountHandler struct {
	facade AccountFacade
}

func NewAccountHandler(facade AccountFacade) *AccountHandler {
	return &AccountHandler{facade: facade}
}

// Register handles POST /api/account/register.
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed registration payload")
		return
	}
	if err := h.facade.Register(c.Request.Context(), req.Registration()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RedirectResponse{Redirect: "/login"})
}

// ResetPassword handles POST /api/account/reset-password.
func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed reset payload")
		return
	}
	if err := h.facade.ResetPassword(c.Request.Context(), req.PasswordReset()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RedirectResponse{Redirect: "/login"})
}
