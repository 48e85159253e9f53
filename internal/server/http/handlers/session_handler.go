package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/iowasensors/internal/domain/model"
	"github.com/polkiloo/iowasensors/internal/server/http/dto"
)

// SessionHandler processes sign in, sign out and the current profile.
type SessionHandler struct {
	facade SessionFacade
}

// NewSessionHandler creates SessionHandler instance.
func NewSessionHandler(facade SessionFacade) *SessionHandler {
	return &SessionHandler{facade: facade}
}

// Login handles POST /api/session/login.
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed login payload")
		return
	}

	info, err := h.facade.Login(c.Request.Context(), req.Credentials())
	if err != nil {
		writeError(c, err)
		return
	}
	writeUser(c, info)
}

// Logout handles DELETE /api/session.
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.facade.Logout(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Current handles GET /api/session.
func (h *SessionHandler) Current(c *gin.Context) {
	info, err := h.facade.CurrentUser(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	writeUser(c, info)
}

// writeUser echoes the profile exactly as the backend returned it when available.
func writeUser(c *gin.Context, info *model.UserInfo) {
	if len(info.Raw) > 0 {
		c.Data(http.StatusOK, "application/json; charset=utf-8", info.Raw)
		return
	}
	c.JSON(http.StatusOK, info)
}
