package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/iowasensors/internal/domain/model"
	"github.com/polkiloo/iowasensors/internal/server/http/dto"
)

// ChatHandler drives the direct conversation view.
type ChatHandler struct {
	facade ChatFacade
}

func NewChatHandler(facade ChatFacade) *ChatHandler {
	return &ChatHandler{facade: facade}
}

// Mount handles PUT /api/chat/:friendId.
func (h *ChatHandler) Mount(c *gin.Context) {
	if err := h.facade.MountChat(c.Request.Context(), c.Param("friendId")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.snapshot())
}

// Unmount handles DELETE /api/chat.
func (h *ChatHandler) Unmount(c *gin.Context) {
	h.facade.UnmountChat()
	c.Status(http.StatusNoContent)
}

// Messages handles GET /api/chat/messages.
func (h *ChatHandler) Messages(c *gin.Context) {
	c.JSON(http.StatusOK, h.snapshot())
}

// SetInput handles PUT /api/chat/input.
func (h *ChatHandler) SetInput(c *gin.Context) {
	var req dto.ChatInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed input payload")
		return
	}
	h.facade.SetChatInput(req.Text)
	c.Status(http.StatusNoContent)
}

// Send handles POST /api/chat/send.
func (h *ChatHandler) Send(c *gin.Context) {
	if err := h.facade.SendChat(); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.snapshot())
}

func (h *ChatHandler) snapshot() dto.ChatResponse {
	resp := dto.ChatResponse{
		State:    h.facade.ChatState(),
		Messages: h.facade.ChatMessages(),
		Input:    h.facade.ChatInput(),
	}
	if id, ok := h.facade.ChatFriend(); ok {
		resp.FriendID = &id
	}
	if resp.Messages == nil {
		resp.Messages = []model.ChatMessage{}
	}
	return resp
}
