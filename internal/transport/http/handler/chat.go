package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pfas-demo/internal/app"
	"pfas-demo/internal/transport/http/middleware"
	"pfas-demo/internal/transport/http/response"
)

type ChatHandler struct {
	chatService *app.ChatService
}

type SendMessageRequest struct {
	// SessionID is empty for the first message of a conversation.
	SessionID string `json:"session_id" binding:"max=64"`
	Content   string `json:"content" binding:"required"`
}

func NewChatHandler(chatService *app.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload")
		return
	}

	result, err := h.chatService.SendMessage(c.Request.Context(), app.SendMessageInput{
		UserID:    userID,
		SessionID: req.SessionID,
		Content:   req.Content,
	})
	if err != nil {
		writeError(c, err, "send message failed")
		return
	}

	response.OK(c, result)
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		badRequest(c, "invalid session_id")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			badRequest(c, "invalid limit")
			return
		}
		limit = parsed
	}

	history, err := h.chatService.GetHistory(c.Request.Context(), userID, sessionID, limit)
	if err != nil {
		writeError(c, err, "get history failed")
		return
	}

	response.OK(c, history)
}
