package handlers

import (
	"net/http"

	"concierge/models"
	ai "concierge/services/intelligence"
	"concierge/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler exposes the conversational surface: one message in, one reply
// out, with the conversation ID threading context between calls.
type ChatHandler struct {
	Service ai.ChatService
	Logger  *zap.Logger
}

func NewChatHandler(service ai.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Service: service, Logger: logger}
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid chat request", err.Error())
		return
	}
	if req.ConversationID == "" {
		req.ConversationID = uuid.New().String()
	}

	resp, err := h.Service.ProcessUserInput(c.Request.Context(), req.ConversationID, req.Text)
	if err != nil {
		h.Logger.Error("failed to process chat message",
			zap.String("conversationID", req.ConversationID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to process message", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CancelBooking handles POST /api/chat/:conversationID/cancel.
func (h *ChatHandler) CancelBooking(c *gin.Context) {
	conversationID := c.Param("conversationID")
	if conversationID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing conversation ID", "")
		return
	}

	resp, err := h.Service.CancelBooking(c.Request.Context(), conversationID)
	if err != nil {
		h.Logger.Error("failed to cancel booking",
			zap.String("conversationID", conversationID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}
