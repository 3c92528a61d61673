package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xelyqor/xelyqor-backend/internal/http/response"
	"github.com/xelyqor/xelyqor-backend/internal/platform/groq"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
	"github.com/xelyqor/xelyqor-backend/internal/services"
)

type ChatHandler struct {
	log  *logger.Logger
	chat services.ChatService
}

func NewChatHandler(log *logger.Logger, chat services.ChatService) *ChatHandler {
	return &ChatHandler{
		log:  log.With("handler", "ChatHandler"),
		chat: chat,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type lectureChatRequest struct {
	LectureID   string        `json:"lecture_id" binding:"required"`
	Messages    []chatMessage `json:"messages" binding:"required"`
	ChatbotName string        `json:"chatbot_name"`
	ChatbotTone string        `json:"chatbot_tone"`
}

type generalChatRequest struct {
	Messages    []chatMessage `json:"messages" binding:"required"`
	ChatbotName string        `json:"chatbot_name"`
	ChatbotTone string        `json:"chatbot_tone"`
}

func toGroqMessages(messages []chatMessage) []groq.Message {
	out := make([]groq.Message, 0, len(messages))
	for _, m := range messages {
		out = append(out, groq.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func (h *ChatHandler) Lecture(c *gin.Context) {
	var req lectureChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	lectureID, err := uuid.Parse(req.LectureID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_lecture_id", err)
		return
	}

	reply, err := h.chat.LectureChat(c.Request.Context(), lectureID, toGroqMessages(req.Messages), req.ChatbotName, req.ChatbotTone)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reply": reply})
}

func (h *ChatHandler) General(c *gin.Context) {
	var req generalChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	reply, err := h.chat.GeneralChat(c.Request.Context(), toGroqMessages(req.Messages), req.ChatbotName, req.ChatbotTone)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reply": reply})
}
