package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xelyqor/xelyqor-backend/internal/data/repos"
	"github.com/xelyqor/xelyqor-backend/internal/domain"
	"github.com/xelyqor/xelyqor-backend/internal/http/response"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

type SettingsHandler struct {
	log      *logger.Logger
	settings repos.UserSettingsRepo
}

func NewSettingsHandler(log *logger.Logger, settings repos.UserSettingsRepo) *SettingsHandler {
	return &SettingsHandler{
		log:      log.With("handler", "SettingsHandler"),
		settings: settings,
	}
}

// Get returns defaults for users who have never saved settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	userID := c.Param("user_id")

	settings, err := h.settings.GetByUserID(c.Request.Context(), nil, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.RespondOK(c, domain.DefaultSettings(userID))
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, settings)
}

type saveSettingsRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	DisplayName  string `json:"display_name"`
	AvatarColour string `json:"avatar_colour"`
	ChatbotName  string `json:"chatbot_name"`
	ChatbotTone  string `json:"chatbot_tone"`
}

func (h *SettingsHandler) Save(c *gin.Context) {
	var req saveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	if req.AvatarColour == "" {
		req.AvatarColour = domain.DefaultAvatarColour
	}
	if req.ChatbotName == "" {
		req.ChatbotName = domain.DefaultChatbotName
	}
	if req.ChatbotTone == "" {
		req.ChatbotTone = domain.ToneFriendly
	}
	if !domain.ValidTone(req.ChatbotTone) {
		response.RespondError(c, http.StatusBadRequest, "invalid_tone", errors.New("chatbot_tone must be friendly, strict or socratic"))
		return
	}

	if _, err := h.settings.Upsert(c.Request.Context(), nil, &domain.UserSettings{
		UserID:       req.UserID,
		DisplayName:  req.DisplayName,
		AvatarColour: req.AvatarColour,
		ChatbotName:  req.ChatbotName,
		ChatbotTone:  req.ChatbotTone,
	}); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
