package domain

import (
	"github.com/google/uuid"
)

// Chatbot tone presets.
const (
	ToneFriendly = "friendly"
	ToneStrict   = "strict"
	ToneSocratic = "socratic"
)

const (
	DefaultChatbotName  = "Tutor"
	DefaultAvatarColour = "#c17b2e"
)

type UserSettings struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID string    `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`

	DisplayName  string `gorm:"column:display_name" json:"display_name"`
	AvatarColour string `gorm:"column:avatar_colour;not null;default:'#c17b2e'" json:"avatar_colour"`
	ChatbotName  string `gorm:"column:chatbot_name;not null;default:'Tutor'" json:"chatbot_name"`
	ChatbotTone  string `gorm:"column:chatbot_tone;not null;default:'friendly'" json:"chatbot_tone"`
}

func (UserSettings) TableName() string { return "user_settings" }

// ValidTone reports whether tone is one of the supported presets.
func ValidTone(tone string) bool {
	switch tone {
	case ToneFriendly, ToneStrict, ToneSocratic:
		return true
	default:
		return false
	}
}

// DefaultSettings is what GET returns for a user with no stored row.
func DefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:       userID,
		DisplayName:  "",
		AvatarColour: DefaultAvatarColour,
		ChatbotName:  DefaultChatbotName,
		ChatbotTone:  ToneFriendly,
	}
}
