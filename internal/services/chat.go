package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/xelyqor/xelyqor-backend/internal/ai"
	"github.com/xelyqor/xelyqor-backend/internal/data/repos"
	"github.com/xelyqor/xelyqor-backend/internal/platform/groq"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

// ChatService answers free-form study questions, optionally grounded in one
// lecture's transcript.
type ChatService interface {
	LectureChat(ctx context.Context, lectureID uuid.UUID, messages []groq.Message, chatbotName, chatbotTone string) (string, error)
	GeneralChat(ctx context.Context, messages []groq.Message, chatbotName, chatbotTone string) (string, error)
}

type chatService struct {
	log      *logger.Logger
	ai       groq.Client
	lectures repos.LectureRepo
}

func NewChatService(baseLog *logger.Logger, aiClient groq.Client, lectures repos.LectureRepo) ChatService {
	return &chatService{
		log:      baseLog.With("service", "ChatService"),
		ai:       aiClient,
		lectures: lectures,
	}
}

func (s *chatService) LectureChat(ctx context.Context, lectureID uuid.UUID, messages []groq.Message, chatbotName, chatbotTone string) (string, error) {
	lecture, err := s.lectures.GetByID(ctx, nil, lectureID)
	if err != nil {
		return "", err
	}

	system := ai.LectureChatSystem(lecture.Title, lecture.RawTranscript, chatbotName, chatbotTone)
	return s.ai.ChatText(ctx, system, messages, groq.ChatOptions{
		MaxTokens:   ai.ChatMaxTokens,
		Temperature: ai.CreationTemperature,
	})
}

func (s *chatService) GeneralChat(ctx context.Context, messages []groq.Message, chatbotName, chatbotTone string) (string, error) {
	system := ai.GeneralChatSystem(chatbotName, chatbotTone)
	return s.ai.ChatText(ctx, system, messages, groq.ChatOptions{
		MaxTokens:   ai.ChatMaxTokens,
		Temperature: ai.CreationTemperature,
	})
}
