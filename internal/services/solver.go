package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xelyqor/xelyqor-backend/internal/ai"
	"github.com/xelyqor/xelyqor-backend/internal/platform/groq"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

var (
	ErrQuestionEmpty = errors.New("Question is empty.")
	ErrPDFNoText     = errors.New("Could not extract text from PDF. Try a non-scanned PDF.")
)

// SolverService produces worked solutions for academic questions. Plain
// questions and PDFs go through the chat model; images go through vision.
type SolverService interface {
	Solve(ctx context.Context, question, subject string) (string, error)

	// SolveWithFile routes on the upload: ".pdf" extracts text first,
	// anything else is treated as an image.
	SolveWithFile(ctx context.Context, filename, contentType string, data []byte, question, subject string) (string, error)
}

type solverService struct {
	log       *logger.Logger
	ai        groq.Client
	extractor TextExtractor
}

func NewSolverService(baseLog *logger.Logger, aiClient groq.Client, extractor TextExtractor) SolverService {
	return &solverService{
		log:       baseLog.With("service", "SolverService"),
		ai:        aiClient,
		extractor: extractor,
	}
}

func (s *solverService) Solve(ctx context.Context, question, subject string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrQuestionEmpty
	}

	prompt := ai.SolverPrompt(question, subject)
	return s.ai.ChatText(ctx, prompt.System,
		[]groq.Message{{Role: "user", Content: prompt.User}},
		groq.ChatOptions{MaxTokens: prompt.MaxTokens, Temperature: prompt.Temperature})
}

func (s *solverService) SolveWithFile(ctx context.Context, filename, contentType string, data []byte, question, subject string) (string, error) {
	if strings.ToLower(filepath.Ext(filename)) == ".pdf" {
		text, err := s.extractor.ExtractPDF(data)
		if err != nil {
			return "", fmt.Errorf("Could not read PDF: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			return "", ErrPDFNoText
		}

		prompt := ai.SolverPDFPrompt(text, question, subject)
		return s.ai.ChatText(ctx, prompt.System,
			[]groq.Message{{Role: "user", Content: prompt.User}},
			groq.ChatOptions{MaxTokens: prompt.MaxTokens, Temperature: prompt.Temperature})
	}

	mime := strings.TrimSpace(contentType)
	if mime == "" {
		mime = "image/jpeg"
	}

	prompt := ai.SolverImagePrompt(question, subject)
	return s.ai.ChatWithImage(ctx, prompt.System, prompt.User,
		groq.ImageInput{Bytes: data, Mime: mime},
		groq.ChatOptions{MaxTokens: prompt.MaxTokens, Temperature: prompt.Temperature})
}
