package services

import (
	"context"
	"errors"
	"strings"

	"github.com/xelyqor/xelyqor-backend/internal/platform/groq"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

var ErrRecordingEmpty = errors.New("recording produced no speech")

// RecordingService turns uploaded lecture audio into a transcript.
type RecordingService interface {
	Transcribe(ctx context.Context, filename string, audio []byte) (string, error)
}

type recordingService struct {
	log *logger.Logger
	ai  groq.Client
}

func NewRecordingService(baseLog *logger.Logger, aiClient groq.Client) RecordingService {
	return &recordingService{
		log: baseLog.With("service", "RecordingService"),
		ai:  aiClient,
	}
}

func (s *recordingService) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	if filename == "" {
		filename = "recording.webm"
	}
	transcript, err := s.ai.Transcribe(ctx, filename, audio)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(transcript) == "" {
		return "", ErrRecordingEmpty
	}
	s.log.Info("recording transcribed", "filename", filename, "transcript_chars", len(transcript))
	return transcript, nil
}
