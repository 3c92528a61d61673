package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/xelyqor/xelyqor-backend/internal/ai"
	"github.com/xelyqor/xelyqor-backend/internal/data/repos"
	"github.com/xelyqor/xelyqor-backend/internal/domain"
	"github.com/xelyqor/xelyqor-backend/internal/platform/groq"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

var (
	ErrTranscriptEmpty    = errors.New("Transcript is empty.")
	ErrTranscriptTooShort = errors.New("Transcript is too short — paste more text.")
)

const minTranscriptLength = 100

const fallbackTitle = "Untitled Lecture"

type CreateLectureInput struct {
	UserID     string
	SubjectID  *uuid.UUID
	Transcript string
	SourceType string
	SourceRef  string
	// LectureName, when set, overrides the generated title.
	LectureName string
}

type CreateLectureResult struct {
	Lecture   *domain.Lecture
	Materials *domain.StudyMaterials
}

// GenerationService orchestrates lecture ingestion and the lazily generated
// artifacts that hang off it.
type GenerationService interface {
	// CreateLecture runs the two-call ingestion pipeline (draft, then
	// glossary) and persists the lecture with its study materials.
	CreateLecture(ctx context.Context, input CreateLectureInput) (*CreateLectureResult, error)

	// EnsureQuiz returns the stored quiz verbatim when present, otherwise
	// generates one from the lecture notes, persists it and returns it.
	EnsureQuiz(ctx context.Context, lectureID uuid.UUID) (datatypes.JSON, error)

	// EnsureFlashcards mirrors EnsureQuiz for the flashcard deck.
	EnsureFlashcards(ctx context.Context, lectureID uuid.UUID) (datatypes.JSON, error)
}

type generationService struct {
	log       *logger.Logger
	ai        groq.Client
	lectures  repos.LectureRepo
	materials repos.StudyMaterialsRepo
}

func NewGenerationService(
	baseLog *logger.Logger,
	aiClient groq.Client,
	lectures repos.LectureRepo,
	materials repos.StudyMaterialsRepo,
) GenerationService {
	return &generationService{
		log:       baseLog.With("service", "GenerationService"),
		ai:        aiClient,
		lectures:  lectures,
		materials: materials,
	}
}

// ValidateTranscript enforces the pre-flight rules shared by the transcript
// ingestion paths.
func ValidateTranscript(transcript string) (string, error) {
	clean := strings.TrimSpace(transcript)
	if clean == "" {
		return "", ErrTranscriptEmpty
	}
	if len([]rune(clean)) < minTranscriptLength {
		return "", ErrTranscriptTooShort
	}
	return clean, nil
}

func (s *generationService) CreateLecture(ctx context.Context, input CreateLectureInput) (*CreateLectureResult, error) {
	draftPrompt := ai.LectureDraftPrompt(input.Transcript)
	draftRaw, err := s.ai.ChatText(ctx, draftPrompt.System,
		[]groq.Message{{Role: "user", Content: draftPrompt.User}},
		groq.ChatOptions{MaxTokens: draftPrompt.MaxTokens, Temperature: draftPrompt.Temperature})
	if err != nil {
		return nil, err
	}

	var draft ai.LectureDraft
	if err := ai.NormalizeInto(draftRaw, &draft); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.LectureName)
	if title == "" {
		title = strings.TrimSpace(draft.Title)
	}
	if title == "" {
		title = fallbackTitle
	}

	glossaryPrompt := ai.GlossaryPrompt(input.Transcript, title)
	glossaryRaw, err := s.ai.ChatText(ctx, glossaryPrompt.System,
		[]groq.Message{{Role: "user", Content: glossaryPrompt.User}},
		groq.ChatOptions{MaxTokens: glossaryPrompt.MaxTokens, Temperature: glossaryPrompt.Temperature})
	if err != nil {
		return nil, err
	}
	glossary, err := ai.Normalize(glossaryRaw)
	if err != nil {
		return nil, err
	}

	lecture := &domain.Lecture{
		UserID:        input.UserID,
		SubjectID:     input.SubjectID,
		Title:         title,
		SourceType:    input.SourceType,
		SourceRef:     input.SourceRef,
		RawTranscript: input.Transcript,
	}
	if _, err := s.lectures.Create(ctx, nil, lecture); err != nil {
		return nil, err
	}

	materials := &domain.StudyMaterials{
		LectureID: lecture.ID,
		UserID:    input.UserID,
		Summary:   draft.Summary,
		Notes:     draft.Notes,
		Glossary:  datatypes.JSON(glossary),
	}
	if _, err := s.materials.Create(ctx, nil, materials); err != nil {
		return nil, err
	}

	s.log.Info("lecture created",
		"lecture_id", lecture.ID,
		"user_id", input.UserID,
		"source_type", input.SourceType,
		"transcript_chars", len(input.Transcript),
	)
	return &CreateLectureResult{Lecture: lecture, Materials: materials}, nil
}

func (s *generationService) EnsureQuiz(ctx context.Context, lectureID uuid.UUID) (datatypes.JSON, error) {
	materials, err := s.materials.GetByLectureID(ctx, nil, lectureID)
	if err != nil {
		return nil, err
	}
	if len(materials.Quiz) > 0 {
		return materials.Quiz, nil
	}

	lecture, err := s.lectures.GetByID(ctx, nil, lectureID)
	if err != nil {
		return nil, err
	}

	prompt := ai.QuizPrompt(materials.Notes, lecture.Title)
	raw, err := s.ai.ChatText(ctx, prompt.System,
		[]groq.Message{{Role: "user", Content: prompt.User}},
		groq.ChatOptions{MaxTokens: prompt.MaxTokens, Temperature: prompt.Temperature})
	if err != nil {
		return nil, err
	}

	var quiz []ai.QuizQuestion
	normalized, err := ai.NormalizeJSONInto(raw, &quiz)
	if err != nil {
		return nil, err
	}

	if err := s.materials.UpdateQuiz(ctx, nil, lectureID, datatypes.JSON(normalized)); err != nil {
		return nil, err
	}
	s.log.Info("quiz generated", "lecture_id", lectureID, "questions", len(quiz))
	return datatypes.JSON(normalized), nil
}

func (s *generationService) EnsureFlashcards(ctx context.Context, lectureID uuid.UUID) (datatypes.JSON, error) {
	materials, err := s.materials.GetByLectureID(ctx, nil, lectureID)
	if err != nil {
		return nil, err
	}
	if len(materials.Flashcards) > 0 {
		return materials.Flashcards, nil
	}

	lecture, err := s.lectures.GetByID(ctx, nil, lectureID)
	if err != nil {
		return nil, err
	}

	prompt := ai.FlashcardsPrompt(materials.Notes, lecture.Title)
	raw, err := s.ai.ChatText(ctx, prompt.System,
		[]groq.Message{{Role: "user", Content: prompt.User}},
		groq.ChatOptions{MaxTokens: prompt.MaxTokens, Temperature: prompt.Temperature})
	if err != nil {
		return nil, err
	}

	var cards []ai.Flashcard
	normalized, err := ai.NormalizeJSONInto(raw, &cards)
	if err != nil {
		return nil, err
	}

	if err := s.materials.UpdateFlashcards(ctx, nil, lectureID, datatypes.JSON(normalized)); err != nil {
		return nil, err
	}
	s.log.Info("flashcards generated", "lecture_id", lectureID, "cards", len(cards))
	return datatypes.JSON(normalized), nil
}
