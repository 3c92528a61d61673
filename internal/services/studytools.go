package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xelyqor/xelyqor-backend/internal/ai"
	"github.com/xelyqor/xelyqor-backend/internal/data/repos"
	"github.com/xelyqor/xelyqor-backend/internal/platform/groq"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

var (
	ErrNoNotesFound    = errors.New("No notes found for these lectures.")
	ErrNoLecturesFound = errors.New("No lectures found.")
)

// StudyToolsService covers the subject-wide generators plus the per-lecture
// concept map. All outputs are ephemeral, nothing is persisted.
type StudyToolsService interface {
	CourseSummary(ctx context.Context, subjectName string, lectureIDs []uuid.UUID) (*ai.CourseSummary, error)
	StudyPlan(ctx context.Context, subjectName string, lectureIDs []uuid.UUID, examDate string) (*ai.StudyPlan, error)

	// PracticeExam optionally blends in past-paper text supplied by the
	// caller. Pass empty when no past paper was uploaded.
	PracticeExam(ctx context.Context, subjectName string, lectureIDs []uuid.UUID, pastPaperText string) (*ai.PracticeExam, error)

	ConceptMap(ctx context.Context, title, notes string) (*ai.ConceptMap, error)
}

type studyToolsService struct {
	log       *logger.Logger
	ai        groq.Client
	lectures  repos.LectureRepo
	materials repos.StudyMaterialsRepo
	now       func() time.Time
}

func NewStudyToolsService(
	baseLog *logger.Logger,
	aiClient groq.Client,
	lectures repos.LectureRepo,
	materials repos.StudyMaterialsRepo,
) StudyToolsService {
	return &studyToolsService{
		log:       baseLog.With("service", "StudyToolsService"),
		ai:        aiClient,
		lectures:  lectures,
		materials: materials,
		now:       time.Now,
	}
}

// gatherNotes collects non-empty notes for the given lectures. Lectures
// without notes are skipped rather than failing the whole request.
func (s *studyToolsService) gatherNotes(ctx context.Context, lectureIDs []uuid.UUID) ([]string, error) {
	rows, err := s.materials.GetByLectureIDs(ctx, nil, lectureIDs)
	if err != nil {
		return nil, err
	}
	var notes []string
	for _, row := range rows {
		if row.Notes != "" {
			notes = append(notes, row.Notes)
		}
	}
	return notes, nil
}

func (s *studyToolsService) CourseSummary(ctx context.Context, subjectName string, lectureIDs []uuid.UUID) (*ai.CourseSummary, error) {
	notes, err := s.gatherNotes(ctx, lectureIDs)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, ErrNoNotesFound
	}

	prompt := ai.CourseSummaryPrompt(subjectName, ai.CombineNotes(notes, ai.CourseNotesCap))
	raw, err := s.ai.ChatText(ctx, prompt.System,
		[]groq.Message{{Role: "user", Content: prompt.User}},
		groq.ChatOptions{MaxTokens: prompt.MaxTokens, Temperature: prompt.Temperature})
	if err != nil {
		return nil, err
	}

	var summary ai.CourseSummary
	if err := ai.NormalizeInto(raw, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *studyToolsService) StudyPlan(ctx context.Context, subjectName string, lectureIDs []uuid.UUID, examDate string) (*ai.StudyPlan, error) {
	var titles []string
	for _, id := range lectureIDs {
		lecture, err := s.lectures.GetByID(ctx, nil, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		titles = append(titles, lecture.Title)
	}
	if len(titles) == 0 {
		return nil, ErrNoLecturesFound
	}

	prompt := ai.StudyPlanPrompt(subjectName, titles, examDate, s.now())
	raw, err := s.ai.ChatText(ctx, prompt.System,
		[]groq.Message{{Role: "user", Content: prompt.User}},
		groq.ChatOptions{MaxTokens: prompt.MaxTokens, Temperature: prompt.Temperature})
	if err != nil {
		return nil, err
	}

	var plan ai.StudyPlan
	if err := ai.NormalizeInto(raw, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *studyToolsService) PracticeExam(ctx context.Context, subjectName string, lectureIDs []uuid.UUID, pastPaperText string) (*ai.PracticeExam, error) {
	notes, err := s.gatherNotes(ctx, lectureIDs)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, ErrNoNotesFound
	}

	prompt := ai.PracticeExamPrompt(subjectName, ai.CombineNotes(notes, ai.ExamNotesCap), pastPaperText)
	raw, err := s.ai.ChatText(ctx, prompt.System,
		[]groq.Message{{Role: "user", Content: prompt.User}},
		groq.ChatOptions{MaxTokens: prompt.MaxTokens, Temperature: prompt.Temperature})
	if err != nil {
		return nil, err
	}

	var exam ai.PracticeExam
	if err := ai.NormalizeInto(raw, &exam); err != nil {
		return nil, err
	}
	return &exam, nil
}

func (s *studyToolsService) ConceptMap(ctx context.Context, title, notes string) (*ai.ConceptMap, error) {
	prompt := ai.ConceptMapPrompt(notes, title)
	raw, err := s.ai.ChatText(ctx, prompt.System,
		[]groq.Message{{Role: "user", Content: prompt.User}},
		groq.ChatOptions{MaxTokens: prompt.MaxTokens, Temperature: prompt.Temperature})
	if err != nil {
		return nil, err
	}

	var conceptMap ai.ConceptMap
	if err := ai.NormalizeInto(raw, &conceptMap); err != nil {
		return nil, err
	}
	return &conceptMap, nil
}
