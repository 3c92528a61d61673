package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/xelyqor/xelyqor-backend/internal/domain"
	"github.com/xelyqor/xelyqor-backend/internal/platform/groq"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("logger: %v", err)
	}
	return log
}

// fakeAI replays scripted responses and counts calls per endpoint.
type fakeAI struct {
	responses []string
	err       error

	chatCalls       int
	visionCalls     int
	transcribeCalls int

	lastSystem string
	lastUser   string
	lastImage  groq.ImageInput
	transcript string
}

func (f *fakeAI) next() string {
	if len(f.responses) == 0 {
		return ""
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp
}

func (f *fakeAI) ChatText(_ context.Context, system string, messages []groq.Message, _ groq.ChatOptions) (string, error) {
	f.chatCalls++
	f.lastSystem = system
	if len(messages) > 0 {
		f.lastUser = messages[len(messages)-1].Content
	}
	if f.err != nil {
		return "", f.err
	}
	return f.next(), nil
}

func (f *fakeAI) ChatWithImage(_ context.Context, system, prompt string, image groq.ImageInput, _ groq.ChatOptions) (string, error) {
	f.visionCalls++
	f.lastSystem = system
	f.lastUser = prompt
	f.lastImage = image
	if f.err != nil {
		return "", f.err
	}
	return f.next(), nil
}

func (f *fakeAI) Transcribe(_ context.Context, _ string, _ []byte) (string, error) {
	f.transcribeCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.transcript, nil
}

type fakeLectureRepo struct {
	lectures map[uuid.UUID]*domain.Lecture
	getErr   error
}

func newFakeLectureRepo() *fakeLectureRepo {
	return &fakeLectureRepo{lectures: map[uuid.UUID]*domain.Lecture{}}
}

func (r *fakeLectureRepo) Create(_ context.Context, _ *gorm.DB, lecture *domain.Lecture) (*domain.Lecture, error) {
	if lecture.ID == uuid.Nil {
		lecture.ID = uuid.New()
	}
	r.lectures[lecture.ID] = lecture
	return lecture, nil
}

func (r *fakeLectureRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*domain.Lecture, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	lecture, ok := r.lectures[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return lecture, nil
}

func (r *fakeLectureRepo) GetByUserID(_ context.Context, _ *gorm.DB, userID string, subjectID *uuid.UUID) ([]*domain.Lecture, error) {
	var out []*domain.Lecture
	for _, l := range r.lectures {
		if l.UserID != userID {
			continue
		}
		if subjectID != nil && (l.SubjectID == nil || *l.SubjectID != *subjectID) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeLectureRepo) UpdateSubject(_ context.Context, _ *gorm.DB, id uuid.UUID, subjectID *uuid.UUID) error {
	lecture, ok := r.lectures[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	lecture.SubjectID = subjectID
	return nil
}

func (r *fakeLectureRepo) DeleteByID(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.lectures, id)
	return nil
}

type fakeMaterialsRepo struct {
	byLecture map[uuid.UUID]*domain.StudyMaterials
}

func newFakeMaterialsRepo() *fakeMaterialsRepo {
	return &fakeMaterialsRepo{byLecture: map[uuid.UUID]*domain.StudyMaterials{}}
}

func (r *fakeMaterialsRepo) Create(_ context.Context, _ *gorm.DB, materials *domain.StudyMaterials) (*domain.StudyMaterials, error) {
	if materials.ID == uuid.Nil {
		materials.ID = uuid.New()
	}
	if _, exists := r.byLecture[materials.LectureID]; exists {
		return nil, errors.New("duplicate lecture_id")
	}
	r.byLecture[materials.LectureID] = materials
	return materials, nil
}

func (r *fakeMaterialsRepo) GetByLectureID(_ context.Context, _ *gorm.DB, lectureID uuid.UUID) (*domain.StudyMaterials, error) {
	materials, ok := r.byLecture[lectureID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return materials, nil
}

func (r *fakeMaterialsRepo) GetByLectureIDs(_ context.Context, _ *gorm.DB, lectureIDs []uuid.UUID) ([]*domain.StudyMaterials, error) {
	var out []*domain.StudyMaterials
	for _, id := range lectureIDs {
		if materials, ok := r.byLecture[id]; ok {
			out = append(out, materials)
		}
	}
	return out, nil
}

func (r *fakeMaterialsRepo) UpdateQuiz(_ context.Context, _ *gorm.DB, lectureID uuid.UUID, quiz datatypes.JSON) error {
	materials, ok := r.byLecture[lectureID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	materials.Quiz = quiz
	return nil
}

func (r *fakeMaterialsRepo) UpdateFlashcards(_ context.Context, _ *gorm.DB, lectureID uuid.UUID, flashcards datatypes.JSON) error {
	materials, ok := r.byLecture[lectureID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	materials.Flashcards = flashcards
	return nil
}
