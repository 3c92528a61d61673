package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xelyqor/xelyqor-backend/internal/ai"
	"github.com/xelyqor/xelyqor-backend/internal/domain"
)

func TestValidateTranscriptBoundary(t *testing.T) {
	if _, err := ValidateTranscript("   "); !errors.Is(err, ErrTranscriptEmpty) {
		t.Fatalf("expected ErrTranscriptEmpty, got %v", err)
	}
	if _, err := ValidateTranscript(strings.Repeat("a", 99)); !errors.Is(err, ErrTranscriptTooShort) {
		t.Fatalf("expected ErrTranscriptTooShort at 99 chars, got %v", err)
	}
	clean, err := ValidateTranscript(strings.Repeat("a", 100))
	if err != nil {
		t.Fatalf("100 chars must pass: %v", err)
	}
	if len(clean) != 100 {
		t.Fatalf("unexpected trim result: %d", len(clean))
	}
	// surrounding whitespace does not count toward the minimum
	if _, err := ValidateTranscript("  " + strings.Repeat("a", 99) + "  "); !errors.Is(err, ErrTranscriptTooShort) {
		t.Fatalf("whitespace must not pad the transcript: %v", err)
	}
}

func TestCreateLectureTwoCallsAndPersistence(t *testing.T) {
	fake := &fakeAI{responses: []string{
		"```json\n{\"title\":\"Cell Biology\",\"summary\":\"sum\",\"notes\":\"## Notes\"}\n```",
		`[{"term":"mitosis","definition":"cell division"}]`,
	}}
	lectures := newFakeLectureRepo()
	materials := newFakeMaterialsRepo()
	svc := NewGenerationService(testLogger(t), fake, lectures, materials)

	result, err := svc.CreateLecture(context.Background(), CreateLectureInput{
		UserID:     "user-1",
		Transcript: strings.Repeat("lecture content ", 20),
		SourceType: domain.SourceTranscript,
	})
	if err != nil {
		t.Fatalf("CreateLecture: %v", err)
	}
	if fake.chatCalls != 2 {
		t.Fatalf("expected 2 model calls, got %d", fake.chatCalls)
	}
	if result.Lecture.Title != "Cell Biology" {
		t.Fatalf("title from draft not used: %q", result.Lecture.Title)
	}
	if result.Materials.Notes != "## Notes" || result.Materials.Summary != "sum" {
		t.Fatalf("materials not persisted from draft: %+v", result.Materials)
	}
	if len(result.Materials.Quiz) != 0 || len(result.Materials.Flashcards) != 0 {
		t.Fatal("quiz and flashcards must start null")
	}
	if !strings.Contains(string(result.Materials.Glossary), "mitosis") {
		t.Fatalf("glossary not stored: %s", result.Materials.Glossary)
	}
	// glossary call sees the resolved title
	if !strings.Contains(fake.lastUser, `"Cell Biology"`) {
		t.Fatal("glossary prompt missing resolved title")
	}
}

func TestCreateLectureCallerNameWins(t *testing.T) {
	fake := &fakeAI{responses: []string{
		`{"title":"Generated","summary":"s","notes":"n"}`,
		`[]`,
	}}
	svc := NewGenerationService(testLogger(t), fake, newFakeLectureRepo(), newFakeMaterialsRepo())

	result, err := svc.CreateLecture(context.Background(), CreateLectureInput{
		UserID:      "user-1",
		Transcript:  strings.Repeat("x", 200),
		SourceType:  domain.SourcePDF,
		LectureName: "My Own Name",
	})
	if err != nil {
		t.Fatalf("CreateLecture: %v", err)
	}
	if result.Lecture.Title != "My Own Name" {
		t.Fatalf("caller-supplied name must win: %q", result.Lecture.Title)
	}
	if !strings.Contains(fake.lastUser, `"My Own Name"`) {
		t.Fatal("glossary prompt must use the resolved title")
	}
}

func TestCreateLectureParseFailure(t *testing.T) {
	fake := &fakeAI{responses: []string{"I refuse to answer in JSON, sorry."}}
	svc := NewGenerationService(testLogger(t), fake, newFakeLectureRepo(), newFakeMaterialsRepo())

	_, err := svc.CreateLecture(context.Background(), CreateLectureInput{
		UserID:     "user-1",
		Transcript: strings.Repeat("x", 200),
		SourceType: domain.SourceTranscript,
	})
	var parseErr *ai.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ai.ParseError, got %v", err)
	}
}

func TestEnsureQuizGeneratesOnceThenReturnsStored(t *testing.T) {
	quizJSON := `[{"question":"q","options":["a","b","c","d"],"correct":1,"explanation":"e","difficulty":"easy"}]`
	fake := &fakeAI{responses: []string{quizJSON}}
	lectures := newFakeLectureRepo()
	materials := newFakeMaterialsRepo()
	svc := NewGenerationService(testLogger(t), fake, lectures, materials)

	lecture := &domain.Lecture{UserID: "user-1", Title: "Thermo", SourceType: domain.SourcePDF}
	lectures.Create(context.Background(), nil, lecture)
	materials.Create(context.Background(), nil, &domain.StudyMaterials{
		LectureID: lecture.ID,
		UserID:    "user-1",
		Notes:     "## Notes",
	})

	first, err := svc.EnsureQuiz(context.Background(), lecture.ID)
	if err != nil {
		t.Fatalf("EnsureQuiz first: %v", err)
	}
	if fake.chatCalls != 1 {
		t.Fatalf("expected 1 model call, got %d", fake.chatCalls)
	}

	second, err := svc.EnsureQuiz(context.Background(), lecture.ID)
	if err != nil {
		t.Fatalf("EnsureQuiz second: %v", err)
	}
	if fake.chatCalls != 1 {
		t.Fatalf("second request must not re-invoke the model, calls=%d", fake.chatCalls)
	}
	if string(first) != string(second) {
		t.Fatalf("stored quiz must be returned verbatim: %s vs %s", first, second)
	}
}

func TestEnsureQuizStoresNormalizedJSON(t *testing.T) {
	quizJSON := `[{"question":"q","options":["a","b","c","d"],"correct":1,"explanation":"e","difficulty":"easy"}]`
	fake := &fakeAI{responses: []string{"```json\n" + quizJSON + "\n```"}}
	lectures := newFakeLectureRepo()
	materials := newFakeMaterialsRepo()
	svc := NewGenerationService(testLogger(t), fake, lectures, materials)

	lecture := &domain.Lecture{UserID: "user-1", Title: "Thermo", SourceType: domain.SourcePDF}
	lectures.Create(context.Background(), nil, lecture)
	materials.Create(context.Background(), nil, &domain.StudyMaterials{LectureID: lecture.ID, UserID: "user-1", Notes: "## Notes"})

	returned, err := svc.EnsureQuiz(context.Background(), lecture.ID)
	if err != nil {
		t.Fatalf("EnsureQuiz: %v", err)
	}
	if string(returned) != quizJSON {
		t.Fatalf("fences must be stripped before returning: %s", returned)
	}
	stored, _ := materials.GetByLectureID(context.Background(), nil, lecture.ID)
	if string(stored.Quiz) != string(returned) {
		t.Fatalf("stored quiz must be the validated value: %s vs %s", stored.Quiz, returned)
	}
}

func TestEnsureFlashcardsIdempotent(t *testing.T) {
	fake := &fakeAI{responses: []string{`[{"front":"f","back":"b"}]`}}
	lectures := newFakeLectureRepo()
	materials := newFakeMaterialsRepo()
	svc := NewGenerationService(testLogger(t), fake, lectures, materials)

	lecture := &domain.Lecture{UserID: "user-1", Title: "Cells", SourceType: domain.SourceYouTube}
	lectures.Create(context.Background(), nil, lecture)
	materials.Create(context.Background(), nil, &domain.StudyMaterials{
		LectureID: lecture.ID,
		UserID:    "user-1",
		Notes:     "## Notes",
	})

	for i := 0; i < 3; i++ {
		if _, err := svc.EnsureFlashcards(context.Background(), lecture.ID); err != nil {
			t.Fatalf("EnsureFlashcards call %d: %v", i, err)
		}
	}
	if fake.chatCalls != 1 {
		t.Fatalf("repeated requests must not re-invoke the model, calls=%d", fake.chatCalls)
	}
}

func TestEnsureQuizParseFailureLeavesNothingStored(t *testing.T) {
	fake := &fakeAI{responses: []string{"not json"}}
	lectures := newFakeLectureRepo()
	materials := newFakeMaterialsRepo()
	svc := NewGenerationService(testLogger(t), fake, lectures, materials)

	lecture := &domain.Lecture{UserID: "user-1", Title: "T", SourceType: domain.SourcePDF}
	lectures.Create(context.Background(), nil, lecture)
	materials.Create(context.Background(), nil, &domain.StudyMaterials{LectureID: lecture.ID, UserID: "user-1", Notes: "n"})

	if _, err := svc.EnsureQuiz(context.Background(), lecture.ID); err == nil {
		t.Fatal("expected parse error")
	}
	stored, _ := materials.GetByLectureID(context.Background(), nil, lecture.ID)
	if len(stored.Quiz) != 0 {
		t.Fatalf("failed generation must not persist: %s", stored.Quiz)
	}
}
