package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/xelyqor/xelyqor-backend/internal/domain"
	"github.com/xelyqor/xelyqor-backend/internal/platform/groq"
)

func TestLectureChatGroundsSystemPrompt(t *testing.T) {
	fake := &fakeAI{responses: []string{"the mitochondria"}}
	lectures := newFakeLectureRepo()
	svc := NewChatService(testLogger(t), fake, lectures)

	lecture := &domain.Lecture{
		UserID:        "u",
		Title:         "Cell Biology",
		SourceType:    domain.SourceYouTube,
		RawTranscript: "the powerhouse of the cell",
	}
	lectures.Create(context.Background(), nil, lecture)

	reply, err := svc.LectureChat(context.Background(), lecture.ID,
		[]groq.Message{{Role: "user", Content: "what is the powerhouse?"}}, "Ada", domain.ToneStrict)
	if err != nil {
		t.Fatalf("LectureChat: %v", err)
	}
	if reply != "the mitochondria" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if !strings.Contains(fake.lastSystem, "You are Ada,") {
		t.Fatal("chatbot name missing from system prompt")
	}
	if !strings.Contains(fake.lastSystem, "the powerhouse of the cell") {
		t.Fatal("transcript missing from system prompt")
	}
}

func TestLectureChatMissingLecture(t *testing.T) {
	fake := &fakeAI{}
	svc := NewChatService(testLogger(t), fake, newFakeLectureRepo())

	if _, err := svc.LectureChat(context.Background(), uuid.New(), nil, "", ""); err == nil {
		t.Fatal("expected not-found error")
	}
	if fake.chatCalls != 0 {
		t.Fatal("model must not be called for missing lecture")
	}
}

func TestGeneralChatUsesTone(t *testing.T) {
	fake := &fakeAI{responses: []string{"reply"}}
	svc := NewChatService(testLogger(t), fake, newFakeLectureRepo())

	if _, err := svc.GeneralChat(context.Background(),
		[]groq.Message{{Role: "user", Content: "hi"}}, "", domain.ToneSocratic); err != nil {
		t.Fatalf("GeneralChat: %v", err)
	}
	if !strings.Contains(fake.lastSystem, "asking questions rather than giving direct answers") {
		t.Fatalf("socratic tone missing: %s", fake.lastSystem)
	}
	if !strings.Contains(fake.lastSystem, "You are Tutor,") {
		t.Fatal("default chatbot name missing")
	}
}
