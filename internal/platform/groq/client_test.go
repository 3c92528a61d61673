package groq

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

func testClient(t *testing.T, handler http.Handler) (*client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	c := &client{
		log:          log,
		baseURL:      server.URL,
		apiKey:       "test-key",
		chatModel:    "llama-3.1-8b-instant",
		visionModel:  "meta-llama/llama-4-scout-17b-16e-instruct",
		whisperModel: "whisper-large-v3",
		httpClient:   &http.Client{Timeout: 5 * time.Second},
	}
	return c, server.Close
}

func TestChatTextSendsSystemAndHistory(t *testing.T) {
	var gotAuth, gotBody string
	c, cleanup := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("wrong path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  hello  "}}],"usage":{"prompt_tokens":10,"completion_tokens":2}}`))
	}))
	defer cleanup()

	got, err := c.ChatText(context.Background(), "be brief",
		[]Message{{Role: "user", Content: "hi"}},
		ChatOptions{MaxTokens: 64, Temperature: 0.7})
	if err != nil {
		t.Fatalf("ChatText: %v", err)
	}
	if got != "hello" {
		t.Fatalf("content not trimmed: %q", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header: %q", gotAuth)
	}
	if !strings.Contains(gotBody, `"role":"system"`) || !strings.Contains(gotBody, "be brief") {
		t.Fatalf("system message missing: %s", gotBody)
	}
	if !strings.Contains(gotBody, `"max_tokens":64`) {
		t.Fatalf("max_tokens missing: %s", gotBody)
	}
}

func TestChatTextHTTPErrorPropagates(t *testing.T) {
	c, cleanup := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer cleanup()

	_, err := c.ChatText(context.Background(), "s", nil, ChatOptions{})
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %v", err)
	}
	if httpErr.HTTPStatusCode() != http.StatusTooManyRequests {
		t.Fatalf("wrong status: %d", httpErr.StatusCode)
	}
	if !strings.Contains(httpErr.Body, "rate limited") {
		t.Fatalf("provider body lost: %s", httpErr.Body)
	}
}

func TestChatTextNoRetry(t *testing.T) {
	calls := 0
	c, cleanup := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer cleanup()

	if _, err := c.ChatText(context.Background(), "s", nil, ChatOptions{}); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("client must not retry, got %d calls", calls)
	}
}

func TestChatWithImageUsesVisionModelAndDataURL(t *testing.T) {
	var gotBody string
	c, cleanup := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`{"choices":[{"message":{"content":"answer"}}]}`))
	}))
	defer cleanup()

	_, err := c.ChatWithImage(context.Background(), "sys", "solve this",
		ImageInput{Bytes: []byte{0xff, 0xd8}, Mime: "image/jpeg"}, ChatOptions{})
	if err != nil {
		t.Fatalf("ChatWithImage: %v", err)
	}
	if !strings.Contains(gotBody, c.visionModel) {
		t.Fatalf("vision model not used: %s", gotBody)
	}
	if !strings.Contains(gotBody, "data:image/jpeg;base64,") {
		t.Fatalf("data URL missing: %s", gotBody)
	}
}

func TestChatWithImageRequiresMime(t *testing.T) {
	c, cleanup := testClient(t, http.NotFoundHandler())
	defer cleanup()

	if _, err := c.ChatWithImage(context.Background(), "s", "p", ImageInput{Bytes: []byte{1}}, ChatOptions{}); err == nil {
		t.Fatal("expected error for missing mime")
	}
}

func TestTranscribeMultipartUpload(t *testing.T) {
	c, cleanup := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("wrong path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-large-v3" {
			t.Errorf("model field: %q", got)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("file part: %v", err)
		}
		w.Write([]byte(`{"text":" spoken words "}`))
	}))
	defer cleanup()

	got, err := c.Transcribe(context.Background(), "lecture.webm", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got != "spoken words" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTranscribeRequiresAudio(t *testing.T) {
	c, cleanup := testClient(t, http.NotFoundHandler())
	defer cleanup()

	if _, err := c.Transcribe(context.Background(), "a.webm", nil); err == nil {
		t.Fatal("expected error for empty audio")
	}
}
