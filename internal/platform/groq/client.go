package groq

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/xelyqor/xelyqor-backend/internal/observability"
	"github.com/xelyqor/xelyqor-backend/internal/platform/envutil"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

// Message is one turn of a chat exchange, oldest first.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ImageInput is a raw image attached to a vision request. Mime is required.
type ImageInput struct {
	Bytes []byte
	Mime  string
}

type ChatOptions struct {
	Model       string // empty = client default chat model
	MaxTokens   int
	Temperature float64
}

// Client is the Groq API client used by the rest of the backend.
//
// Transport and provider errors propagate to the caller unmodified: every
// consumer is a synchronous request handler with its own deadline, so there
// is no retry or backoff here.
type Client interface {
	// ChatText sends a system prompt plus message history and returns the
	// first completion's text with surrounding whitespace trimmed.
	ChatText(ctx context.Context, system string, messages []Message, opts ChatOptions) (string, error)

	// ChatWithImage sends a user prompt accompanied by one image
	// (base64 data URL) to the vision model.
	ChatWithImage(ctx context.Context, system string, prompt string, image ImageInput, opts ChatOptions) (string, error)

	// Transcribe submits raw audio bytes to the speech-to-text endpoint.
	Transcribe(ctx context.Context, filename string, audio []byte) (string, error)
}

type client struct {
	log          *logger.Logger
	baseURL      string
	apiKey       string
	chatModel    string
	visionModel  string
	whisperModel string
	httpClient   *http.Client
}

// NewClient reads its configuration from the environment. A missing API key
// is not an error here: it surfaces as a provider authentication failure at
// call time, matching how the rest of the configuration behaves.
func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	apiKey := envutil.Str("GROQ_API_KEY", "")
	if apiKey == "" {
		log.Warn("GROQ_API_KEY not set; model calls will fail with auth errors")
	}

	baseURL := strings.TrimRight(envutil.Str("GROQ_BASE_URL", "https://api.groq.com/openai"), "/")
	timeoutSec := envutil.Int("GROQ_TIMEOUT_SECONDS", 180)

	return &client{
		log:          log.With("service", "GroqClient"),
		baseURL:      baseURL,
		apiKey:       apiKey,
		chatModel:    envutil.Str("GROQ_CHAT_MODEL", "llama-3.1-8b-instant"),
		visionModel:  envutil.Str("GROQ_VISION_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
		whisperModel: envutil.Str("GROQ_WHISPER_MODEL", "whisper-large-v3"),
		httpClient:   &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("groq http %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) do(ctx context.Context, method, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if uErr := json.Unmarshal(raw, out); uErr != nil {
		return fmt.Errorf("groq decode error: %w; raw=%s", uErr, string(raw))
	}
	return nil
}

// -------------------- Chat Completions --------------------

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (c *client) chat(ctx context.Context, req chatRequest) (string, error) {
	start := time.Now()

	var resp chatResponse
	err := c.do(ctx, "POST", "/v1/chat/completions", req, &resp)

	if metrics := observability.Current(); metrics != nil {
		metrics.ObserveLLMRequest(req.Model, "/v1/chat/completions", statusFromErr(err), time.Since(start), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	}
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("groq: empty choices in completion response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *client) ChatText(ctx context.Context, system string, messages []Message, opts ChatOptions) (string, error) {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = c.chatModel
	}

	msgs := make([]chatMessage, 0, len(messages)+1)
	msgs = append(msgs, chatMessage{Role: "system", Content: system})
	for _, m := range messages {
		msgs = append(msgs, chatMessage{Role: m.Role, Content: m.Content})
	}

	req := chatRequest{
		Model:     model,
		Messages:  msgs,
		MaxTokens: opts.MaxTokens,
	}
	if opts.Temperature > 0 {
		req.Temperature = f64ptr(opts.Temperature)
	}
	return c.chat(ctx, req)
}

func (c *client) ChatWithImage(ctx context.Context, system string, prompt string, image ImageInput, opts ChatOptions) (string, error) {
	if len(image.Bytes) == 0 {
		return "", errors.New("image bytes required")
	}
	mime := strings.TrimSpace(image.Mime)
	if mime == "" {
		return "", errors.New("image mime type required")
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = c.visionModel
	}

	content := []map[string]any{
		{"type": "image_url", "image_url": map[string]any{"url": dataURL(mime, image.Bytes)}},
		{"type": "text", "text": prompt},
	}

	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: content},
		},
		MaxTokens: opts.MaxTokens,
	}
	if opts.Temperature > 0 {
		req.Temperature = f64ptr(opts.Temperature)
	}
	return c.chat(ctx, req)
}

func dataURL(mime string, b []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(b))
}

// -------------------- Audio Transcription --------------------

type transcriptionResponse struct {
	Text string `json:"text"`
}

func (c *client) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("audio bytes required")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	_ = writer.WriteField("model", c.whisperModel)
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/audio/transcriptions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if metrics := observability.Current(); metrics != nil {
			metrics.ObserveLLMRequest(c.whisperModel, "/v1/audio/transcriptions", statusFromErr(err), time.Since(start), 0, 0)
		}
		return "", err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", readErr
	}

	if metrics := observability.Current(); metrics != nil {
		metrics.ObserveLLMRequest(c.whisperModel, "/v1/audio/transcriptions", fmt.Sprintf("%d", resp.StatusCode), time.Since(start), 0, estimateTokens(string(raw)))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out transcriptionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("groq decode error: %w; raw=%s", err, string(raw))
	}
	return strings.TrimSpace(out.Text), nil
}

func f64ptr(v float64) *float64 { return &v }

func statusFromErr(err error) string {
	if err == nil {
		return "200"
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("%d", httpErr.StatusCode)
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}

// estimateTokens is a rough characters/4 heuristic; the transcription
// endpoint reports no usage figures.
func estimateTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	return int(math.Ceil(float64(len([]rune(text))) / 4))
}
