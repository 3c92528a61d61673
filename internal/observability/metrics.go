package observability

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
)

// Metrics records LLM provider activity. The Groq client calls
// ObserveLLMRequest once per round trip regardless of outcome.
type Metrics struct {
	log *logger.Logger

	requests         atomic.Int64
	failures         atomic.Int64
	promptTokens     atomic.Int64
	completionTokens atomic.Int64
}

func NewMetrics(log *logger.Logger) *Metrics {
	m := &Metrics{}
	if log != nil {
		m.log = log.With("component", "llm_metrics")
	}
	return m
}

func (m *Metrics) ObserveLLMRequest(model, path, status string, dur time.Duration, promptTokens, completionTokens int) {
	if m == nil {
		return
	}
	m.requests.Add(1)
	if status != "200" {
		m.failures.Add(1)
	}
	m.promptTokens.Add(int64(promptTokens))
	m.completionTokens.Add(int64(completionTokens))
	if m.log != nil {
		m.log.Debug("llm request",
			"model", model,
			"path", path,
			"status", status,
			"duration_ms", dur.Milliseconds(),
			"prompt_tokens", promptTokens,
			"completion_tokens", completionTokens,
		)
	}
}

// Snapshot returns cumulative counters since process start.
func (m *Metrics) Snapshot() (requests, failures, promptTokens, completionTokens int64) {
	if m == nil {
		return 0, 0, 0, 0
	}
	return m.requests.Load(), m.failures.Load(), m.promptTokens.Load(), m.completionTokens.Load()
}

var (
	currentMu sync.RWMutex
	current   *Metrics
)

// Set installs the process-wide metrics sink.
func Set(m *Metrics) {
	currentMu.Lock()
	current = m
	currentMu.Unlock()
}

// Current returns the installed sink, or nil when none is configured.
func Current() *Metrics {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}
