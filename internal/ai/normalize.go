package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const parseExcerptLimit = 200

// ParseError reports a model response that could not be coerced into JSON.
// Excerpt is bounded so it is safe to log and return.
type ParseError struct {
	Excerpt string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse JSON from model response: %s", e.Excerpt)
}

var (
	openFenceRe  = regexp.MustCompile("^```(?:json)?\\s*")
	closeFenceRe = regexp.MustCompile("\\s*```$")
)

// Normalize coerces a raw model response into valid JSON. Models sometimes
// wrap output in code fences or surround it with prose; recovery order is:
// strip fences, parse directly, widest {...} span, widest [...] span.
func Normalize(raw string) (json.RawMessage, error) {
	content := strings.TrimSpace(raw)
	content = openFenceRe.ReplaceAllString(content, "")
	content = closeFenceRe.ReplaceAllString(strings.TrimSpace(content), "")
	content = strings.TrimSpace(content)

	if json.Valid([]byte(content)) && content != "" {
		return json.RawMessage(content), nil
	}

	if span := widestSpan(content, '{', '}'); span != "" && json.Valid([]byte(span)) {
		return json.RawMessage(span), nil
	}
	if span := widestSpan(content, '[', ']'); span != "" && json.Valid([]byte(span)) {
		return json.RawMessage(span), nil
	}

	return nil, &ParseError{Excerpt: excerpt(content)}
}

// NormalizeInto normalizes raw and unmarshals the result into out.
func NormalizeInto(raw string, out any) error {
	_, err := NormalizeJSONInto(raw, out)
	return err
}

// NormalizeJSONInto normalizes raw once, unmarshals the result into out and
// returns the normalized JSON so callers can persist the value they validated.
func NormalizeJSONInto(raw string, out any) (json.RawMessage, error) {
	data, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, &ParseError{Excerpt: excerpt(string(data))}
	}
	return data, nil
}

func widestSpan(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return ""
	}
	end := strings.LastIndexByte(s, close)
	if end <= start {
		return ""
	}
	return s[start : end+1]
}

func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) > parseExcerptLimit {
		return string(runes[:parseExcerptLimit])
	}
	return s
}
