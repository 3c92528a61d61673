package ai

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeDirectJSON(t *testing.T) {
	got, err := Normalize(`{"title":"Cells","summary":"s","notes":"n"}`)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !strings.Contains(string(got), `"title":"Cells"`) {
		t.Fatalf("unexpected output: %s", got)
	}
}

func TestNormalizeStripsCodeFences(t *testing.T) {
	for _, raw := range []string{
		"```json\n{\"a\":1}\n```",
		"```\n{\"a\":1}\n```",
		"  ```json\n{\"a\":1}\n```  ",
	} {
		got, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", raw, err)
		}
		if string(got) != `{"a":1}` {
			t.Fatalf("Normalize(%q) = %s", raw, got)
		}
	}
}

func TestNormalizeExtractsObjectFromProse(t *testing.T) {
	raw := `Sure! Here is the JSON you asked for:

{"term": "entropy", "definition": "a measure of disorder"}

Let me know if you need anything else.`
	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !strings.HasPrefix(string(got), "{") || !strings.HasSuffix(string(got), "}") {
		t.Fatalf("expected object span, got %s", got)
	}
}

func TestNormalizeExtractsArrayFromProse(t *testing.T) {
	raw := `Here are your flashcards: [{"front":"f","back":"b"}] Enjoy!`
	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if string(got) != `[{"front":"f","back":"b"}]` {
		t.Fatalf("unexpected span: %s", got)
	}
}

func TestNormalizeFailureCarriesBoundedExcerpt(t *testing.T) {
	raw := strings.Repeat("not json at all ", 100)
	_, err := Normalize(raw)
	if err == nil {
		t.Fatal("expected error")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if len([]rune(parseErr.Excerpt)) > 200 {
		t.Fatalf("excerpt too long: %d", len(parseErr.Excerpt))
	}
}

func TestNormalizeIntoTypedTarget(t *testing.T) {
	var draft LectureDraft
	raw := "```json\n{\"title\":\"T\",\"summary\":\"S\",\"notes\":\"N\"}\n```"
	if err := NormalizeInto(raw, &draft); err != nil {
		t.Fatalf("NormalizeInto: %v", err)
	}
	if draft.Title != "T" || draft.Notes != "N" {
		t.Fatalf("bad decode: %+v", draft)
	}
}

func TestNormalizeIntoTypeMismatchIsParseError(t *testing.T) {
	var cards []Flashcard
	err := NormalizeInto(`{"front":"f"}`, &cards)
	if err == nil {
		t.Fatal("expected error for object into slice")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}

func TestNormalizeJSONIntoReturnsValidatedValue(t *testing.T) {
	var cards []Flashcard
	raw := "```json\n[{\"front\":\"f\",\"back\":\"b\"}]\n```"
	data, err := NormalizeJSONInto(raw, &cards)
	if err != nil {
		t.Fatalf("NormalizeJSONInto: %v", err)
	}
	if len(cards) != 1 || cards[0].Front != "f" {
		t.Fatalf("bad decode: %+v", cards)
	}
	if string(data) != `[{"front":"f","back":"b"}]` {
		t.Fatalf("returned value must be the normalized JSON: %s", data)
	}
}
