package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xelyqor/xelyqor-backend/internal/domain"
)

// Truncation caps, in characters of source text per task.
const (
	TranscriptCap     = 6000
	NotesCap          = 8000
	ConceptNotesCap   = 4000
	CourseNotesCap    = 12000
	ExamNotesCap      = 8000
	PastPaperCap      = 3000
	ChatTranscriptCap = 8000
	SolverPDFCap      = 6000
)

// Completion budgets and temperatures per task.
const (
	DefaultMaxTokens    = 4096
	ConceptMaxTokens    = 2000
	ChatMaxTokens       = 1024
	CreationTemperature = 0.7
	StructuredTemp      = 0.3
	ExamTemperature     = 0.4
)

// Prompt pairs a system instruction with a user message and the call options
// the task needs.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

var tonePrompts = map[string]string{
	domain.ToneFriendly: "You are warm, encouraging and use simple language. Celebrate progress and be supportive.",
	domain.ToneStrict:   "You are direct and concise. No hand-holding. Give precise answers without unnecessary encouragement.",
	domain.ToneSocratic: "You guide the student by asking questions rather than giving direct answers. Help them think through problems themselves.",
}

// TonePrompt resolves a tone preset, falling back to friendly.
func TonePrompt(tone string) string {
	if p, ok := tonePrompts[tone]; ok {
		return p
	}
	return tonePrompts[domain.ToneFriendly]
}

// Truncate caps s at limit characters.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func LectureDraftPrompt(transcript string) Prompt {
	system := `You are an expert academic tutor generating comprehensive study materials for university students.
Respond ONLY with a valid JSON object. No markdown, no explanation, no code fences. Just raw JSON.
The JSON must have exactly these keys: title, summary, notes.`

	user := fmt.Sprintf(`Given this lecture transcript, generate:
1. title: A concise descriptive title
2. summary: A 6-8 sentence executive summary covering all major themes
3. notes: COMPREHENSIVE study notes. MINIMUM 1200 words, using ## and ### markdown headers.
   Cover EVERY concept: definition, how it works, worked examples, why it matters, connections, real-world applications, common exam mistakes.
   End with a ## Key Takeaways section.

TRANSCRIPT:
%s

Respond with raw JSON only. Example format:
{"title": "...", "summary": "...", "notes": "## Introduction\n..."}`, Truncate(transcript, TranscriptCap))

	return Prompt{System: system, User: user, MaxTokens: DefaultMaxTokens, Temperature: CreationTemperature}
}

func GlossaryPrompt(transcript, title string) Prompt {
	system := `You are an expert academic tutor. Respond ONLY with a valid JSON array. No markdown, no code fences. Just raw JSON.`

	user := fmt.Sprintf(`For the lecture "%s", generate a glossary of 15-20 key terms.
Each item must have "term" and "definition" keys. Definitions should be 3-5 sentences.

TRANSCRIPT:
%s

Respond with raw JSON array only. Example:
[{"term": "...", "definition": "..."}, ...]`, title, Truncate(transcript, TranscriptCap))

	return Prompt{System: system, User: user, MaxTokens: DefaultMaxTokens, Temperature: CreationTemperature}
}

func QuizPrompt(notes, title string) Prompt {
	system := `You are an expert academic quiz writer. Respond ONLY with a valid JSON array. No markdown, no code fences. Just raw JSON.`

	user := fmt.Sprintf(`For the lecture "%s", generate 15-18 quiz questions.
Each object must have: question, options (array of 4 strings), correct (index 0-3), explanation, difficulty ("easy"/"medium"/"hard").

NOTES:
%s

Respond with raw JSON array only. Example:
[{"question": "...", "options": ["a","b","c","d"], "correct": 0, "explanation": "...", "difficulty": "medium"}]`, title, Truncate(notes, NotesCap))

	return Prompt{System: system, User: user, MaxTokens: DefaultMaxTokens, Temperature: CreationTemperature}
}

func FlashcardsPrompt(notes, title string) Prompt {
	system := `You are an expert academic flashcard creator. Respond ONLY with a valid JSON array. No markdown, no code fences. Just raw JSON.`

	user := fmt.Sprintf(`For the lecture "%s", generate 22-28 flashcards.
Each object must have "front" (a question) and "back" (2-4 sentence answer with example).

NOTES:
%s

Respond with raw JSON array only. Example:
[{"front": "What is...?", "back": "..."}]`, title, Truncate(notes, NotesCap))

	return Prompt{System: system, User: user, MaxTokens: DefaultMaxTokens, Temperature: CreationTemperature}
}

func ConceptMapPrompt(notes, title string) Prompt {
	system := `You are an expert at analysing academic content and identifying concept relationships.
Respond ONLY with valid JSON. No markdown, no explanation, just raw JSON.`

	user := fmt.Sprintf(`Analyse this lecture titled "%s" and generate a concept map.

Extract 8-15 key concepts and their relationships.

Respond with this exact JSON structure:
{
  "nodes": [
    {"id": "1", "label": "Main Concept", "type": "central"},
    {"id": "2", "label": "Supporting Concept", "type": "major"},
    {"id": "3", "label": "Detail", "type": "minor"}
  ],
  "edges": [
    {"source": "1", "target": "2", "label": "relates to"},
    {"source": "2", "target": "3", "label": "includes"}
  ]
}

Types: "central" (1-2 main concepts), "major" (key supporting concepts), "minor" (details/examples)
Edge labels should be short relationship descriptions like: "leads to", "is a type of", "requires", "contrasts with", "includes", "defines"

NOTES:
%s

Raw JSON only:`, title, Truncate(notes, ConceptNotesCap))

	return Prompt{System: system, User: user, MaxTokens: ConceptMaxTokens, Temperature: StructuredTemp}
}

// CombineNotes joins per-lecture notes with a separator and caps the result.
func CombineNotes(notes []string, limit int) string {
	return Truncate(strings.Join(notes, "\n\n---\n\n"), limit)
}

func CourseSummaryPrompt(subjectName, combinedNotes string) Prompt {
	system := `You are an expert academic tutor. Respond ONLY with valid JSON. No markdown, no code fences.`

	user := fmt.Sprintf(`Analyse all the notes from the subject "%s" and generate a course summary.

Respond with this exact JSON structure:
{
  "overview": "A 4-6 sentence overview of what this entire subject covers and its key themes",
  "checklist": [
    "Understand concept X and how it relates to Y",
    "Be able to explain Z with examples",
    "Know the difference between A and B"
  ],
  "themes": "## Theme 1\n\nExplanation...\n\n## Theme 2\n\nExplanation..."
}

The checklist should have 15-25 specific actionable items a student needs to know for an exam.
Themes should cover 3-5 major recurring themes across all lectures in markdown.

ALL LECTURE NOTES:
%s

Raw JSON only:`, subjectName, combinedNotes)

	return Prompt{System: system, User: user, MaxTokens: DefaultMaxTokens, Temperature: StructuredTemp}
}

func StudyPlanPrompt(subjectName string, lectureTitles []string, examDate string, today time.Time) Prompt {
	system := `You are an expert study coach. Respond ONLY with valid JSON. No markdown, no code fences.`

	titlesJSON, _ := json.MarshalIndent(lectureTitles, "", "  ")

	user := fmt.Sprintf(`Create a detailed study plan for the subject "%s".

Today's date: %s
Exam date: %s
Lectures to cover:
%s

Respond with this exact JSON structure:
{
  "days_until_exam": 14,
  "overview": "Brief overview of the study strategy",
  "schedule": [
    {
      "day": 1,
      "date": "2024-01-01",
      "focus": "Topic or lecture title",
      "tasks": ["Task 1", "Task 2", "Task 3"],
      "duration": "2 hours"
    }
  ],
  "tips": ["Tip 1", "Tip 2", "Tip 3"]
}

Make the schedule realistic and spaced well. Include revision days closer to the exam.
Each day should have 3-5 specific tasks. Last 2-3 days should be pure revision.

Raw JSON only:`, subjectName, today.Format("2006-01-02"), examDate, string(titlesJSON))

	return Prompt{System: system, User: user, MaxTokens: DefaultMaxTokens, Temperature: StructuredTemp}
}

func PracticeExamPrompt(subjectName, combinedNotes, pastPaperText string) Prompt {
	system := `You are an expert academic exam writer. Respond ONLY with valid JSON. No markdown, no code fences.`

	styleContext := ""
	if pastPaperText != "" {
		styleContext = fmt.Sprintf(`
Here is a past exam paper from this subject. Match its style, format, question types, and difficulty level:

PAST PAPER:
%s
`, Truncate(pastPaperText, PastPaperCap))
	}

	user := fmt.Sprintf(`Generate a complete practice exam for the subject "%s".

%s

The exam should have:
- 3 sections: Multiple Choice (10 questions), Short Answer (4 questions), Extended Response (2 questions)
- Cover all major topics from the lecture notes
- Realistic difficulty for a university exam
- Include marks for each question

Respond with this exact JSON structure:
{
  "title": "Practice Exam - Subject Name",
  "total_marks": 70,
  "time_allowed": "2 hours",
  "instructions": "Answer all questions. Show all working for calculation questions.",
  "sections": [
    {
      "name": "Section A: Multiple Choice",
      "marks": 20,
      "instructions": "Circle the best answer. 2 marks each.",
      "questions": [
        {
          "number": 1,
          "question": "Question text here?",
          "marks": 2,
          "type": "mcq",
          "options": ["A. Option 1", "B. Option 2", "C. Option 3", "D. Option 4"]
        }
      ]
    },
    {
      "name": "Section B: Short Answer",
      "marks": 30,
      "instructions": "Answer all questions.",
      "questions": [
        {
          "number": 11,
          "question": "Question text here?",
          "marks": 8,
          "type": "short",
          "options": []
        }
      ]
    },
    {
      "name": "Section C: Extended Response",
      "marks": 20,
      "instructions": "Write detailed responses.",
      "questions": [
        {
          "number": 15,
          "question": "Question text here?",
          "marks": 10,
          "type": "extended",
          "options": []
        }
      ]
    }
  ]
}

LECTURE NOTES:
%s

Raw JSON only:`, subjectName, styleContext, combinedNotes)

	return Prompt{System: system, User: user, MaxTokens: DefaultMaxTokens, Temperature: ExamTemperature}
}

// LectureChatSystem builds the system prompt for lecture-scoped chat. The
// user's message history is sent as-is alongside it.
func LectureChatSystem(title, transcript, chatbotName, chatbotTone string) string {
	name := strings.TrimSpace(chatbotName)
	if name == "" {
		name = domain.DefaultChatbotName
	}
	return fmt.Sprintf(`You are %s, an AI study assistant for the lecture: "%s".
%s
You have full access to the lecture content below. Answer questions clearly and thoroughly.

LECTURE CONTENT:
%s`, name, title, TonePrompt(chatbotTone), Truncate(transcript, ChatTranscriptCap))
}

func GeneralChatSystem(chatbotName, chatbotTone string) string {
	name := strings.TrimSpace(chatbotName)
	if name == "" {
		name = domain.DefaultChatbotName
	}
	return fmt.Sprintf(`You are %s, a helpful study assistant for university students.
%s
Help with explaining concepts, study strategies, exam tips, and answering academic questions across all subjects.`, name, TonePrompt(chatbotTone))
}

const solverSystem = `You are an expert tutor solving academic questions with full working.
Show every step clearly. Explain WHY at each step, not just what.
Format your response with:
- ## Solution
- Numbered steps with clear headings
- ## Key Concepts Used
- ## Common Mistakes to Avoid
Use markdown formatting throughout.`

func subjectContext(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return ""
	}
	return fmt.Sprintf("This is a %s question.", subject)
}

func SolverPrompt(question, subject string) Prompt {
	user := fmt.Sprintf(`%s

Solve this question with complete step by step working:

%s

Show all working, explain each step, and make it easy for a student to follow.`, subjectContext(subject), question)

	return Prompt{System: solverSystem, User: user, MaxTokens: DefaultMaxTokens, Temperature: StructuredTemp}
}

func SolverPDFPrompt(pdfText, question, subject string) Prompt {
	instruction := "Identify and solve all questions in this document with full step by step working."
	if q := strings.TrimSpace(question); q != "" {
		instruction = fmt.Sprintf("\n\nAdditional instruction from student: %s", q)
	}

	user := fmt.Sprintf(`%s

Here is the content of an uploaded document containing questions:

%s

%s

Show all working clearly for each question.`, subjectContext(subject), Truncate(pdfText, SolverPDFCap), instruction)

	return Prompt{System: solverSystem, User: user, MaxTokens: DefaultMaxTokens, Temperature: StructuredTemp}
}

func SolverImagePrompt(question, subject string) Prompt {
	instruction := "Solve all visible questions with full working."
	if q := strings.TrimSpace(question); q != "" {
		instruction = fmt.Sprintf("\n\nAdditional instruction from student: %s", q)
	}

	user := fmt.Sprintf(`%s

Look at the question(s) in the image and solve with complete step by step working.
%s

Show all working, explain each step.`, subjectContext(subject), instruction)

	return Prompt{System: solverSystem, User: user, MaxTokens: DefaultMaxTokens, Temperature: StructuredTemp}
}
