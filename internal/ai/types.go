package ai

// LectureDraft is the first-pass generation for a new lecture.
type LectureDraft struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Notes   string `json:"notes"`
}

type GlossaryItem struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
	Difficulty  string   `json:"difficulty"`
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type ConceptNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type ConceptEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

type ConceptMap struct {
	Nodes []ConceptNode `json:"nodes"`
	Edges []ConceptEdge `json:"edges"`
}

type CourseSummary struct {
	Overview  string   `json:"overview"`
	Checklist []string `json:"checklist"`
	Themes    string   `json:"themes"`
}

type StudyPlanDay struct {
	Day      int      `json:"day"`
	Date     string   `json:"date"`
	Focus    string   `json:"focus"`
	Tasks    []string `json:"tasks"`
	Duration string   `json:"duration"`
}

type StudyPlan struct {
	DaysUntilExam int            `json:"days_until_exam"`
	Overview      string         `json:"overview"`
	Schedule      []StudyPlanDay `json:"schedule"`
	Tips          []string       `json:"tips"`
}

type ExamQuestion struct {
	Number   int      `json:"number"`
	Question string   `json:"question"`
	Marks    int      `json:"marks"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
}

type ExamSection struct {
	Name         string         `json:"name"`
	Marks        int            `json:"marks"`
	Instructions string         `json:"instructions"`
	Questions    []ExamQuestion `json:"questions"`
}

type PracticeExam struct {
	Title        string        `json:"title"`
	TotalMarks   int           `json:"total_marks"`
	TimeAllowed  string        `json:"time_allowed"`
	Instructions string        `json:"instructions"`
	Sections     []ExamSection `json:"sections"`
}
