package domain

import (
	"fmt"
	"time"
)

// DateFormat is the layout used for every date persisted to the CSV files.
const DateFormat = "2006-01-02 15:04:05"

// Difficulty classifies how hard a question is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty maps a stored name back to a Difficulty.
func ParseDifficulty(name string) (Difficulty, error) {
	switch Difficulty(name) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(name), nil
	}
	return "", fmt.Errorf("unknown difficulty %q", name)
}

// QuestionType determines how a question is presented and answered.
type QuestionType string

const (
	MultipleChoice QuestionType = "MultipleChoice"
	TrueFalse      QuestionType = "TrueFalse"
	FillInTheBlank QuestionType = "FillInTheBlank"
)

// ParseQuestionType maps a stored name back to a QuestionType.
func ParseQuestionType(name string) (QuestionType, error) {
	switch QuestionType(name) {
	case MultipleChoice, TrueFalse, FillInTheBlank:
		return QuestionType(name), nil
	}
	return "", fmt.Errorf("unknown question type %q", name)
}

// Role separates the two kinds of accounts.
type Role string

const (
	RoleStudent  Role = "Student"
	RoleLecturer Role = "Lecturer"
)

// ParseRole maps a stored name back to a Role.
func ParseRole(name string) (Role, error) {
	switch Role(name) {
	case RoleStudent, RoleLecturer:
		return Role(name), nil
	}
	return "", fmt.Errorf("unknown role %q", name)
}

// Question is a single practice question. CorrectAnswer semantics depend on
// Type: an option letter "A".."D" for MultipleChoice, "TRUE"/"FALSE" for
// TrueFalse, free text for FillInTheBlank. The repository stores whatever it
// is given; semantic validation happens in the front end before saving.
type Question struct {
	ID            int
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string
	Category      string
	Difficulty    Difficulty
	Type          QuestionType
	CreatedBy     string
	CreatedDate   time.Time
}

// Options returns the option texts in letter order. TrueFalse questions carry
// their two literals in OptionA/OptionB; the unused trailing slots are omitted.
func (q Question) Options() []string {
	all := []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
	if q.Type == TrueFalse {
		return all[:2]
	}
	return all
}

// Exam is an ordered collection of question references. QuestionIDs are weak
// references: they are not checked at save time, and IDs that no longer
// resolve are dropped when the exam is loaded for taking.
type Exam struct {
	ExamID      int
	Name        string
	QuestionIDs []int
	CreatedBy   string
	CreatedDate time.Time
	TimeLimit   int // minutes, > 0
	Description string
}

// ExamResult records one completed attempt. Results are immutable once
// written; there is no update or delete operation for them.
type ExamResult struct {
	ResultID        int
	StudentUsername string
	ExamID          int
	Score           float64
	DateTaken       time.Time
	TimeTaken       int // wall-clock seconds from session start to submit
	TotalQuestions  int
	CorrectAnswers  int
	StudentAnswers  map[int]string // question ID -> submitted answer, "" if skipped
}

// User is an account. Usernames are unique case-insensitively; passwords are
// stored as given (plaintext CSV, per the data layout this tool manages).
type User struct {
	Username    string
	Password    string
	Role        Role
	Email       string
	IDNumber    string
	CreatedDate time.Time
}
