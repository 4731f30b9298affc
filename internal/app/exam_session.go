package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"exam-practice-manager/internal/domain"
)

// ExamLoader fetches exam records for session start.
type ExamLoader interface {
	GetByID(id int) (domain.Exam, error)
}

// QuestionResolver resolves the question IDs an exam references.
type QuestionResolver interface {
	GetByID(id int) (domain.Question, error)
}

// ResultWriter persists a graded attempt.
type ResultWriter interface {
	Add(res *domain.ExamResult) error
}

// SessionState tracks where an attempt is in its lifecycle.
type SessionState string

const (
	StateInProgress SessionState = "InProgress"
	StateSubmitted  SessionState = "Submitted"
	StateAbandoned  SessionState = "Abandoned"
)

// ExamSession is one student's attempt at one exam, from load to submit or
// abandon. It is driven cooperatively by the front end: answer capture,
// navigation and the one-second countdown tick all happen on the caller's
// loop, so no locking is needed.
type ExamSession struct {
	student   string
	exam      domain.Exam
	questions []domain.Question
	answers   map[int]string
	index     int
	remaining int
	startedAt time.Time
	state     SessionState
	result    domain.ExamResult
	now       func() time.Time
	results   ResultWriter
}

// StartSession loads the exam, resolves its question list and opens the
// attempt. Question IDs that no longer resolve are dropped; if none remain
// the session does not start and domain.ErrNoQuestions is returned.
func StartSession(student string, examID int, exams ExamLoader, questions QuestionResolver, results ResultWriter) (*ExamSession, error) {
	return StartSessionWithClock(student, examID, exams, questions, results, time.Now)
}

// StartSessionWithClock allows deterministic timestamps in tests.
func StartSessionWithClock(student string, examID int, exams ExamLoader, questions QuestionResolver, results ResultWriter, now func() time.Time) (*ExamSession, error) {
	exam, err := exams.GetByID(examID)
	if err != nil {
		return nil, err
	}

	resolved := make([]domain.Question, 0, len(exam.QuestionIDs))
	for _, qid := range exam.QuestionIDs {
		q, err := questions.GetByID(qid)
		if errors.Is(err, domain.ErrQuestionNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, q)
	}
	if len(resolved) == 0 {
		return nil, domain.ErrNoQuestions
	}

	return &ExamSession{
		student:   student,
		exam:      exam,
		questions: resolved,
		answers:   make(map[int]string),
		remaining: exam.TimeLimit * 60,
		startedAt: now(),
		state:     StateInProgress,
		now:       now,
		results:   results,
	}, nil
}

// Exam returns the exam under attempt.
func (s *ExamSession) Exam() domain.Exam { return s.exam }

// State reports the session lifecycle state.
func (s *ExamSession) State() SessionState { return s.state }

// Remaining reports the countdown in seconds.
func (s *ExamSession) Remaining() int { return s.remaining }

// Position returns the 1-based index of the current question and the total.
func (s *ExamSession) Position() (int, int) { return s.index + 1, len(s.questions) }

// CurrentQuestion returns the question the session is positioned on.
func (s *ExamSession) CurrentQuestion() domain.Question { return s.questions[s.index] }

// CurrentAnswer returns the answer captured so far for the current question,
// or "" if none.
func (s *ExamSession) CurrentAnswer() string { return s.answers[s.questions[s.index].ID] }

// Capture records the answer entered for the current question, trimmed. An
// empty entry is captured as "" rather than removed, so a cleared answer
// stays cleared.
func (s *ExamSession) Capture(entered string) error {
	if s.state != StateInProgress {
		return domain.ErrSessionClosed
	}
	s.answers[s.questions[s.index].ID] = strings.TrimSpace(entered)
	return nil
}

// Next captures the entry for the question being left and moves forward.
// At the last question it captures and stays put, reporting false.
func (s *ExamSession) Next(entered string) (bool, error) {
	return s.navigate(entered, 1)
}

// Previous captures the entry for the question being left and moves back.
// At the first question it captures and stays put, reporting false.
func (s *ExamSession) Previous(entered string) (bool, error) {
	return s.navigate(entered, -1)
}

func (s *ExamSession) navigate(entered string, step int) (bool, error) {
	if err := s.Capture(entered); err != nil {
		return false, err
	}
	next := s.index + step
	if next < 0 || next >= len(s.questions) {
		return false, nil
	}
	s.index = next
	return true, nil
}

// Tick advances the countdown by one second. When it reaches zero the
// session force-submits with whatever answers have been captured; expired
// reports that transition. A persistence failure on forced submission is
// returned alongside expired=true, and the graded result stays available via
// Result.
func (s *ExamSession) Tick() (remaining int, expired bool, err error) {
	if s.state != StateInProgress {
		return s.remaining, false, domain.ErrSessionClosed
	}
	s.remaining--
	if s.remaining > 0 {
		return s.remaining, false, nil
	}
	s.remaining = 0
	_, err = s.Submit(s.CurrentAnswer())
	return 0, true, err
}

// Submit captures the final entry, grades the attempt and persists the
// result. Only the first submission transitions the session out of
// InProgress; later calls return domain.ErrSessionClosed. If persisting
// fails, the error is returned together with the graded result so the caller
// can show the score and retry the write.
func (s *ExamSession) Submit(entered string) (domain.ExamResult, error) {
	if s.state != StateInProgress {
		return s.result, domain.ErrSessionClosed
	}
	if err := s.Capture(entered); err != nil {
		return domain.ExamResult{}, err
	}
	s.state = StateSubmitted

	now := s.now()
	s.result = s.grade(now)
	if err := s.results.Add(&s.result); err != nil {
		return s.result, fmt.Errorf("save result for exam %d: %w", s.exam.ExamID, err)
	}
	return s.result, nil
}

// Abandon closes the session without grading or persisting anything.
func (s *ExamSession) Abandon() error {
	if s.state != StateInProgress {
		return domain.ErrSessionClosed
	}
	s.state = StateAbandoned
	s.answers = make(map[int]string)
	return nil
}

// Result returns the graded result and whether the session has one (i.e. it
// was submitted, manually or by timeout).
func (s *ExamSession) Result() (domain.ExamResult, bool) {
	return s.result, s.state == StateSubmitted
}

// grade compares every captured answer (empty string when a question was
// never visited) case-insensitively against the correct answer. All question
// types grade the same way, including fill-in-the-blank: exact match, no
// normalization beyond the trim applied at capture time.
func (s *ExamSession) grade(submittedAt time.Time) domain.ExamResult {
	answers := make(map[int]string, len(s.questions))
	correct := 0
	for _, q := range s.questions {
		answer := s.answers[q.ID]
		answers[q.ID] = answer
		if strings.EqualFold(answer, q.CorrectAnswer) {
			correct++
		}
	}

	total := len(s.questions)
	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total) * 100
	}

	return domain.ExamResult{
		StudentUsername: s.student,
		ExamID:          s.exam.ExamID,
		Score:           score,
		DateTaken:       submittedAt,
		TimeTaken:       int(submittedAt.Sub(s.startedAt).Seconds()),
		TotalQuestions:  total,
		CorrectAnswers:  correct,
		StudentAnswers:  answers,
	}
}
