package app

import (
	"errors"
	"testing"
	"time"

	"exam-practice-manager/internal/domain"
)

type fakeExams map[int]domain.Exam

func (f fakeExams) GetByID(id int) (domain.Exam, error) {
	if e, ok := f[id]; ok {
		return e, nil
	}
	return domain.Exam{}, domain.ErrExamNotFound
}

type fakeQuestions map[int]domain.Question

func (f fakeQuestions) GetByID(id int) (domain.Question, error) {
	if q, ok := f[id]; ok {
		return q, nil
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}

type fakeResults struct {
	saved   []domain.ExamResult
	failErr error
}

func (f *fakeResults) Add(res *domain.ExamResult) error {
	if f.failErr != nil {
		return f.failErr
	}
	res.ResultID = len(f.saved) + 1
	f.saved = append(f.saved, *res)
	return nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testQuestions() fakeQuestions {
	return fakeQuestions{
		1: {ID: 1, Text: "2+2?", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6", CorrectAnswer: "B", Type: domain.MultipleChoice},
		2: {ID: 2, Text: "The sky is blue.", OptionA: "True", OptionB: "False", CorrectAnswer: "TRUE", Type: domain.TrueFalse},
		3: {ID: 3, Text: "Capital of France?", CorrectAnswer: "Paris", Type: domain.FillInTheBlank},
		4: {ID: 4, Text: "1+1?", OptionA: "2", OptionB: "3", OptionC: "4", OptionD: "5", CorrectAnswer: "A", Type: domain.MultipleChoice},
	}
}

func testExams() fakeExams {
	return fakeExams{
		10: {ExamID: 10, Name: "Sample", QuestionIDs: []int{1, 2, 3, 4}, TimeLimit: 1},
	}
}

func startTestSession(t *testing.T, results *fakeResults, clock *fakeClock) *ExamSession {
	t.Helper()
	session, err := StartSessionWithClock("student", 10, testExams(), testQuestions(), results, clock.Now)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	return session
}

func TestGradingThreeOfFour(t *testing.T) {
	results := &fakeResults{}
	clock := &fakeClock{t: time.Date(2024, 11, 22, 9, 0, 0, 0, time.UTC)}
	session := startTestSession(t, results, clock)

	if _, err := session.Next("b"); err != nil { // correct, case-insensitive
		t.Fatalf("Next failed: %v", err)
	}
	if _, err := session.Next("true"); err != nil { // correct
		t.Fatalf("Next failed: %v", err)
	}
	if _, err := session.Next("  paris  "); err != nil { // correct after trim
		t.Fatalf("Next failed: %v", err)
	}

	clock.Advance(90 * time.Second)
	res, err := session.Submit("B") // wrong, correct is A
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if res.Score != 75.0 {
		t.Errorf("Score = %v, want 75.0", res.Score)
	}
	if res.CorrectAnswers != 3 || res.TotalQuestions != 4 {
		t.Errorf("correct/total = %d/%d, want 3/4", res.CorrectAnswers, res.TotalQuestions)
	}
	if res.TimeTaken != 90 {
		t.Errorf("TimeTaken = %d, want 90", res.TimeTaken)
	}
	if len(results.saved) != 1 {
		t.Fatalf("expected 1 persisted result, got %d", len(results.saved))
	}
	if results.saved[0].StudentAnswers[3] != "paris" {
		t.Errorf("captured answer not trimmed: %q", results.saved[0].StudentAnswers[3])
	}
}

func TestNavigationPreservesAnswersAndClamps(t *testing.T) {
	session := startTestSession(t, &fakeResults{}, &fakeClock{t: time.Now()})

	// Boundary: Previous on the first question stays put but still captures.
	moved, err := session.Previous("B")
	if err != nil {
		t.Fatalf("Previous failed: %v", err)
	}
	if moved {
		t.Error("Previous moved past the first question")
	}
	if pos, _ := session.Position(); pos != 1 {
		t.Errorf("position = %d, want 1", pos)
	}

	if _, err := session.Next("B"); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if session.CurrentQuestion().ID != 2 {
		t.Fatalf("expected question 2, got %d", session.CurrentQuestion().ID)
	}

	// Going back must show the previously selected answer unchanged.
	if _, err := session.Previous("FALSE"); err != nil {
		t.Fatalf("Previous failed: %v", err)
	}
	if got := session.CurrentAnswer(); got != "B" {
		t.Errorf("answer for question 1 = %q, want B", got)
	}

	// Walk to the end; Next at the last question is a no-op.
	for i := 0; i < 3; i++ {
		if _, err := session.Next(session.CurrentAnswer()); err != nil {
			t.Fatalf("Next failed: %v", err)
		}
	}
	moved, err = session.Next("A")
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if moved {
		t.Error("Next moved past the last question")
	}
	if pos, total := session.Position(); pos != total {
		t.Errorf("position = %d, want %d", pos, total)
	}
}

func TestTimeoutForcesSubmission(t *testing.T) {
	results := &fakeResults{}
	clock := &fakeClock{t: time.Date(2024, 11, 22, 9, 0, 0, 0, time.UTC)}
	session := startTestSession(t, results, clock)

	if session.Remaining() != 60 {
		t.Fatalf("Remaining = %d, want 60 for a 1 minute limit", session.Remaining())
	}
	if err := session.Capture("B"); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	expired := false
	for i := 0; i < 60; i++ {
		clock.Advance(time.Second)
		var err error
		_, expired, err = session.Tick()
		if err != nil {
			t.Fatalf("Tick %d failed: %v", i, err)
		}
		if expired && i != 59 {
			t.Fatalf("expired after %d ticks", i+1)
		}
	}
	if !expired {
		t.Fatal("countdown never expired")
	}
	if session.State() != StateSubmitted {
		t.Fatalf("state = %s, want Submitted", session.State())
	}
	if len(results.saved) != 1 {
		t.Fatalf("expected a persisted result, got %d", len(results.saved))
	}
	res := results.saved[0]
	if res.CorrectAnswers != 1 || res.TotalQuestions != 4 || res.Score != 25.0 {
		t.Fatalf("unexpected forced-submit grading: %+v", res)
	}
	if res.TimeTaken != 60 {
		t.Errorf("TimeTaken = %d, want 60", res.TimeTaken)
	}

	// Further ticks must not fire against the closed session.
	if _, _, err := session.Tick(); !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("Tick after submit = %v, want ErrSessionClosed", err)
	}
}

func TestSubmitIsGuardedAgainstReentry(t *testing.T) {
	results := &fakeResults{}
	session := startTestSession(t, results, &fakeClock{t: time.Now()})

	first, err := session.Submit("B")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	second, err := session.Submit("A")
	if !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("second Submit = %v, want ErrSessionClosed", err)
	}
	if second.Score != first.Score {
		t.Errorf("second Submit returned a different result: %+v", second)
	}
	if len(results.saved) != 1 {
		t.Fatalf("expected exactly one persisted result, got %d", len(results.saved))
	}
}

func TestSubmitKeepsScoreWhenPersistFails(t *testing.T) {
	results := &fakeResults{failErr: errors.New("disk full")}
	session := startTestSession(t, results, &fakeClock{t: time.Now()})

	res, err := session.Submit("B")
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if res.Score != 25.0 || res.CorrectAnswers != 1 {
		t.Fatalf("graded result lost on persist failure: %+v", res)
	}
	if got, ok := session.Result(); !ok || got.Score != 25.0 {
		t.Fatalf("Result() = %+v, %v", got, ok)
	}
}

func TestAbandonDiscardsAnswers(t *testing.T) {
	results := &fakeResults{}
	session := startTestSession(t, results, &fakeClock{t: time.Now()})

	if _, err := session.Next("B"); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if err := session.Abandon(); err != nil {
		t.Fatalf("Abandon failed: %v", err)
	}
	if session.State() != StateAbandoned {
		t.Fatalf("state = %s, want Abandoned", session.State())
	}
	if len(results.saved) != 0 {
		t.Fatal("abandoned session persisted a result")
	}
	if _, err := session.Submit("B"); !errors.Is(err, domain.ErrSessionClosed) {
		t.Fatalf("Submit after Abandon = %v, want ErrSessionClosed", err)
	}
}

func TestStartDropsDanglingQuestionIDs(t *testing.T) {
	exams := fakeExams{
		10: {ExamID: 10, Name: "Sparse", QuestionIDs: []int{1, 99, 3}, TimeLimit: 2},
	}
	session, err := StartSessionWithClock("student", 10, exams, testQuestions(), &fakeResults{}, time.Now)
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if _, total := session.Position(); total != 2 {
		t.Fatalf("expected 2 resolved questions, got %d", total)
	}
}

func TestStartFailsWithoutResolvableQuestions(t *testing.T) {
	exams := fakeExams{
		10: {ExamID: 10, Name: "Empty", QuestionIDs: []int{98, 99}, TimeLimit: 2},
	}
	if _, err := StartSessionWithClock("student", 10, exams, testQuestions(), &fakeResults{}, time.Now); !errors.Is(err, domain.ErrNoQuestions) {
		t.Fatalf("StartSession = %v, want ErrNoQuestions", err)
	}

	if _, err := StartSessionWithClock("student", 42, exams, testQuestions(), &fakeResults{}, time.Now); !errors.Is(err, domain.ErrExamNotFound) {
		t.Fatalf("StartSession on missing exam = %v, want ErrExamNotFound", err)
	}
}
