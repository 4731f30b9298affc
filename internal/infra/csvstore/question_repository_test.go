package csvstore

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"exam-practice-manager/internal/domain"
)

var testDate = time.Date(2024, 11, 22, 10, 30, 0, 0, time.UTC)

func newQuestionRepo(t *testing.T) (*QuestionRepository, string) {
	t.Helper()
	dir := t.TempDir()
	repo := NewQuestionRepository(dir)
	if err := repo.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return repo, dir
}

func sampleQuestion() domain.Question {
	return domain.Question{
		Text:          "What does CSV stand for?",
		OptionA:       "Comma separated values",
		OptionB:       "Character stream vector",
		OptionC:       "Columnar storage volume",
		OptionD:       "None of these",
		CorrectAnswer: "A",
		Category:      "Data Formats",
		Difficulty:    domain.DifficultyEasy,
		Type:          domain.MultipleChoice,
		CreatedBy:     "lecturer",
		CreatedDate:   testDate,
	}
}

func TestQuestionAddAssignsSequentialIDs(t *testing.T) {
	repo, _ := newQuestionRepo(t)

	for i := 1; i <= 3; i++ {
		q := sampleQuestion()
		if err := repo.Add(&q); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if q.ID != i {
			t.Fatalf("expected ID %d, got %d", i, q.ID)
		}
	}

	// Deleting the record with the highest ID moves the max down, so the next
	// Add hands the freed number out again.
	if removed, err := repo.Delete(3); err != nil || !removed {
		t.Fatalf("Delete(3) = %v, %v", removed, err)
	}
	q := sampleQuestion()
	if err := repo.Add(&q); err != nil {
		t.Fatalf("Add after delete failed: %v", err)
	}
	if q.ID != 3 {
		t.Fatalf("expected ID 3 after deleting max, got %d", q.ID)
	}
}

func TestQuestionRoundTrip(t *testing.T) {
	repo, _ := newQuestionRepo(t)

	q := sampleQuestion()
	q.Text = `Tricky, "quoted" text`
	q.CorrectAnswer = "Comma, Separated, Values"
	q.Type = domain.FillInTheBlank
	if err := repo.Add(&q); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := repo.GetByID(q.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !reflect.DeepEqual(got, q) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, q)
	}
}

func TestQuestionUpdateAndDelete(t *testing.T) {
	repo, _ := newQuestionRepo(t)

	q := sampleQuestion()
	if err := repo.Add(&q); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	q.Category = "Storage"
	q.Difficulty = domain.DifficultyHard
	if err := repo.Update(q); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := repo.GetByID(q.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Category != "Storage" || got.Difficulty != domain.DifficultyHard {
		t.Fatalf("update not persisted: %+v", got)
	}

	missing := q
	missing.ID = 99
	if err := repo.Update(missing); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("Update of missing ID = %v, want ErrQuestionNotFound", err)
	}

	if removed, err := repo.Delete(q.ID); err != nil || !removed {
		t.Fatalf("Delete = %v, %v", removed, err)
	}
	if removed, err := repo.Delete(q.ID); err != nil || removed {
		t.Fatalf("second Delete = %v, %v, want false", removed, err)
	}
	if _, err := repo.GetByID(q.ID); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("GetByID after delete = %v, want ErrQuestionNotFound", err)
	}
}

func TestQuestionMalformedRowsAreSkipped(t *testing.T) {
	repo, dir := newQuestionRepo(t)

	q := sampleQuestion()
	if err := repo.Add(&q); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	path := filepath.Join(dir, "questions.csv")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open data file: %v", err)
	}
	// One row short of columns, one with a bad enum.
	if _, err := f.WriteString("2,too,few,columns\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := f.WriteString("3,T,a,b,c,d,A,Cat,Impossible,MultipleChoice,lecturer,2024-11-22 10:30:00\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	questions, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != q.ID {
		t.Fatalf("expected only the valid row, got %+v", questions)
	}
}

func TestQuestionAggregates(t *testing.T) {
	repo, _ := newQuestionRepo(t)

	cases := []struct {
		category   string
		difficulty domain.Difficulty
	}{
		{"Networking", domain.DifficultyEasy},
		{"Networking", domain.DifficultyHard},
		{"Storage", domain.DifficultyEasy},
	}
	for _, tc := range cases {
		q := sampleQuestion()
		q.Category = tc.category
		q.Difficulty = tc.difficulty
		if err := repo.Add(&q); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	byCategory, err := repo.CountByCategory()
	if err != nil {
		t.Fatalf("CountByCategory failed: %v", err)
	}
	if byCategory["Networking"] != 2 || byCategory["Storage"] != 1 {
		t.Fatalf("unexpected category counts: %v", byCategory)
	}

	byDifficulty, err := repo.CountByDifficulty()
	if err != nil {
		t.Fatalf("CountByDifficulty failed: %v", err)
	}
	if byDifficulty[domain.DifficultyEasy] != 2 || byDifficulty[domain.DifficultyHard] != 1 {
		t.Fatalf("unexpected difficulty counts: %v", byDifficulty)
	}
}
