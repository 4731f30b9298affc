package csvstore

import (
	"path/filepath"

	"exam-practice-manager/internal/domain"
)

// QuestionRepository persists questions in questions.csv.
type QuestionRepository struct {
	tbl table
}

func NewQuestionRepository(dir string) *QuestionRepository {
	return &QuestionRepository{tbl: table{
		path:   filepath.Join(dir, "questions.csv"),
		header: questionHeader,
	}}
}

// Init creates the backing file with its header if it is missing.
func (r *QuestionRepository) Init() error {
	return r.tbl.init()
}

// GetAll reads the whole file on every call. Rows that fail to parse are
// dropped so one corrupt line cannot block the rest of the table.
func (r *QuestionRepository) GetAll() ([]domain.Question, error) {
	rows, err := r.tbl.readRows()
	if err != nil {
		return nil, err
	}
	questions := make([]domain.Question, 0, len(rows))
	for _, row := range rows {
		if q, ok := questionFromRow(row); ok {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

// GetByID returns domain.ErrQuestionNotFound when no record matches.
func (r *QuestionRepository) GetByID(id int) (domain.Question, error) {
	questions, err := r.GetAll()
	if err != nil {
		return domain.Question{}, err
	}
	for _, q := range questions {
		if q.ID == id {
			return q, nil
		}
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}

// Add assigns the next ID (highest existing plus one, starting at 1) and
// appends the record.
func (r *QuestionRepository) Add(q *domain.Question) error {
	questions, err := r.GetAll()
	if err != nil {
		return err
	}
	maxID := 0
	for _, existing := range questions {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	q.ID = maxID + 1
	return r.tbl.appendRow(questionToRow(*q))
}

// Update replaces the stored record with the same ID.
func (r *QuestionRepository) Update(q domain.Question) error {
	questions, err := r.GetAll()
	if err != nil {
		return err
	}
	found := false
	rows := make([]string, len(questions))
	for i, existing := range questions {
		if existing.ID == q.ID {
			existing = q
			found = true
		}
		rows[i] = questionToRow(existing)
	}
	if !found {
		return domain.ErrQuestionNotFound
	}
	return r.tbl.rewrite(rows)
}

// Delete removes the record with the given ID and reports whether anything
// was removed.
func (r *QuestionRepository) Delete(id int) (bool, error) {
	questions, err := r.GetAll()
	if err != nil {
		return false, err
	}
	rows := make([]string, 0, len(questions))
	for _, q := range questions {
		if q.ID == id {
			continue
		}
		rows = append(rows, questionToRow(q))
	}
	if len(rows) == len(questions) {
		return false, nil
	}
	if err := r.tbl.rewrite(rows); err != nil {
		return false, err
	}
	return true, nil
}

func (r *QuestionRepository) Count() (int, error) {
	questions, err := r.GetAll()
	if err != nil {
		return 0, err
	}
	return len(questions), nil
}

// CountByCategory groups the question bank by category.
func (r *QuestionRepository) CountByCategory() (map[string]int, error) {
	questions, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, q := range questions {
		counts[q.Category]++
	}
	return counts, nil
}

// CountByDifficulty groups the question bank by difficulty.
func (r *QuestionRepository) CountByDifficulty() (map[domain.Difficulty]int, error) {
	questions, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.Difficulty]int)
	for _, q := range questions {
		counts[q.Difficulty]++
	}
	return counts, nil
}
