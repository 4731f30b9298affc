package csvstore

import (
	"path/filepath"
	"strings"

	"exam-practice-manager/internal/domain"
)

// ExamRepository persists exams in exams.csv. Question references inside an
// exam are weak: they are stored as-is and resolved (or dropped) only when a
// session loads the exam.
type ExamRepository struct {
	tbl table
}

func NewExamRepository(dir string) *ExamRepository {
	return &ExamRepository{tbl: table{
		path:   filepath.Join(dir, "exams.csv"),
		header: examHeader,
	}}
}

// Init creates the backing file with its header if it is missing.
func (r *ExamRepository) Init() error {
	return r.tbl.init()
}

func (r *ExamRepository) GetAll() ([]domain.Exam, error) {
	rows, err := r.tbl.readRows()
	if err != nil {
		return nil, err
	}
	exams := make([]domain.Exam, 0, len(rows))
	for _, row := range rows {
		if e, ok := examFromRow(row); ok {
			exams = append(exams, e)
		}
	}
	return exams, nil
}

// GetByID returns domain.ErrExamNotFound when no record matches.
func (r *ExamRepository) GetByID(id int) (domain.Exam, error) {
	exams, err := r.GetAll()
	if err != nil {
		return domain.Exam{}, err
	}
	for _, e := range exams {
		if e.ExamID == id {
			return e, nil
		}
	}
	return domain.Exam{}, domain.ErrExamNotFound
}

// Add assigns the next ExamID and appends the record.
func (r *ExamRepository) Add(e *domain.Exam) error {
	exams, err := r.GetAll()
	if err != nil {
		return err
	}
	maxID := 0
	for _, existing := range exams {
		if existing.ExamID > maxID {
			maxID = existing.ExamID
		}
	}
	e.ExamID = maxID + 1
	return r.tbl.appendRow(examToRow(*e))
}

// Update replaces the stored record with the same ExamID.
func (r *ExamRepository) Update(e domain.Exam) error {
	exams, err := r.GetAll()
	if err != nil {
		return err
	}
	found := false
	rows := make([]string, len(exams))
	for i, existing := range exams {
		if existing.ExamID == e.ExamID {
			existing = e
			found = true
		}
		rows[i] = examToRow(existing)
	}
	if !found {
		return domain.ErrExamNotFound
	}
	return r.tbl.rewrite(rows)
}

// Delete removes the record with the given ExamID and reports whether
// anything was removed. Results referencing the exam are left untouched.
func (r *ExamRepository) Delete(id int) (bool, error) {
	exams, err := r.GetAll()
	if err != nil {
		return false, err
	}
	rows := make([]string, 0, len(exams))
	for _, e := range exams {
		if e.ExamID == id {
			continue
		}
		rows = append(rows, examToRow(e))
	}
	if len(rows) == len(exams) {
		return false, nil
	}
	if err := r.tbl.rewrite(rows); err != nil {
		return false, err
	}
	return true, nil
}

// ListByCreator returns the exams created by the given user, matched
// case-insensitively.
func (r *ExamRepository) ListByCreator(username string) ([]domain.Exam, error) {
	exams, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	var owned []domain.Exam
	for _, e := range exams {
		if strings.EqualFold(e.CreatedBy, username) {
			owned = append(owned, e)
		}
	}
	return owned, nil
}

func (r *ExamRepository) Count() (int, error) {
	exams, err := r.GetAll()
	if err != nil {
		return 0, err
	}
	return len(exams), nil
}
