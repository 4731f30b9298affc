package csvstore

import (
	"path/filepath"
	"strings"

	"exam-practice-manager/internal/domain"
)

// ResultRepository persists completed attempts in exam_results.csv. Results
// are append-only: once written they are never updated or deleted.
type ResultRepository struct {
	tbl table
}

func NewResultRepository(dir string) *ResultRepository {
	return &ResultRepository{tbl: table{
		path:   filepath.Join(dir, "exam_results.csv"),
		header: resultHeader,
	}}
}

// Init creates the backing file with its header if it is missing.
func (r *ResultRepository) Init() error {
	return r.tbl.init()
}

func (r *ResultRepository) GetAll() ([]domain.ExamResult, error) {
	rows, err := r.tbl.readRows()
	if err != nil {
		return nil, err
	}
	results := make([]domain.ExamResult, 0, len(rows))
	for _, row := range rows {
		if res, ok := resultFromRow(row); ok {
			results = append(results, res)
		}
	}
	return results, nil
}

// GetByID returns domain.ErrResultNotFound when no record matches.
func (r *ResultRepository) GetByID(id int) (domain.ExamResult, error) {
	results, err := r.GetAll()
	if err != nil {
		return domain.ExamResult{}, err
	}
	for _, res := range results {
		if res.ResultID == id {
			return res, nil
		}
	}
	return domain.ExamResult{}, domain.ErrResultNotFound
}

// Add assigns the next ResultID and appends the record.
func (r *ResultRepository) Add(res *domain.ExamResult) error {
	results, err := r.GetAll()
	if err != nil {
		return err
	}
	maxID := 0
	for _, existing := range results {
		if existing.ResultID > maxID {
			maxID = existing.ResultID
		}
	}
	res.ResultID = maxID + 1
	return r.tbl.appendRow(resultToRow(*res))
}

// ListByStudent returns every attempt by the given student, matched
// case-insensitively, in file order.
func (r *ResultRepository) ListByStudent(username string) ([]domain.ExamResult, error) {
	results, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	var mine []domain.ExamResult
	for _, res := range results {
		if strings.EqualFold(res.StudentUsername, username) {
			mine = append(mine, res)
		}
	}
	return mine, nil
}

// ListByExam returns every attempt at the given exam in file order.
func (r *ResultRepository) ListByExam(examID int) ([]domain.ExamResult, error) {
	results, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	var attempts []domain.ExamResult
	for _, res := range results {
		if res.ExamID == examID {
			attempts = append(attempts, res)
		}
	}
	return attempts, nil
}

func (r *ResultRepository) Count() (int, error) {
	results, err := r.GetAll()
	if err != nil {
		return 0, err
	}
	return len(results), nil
}
