package app

import (
	"exam-practice-manager/internal/domain"
)

// QuestionStats is the slice of the question repository the dashboard needs.
type QuestionStats interface {
	Count() (int, error)
	CountByCategory() (map[string]int, error)
	CountByDifficulty() (map[domain.Difficulty]int, error)
}

// ExamCatalog lists exams for the dashboard and performance views.
type ExamCatalog interface {
	GetAll() ([]domain.Exam, error)
	Count() (int, error)
}

// ResultHistory reads attempts for the performance and history views.
type ResultHistory interface {
	ListByStudent(username string) ([]domain.ExamResult, error)
	ListByExam(examID int) ([]domain.ExamResult, error)
	Count() (int, error)
}

// UserCensus counts accounts for the dashboard.
type UserCensus interface {
	Count() (int, error)
}

// StatsService computes the aggregates the dashboards show. Everything is
// derived by loading the relevant table and folding in memory; the tables are
// small and human-paced, so no indexes or caches are kept.
type StatsService struct {
	questions QuestionStats
	exams     ExamCatalog
	results   ResultHistory
	users     UserCensus
}

func NewStatsService(questions QuestionStats, exams ExamCatalog, results ResultHistory, users UserCensus) *StatsService {
	return &StatsService{questions: questions, exams: exams, results: results, users: users}
}

// Dashboard is the top-level summary shown after login.
type Dashboard struct {
	TotalQuestions        int
	TotalExams            int
	TotalResults          int
	TotalUsers            int
	QuestionsByCategory   map[string]int
	QuestionsByDifficulty map[domain.Difficulty]int
}

// ExamPerformance summarizes every attempt at one exam.
type ExamPerformance struct {
	Exam         domain.Exam
	Attempts     int
	AverageScore float64
	BestScore    float64
}

// Dashboard aggregates the headline counts and question-bank breakdowns.
func (s *StatsService) Dashboard() (Dashboard, error) {
	var (
		d   Dashboard
		err error
	)
	if d.TotalQuestions, err = s.questions.Count(); err != nil {
		return Dashboard{}, err
	}
	if d.TotalExams, err = s.exams.Count(); err != nil {
		return Dashboard{}, err
	}
	if d.TotalResults, err = s.results.Count(); err != nil {
		return Dashboard{}, err
	}
	if d.TotalUsers, err = s.users.Count(); err != nil {
		return Dashboard{}, err
	}
	if d.QuestionsByCategory, err = s.questions.CountByCategory(); err != nil {
		return Dashboard{}, err
	}
	if d.QuestionsByDifficulty, err = s.questions.CountByDifficulty(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

// ExamPerformance reports attempt count, average and best score per exam, in
// catalog order. Exams that were never attempted appear with zero attempts.
func (s *StatsService) ExamPerformance() ([]ExamPerformance, error) {
	exams, err := s.exams.GetAll()
	if err != nil {
		return nil, err
	}

	perf := make([]ExamPerformance, 0, len(exams))
	for _, exam := range exams {
		attempts, err := s.results.ListByExam(exam.ExamID)
		if err != nil {
			return nil, err
		}
		p := ExamPerformance{Exam: exam, Attempts: len(attempts)}
		sum := 0.0
		for _, res := range attempts {
			sum += res.Score
			if res.Score > p.BestScore {
				p.BestScore = res.Score
			}
		}
		if p.Attempts > 0 {
			p.AverageScore = sum / float64(p.Attempts)
		}
		perf = append(perf, p)
	}
	return perf, nil
}

// StudentHistory returns every attempt by one student in file order.
func (s *StatsService) StudentHistory(username string) ([]domain.ExamResult, error) {
	return s.results.ListByStudent(username)
}
