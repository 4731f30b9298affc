package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"exam-practice-manager/internal/domain"
)

// NewResultsCmd lists completed attempts, optionally filtered by student or
// exam.
func NewResultsCmd(configPath, dataDir *string) *cobra.Command {
	var (
		student string
		examID  int
	)
	cmd := &cobra.Command{
		Use:   "results",
		Short: "List exam results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, *dataDir)
			if err != nil {
				return err
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}

			var results []domain.ExamResult
			switch {
			case student != "":
				results, err = s.results.ListByStudent(student)
			case examID > 0:
				results, err = s.results.ListByExam(examID)
			default:
				results, err = s.results.GetAll()
			}
			if err != nil {
				return err
			}

			renderResults(results)
			return nil
		},
	}
	cmd.Flags().StringVar(&student, "student", "", "filter by student username")
	cmd.Flags().IntVar(&examID, "exam", 0, "filter by exam ID")
	return cmd
}

func renderResults(results []domain.ExamResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Student", "Exam", "Score", "Correct", "Time Taken", "Date"})
	for _, res := range results {
		table.Append([]string{
			strconv.Itoa(res.ResultID),
			res.StudentUsername,
			strconv.Itoa(res.ExamID),
			fmt.Sprintf("%.1f%%", res.Score),
			fmt.Sprintf("%d/%d", res.CorrectAnswers, res.TotalQuestions),
			fmt.Sprintf("%ds", res.TimeTaken),
			res.DateTaken.Format(domain.DateFormat),
		})
	}
	table.Render()
}
