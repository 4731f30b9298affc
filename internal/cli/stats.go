package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"exam-practice-manager/internal/app"
)

// NewStatsCmd prints the dashboard aggregates and per-exam performance.
func NewStatsCmd(configPath, dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, *dataDir)
			if err != nil {
				return err
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			stats := app.NewStatsService(s.questions, s.exams, s.results, s.users)
			return renderStats(stats)
		},
	}
}

func renderStats(stats *app.StatsService) error {
	dashboard, err := stats.Dashboard()
	if err != nil {
		return err
	}

	color.Cyan("=== Exam Practice Manager ===")
	fmt.Printf("Questions: %d   Exams: %d   Results: %d   Users: %d\n\n",
		dashboard.TotalQuestions, dashboard.TotalExams, dashboard.TotalResults, dashboard.TotalUsers)

	categories := tablewriter.NewWriter(os.Stdout)
	categories.SetHeader([]string{"Category", "Questions"})
	for _, category := range sortedKeys(dashboard.QuestionsByCategory) {
		categories.Append([]string{category, strconv.Itoa(dashboard.QuestionsByCategory[category])})
	}
	categories.Render()

	difficulties := tablewriter.NewWriter(os.Stdout)
	difficulties.SetHeader([]string{"Difficulty", "Questions"})
	for difficulty, count := range dashboard.QuestionsByDifficulty {
		difficulties.Append([]string{string(difficulty), strconv.Itoa(count)})
	}
	difficulties.Render()

	performance, err := stats.ExamPerformance()
	if err != nil {
		return err
	}
	perExam := tablewriter.NewWriter(os.Stdout)
	perExam.SetHeader([]string{"Exam", "Attempts", "Average", "Best"})
	for _, p := range performance {
		perExam.Append([]string{
			p.Exam.Name,
			strconv.Itoa(p.Attempts),
			fmt.Sprintf("%.1f%%", p.AverageScore),
			fmt.Sprintf("%.1f%%", p.BestScore),
		})
	}
	perExam.Render()
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
