package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"exam-practice-manager/internal/domain"
)

// NewQuestionsCmd manages the question bank non-interactively.
func NewQuestionsCmd(configPath, dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Manage the question bank",
	}
	cmd.AddCommand(newQuestionsListCmd(configPath, dataDir))
	cmd.AddCommand(newQuestionsAddCmd(configPath, dataDir))
	cmd.AddCommand(newQuestionsDeleteCmd(configPath, dataDir))
	return cmd
}

func newQuestionsListCmd(configPath, dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every question",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, *dataDir)
			if err != nil {
				return err
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			questions, err := s.questions.GetAll()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Text", "Category", "Difficulty", "Type", "Created By"})
			for _, q := range questions {
				table.Append([]string{
					strconv.Itoa(q.ID),
					truncate(q.Text, 48),
					q.Category,
					string(q.Difficulty),
					string(q.Type),
					q.CreatedBy,
				})
			}
			table.Render()
			return nil
		},
	}
}

func newQuestionsAddCmd(configPath, dataDir *string) *cobra.Command {
	var (
		text, answer, category, createdBy string
		optA, optB, optC, optD            string
		difficulty, qType                 string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a question to the bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, *dataDir)
			if err != nil {
				return err
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}

			parsedDifficulty, err := domain.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			parsedType, err := domain.ParseQuestionType(qType)
			if err != nil {
				return err
			}
			if parsedType == domain.TrueFalse {
				optA, optB, optC, optD = "True", "False", "", ""
			}

			q := domain.Question{
				Text:          text,
				OptionA:       optA,
				OptionB:       optB,
				OptionC:       optC,
				OptionD:       optD,
				CorrectAnswer: answer,
				Category:      category,
				Difficulty:    parsedDifficulty,
				Type:          parsedType,
				CreatedBy:     createdBy,
				CreatedDate:   time.Now(),
			}
			if err := s.questions.Add(&q); err != nil {
				return err
			}
			color.Green("question %d added", q.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "question text")
	cmd.Flags().StringVar(&optA, "a", "", "option A")
	cmd.Flags().StringVar(&optB, "b", "", "option B")
	cmd.Flags().StringVar(&optC, "c", "", "option C")
	cmd.Flags().StringVar(&optD, "d", "", "option D")
	cmd.Flags().StringVar(&answer, "answer", "", "correct answer (letter, TRUE/FALSE, or text)")
	cmd.Flags().StringVar(&category, "category", "General", "category label")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(domain.DifficultyMedium), "Easy, Medium or Hard")
	cmd.Flags().StringVar(&qType, "type", string(domain.MultipleChoice), "MultipleChoice, TrueFalse or FillInTheBlank")
	cmd.Flags().StringVar(&createdBy, "by", "lecturer", "author username")
	cobra.CheckErr(cmd.MarkFlagRequired("text"))
	cobra.CheckErr(cmd.MarkFlagRequired("answer"))
	return cmd
}

func newQuestionsDeleteCmd(configPath, dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a question by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question ID %q", args[0])
			}
			cfg, err := loadConfig(*configPath, *dataDir)
			if err != nil {
				return err
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			removed, err := s.questions.Delete(id)
			if err != nil {
				return err
			}
			if !removed {
				color.Yellow("no question with ID %d", id)
				return nil
			}
			color.Green("question %d deleted", id)
			return nil
		},
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
