package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"exam-practice-manager/internal/domain"
)

// NewExamsCmd manages exams non-interactively.
func NewExamsCmd(configPath, dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exams",
		Short: "Manage exams",
	}
	cmd.AddCommand(newExamsListCmd(configPath, dataDir))
	cmd.AddCommand(newExamsAddCmd(configPath, dataDir))
	cmd.AddCommand(newExamsDeleteCmd(configPath, dataDir))
	return cmd
}

func newExamsListCmd(configPath, dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every exam",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, *dataDir)
			if err != nil {
				return err
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			exams, err := s.exams.GetAll()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Name", "Questions", "Time Limit", "Created By", "Description"})
			for _, e := range exams {
				table.Append([]string{
					strconv.Itoa(e.ExamID),
					e.Name,
					strconv.Itoa(len(e.QuestionIDs)),
					fmt.Sprintf("%d min", e.TimeLimit),
					e.CreatedBy,
					truncate(e.Description, 40),
				})
			}
			table.Render()
			return nil
		},
	}
}

func newExamsAddCmd(configPath, dataDir *string) *cobra.Command {
	var (
		name, description, createdBy string
		questionIDs                  string
		timeLimit                    int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an exam from existing question IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if timeLimit <= 0 {
				return fmt.Errorf("time limit must be positive, got %d", timeLimit)
			}
			ids, err := parseIDList(questionIDs)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(*configPath, *dataDir)
			if err != nil {
				return err
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}

			e := domain.Exam{
				Name:        name,
				QuestionIDs: ids,
				CreatedBy:   createdBy,
				CreatedDate: time.Now(),
				TimeLimit:   timeLimit,
				Description: description,
			}
			if err := s.exams.Add(&e); err != nil {
				return err
			}
			color.Green("exam %d created with %d questions", e.ExamID, len(ids))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "exam name")
	cmd.Flags().StringVar(&questionIDs, "questions", "", "comma-separated question IDs, in order")
	cmd.Flags().IntVar(&timeLimit, "limit", 30, "time limit in minutes")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.Flags().StringVar(&createdBy, "by", "lecturer", "author username")
	cobra.CheckErr(cmd.MarkFlagRequired("name"))
	cobra.CheckErr(cmd.MarkFlagRequired("questions"))
	return cmd
}

func newExamsDeleteCmd(configPath, dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an exam by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid exam ID %q", args[0])
			}
			cfg, err := loadConfig(*configPath, *dataDir)
			if err != nil {
				return err
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			removed, err := s.exams.Delete(id)
			if err != nil {
				return err
			}
			if !removed {
				color.Yellow("no exam with ID %d", id)
				return nil
			}
			color.Green("exam %d deleted", id)
			return nil
		},
	}
}

func parseIDList(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid question ID %q", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no question IDs given")
	}
	return ids, nil
}
