package cli

import (
	"os"

	"github.com/spf13/cobra"

	"exam-practice-manager/internal/config"
	"exam-practice-manager/internal/infra/csvstore"
)

var (
	dataDir    string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envDir := os.Getenv("EXAM_DATA_DIR")
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "examctl",
		Short: "Practice exam manager over CSV data files",
	}

	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", envDir, "directory holding the CSV data files")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewInitCmd(&configPath, &dataDir))
	cmd.AddCommand(NewRunCmd(&configPath, &dataDir))
	cmd.AddCommand(NewQuestionsCmd(&configPath, &dataDir))
	cmd.AddCommand(NewExamsCmd(&configPath, &dataDir))
	cmd.AddCommand(NewResultsCmd(&configPath, &dataDir))
	cmd.AddCommand(NewStatsCmd(&configPath, &dataDir))
	return cmd
}

// stores bundles the four repositories over one data directory.
type stores struct {
	questions *csvstore.QuestionRepository
	exams     *csvstore.ExamRepository
	results   *csvstore.ResultRepository
	users     *csvstore.UserRepository
}

// loadConfig resolves the effective config, letting --data-dir win over both
// the file and the environment.
func loadConfig(configPath, dataDir string) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	return cfg, nil
}

// openStores initializes every data file (creating them with headers on
// first use) and returns the repositories.
func openStores(cfg config.Config) (*stores, error) {
	s := &stores{
		questions: csvstore.NewQuestionRepository(cfg.Data.Dir),
		exams:     csvstore.NewExamRepository(cfg.Data.Dir),
		results:   csvstore.NewResultRepository(cfg.Data.Dir),
		users:     csvstore.NewUserRepository(cfg.Data.Dir),
	}
	if err := s.questions.Init(); err != nil {
		return nil, err
	}
	if err := s.exams.Init(); err != nil {
		return nil, err
	}
	if err := s.results.Init(); err != nil {
		return nil, err
	}
	if err := s.users.Init(cfg.SeedUsers()); err != nil {
		return nil, err
	}
	return s, nil
}
