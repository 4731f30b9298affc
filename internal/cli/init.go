package cli

import (
	"log"

	"github.com/spf13/cobra"
)

// NewInitCmd creates the data directory and the four CSV files, seeding the
// default accounts when users.csv does not exist yet.
func NewInitCmd(configPath, dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the data files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, *dataDir)
			if err != nil {
				return err
			}
			if _, err := openStores(cfg); err != nil {
				return err
			}
			log.Printf("data files ready in %s", cfg.Data.Dir)
			return nil
		},
	}
}
