package cli

import (
	"fmt"

	"homebudget/internal/database"

	"github.com/spf13/cobra"
)

func migrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.cfg.Database.Driver == "memory" {
				return fmt.Errorf("nothing to migrate for the memory driver")
			}
			db, err := database.Init(opts.cfg.Database)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			opts.log.Info("schema up to date", "driver", opts.cfg.Database.Driver)
			fmt.Fprintln(cmd.OutOrStdout(), "migration complete")
			return nil
		},
	}
}
