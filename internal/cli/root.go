// Package cli wires configuration, storage and services into cobra commands.
package cli

import (
	"context"
	"fmt"

	"homebudget/internal/config"
	"homebudget/internal/logger"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
}

// NewRootCmd builds the command tree. Running the binary without a
// subcommand starts the server.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "homebudget",
		Short:         "Household budget tracker",
		Long:          "homebudget tracks people, categories and their income and expense transactions, and serves them over a JSON API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			opts.cfg, opts.log = cfg, log
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: ./config.yaml when present)")

	root.AddCommand(
		serveCmd(opts),
		migrateCmd(opts),
		totalsCmd(opts),
		exportCmd(opts),
	)
	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
