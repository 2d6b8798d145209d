// Package cli is the command-line entry point of the classifieds service.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/priyakashinagar/ReelPostCity--sub001/config"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/logger"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/server"
)

// options shared by every subcommand.
type options struct {
	configFile string
	cfg        *config.Config
}

// NewRootCommand creates the classifieds command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "classifieds",
		Short:         "Tiered classifieds service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := logger.StdLogger().Init(logger.Config{
				Level:  cfg.Logger.Level,
				Format: cfg.Logger.Format,
				Output: cfg.Logger.Output,
			}); err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file path (default: ./config.yaml or /etc/classifieds/config.yaml)")

	root.AddCommand(
		newServeCommand(opts),
		newRoutesCommand(opts),
		newPostsCommand(opts),
		newStoreCommand(opts),
		newUserCommand(opts),
	)
	return root
}

// withApp opens the application for the duration of fn.
func (o *options) withApp(ctx context.Context, fn func(*server.App) error) error {
	app, err := server.NewApp(ctx, o.cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}
