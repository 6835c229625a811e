// Package commands wires the tally CLI: a thin presentation layer over the
// document facade. No business rules live here.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirasaad/tally/infra/logging"
	"github.com/amirasaad/tally/internal/buildinfo"
	"github.com/amirasaad/tally/pkg/config"
	"github.com/amirasaad/tally/pkg/document"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Personal bookkeeping on a tree of accounts",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("file", "f", "", "document file to operate on (sqlite)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newSetNameCommand())
	rootCmd.AddCommand(newSetDescriptionCommand())
	rootCmd.AddCommand(newSetCurrencyCommand())
	rootCmd.AddCommand(newAddCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newShowCommand())
	rootCmd.AddCommand(newRenameCommand())
	rootCmd.AddCommand(newMoveCommand())
	rootCmd.AddCommand(newRetypeCommand())
	rootCmd.AddCommand(newUpdateCommand())
	rootCmd.AddCommand(newRemoveCommand())

	return rootCmd
}

// loadConfig assembles the app configuration from the environment; a --file
// flag beats whatever the environment says and always means sqlite.
func loadConfig(cmd *cobra.Command) (*config.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		cfg.Store.Driver = "sqlite"
		cfg.Store.Path = file
	}
	return cfg, nil
}

// openDocument loads the configuration and opens the document it points at.
func openDocument(ctx context.Context, cmd *cobra.Command) (*document.Document, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return document.Open(ctx, cfg, document.WithLogger(logging.New(cfg.Log)))
}
