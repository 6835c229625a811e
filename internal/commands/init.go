package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirasaad/tally/infra/logging"
	"github.com/amirasaad/tally/pkg/document"
	"github.com/amirasaad/tally/pkg/dto"
)

func newInitCommand() *cobra.Command {
	var (
		name        string
		description string
		currency    string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			d, err := document.Create(cmd.Context(), cfg, dto.DocumentCreate{
				Name:         name,
				Description:  description,
				BaseCurrency: currency,
			}, document.WithLogger(logging.New(cfg.Log)))
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			fmt.Fprintf(cmd.OutOrStdout(),
				"Initialized document %q at %s\n", name, cfg.Store.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "document name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&description, "description", "", "document description")
	cmd.Flags().StringVar(&currency, "currency", "", "base currency ISO code, e.g. EUR")

	return cmd
}
