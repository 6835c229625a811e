package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show document metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDocument(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			info, err := d.Info(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			label := color.New(color.Bold).SprintfFunc()
			fmt.Fprintf(out, "%s %s\n", label("%-13s", "Name:"), info.Name)
			fmt.Fprintf(out, "%s %s\n", label("%-13s", "Description:"), info.Description)
			fmt.Fprintf(out, "%s %s\n", label("%-13s", "Currency:"), info.BaseCurrency)
			fmt.Fprintf(out, "%s %d\n", label("%-13s", "Format:"), info.FileFormatVersion)
			fmt.Fprintf(out, "%s %s\n", label("%-13s", "UID:"), info.UID)
			return nil
		},
	}
}

func newSetNameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-name <name>",
		Short: "Rename the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDocument(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			if err := d.SetName(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Document renamed to %q\n", args[0])
			return nil
		},
	}
}

func newSetDescriptionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-description <description>",
		Short: "Change the document description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDocument(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			if err := d.SetDescription(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Document description updated")
			return nil
		},
	}
}

func newSetCurrencyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-currency <code>",
		Short: "Change the document's base currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDocument(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			if err := d.SetBaseCurrency(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Base currency set to %s\n", args[0])
			return nil
		},
	}
}
