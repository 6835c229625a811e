package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amirasaad/tally/pkg/document"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [path]",
		Short: "List the direct children of an account, or the root accounts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parentPath := ""
			if len(args) > 0 {
				parentPath = args[0]
			}

			d, err := openDocument(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			info, err := d.Info(cmd.Context())
			if err != nil {
				return err
			}
			children, err := d.Children(cmd.Context(), parentPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, child := range children {
				line := fmt.Sprintf("%s %s", typeLabel(child.Type), child.FullPath)
				if child.Opening != nil {
					line += "  " + formatMoney(child.Opening.Balance, info.BaseCurrency)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [path]",
		Short: "Print the account hierarchy as a tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startPath := ""
			if len(args) > 0 {
				startPath = args[0]
			}

			d, err := openDocument(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			out := cmd.OutOrStdout()
			if startPath != "" {
				acct, err := d.FindAccount(cmd.Context(), startPath)
				if err != nil {
					return err
				}
				if acct == nil {
					return fmt.Errorf("no account at %q", startPath)
				}
				fmt.Fprintf(out, "%s %s\n", typeLabel(acct.Type), acct.Name())
			}
			return printSubtree(cmd.Context(), d, out, startPath, "")
		},
	}
}

func printSubtree(ctx context.Context, d *document.Document, out io.Writer, path, prefix string) error {
	children, err := d.Children(ctx, path)
	if err != nil {
		return err
	}
	for i, child := range children {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		fmt.Fprintf(out, "%s%s%s %s\n", prefix, connector, typeLabel(child.Type), child.Name())
		if err := printSubtree(ctx, d, out, child.FullPath, childPrefix); err != nil {
			return err
		}
	}
	return nil
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>",
		Short: "Show one account in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDocument(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			acct, err := d.FindAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if acct == nil {
				return fmt.Errorf("no account at %q", args[0])
			}
			info, err := d.Info(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			label := color.New(color.Bold).SprintfFunc()
			fmt.Fprintf(out, "%s %s\n", label("%-17s", "Path:"), acct.FullPath)
			fmt.Fprintf(out, "%s %s\n", label("%-17s", "Name:"), acct.Name())
			fmt.Fprintf(out, "%s %s\n", label("%-17s", "Type:"), typeLabel(acct.Type))
			fmt.Fprintf(out, "%s %s\n", label("%-17s", "Description:"), acct.Description)
			if acct.Opening != nil {
				fmt.Fprintf(out, "%s %s\n", label("%-17s", "Opening date:"),
					acct.Opening.Date.Format(dateLayout))
				fmt.Fprintf(out, "%s %s\n", label("%-17s", "Opening balance:"),
					formatMoney(acct.Opening.Balance, info.BaseCurrency))
			}
			return nil
		},
	}
}
