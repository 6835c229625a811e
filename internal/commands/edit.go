package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirasaad/tally/pkg/dto"
)

func newRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename an account in place",
		Long: `Rename an account without moving it. The paths of every account in its
subtree are rewritten to match.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDocument(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			acct, err := d.RenameAccount(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[0], acct.FullPath)
			return nil
		},
	}
}

func newMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <path> [new-parent]",
		Short: "Move an account (and its subtree) under a new parent",
		Long: `Move an account under a new parent account, carrying its whole subtree
along. Omit the parent to move the account to the top level.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			newParent := ""
			if len(args) > 1 {
				newParent = args[1]
			}

			d, err := openDocument(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			acct, err := d.ReparentAccount(cmd.Context(), args[0], newParent)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", args[0], acct.FullPath)
			return nil
		},
	}
}

func newRetypeCommand() *cobra.Command {
	var (
		openingDate    string
		openingBalance string
	)

	cmd := &cobra.Command{
		Use:   "retype <path> <type>",
		Short: "Change an account's type",
		Long: `Change an account's type. Within the balance group (asset, liability) or
the flow group (income, expense) this is a relabel; crossing groups is only
allowed for an account with no parent and no children. Moving into the
balance group requires a fresh opening date and balance; moving out of it
discards them.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, balance, err := parseOpeningFlags(openingDate, openingBalance)
			if err != nil {
				return err
			}

			d, err := openDocument(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			acct, err := d.SetAccountType(cmd.Context(), args[0], dto.AccountSetType{
				Type:           args[1],
				OpeningDate:    date,
				OpeningBalance: balance,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n",
				acct.FullPath, typeLabel(acct.Type))
			return nil
		},
	}

	cmd.Flags().StringVar(&openingDate, "opening-date", "",
		"opening date (YYYY-MM-DD, balance accounts only)")
	cmd.Flags().StringVar(&openingBalance, "opening-balance", "",
		"opening balance in major units, e.g. 1234.56")

	return cmd
}

func newUpdateCommand() *cobra.Command {
	var (
		description    string
		openingDate    string
		openingBalance string
	)

	cmd := &cobra.Command{
		Use:   "update <path>",
		Short: "Update an account's description or opening data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := dto.AccountUpdate{}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("opening-date") {
				date, err := parseDate(openingDate)
				if err != nil {
					return err
				}
				update.OpeningDate = &date
			}
			if cmd.Flags().Changed("opening-balance") {
				balance, err := parseBalance(openingBalance)
				if err != nil {
					return err
				}
				update.OpeningBalance = &balance
			}

			d, err := openDocument(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			acct, err := d.UpdateAccount(cmd.Context(), args[0], update)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", acct.FullPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&openingDate, "opening-date", "",
		"new opening date (YYYY-MM-DD, balance accounts only)")
	cmd.Flags().StringVar(&openingBalance, "opening-balance", "",
		"new opening balance in major units")

	return cmd
}

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <path>",
		Short: "Delete a leaf account",
		Long: `Delete the account at the given path. Accounts with children cannot be
removed; delete or move the children first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDocument(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			if err := d.DestroyAccount(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}
