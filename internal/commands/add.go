package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirasaad/tally/pkg/domain/account"
	"github.com/amirasaad/tally/pkg/dto"
)

func newAddCommand() *cobra.Command {
	var (
		accountType    string
		description    string
		openingDate    string
		openingBalance string
	)

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Create an account at the given path",
		Long: `Create an account at the given full path. Every ancestor must already
exist: "tally add assets/bank" requires the root account "assets".

Asset and liability accounts carry a running balance and need an opening
date and balance; income and expense accounts track flows and take neither.`,
		Args: cobra.ExactArgs(1),
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

			acct, err := d.CreateAccount(cmd.Context(), dto.AccountCreate{
				Name:           account.LeafName(args[0]),
				ParentPath:     account.ParentPath(args[0]),
				Description:    description,
				Type:           accountType,
				OpeningDate:    date,
				OpeningBalance: balance,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n",
				typeLabel(acct.Type), acct.FullPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&accountType, "type", "t", "",
		"account type: asset, liability, income or expense (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&description, "description", "", "account description")
	cmd.Flags().StringVar(&openingDate, "opening-date", "",
		"opening date (YYYY-MM-DD, balance accounts only)")
	cmd.Flags().StringVar(&openingBalance, "opening-balance", "",
		"opening balance in major units, e.g. 1234.56")

	return cmd
}
