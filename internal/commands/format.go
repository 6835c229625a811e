package commands

import (
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/amirasaad/tally/pkg/domain/account"
)

const dateLayout = "2006-01-02"

// formatMoney renders a major-unit amount in the given currency, falling back
// to the bare decimal when no currency is configured.
func formatMoney(amount decimal.Decimal, code string) string {
	currency := money.GetCurrency(code)
	if currency == nil {
		return amount.String()
	}
	minor := amount.Shift(int32(currency.Fraction)).IntPart()
	return currency.Formatter().Format(minor)
}

// typeLabel renders an account type as a fixed-width colored badge.
func typeLabel(t account.Type) string {
	switch t {
	case account.TypeAsset:
		return color.GreenString("%-9s", t)
	case account.TypeLiability:
		return color.RedString("%-9s", t)
	case account.TypeIncome:
		return color.CyanString("%-9s", t)
	case account.TypeExpense:
		return color.YellowString("%-9s", t)
	}
	return fmt.Sprintf("%-9s", t)
}

func parseDate(arg string) (time.Time, error) {
	date, err := time.Parse(dateLayout, arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing opening date: %w", err)
	}
	return date, nil
}

func parseBalance(arg string) (decimal.Decimal, error) {
	balance, err := decimal.NewFromString(arg)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing opening balance: %w", err)
	}
	return balance, nil
}

// parseOpeningFlags converts the optional opening date/balance flag pair into
// DTO-ready pointers. Both must be given, or neither.
func parseOpeningFlags(dateArg, balanceArg string) (*time.Time, *decimal.Decimal, error) {
	if dateArg == "" && balanceArg == "" {
		return nil, nil, nil
	}
	if dateArg == "" || balanceArg == "" {
		return nil, nil, fmt.Errorf("--opening-date and --opening-balance must be given together")
	}
	date, err := parseDate(dateArg)
	if err != nil {
		return nil, nil, err
	}
	balance, err := parseBalance(balanceArg)
	if err != nil {
		return nil, nil, err
	}
	return &date, &balance, nil
}
