package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountCreate is the payload for creating a new account. ParentPath is
// empty for root accounts. OpeningDate and OpeningBalance must be present
// together, and only for balance-group (asset/liability) accounts.
type AccountCreate struct {
	Name           string `validate:"required"`
	ParentPath     string
	Description    string
	Type           string           `validate:"required,oneof=asset liability income expense"`
	OpeningDate    *time.Time       `validate:"required_with=OpeningBalance"`
	OpeningBalance *decimal.Decimal `validate:"required_with=OpeningDate"`
}

// AccountUpdate is the payload for partial field updates. Nil fields are
// left untouched. Opening fields are only legal on balance-group accounts.
type AccountUpdate struct {
	Description    *string
	OpeningDate    *time.Time
	OpeningBalance *decimal.Decimal
}

// AccountSetType is the payload for changing an account's type. Opening
// fields follow the same present-iff-balance-group rule as creation.
type AccountSetType struct {
	Type           string           `validate:"required,oneof=asset liability income expense"`
	OpeningDate    *time.Time       `validate:"required_with=OpeningBalance"`
	OpeningBalance *decimal.Decimal `validate:"required_with=OpeningDate"`
}
