package account

import (
	"fmt"
	"time"

	"github.com/amirasaad/tally/pkg/domain/account"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents an account record in the database: one row per node of
// the hierarchy, addressed by its unique full path. Opening date and balance
// are NULL for flow (income/expense) accounts.
type Account struct {
	ID             int64  `gorm:"primaryKey;autoIncrement:false"`
	FullPath       string `gorm:"uniqueIndex;not null;size:512"`
	Description    string
	AccountType    string `gorm:"type:varchar(16);not null"`
	OpeningDate    *time.Time
	OpeningBalance *decimal.Decimal `gorm:"type:decimal(20,8)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Migrate creates or updates the accounts table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{})
}

// toDomain hydrates the domain entity from a record, re-validating the local
// invariants so a corrupt row surfaces as an error instead of a bad entity.
func (m *Account) toDomain() (*account.Account, error) {
	builder := account.New().
		WithID(m.ID).
		WithFullPath(m.FullPath).
		WithDescription(m.Description).
		WithType(account.Type(m.AccountType)).
		WithCreatedAt(m.CreatedAt).
		WithUpdatedAt(m.UpdatedAt)
	if m.OpeningDate != nil && m.OpeningBalance != nil {
		builder = builder.WithOpening(*m.OpeningDate, *m.OpeningBalance)
	}
	acct, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("account record %d is corrupt: %w", m.ID, err)
	}
	return acct, nil
}
