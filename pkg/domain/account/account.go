package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidName is returned when an account name is empty or contains the path separator.
	ErrInvalidName = errors.New("invalid account name")

	// ErrUnknownType is returned when an account type string is not one of the four known types.
	ErrUnknownType = errors.New("unknown account type")

	// ErrOpeningData is returned when opening date and balance are missing on a
	// running-balance account, or present on one that carries no running balance.
	ErrOpeningData = errors.New("opening data does not match account type")

	// ErrDuplicatePath is returned when creating an account whose full path is already taken.
	ErrDuplicatePath = errors.New("account path already exists")

	// ErrDuplicateName is returned when a rename or move would collide with a sibling.
	ErrDuplicateName = errors.New("account name already taken under parent")

	// ErrParentNotFound is returned when the named parent account does not exist.
	ErrParentNotFound = errors.New("parent account not found")

	// ErrIncompatibleTypes is returned when a parent and child would belong to
	// different type groups.
	ErrIncompatibleTypes = errors.New("incompatible parent and child account types")

	// ErrHasChildren is returned when destroying an account that still has descendants.
	ErrHasChildren = errors.New("account has children")

	// ErrRunningBalance is returned when a type change would flip the
	// running-balance property of an account with a parent or children.
	ErrRunningBalance = errors.New("cannot change running balance with relationships attached")

	// ErrWouldCycle is returned when an account would be moved under itself or
	// one of its own descendants.
	ErrWouldCycle = errors.New("cannot move account under its own subtree")

	// ErrNotFound is returned when a mutation targets an account that does not exist.
	ErrNotFound = errors.New("account not found")
)

// Type classifies an account. The set is closed: every account is exactly one
// of asset, liability, income or expense.
type Type string

const (
	TypeAsset     Type = "asset"
	TypeLiability Type = "liability"
	TypeIncome    Type = "income"
	TypeExpense   Type = "expense"
)

// ParseType converts a string into a Type, rejecting anything outside the
// closed set.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// Valid reports whether t is one of the four known types.
func (t Type) Valid() bool {
	switch t {
	case TypeAsset, TypeLiability, TypeIncome, TypeExpense:
		return true
	}
	return false
}

// HasRunningBalance reports whether accounts of this type carry a running
// balance. Asset and liability accounts do; income and expense accounts only
// accumulate flows.
func (t Type) HasRunningBalance() bool {
	return t == TypeAsset || t == TypeLiability
}

func (t Type) String() string {
	return string(t)
}

// Opening holds the date and balance an account starts from. It exists iff
// the account carries a running balance.
type Opening struct {
	Date    time.Time
	Balance decimal.Decimal
}

// Account is one node of the account hierarchy. The full path is the
// addressing key: the account's name is its last path segment, and every
// proper prefix of the path names an existing ancestor.
//
// Invariants:
// - FullPath is unique across the hierarchy.
// - Every segment of FullPath is a valid name.
// - Opening is present iff Type carries a running balance.
type Account struct {
	ID          int64
	FullPath    string
	Description string
	Type        Type
	Opening     *Opening
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Name returns the account's own name, the last segment of its full path.
func (a *Account) Name() string {
	return LeafName(a.FullPath)
}

// ParentPath returns the full path of the account's parent, or the empty
// string for a root account.
func (a *Account) ParentPath() string {
	return ParentPath(a.FullPath)
}

// IsRoot reports whether the account sits at the top of the hierarchy.
func (a *Account) IsRoot() bool {
	return a.ParentPath() == ""
}

// HasRunningBalance reports whether the account carries a running balance.
func (a *Account) HasRunningBalance() bool {
	return a.Type.HasRunningBalance()
}

// Builder provides a fluent API for constructing Account instances. It is
// used both for new accounts and for hydrating existing ones from a data
// store, and ensures only valid accounts are constructed.
type Builder struct {
	id          int64
	fullPath    string
	parentPath  string
	name        string
	description string
	accountType Type
	opening     *Opening
	createdAt   time.Time
	updatedAt   time.Time
}

// New creates a new Builder.
func New() *Builder {
	return &Builder{createdAt: time.Now()}
}

// WithID sets the store-assigned identifier. This is primarily for hydrating
// an existing account from a data store.
func (b *Builder) WithID(id int64) *Builder {
	b.id = id
	return b
}

// WithFullPath sets the complete path of the account being built. It takes
// precedence over WithName and WithParentPath.
func (b *Builder) WithFullPath(fullPath string) *Builder {
	b.fullPath = fullPath
	return b
}

// WithName sets the account's own name, its last path segment.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithParentPath sets the full path of the parent account. Leave unset for a
// root account.
func (b *Builder) WithParentPath(parentPath string) *Builder {
	b.parentPath = parentPath
	return b
}

// WithDescription sets the free-text description.
func (b *Builder) WithDescription(description string) *Builder {
	b.description = description
	return b
}

// WithType sets the account type. This is a mandatory field.
func (b *Builder) WithType(t Type) *Builder {
	b.accountType = t
	return b
}

// WithOpening sets the opening date and balance. Only valid for types that
// carry a running balance.
func (b *Builder) WithOpening(date time.Time, balance decimal.Decimal) *Builder {
	b.opening = &Opening{Date: date, Balance: balance}
	return b
}

// WithCreatedAt sets the creation timestamp. This is primarily for hydrating
// an existing account from a data store.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp. This is primarily for
// hydrating an existing account from a data store.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build finalizes the construction of the Account. It validates all local
// invariants: every path segment must be a valid name, the type must be one
// of the known four, and opening data must match the type's running-balance
// property.
func (b *Builder) Build() (*Account, error) {
	fullPath := b.fullPath
	if fullPath == "" {
		fullPath = ChildPath(b.parentPath, b.name)
	}
	for _, segment := range SplitPath(fullPath) {
		if err := ValidateName(segment); err != nil {
			return nil, err
		}
	}
	if !b.accountType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, b.accountType)
	}
	if err := ValidateOpening(b.accountType, b.opening); err != nil {
		return nil, err
	}
	return &Account{
		ID:          b.id,
		FullPath:    fullPath,
		Description: b.description,
		Type:        b.accountType,
		Opening:     b.opening,
		CreatedAt:   b.createdAt,
		UpdatedAt:   b.updatedAt,
	}, nil
}
