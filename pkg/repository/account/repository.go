// Package account declares the persistence interface of the account
// hierarchy. Implementations validate every business rule before writing and
// keep the path-addressed tree consistent across structural mutations.
package account

import (
	"context"

	"github.com/amirasaad/tally/pkg/domain/account"
	"github.com/amirasaad/tally/pkg/dto"
)

// Repository is the data access surface of the account tree. Lookups report
// a miss as (nil, nil); mutations on a missing target return
// account.ErrNotFound. Every multi-record mutation happens inside one store
// transaction, so a failed cascade never leaves a partially rewritten tree.
type Repository interface {
	// Create validates the payload against the hierarchy (name, parent
	// existence, type compatibility, opening data, path uniqueness) and
	// inserts one record with a freshly allocated id.
	Create(ctx context.Context, create dto.AccountCreate) (*account.Account, error)

	// FindByPath retrieves an account by its full path.
	FindByPath(ctx context.Context, fullPath string) (*account.Account, error)

	// FindByID retrieves an account by its stable record id.
	FindByID(ctx context.Context, id int64) (*account.Account, error)

	// ChildrenOf lists the direct children of the account at parentPath,
	// ordered by full path. The empty path selects the root accounts.
	ChildrenOf(ctx context.Context, parentPath string) ([]*account.Account, error)

	// DescendantsOf lists every account strictly below fullPath, ordered by
	// full path.
	DescendantsOf(ctx context.Context, fullPath string) ([]*account.Account, error)

	// Rename gives the account at fullPath a new leaf name, rewriting its
	// own path and the path of every descendant.
	Rename(ctx context.Context, fullPath, newName string) (*account.Account, error)

	// Reparent moves the account at fullPath under newParentPath (the empty
	// path moves it to the root), rewriting the paths of the whole subtree.
	Reparent(ctx context.Context, fullPath, newParentPath string) (*account.Account, error)

	// SetType changes the account's type and opening data, refusing changes
	// that would strand the account in a different type group from its
	// parent or children.
	SetType(ctx context.Context, fullPath string, set dto.AccountSetType) (*account.Account, error)

	// Update applies partial field updates (description, opening data).
	Update(ctx context.Context, fullPath string, update dto.AccountUpdate) (*account.Account, error)

	// Destroy deletes the account at fullPath once it has no descendants.
	Destroy(ctx context.Context, fullPath string) error
}
