package document

import (
	"context"

	"github.com/amirasaad/tally/pkg/domain/account"
	"github.com/amirasaad/tally/pkg/dto"
)

// CreateAccount validates the input and creates an account under its parent
// path, or as a root when the parent path is empty.
func (d *Document) CreateAccount(ctx context.Context, create dto.AccountCreate) (*account.Account, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}
	if err := d.validate.Struct(create); err != nil {
		return nil, err
	}
	acct, err := d.accounts.Create(ctx, create)
	if err != nil {
		return nil, err
	}
	d.logger.Info("account created",
		"path", acct.FullPath, "type", acct.Type, "id", acct.ID)
	return acct, nil
}

// FindAccount retrieves the account at the given full path. A miss is
// (nil, nil), not an error.
func (d *Document) FindAccount(ctx context.Context, fullPath string) (*account.Account, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}
	return d.accounts.FindByPath(ctx, fullPath)
}

// Children lists the direct children of the account at parentPath, sorted by
// path. The empty path lists the root accounts.
func (d *Document) Children(ctx context.Context, parentPath string) ([]*account.Account, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}
	return d.accounts.ChildrenOf(ctx, parentPath)
}

// Descendants lists every account strictly below fullPath, sorted by path.
func (d *Document) Descendants(ctx context.Context, fullPath string) ([]*account.Account, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}
	return d.accounts.DescendantsOf(ctx, fullPath)
}

// RenameAccount gives the account a new name in place, rewriting the paths of
// its whole subtree.
func (d *Document) RenameAccount(ctx context.Context, fullPath, newName string) (*account.Account, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}
	acct, err := d.accounts.Rename(ctx, fullPath, newName)
	if err != nil {
		return nil, err
	}
	d.logger.Info("account renamed", "from", fullPath, "to", acct.FullPath)
	return acct, nil
}

// ReparentAccount moves the account, and its whole subtree, under a new
// parent. The empty parent path moves it to the root.
func (d *Document) ReparentAccount(ctx context.Context, fullPath, newParentPath string) (*account.Account, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}
	acct, err := d.accounts.Reparent(ctx, fullPath, newParentPath)
	if err != nil {
		return nil, err
	}
	d.logger.Info("account moved", "from", fullPath, "to", acct.FullPath)
	return acct, nil
}

// SetAccountType changes the account's type, replacing its opening data with
// whatever the new type calls for.
func (d *Document) SetAccountType(ctx context.Context, fullPath string, set dto.AccountSetType) (*account.Account, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}
	if err := d.validate.Struct(set); err != nil {
		return nil, err
	}
	acct, err := d.accounts.SetType(ctx, fullPath, set)
	if err != nil {
		return nil, err
	}
	d.logger.Info("account retyped", "path", acct.FullPath, "type", acct.Type)
	return acct, nil
}

// UpdateAccount applies a partial update to the account's description and
// opening data.
func (d *Document) UpdateAccount(ctx context.Context, fullPath string, update dto.AccountUpdate) (*account.Account, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}
	return d.accounts.Update(ctx, fullPath, update)
}

// DestroyAccount deletes the account at fullPath. Only leaves may go;
// destroying an account with descendants fails with account.ErrHasChildren.
func (d *Document) DestroyAccount(ctx context.Context, fullPath string) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if err := d.accounts.Destroy(ctx, fullPath); err != nil {
		return err
	}
	d.logger.Info("account destroyed", "path", fullPath)
	return nil
}
