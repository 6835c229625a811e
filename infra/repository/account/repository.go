// Package account implements the account repository on GORM. Every business
// rule is checked before the first write, and every multi-record mutation
// (create with id allocation, cascading path rewrites, guarded destroy) runs
// inside one transaction so a failure can never strand a half-rewritten tree.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	infrarepo "github.com/amirasaad/tally/infra/repository"
	"github.com/amirasaad/tally/pkg/domain/account"
	"github.com/amirasaad/tally/pkg/dto"
	repo "github.com/amirasaad/tally/pkg/repository/account"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates an account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// escapeLike neutralises LIKE metacharacters in a path so that names
// containing % or _ match literally in prefix queries. The pipe is used as
// the escape character because it is quotable the same way on every dialect.
func escapeLike(path string) string {
	return strings.NewReplacer("|", "||", "%", "|%", "_", "|_").Replace(path)
}

// findModel retrieves one record by full path; a miss is (nil, nil).
func findModel(tx *gorm.DB, fullPath string) (*Account, error) {
	var m Account
	err := tx.Where("full_path = ?", fullPath).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// findModelByID retrieves one record by id; a miss is (nil, nil).
func findModelByID(tx *gorm.DB, id int64) (*Account, error) {
	var m Account
	err := tx.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// childModels lists the records whose parent path is exactly parentPath;
// the empty path selects the root accounts.
func childModels(tx *gorm.DB, parentPath string) ([]Account, error) {
	var models []Account
	q := tx.Order("full_path")
	if parentPath == "" {
		q = q.Where("full_path NOT LIKE ?", "%"+account.Separator+"%")
	} else {
		prefix := escapeLike(parentPath) + account.Separator
		q = q.Where("full_path LIKE ? ESCAPE '|'", prefix+"%").
			Where("full_path NOT LIKE ? ESCAPE '|'", prefix+"%"+account.Separator+"%")
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

// descendantModels lists every record strictly below fullPath.
func descendantModels(tx *gorm.DB, fullPath string) ([]Account, error) {
	var models []Account
	prefix := escapeLike(fullPath) + account.Separator
	err := tx.Where("full_path LIKE ? ESCAPE '|'", prefix+"%").
		Order("full_path").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return models, nil
}

func toDomainSlice(models []Account) ([]*account.Account, error) {
	accounts := make([]*account.Account, 0, len(models))
	for i := range models {
		acct, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// Create implements repo.Repository.
func (r *repository) Create(ctx context.Context, create dto.AccountCreate) (*account.Account, error) {
	if err := account.ValidateName(create.Name); err != nil {
		return nil, err
	}
	accountType, err := account.ParseType(create.Type)
	if err != nil {
		return nil, err
	}

	builder := account.New().
		WithName(create.Name).
		WithParentPath(create.ParentPath).
		WithDescription(create.Description).
		WithType(accountType)
	if create.OpeningDate != nil && create.OpeningBalance != nil {
		builder = builder.WithOpening(*create.OpeningDate, *create.OpeningBalance)
	} else if create.OpeningDate != nil || create.OpeningBalance != nil {
		return nil, fmt.Errorf(
			"%w: opening date and balance must be supplied together", account.ErrOpeningData)
	}
	acct, err := builder.Build()
	if err != nil {
		return nil, err
	}

	var created *Account
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if create.ParentPath != "" {
			parent, err := findModel(tx, create.ParentPath)
			if err != nil {
				return err
			}
			if parent == nil {
				return fmt.Errorf("%w: %q", account.ErrParentNotFound, create.ParentPath)
			}
			if !account.CompatibleParentChild(account.Type(parent.AccountType), acct.Type) {
				return fmt.Errorf("%w: cannot create %s account under %s account %q",
					account.ErrIncompatibleTypes, acct.Type, parent.AccountType, create.ParentPath)
			}
		}

		existing, err := findModel(tx, acct.FullPath)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: %q", account.ErrDuplicatePath, acct.FullPath)
		}

		// Ids are allocated the way the account table always has: one more
		// than the largest id in use.
		var maxID int64
		if err := tx.Model(&Account{}).
			Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return err
		}

		m := Account{
			ID:          maxID + 1,
			FullPath:    acct.FullPath,
			Description: acct.Description,
			AccountType: acct.Type.String(),
		}
		if acct.Opening != nil {
			date := acct.Opening.Date
			balance := acct.Opening.Balance
			m.OpeningDate = &date
			m.OpeningBalance = &balance
		}
		if err := tx.Create(&m).Error; err != nil {
			return infrarepo.MapError(err)
		}
		created = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created.toDomain()
}

// FindByPath implements repo.Repository. A miss is (nil, nil), not an error.
func (r *repository) FindByPath(ctx context.Context, fullPath string) (*account.Account, error) {
	m, err := findModel(r.db.WithContext(ctx), fullPath)
	if err != nil || m == nil {
		return nil, err
	}
	return m.toDomain()
}

// FindByID implements repo.Repository. A miss is (nil, nil), not an error.
func (r *repository) FindByID(ctx context.Context, id int64) (*account.Account, error) {
	m, err := findModelByID(r.db.WithContext(ctx), id)
	if err != nil || m == nil {
		return nil, err
	}
	return m.toDomain()
}

// ChildrenOf implements repo.Repository.
func (r *repository) ChildrenOf(ctx context.Context, parentPath string) ([]*account.Account, error) {
	models, err := childModels(r.db.WithContext(ctx), parentPath)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(models)
}

// DescendantsOf implements repo.Repository.
func (r *repository) DescendantsOf(ctx context.Context, fullPath string) ([]*account.Account, error) {
	models, err := descendantModels(r.db.WithContext(ctx), fullPath)
	if err != nil {
		return nil, err
	}
	return toDomainSlice(models)
}

// moveSubtree rewrites target's full path to newPath and rebases every
// descendant onto it by literal prefix substitution. Descendants are
// enumerated before the target row is touched, and every write shares the
// caller's transaction.
func moveSubtree(tx *gorm.DB, target *Account, newPath string) error {
	collision, err := findModel(tx, newPath)
	if err != nil {
		return err
	}
	if collision != nil {
		return fmt.Errorf("%w: %q", account.ErrDuplicateName, newPath)
	}

	descendants, err := descendantModels(tx, target.FullPath)
	if err != nil {
		return err
	}

	oldPath := target.FullPath
	if err := tx.Model(&Account{}).Where("id = ?", target.ID).
		Update("full_path", newPath).Error; err != nil {
		return infrarepo.MapError(err)
	}
	target.FullPath = newPath

	for i := range descendants {
		rebased := account.RebasePath(descendants[i].FullPath, oldPath, newPath)
		if err := tx.Model(&Account{}).Where("id = ?", descendants[i].ID).
			Update("full_path", rebased).Error; err != nil {
			return infrarepo.MapError(err)
		}
	}
	return nil
}

// Rename implements repo.Repository.
func (r *repository) Rename(ctx context.Context, fullPath, newName string) (*account.Account, error) {
	if err := account.ValidateName(newName); err != nil {
		return nil, err
	}

	var renamed *Account
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := findModel(tx, fullPath)
		if err != nil {
			return err
		}
		if target == nil {
			return fmt.Errorf("%w: %q", account.ErrNotFound, fullPath)
		}

		newPath := account.ChildPath(account.ParentPath(fullPath), newName)
		if newPath == fullPath {
			// Renaming to the current name changes nothing.
			renamed = target
			return nil
		}
		if err := moveSubtree(tx, target, newPath); err != nil {
			return err
		}
		renamed = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return renamed.toDomain()
}

// Reparent implements repo.Repository. The empty parent path moves the
// account to the root.
func (r *repository) Reparent(ctx context.Context, fullPath, newParentPath string) (*account.Account, error) {
	var moved *Account
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := findModel(tx, fullPath)
		if err != nil {
			return err
		}
		if target == nil {
			return fmt.Errorf("%w: %q", account.ErrNotFound, fullPath)
		}

		if newParentPath == fullPath || account.IsDescendantPath(newParentPath, fullPath) {
			return fmt.Errorf("%w: %q under %q", account.ErrWouldCycle, fullPath, newParentPath)
		}

		if newParentPath != "" {
			parent, err := findModel(tx, newParentPath)
			if err != nil {
				return err
			}
			if parent == nil {
				return fmt.Errorf("%w: %q", account.ErrParentNotFound, newParentPath)
			}
			if !account.CompatibleParentChild(
				account.Type(parent.AccountType), account.Type(target.AccountType)) {
				return fmt.Errorf("%w: cannot move %s account %q under %s account %q",
					account.ErrIncompatibleTypes,
					target.AccountType, fullPath, parent.AccountType, newParentPath)
			}
		}

		newPath := account.ChildPath(newParentPath, account.LeafName(fullPath))
		if newPath == fullPath {
			moved = target
			return nil
		}
		if err := moveSubtree(tx, target, newPath); err != nil {
			return err
		}
		moved = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved.toDomain()
}

// SetType implements repo.Repository.
func (r *repository) SetType(ctx context.Context, fullPath string, set dto.AccountSetType) (*account.Account, error) {
	newType, err := account.ParseType(set.Type)
	if err != nil {
		return nil, err
	}
	var opening *account.Opening
	if set.OpeningDate != nil && set.OpeningBalance != nil {
		opening = &account.Opening{Date: *set.OpeningDate, Balance: *set.OpeningBalance}
	} else if set.OpeningDate != nil || set.OpeningBalance != nil {
		return nil, fmt.Errorf(
			"%w: opening date and balance must be supplied together", account.ErrOpeningData)
	}
	if err := account.ValidateOpening(newType, opening); err != nil {
		return nil, err
	}

	var updated *Account
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := findModel(tx, fullPath)
		if err != nil {
			return err
		}
		if target == nil {
			return fmt.Errorf("%w: %q", account.ErrNotFound, fullPath)
		}
		currentType := account.Type(target.AccountType)

		children, err := childModels(tx, fullPath)
		if err != nil {
			return err
		}

		// Flipping the running-balance property moves the account into the
		// other type group, which is only allowed on an isolated account.
		if newType.HasRunningBalance() != currentType.HasRunningBalance() {
			hasParent := account.ParentPath(fullPath) != ""
			if err := account.ValidateRunningBalanceToggle(hasParent, len(children)); err != nil {
				return err
			}
		}

		// Whatever the change, adjacent accounts must stay in one group.
		// The check never cascades: retyping a subtree means retyping each
		// node, leaf-to-root or root-to-leaf.
		if parentPath := account.ParentPath(fullPath); parentPath != "" {
			parent, err := findModel(tx, parentPath)
			if err != nil {
				return err
			}
			if parent != nil && !account.CompatibleParentChild(
				account.Type(parent.AccountType), newType) {
				return fmt.Errorf("%w: %s account %q cannot hold a %s child",
					account.ErrIncompatibleTypes, parent.AccountType, parentPath, newType)
			}
		}
		for i := range children {
			if !account.CompatibleParentChild(newType, account.Type(children[i].AccountType)) {
				return fmt.Errorf("%w: child %q is %s",
					account.ErrIncompatibleTypes, children[i].FullPath, children[i].AccountType)
			}
		}

		updates := map[string]any{
			"account_type":    newType.String(),
			"opening_date":    nil,
			"opening_balance": nil,
		}
		if opening != nil {
			updates["opening_date"] = opening.Date
			updates["opening_balance"] = opening.Balance
		}
		if err := tx.Model(&Account{}).Where("id = ?", target.ID).
			Updates(updates).Error; err != nil {
			return infrarepo.MapError(err)
		}

		updated, err = findModelByID(tx, target.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated.toDomain()
}

// Update implements repo.Repository.
func (r *repository) Update(ctx context.Context, fullPath string, update dto.AccountUpdate) (*account.Account, error) {
	var updated *Account
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := findModel(tx, fullPath)
		if err != nil {
			return err
		}
		if target == nil {
			return fmt.Errorf("%w: %q", account.ErrNotFound, fullPath)
		}

		updates := map[string]any{}
		if update.Description != nil {
			updates["description"] = *update.Description
		}
		if update.OpeningDate != nil || update.OpeningBalance != nil {
			if !account.Type(target.AccountType).HasRunningBalance() {
				return fmt.Errorf("%w: %s account %q cannot carry an opening balance",
					account.ErrOpeningData, target.AccountType, fullPath)
			}
			if update.OpeningDate != nil {
				updates["opening_date"] = *update.OpeningDate
			}
			if update.OpeningBalance != nil {
				updates["opening_balance"] = *update.OpeningBalance
			}
		}
		if len(updates) == 0 {
			updated = target
			return nil
		}

		if err := tx.Model(&Account{}).Where("id = ?", target.ID).
			Updates(updates).Error; err != nil {
			return infrarepo.MapError(err)
		}
		updated, err = findModelByID(tx, target.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated.toDomain()
}

// Destroy implements repo.Repository.
func (r *repository) Destroy(ctx context.Context, fullPath string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := findModel(tx, fullPath)
		if err != nil {
			return err
		}
		if target == nil {
			return fmt.Errorf("%w: %q", account.ErrNotFound, fullPath)
		}

		var descendants int64
		prefix := escapeLike(fullPath) + account.Separator
		if err := tx.Model(&Account{}).
			Where("full_path LIKE ? ESCAPE '|'", prefix+"%").
			Count(&descendants).Error; err != nil {
			return err
		}
		if descendants > 0 {
			return fmt.Errorf("%w: %q has %d descendants",
				account.ErrHasChildren, fullPath, descendants)
		}

		return infrarepo.MapError(tx.Delete(&Account{}, "id = ?", target.ID).Error)
	})
}
