// Package repository keeps the store-error translation shared by the GORM
// repositories in its subpackages.
package repository

import (
	"errors"

	"github.com/amirasaad/tally/pkg/domain/account"
	"gorm.io/gorm"
)

// MapError converts GORM errors to domain errors. This keeps infrastructure
// concerns (database errors) within the infrastructure layer. Traverses the
// error chain to find GORM errors and maps them to the domain kinds.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	// Traverse the error chain to find GORM errors
	// GORM wraps database errors, so we check each level
	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return account.ErrDuplicatePath
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return account.ErrNotFound
		}

		// Move to the next error in the chain
		currentErr = errors.Unwrap(currentErr)
	}

	// Return original error if no mapping found
	return err
}

// WrapError wraps a GORM operation and automatically maps errors.
// This helper reduces boilerplate in repository methods while keeping code
// explicit.
//
// Usage:
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(record).Error
//	})
func WrapError(op func() error) error {
	return MapError(op())
}
