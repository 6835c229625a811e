// Package document implements the document metadata repository on GORM.
package document

import (
	"context"
	"errors"

	"github.com/amirasaad/tally/pkg/domain/document"
	"github.com/amirasaad/tally/pkg/dto"
	repo "github.com/amirasaad/tally/pkg/repository/document"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a document repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Init implements repo.Repository.
func (r *repository) Init(ctx context.Context, create dto.DocumentCreate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Document
		err := tx.First(&existing, "id = ?", singletonID).Error
		if err == nil {
			return document.ErrAlreadyInitialized
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&Document{
			ID:                singletonID,
			UID:               uuid.NewString(),
			Name:              create.Name,
			Description:       create.Description,
			BaseCurrency:      create.BaseCurrency,
			FileFormatVersion: document.FileFormatVersion,
		}).Error
	})
}

// Get implements repo.Repository.
func (r *repository) Get(ctx context.Context) (*document.Info, error) {
	var m Document
	err := r.db.WithContext(ctx).First(&m, "id = ?", singletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, document.ErrNotInitialized
	}
	if err != nil {
		return nil, err
	}
	return m.toDomain()
}

// SetName implements repo.Repository.
func (r *repository) SetName(ctx context.Context, name string) error {
	return r.setField(ctx, "name", name)
}

// SetDescription implements repo.Repository.
func (r *repository) SetDescription(ctx context.Context, description string) error {
	return r.setField(ctx, "description", description)
}

// SetBaseCurrency implements repo.Repository.
func (r *repository) SetBaseCurrency(ctx context.Context, code string) error {
	return r.setField(ctx, "base_currency", code)
}

func (r *repository) setField(ctx context.Context, column string, value string) error {
	result := r.db.WithContext(ctx).Model(&Document{}).
		Where("id = ?", singletonID).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return document.ErrNotInitialized
	}
	return nil
}
