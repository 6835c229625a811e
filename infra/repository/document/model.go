package document

import (
	"fmt"
	"time"

	"github.com/amirasaad/tally/pkg/domain/document"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// singletonID is the fixed id of the one metadata row a document carries.
const singletonID = 1

// Document is the persistence model for the document_info table. The table
// holds exactly one row, keyed by singletonID.
type Document struct {
	ID                int64  `gorm:"primaryKey;autoIncrement:false"`
	UID               string `gorm:"size:36;not null"`
	Name              string `gorm:"not null"`
	Description       string
	BaseCurrency      string `gorm:"size:3"`
	FileFormatVersion int    `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for the Document model.
func (Document) TableName() string {
	return "document_info"
}

// Migrate creates or updates the document_info table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Document{})
}

func (m *Document) toDomain() (*document.Info, error) {
	uid, err := uuid.Parse(m.UID)
	if err != nil {
		return nil, fmt.Errorf("document record is corrupt: %w", err)
	}
	return &document.Info{
		UID:               uid,
		Name:              m.Name,
		Description:       m.Description,
		BaseCurrency:      m.BaseCurrency,
		FileFormatVersion: m.FileFormatVersion,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}, nil
}
