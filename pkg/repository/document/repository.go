// Package document declares the persistence interface for the single
// metadata record each document carries.
package document

import (
	"context"

	"github.com/amirasaad/tally/pkg/domain/document"
	"github.com/amirasaad/tally/pkg/dto"
)

// Repository reads and writes the one metadata record of a document.
type Repository interface {
	// Init seeds the metadata record of a freshly created document. It
	// fails with document.ErrAlreadyInitialized when the record exists.
	Init(ctx context.Context, create dto.DocumentCreate) error

	// Get retrieves the metadata record, or document.ErrNotInitialized when
	// the store was never initialised.
	Get(ctx context.Context) (*document.Info, error)

	// SetName updates the document name.
	SetName(ctx context.Context, name string) error

	// SetDescription updates the document description.
	SetDescription(ctx context.Context, description string) error

	// SetBaseCurrency updates the document's base currency code. The code
	// is assumed validated by the caller.
	SetBaseCurrency(ctx context.Context, code string) error
}
