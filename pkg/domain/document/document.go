// Package document holds the document-level domain model: the metadata
// carried by one bookkeeping document and the errors of its lifecycle.
package document

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// FileFormatVersion is written into every freshly initialised document and
// checked on open, so an old build never misreads a newer schema.
const FileFormatVersion = 1

var (
	// ErrNotInitialized is returned when opening a store that was never
	// initialised as a document.
	ErrNotInitialized = errors.New("store is not an initialised document")

	// ErrAlreadyInitialized is returned when initialising a store that
	// already carries a document.
	ErrAlreadyInitialized = errors.New("store already holds a document")

	// ErrUnsupportedVersion is returned when a document's file format
	// version is newer than this build understands.
	ErrUnsupportedVersion = errors.New("unsupported document file format version")

	// ErrClosed is returned by every operation on a closed document.
	ErrClosed = errors.New("document is closed")

	// ErrUnknownCurrency is returned when a base currency code is not a
	// known ISO 4217 code.
	ErrUnknownCurrency = errors.New("unknown currency code")
)

// Info is the metadata of one document: a stable identity plus the
// user-facing name and description, kept in a single record next to the
// accounts it describes.
type Info struct {
	UID               uuid.UUID
	Name              string
	Description       string
	BaseCurrency      string
	FileFormatVersion int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
