// Package document is the datastore facade: one Document owns one database
// connection for its lifetime and exposes the metadata and account surface
// of a bookkeeping file. Presentation layers talk to this package only;
// business rules live below it.
package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Rhymond/go-money"
	"github.com/amirasaad/tally/infra"
	infraaccount "github.com/amirasaad/tally/infra/repository/account"
	infradocument "github.com/amirasaad/tally/infra/repository/document"
	"github.com/amirasaad/tally/pkg/config"
	"github.com/amirasaad/tally/pkg/domain/document"
	"github.com/amirasaad/tally/pkg/dto"
	accountrepo "github.com/amirasaad/tally/pkg/repository/account"
	documentrepo "github.com/amirasaad/tally/pkg/repository/document"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Document is an open bookkeeping file. It is not safe for concurrent use;
// callers wanting parallelism open one Document per goroutine.
type Document struct {
	db       *gorm.DB
	accounts accountrepo.Repository
	meta     documentrepo.Repository
	validate *validator.Validate
	logger   *slog.Logger
	closed   bool
}

// Option customises a Document as it is opened or created.
type Option func(*Document)

// WithLogger sets the logger used by the document and its operations.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

func newDocument(db *gorm.DB, opts ...Option) *Document {
	d := &Document{
		db:       db,
		accounts: infraaccount.New(db),
		meta:     infradocument.New(db),
		validate: validator.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func connect(cfg *config.App) (*gorm.DB, error) {
	if cfg == nil || cfg.Store == nil {
		return nil, errors.New("store configuration is required")
	}
	return infra.NewConnection(*cfg.Store, cfg.Env)
}

func disconnect(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Open connects to an existing document and verifies it: the store must have
// been initialised (document.ErrNotInitialized otherwise) and its file format
// version must be one this build understands
// (document.ErrUnsupportedVersion otherwise).
func Open(ctx context.Context, cfg *config.App, opts ...Option) (*Document, error) {
	db, err := connect(cfg)
	if err != nil {
		return nil, err
	}
	d := newDocument(db, opts...)

	if !db.WithContext(ctx).Migrator().HasTable(&infradocument.Document{}) {
		_ = disconnect(db)
		return nil, document.ErrNotInitialized
	}
	info, err := d.meta.Get(ctx)
	if err != nil {
		_ = disconnect(db)
		return nil, err
	}
	if info.FileFormatVersion > document.FileFormatVersion {
		_ = disconnect(db)
		return nil, fmt.Errorf("%w: %d", document.ErrUnsupportedVersion, info.FileFormatVersion)
	}

	d.logger.Debug(
		"document opened",
		"uid", info.UID,
		"name", info.Name,
		"file_format_version", info.FileFormatVersion,
	)
	return d, nil
}

// Create initialises a fresh document in the configured store: it lays out
// the schema and seeds the metadata record. Creating over an already
// initialised store fails with document.ErrAlreadyInitialized.
func Create(ctx context.Context, cfg *config.App, create dto.DocumentCreate, opts ...Option) (*Document, error) {
	if err := validator.New().Struct(create); err != nil {
		return nil, err
	}
	if create.BaseCurrency != "" && money.GetCurrency(create.BaseCurrency) == nil {
		return nil, fmt.Errorf("%w: %q", document.ErrUnknownCurrency, create.BaseCurrency)
	}

	db, err := connect(cfg)
	if err != nil {
		return nil, err
	}
	d := newDocument(db, opts...)

	if err := infradocument.Migrate(db); err != nil {
		_ = disconnect(db)
		return nil, err
	}
	if err := infraaccount.Migrate(db); err != nil {
		_ = disconnect(db)
		return nil, err
	}
	if err := d.meta.Init(ctx, create); err != nil {
		_ = disconnect(db)
		return nil, err
	}

	d.logger.Info("document created", "name", create.Name)
	return d, nil
}

// Close releases the document's connection. Every later operation, including
// a second Close, fails with document.ErrClosed.
func (d *Document) Close() error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	d.closed = true
	d.logger.Debug("document closed")
	return disconnect(d.db)
}

func (d *Document) ensureOpen() error {
	if d.closed {
		return document.ErrClosed
	}
	return nil
}

// Info retrieves the document's metadata record.
func (d *Document) Info(ctx context.Context) (*document.Info, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}
	return d.meta.Get(ctx)
}

// SetName updates the document name. The name must not be empty.
func (d *Document) SetName(ctx context.Context, name string) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if name == "" {
		return errors.New("document name must not be empty")
	}
	return d.meta.SetName(ctx, name)
}

// SetDescription updates the document description.
func (d *Document) SetDescription(ctx context.Context, description string) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	return d.meta.SetDescription(ctx, description)
}

// SetBaseCurrency updates the document's base currency. The code must name a
// currency known to the ISO 4217 registry.
func (d *Document) SetBaseCurrency(ctx context.Context, code string) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("%w: %q", document.ErrUnknownCurrency, code)
	}
	return d.meta.SetBaseCurrency(ctx, code)
}
