package document

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/amirasaad/tally/pkg/config"
	"github.com/amirasaad/tally/pkg/domain/account"
	"github.com/amirasaad/tally/pkg/domain/document"
	"github.com/amirasaad/tally/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var opened = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) *config.App {
	t.Helper()
	return &config.App{
		Env: "test",
		Store: &config.Store{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "tally.db"),
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createDocument(t *testing.T, cfg *config.App) *Document {
	t.Helper()
	d, err := Create(context.Background(), cfg, dto.DocumentCreate{
		Name:         "household",
		Description:  "family bookkeeping",
		BaseCurrency: "EUR",
	}, WithLogger(quietLogger()))
	require.NoError(t, err)
	return d
}

func balanceCreate(name, parentPath, accountType, balance string) dto.AccountCreate {
	date := opened
	amount := decimal.RequireFromString(balance)
	return dto.AccountCreate{
		Name:           name,
		ParentPath:     parentPath,
		Type:           accountType,
		OpeningDate:    &date,
		OpeningBalance: &amount,
	}
}

func TestDocument_CreateThenReopen(t *testing.T) {
	require := require.New(t)
	cfg := testConfig(t)
	ctx := context.Background()

	d := createDocument(t, cfg)
	_, err := d.CreateAccount(ctx, balanceCreate("assets", "", "asset", "0"))
	require.NoError(err)
	_, err = d.CreateAccount(ctx, balanceCreate("bank", "assets", "asset", "1000"))
	require.NoError(err)

	first, err := d.Info(ctx)
	require.NoError(err)
	require.NoError(d.Close())

	// The same store reopens as the same document.
	d, err = Open(ctx, cfg, WithLogger(quietLogger()))
	require.NoError(err)
	defer func() { _ = d.Close() }()

	info, err := d.Info(ctx)
	require.NoError(err)
	assert.Equal(t, first.UID, info.UID)
	assert.Equal(t, "household", info.Name)
	assert.Equal(t, "family bookkeeping", info.Description)
	assert.Equal(t, "EUR", info.BaseCurrency)
	assert.Equal(t, document.FileFormatVersion, info.FileFormatVersion)
	assert.NotEqual(t, uuid.Nil, info.UID)

	acct, err := d.FindAccount(ctx, "assets/bank")
	require.NoError(err)
	require.NotNil(acct)
	require.NotNil(acct.Opening)
	assert.True(t, acct.Opening.Balance.Equal(decimal.RequireFromString("1000")))
}

func TestDocument_OpenRequiresInitialisedStore(t *testing.T) {
	_, err := Open(context.Background(), testConfig(t), WithLogger(quietLogger()))
	require.ErrorIs(t, err, document.ErrNotInitialized)
}

func TestDocument_CreateTwiceFails(t *testing.T) {
	require := require.New(t)
	cfg := testConfig(t)

	d := createDocument(t, cfg)
	require.NoError(d.Close())

	_, err := Create(context.Background(), cfg,
		dto.DocumentCreate{Name: "again"}, WithLogger(quietLogger()))
	require.ErrorIs(err, document.ErrAlreadyInitialized)
}

func TestDocument_CreateValidatesInput(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	// Name is mandatory.
	_, err := Create(ctx, testConfig(t), dto.DocumentCreate{}, WithLogger(quietLogger()))
	require.Error(err)

	// The base currency must be a known ISO code.
	_, err = Create(ctx, testConfig(t),
		dto.DocumentCreate{Name: "x", BaseCurrency: "XZY"}, WithLogger(quietLogger()))
	require.ErrorIs(err, document.ErrUnknownCurrency)
}

func TestDocument_ClosedDocumentRefusesEverything(t *testing.T) {
	require := require.New(t)
	cfg := testConfig(t)
	ctx := context.Background()

	d := createDocument(t, cfg)
	require.NoError(d.Close())

	_, err := d.Info(ctx)
	require.ErrorIs(err, document.ErrClosed)
	require.ErrorIs(d.SetName(ctx, "x"), document.ErrClosed)
	_, err = d.CreateAccount(ctx, balanceCreate("assets", "", "asset", "0"))
	require.ErrorIs(err, document.ErrClosed)
	_, err = d.FindAccount(ctx, "assets")
	require.ErrorIs(err, document.ErrClosed)
	require.ErrorIs(d.DestroyAccount(ctx, "assets"), document.ErrClosed)
	require.ErrorIs(d.Close(), document.ErrClosed)
}

func TestDocument_Metadata(t *testing.T) {
	require := require.New(t)
	cfg := testConfig(t)
	ctx := context.Background()

	d := createDocument(t, cfg)
	defer func() { _ = d.Close() }()

	require.NoError(d.SetName(ctx, "our money"))
	require.NoError(d.SetDescription(ctx, "post-move ledger"))
	require.NoError(d.SetBaseCurrency(ctx, "USD"))

	info, err := d.Info(ctx)
	require.NoError(err)
	assert.Equal(t, "our money", info.Name)
	assert.Equal(t, "post-move ledger", info.Description)
	assert.Equal(t, "USD", info.BaseCurrency)

	require.Error(d.SetName(ctx, ""))
	require.ErrorIs(d.SetBaseCurrency(ctx, "money"), document.ErrUnknownCurrency)
}

func TestDocument_RejectsNewerFileFormat(t *testing.T) {
	require := require.New(t)
	cfg := testConfig(t)
	ctx := context.Background()

	d := createDocument(t, cfg)
	// A future build bumped the format behind our back.
	require.NoError(
		d.db.Exec("UPDATE document_info SET file_format_version = ?",
			document.FileFormatVersion+1).Error)
	require.NoError(d.Close())

	_, err := Open(ctx, cfg, WithLogger(quietLogger()))
	require.ErrorIs(err, document.ErrUnsupportedVersion)
}

func TestDocument_AccountSurface(t *testing.T) {
	require := require.New(t)
	cfg := testConfig(t)
	ctx := context.Background()

	d := createDocument(t, cfg)
	defer func() { _ = d.Close() }()

	_, err := d.CreateAccount(ctx, balanceCreate("assets", "", "asset", "0"))
	require.NoError(err)
	_, err = d.CreateAccount(ctx, balanceCreate("bank", "assets", "asset", "1000"))
	require.NoError(err)
	_, err = d.CreateAccount(ctx, dto.AccountCreate{Name: "salary", Type: "income"})
	require.NoError(err)

	// Moving a balance account under a flow account is never legal.
	_, err = d.ReparentAccount(ctx, "assets/bank", "salary")
	require.ErrorIs(err, account.ErrIncompatibleTypes)

	// Renaming a parent carries the whole subtree along.
	_, err = d.RenameAccount(ctx, "assets", "my assets")
	require.NoError(err)

	acct, err := d.FindAccount(ctx, "my assets/bank")
	require.NoError(err)
	require.NotNil(acct)

	acct, err = d.FindAccount(ctx, "assets/bank")
	require.NoError(err)
	require.Nil(acct)

	roots, err := d.Children(ctx, "")
	require.NoError(err)
	require.Len(roots, 2)
	assert.Equal(t, "my assets", roots[0].FullPath)
	assert.Equal(t, "salary", roots[1].FullPath)

	descendants, err := d.Descendants(ctx, "my assets")
	require.NoError(err)
	require.Len(descendants, 1)
	assert.Equal(t, "my assets/bank", descendants[0].FullPath)

	// Retype within the balance group.
	date := opened
	amount := decimal.RequireFromString("1000")
	acct, err = d.SetAccountType(ctx, "my assets/bank", dto.AccountSetType{
		Type: "liability", OpeningDate: &date, OpeningBalance: &amount,
	})
	require.NoError(err)
	assert.Equal(t, account.TypeLiability, acct.Type)

	// Partial update.
	description := "joint account"
	acct, err = d.UpdateAccount(ctx, "my assets/bank",
		dto.AccountUpdate{Description: &description})
	require.NoError(err)
	assert.Equal(t, description, acct.Description)

	// Destroy is guarded, then succeeds leaf-first.
	err = d.DestroyAccount(ctx, "my assets")
	require.ErrorIs(err, account.ErrHasChildren)
	require.NoError(d.DestroyAccount(ctx, "my assets/bank"))
	require.NoError(d.DestroyAccount(ctx, "my assets"))
}

func TestDocument_CreateAccountValidatesInput(t *testing.T) {
	require := require.New(t)
	cfg := testConfig(t)
	ctx := context.Background()

	d := createDocument(t, cfg)
	defer func() { _ = d.Close() }()

	// Unknown types die in validation, before any business rule runs.
	_, err := d.CreateAccount(ctx, dto.AccountCreate{Name: "stuff", Type: "stock"})
	require.Error(err)

	// Opening date and balance only travel as a pair.
	date := opened
	_, err = d.CreateAccount(ctx, dto.AccountCreate{
		Name: "assets", Type: "asset", OpeningDate: &date,
	})
	require.Error(err)
}
