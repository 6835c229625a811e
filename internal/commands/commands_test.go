package commands_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirasaad/tally/internal/commands"
)

func runTally(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func newDocumentFile(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "tally.db")
	_, err := runTally(t,
		"init", "--file", file,
		"--name", "household",
		"--description", "family bookkeeping",
		"--currency", "USD")
	require.NoError(t, err)
	return file
}

func addAccounts(t *testing.T, file string, specs ...[]string) {
	t.Helper()
	for _, spec := range specs {
		args := append([]string{"add", "--file", file}, spec...)
		out, err := runTally(t, args...)
		require.NoError(t, err, "add %v: %s", spec, out)
	}
}

func TestInit(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tally.db")
	out, err := runTally(t, "init", "--file", file, "--name", "household")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized document")
	assert.Contains(t, out, file)

	// Initialising the same file twice fails.
	_, err = runTally(t, "init", "--file", file, "--name", "again")
	require.Error(t, err)
}

func TestInit_RequiresName(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tally.db")
	_, err := runTally(t, "init", "--file", file)
	require.Error(t, err, "init without --name should fail")
}

func TestInfo(t *testing.T) {
	file := newDocumentFile(t)

	out, err := runTally(t, "info", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "household")
	assert.Contains(t, out, "family bookkeeping")
	assert.Contains(t, out, "USD")
}

func TestInfo_UninitialisedFileFails(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tally.db")
	_, err := runTally(t, "info", "--file", file)
	require.Error(t, err)
}

func TestSetNameAndCurrency(t *testing.T) {
	file := newDocumentFile(t)

	_, err := runTally(t, "set-name", "--file", file, "our money")
	require.NoError(t, err)
	_, err = runTally(t, "set-currency", "--file", file, "EUR")
	require.NoError(t, err)
	_, err = runTally(t, "set-description", "--file", file, "post-move ledger")
	require.NoError(t, err)

	out, err := runTally(t, "info", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "our money")
	assert.Contains(t, out, "EUR")
	assert.Contains(t, out, "post-move ledger")

	_, err = runTally(t, "set-currency", "--file", file, "money")
	require.Error(t, err, "unknown currency codes are rejected")
}

func TestAddAndList(t *testing.T) {
	file := newDocumentFile(t)
	addAccounts(t, file,
		[]string{"assets", "--type", "asset",
			"--opening-date", "2010-01-01", "--opening-balance", "0"},
		[]string{"assets/bank", "--type", "asset",
			"--opening-date", "2010-01-01", "--opening-balance", "1000.50"},
		[]string{"expenses", "--type", "expense"},
	)

	out, err := runTally(t, "list", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "assets")
	assert.Contains(t, out, "expenses")
	assert.NotContains(t, out, "assets/bank", "list shows one level only")

	out, err = runTally(t, "list", "--file", file, "assets")
	require.NoError(t, err)
	assert.Contains(t, out, "assets/bank")
	assert.Contains(t, out, "$1,000.50", "balances are formatted in the base currency")
}

func TestAdd_Errors(t *testing.T) {
	file := newDocumentFile(t)

	// Opening flags only travel as a pair.
	_, err := runTally(t, "add", "--file", file, "assets",
		"--type", "asset", "--opening-date", "2010-01-01")
	require.Error(t, err)

	// Missing parent.
	_, err = runTally(t, "add", "--file", file, "assets/bank",
		"--type", "asset", "--opening-date", "2010-01-01", "--opening-balance", "0")
	require.Error(t, err)

	// Unknown type.
	_, err = runTally(t, "add", "--file", file, "stuff", "--type", "stock")
	require.Error(t, err)
}

func TestTree(t *testing.T) {
	file := newDocumentFile(t)
	addAccounts(t, file,
		[]string{"assets", "--type", "asset",
			"--opening-date", "2010-01-01", "--opening-balance", "0"},
		[]string{"assets/bank", "--type", "asset",
			"--opening-date", "2010-01-01", "--opening-balance", "1000"},
		[]string{"assets/bank/shared", "--type", "asset",
			"--opening-date", "2010-01-01", "--opening-balance", "250"},
		[]string{"expenses", "--type", "expense"},
	)

	out, err := runTally(t, "tree", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "assets")
	assert.Contains(t, out, "└── ")
	assert.Contains(t, out, "shared")

	out, err = runTally(t, "tree", "--file", file, "assets/bank")
	require.NoError(t, err)
	assert.Contains(t, out, "bank")
	assert.Contains(t, out, "shared")
	assert.NotContains(t, out, "expenses")

	_, err = runTally(t, "tree", "--file", file, "nowhere")
	require.Error(t, err)
}

func TestShow(t *testing.T) {
	file := newDocumentFile(t)
	addAccounts(t, file,
		[]string{"assets", "--type", "asset", "--description", "what we own",
			"--opening-date", "2010-01-01", "--opening-balance", "99.95"},
	)

	out, err := runTally(t, "show", "--file", file, "assets")
	require.NoError(t, err)
	assert.Contains(t, out, "assets")
	assert.Contains(t, out, "what we own")
	assert.Contains(t, out, "2010-01-01")
	assert.Contains(t, out, "$99.95")

	_, err = runTally(t, "show", "--file", file, "nowhere")
	require.Error(t, err)
}

func TestRenameMoveRetype(t *testing.T) {
	file := newDocumentFile(t)
	addAccounts(t, file,
		[]string{"assets", "--type", "asset",
			"--opening-date", "2010-01-01", "--opening-balance", "0"},
		[]string{"assets/bank", "--type", "asset",
			"--opening-date", "2010-01-01", "--opening-balance", "1000"},
		[]string{"assets/vault", "--type", "asset",
			"--opening-date", "2010-01-01", "--opening-balance", "50"},
	)

	out, err := runTally(t, "rename", "--file", file, "assets", "wealth")
	require.NoError(t, err)
	assert.Contains(t, out, "wealth")

	out, err = runTally(t, "show", "--file", file, "wealth/bank")
	require.NoError(t, err, "children follow a renamed parent: %s", out)

	_, err = runTally(t, "move", "--file", file, "wealth/vault", "wealth/bank")
	require.NoError(t, err)
	_, err = runTally(t, "show", "--file", file, "wealth/bank/vault")
	require.NoError(t, err)

	// Promote back to the top level.
	out, err = runTally(t, "move", "--file", file, "wealth/bank/vault")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved wealth/bank/vault to vault")

	out, err = runTally(t, "retype", "--file", file, "wealth/bank", "liability",
		"--opening-date", "2010-01-01", "--opening-balance", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "liability")

	// Crossing type groups with children attached is refused.
	_, err = runTally(t, "retype", "--file", file, "wealth", "expense")
	require.Error(t, err)
}

func TestUpdate(t *testing.T) {
	file := newDocumentFile(t)
	addAccounts(t, file,
		[]string{"assets", "--type", "asset",
			"--opening-date", "2010-01-01", "--opening-balance", "0"},
	)

	_, err := runTally(t, "update", "--file", file, "assets",
		"--description", "everything we own", "--opening-balance", "125.75")
	require.NoError(t, err)

	out, err := runTally(t, "show", "--file", file, "assets")
	require.NoError(t, err)
	assert.Contains(t, out, "everything we own")
	assert.Contains(t, out, "$125.75")
}

func TestRemove(t *testing.T) {
	file := newDocumentFile(t)
	addAccounts(t, file,
		[]string{"assets", "--type", "asset",
			"--opening-date", "2010-01-01", "--opening-balance", "0"},
		[]string{"assets/bank", "--type", "asset",
			"--opening-date", "2010-01-01", "--opening-balance", "0"},
	)

	// Guarded while children exist.
	_, err := runTally(t, "remove", "--file", file, "assets")
	require.Error(t, err)

	_, err = runTally(t, "remove", "--file", file, "assets/bank")
	require.NoError(t, err)
	_, err = runTally(t, "remove", "--file", file, "assets")
	require.NoError(t, err)

	out, err := runTally(t, "list", "--file", file)
	require.NoError(t, err)
	assert.NotContains(t, out, "assets")
}
