package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/stats"
)

// execute runs the root command with args. Commands share package level
// flag variables, so tests in this package do not run in parallel.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	fSymbol, fSetup, fSession, fTimeframe = "", "", "", ""
	fFrom, fTo, fRange = "", "", ""
	statsJSON, reviewOrg = false, false
	reviewPeriodType, reviewPeriodKey = "", ""
	cfgFile, driver, logLevel = "", "", "error"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func seedJournal(t *testing.T) string {
	t.Helper()

	db := filepath.Join(t.TempDir(), "journal.db")
	out, err := execute(t, "journal", "add", "--db", db, "--log-level", "error",
		"--date", "2024-03-04", "--symbol", "EURUSD", "--setup", "OB", "--session", "London",
		"--entry", "1.0850", "--sl", "1.0830", "--tp", "1.0890", "--capital", "10000")
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ Logged trade #1: 2024-03-04 Long EURUSD")

	out, err = execute(t, "journal", "close", "1", "--exit", "1.0890", "--db", db)
	require.NoError(t, err, out)
	assert.Contains(t, out, "profit 200.00 (2.00%)")
	return db
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tradejournal version "+version+"\n", out)
}

func TestStatsOverviewJSON(t *testing.T) {
	db := seedJournal(t)

	out, err := execute(t, "stats", "overview", "--json", "--db", db)
	require.NoError(t, err, out)

	var o stats.Overview
	require.NoError(t, json.Unmarshal([]byte(out), &o))
	assert.Equal(t, 1, o.TotalTrades)
	assert.Equal(t, 2.0, o.NetR)
	assert.Nil(t, o.ProfitFactor)
}

func TestStatsText(t *testing.T) {
	db := seedJournal(t)

	out, err := execute(t, "stats", "overview", "--db", db, "--symbol", "EURUSD")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Overview (EURUSD)")
	assert.Contains(t, out, "n/a (no losses)")

	out, err = execute(t, "stats", "by", "setup", "--db", db)
	require.NoError(t, err, out)
	assert.Contains(t, out, "OB")

	out, err = execute(t, "stats", "monthly", "--db", db)
	require.NoError(t, err, out)
	assert.Contains(t, out, "2024-03")

	out, err = execute(t, "stats", "equity", "--db", db)
	require.NoError(t, err, out)
	assert.Contains(t, out, "2024-03-04")

	_, err = execute(t, "stats", "by", "colour", "--db", db)
	assert.ErrorContains(t, err, "unknown group")

	_, err = execute(t, "stats", "overview", "--db", db, "--from", "4 March")
	assert.ErrorContains(t, err, "YYYY-MM-DD")
}

func TestStatsReview(t *testing.T) {
	db := seedJournal(t)

	out, err := execute(t, "stats", "review", "--json", "--db", db, "--from", "2024-03-04", "--to", "2024-03-10")
	require.NoError(t, err, out)

	var rv stats.PeriodReview
	require.NoError(t, json.Unmarshal([]byte(out), &rv))
	assert.Equal(t, 1, rv.Current.Overview.TotalTrades)
	require.NotNil(t, rv.Previous)
	assert.Equal(t, 0, rv.Previous.Overview.TotalTrades)
	assert.Equal(t, "2024-02-26", rv.Range.Previous().From)

	out, err = execute(t, "journal", "note", "week", "2024-03-04", "--db", db,
		"--from", "2024-03-04", "--to", "2024-03-10", "--good", "Waited for the sweep.")
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ Saved week review 2024-03-04")

	out, err = execute(t, "stats", "review", "--org", "--db", db,
		"--from", "2024-03-04", "--to", "2024-03-10", "--period", "week", "--key", "2024-03-04")
	require.NoError(t, err, out)
	assert.Contains(t, out, "* REVIEW: 2024-03-04 .. 2024-03-10")
	assert.Contains(t, out, "Waited for the sweep.")
}

func TestJournalTradeAndDay(t *testing.T) {
	db := seedJournal(t)

	out, err := execute(t, "journal", "trade", "1", "--db", db)
	require.NoError(t, err, out)
	assert.Contains(t, out, "** Trade: EURUSD #1")
	assert.Contains(t, out, ":PROFIT: 200.00")

	out, err = execute(t, "journal", "day", "2024-03-04", "--db", db)
	require.NoError(t, err, out)
	assert.Contains(t, out, "EURUSD")

	_, err = execute(t, "journal", "trade", "99", "--db", db)
	assert.Error(t, err)

	_, err = execute(t, "journal", "trade", "abc", "--db", db)
	assert.ErrorContains(t, err, "invalid trade id")
}

func TestJournalExportImport(t *testing.T) {
	db := seedJournal(t)
	csvPath := filepath.Join(t.TempDir(), "trades.csv")

	out, err := execute(t, "journal", "export", csvPath, "--db", db)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ Exported 1 trades")

	other := filepath.Join(t.TempDir(), "other.db")
	out, err = execute(t, "journal", "import", csvPath, "--db", other)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ Imported 1 of 1 trades")

	out, err = execute(t, "stats", "overview", "--json", "--db", other)
	require.NoError(t, err, out)
	var o stats.Overview
	require.NoError(t, json.Unmarshal([]byte(out), &o))
	assert.Equal(t, 1, o.TotalTrades)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tj.yaml")

	out, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ Created default configuration")

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	out, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Risk per trade: 1.00%")
}

func TestSize(t *testing.T) {
	out, err := execute(t, "size", "--symbol", "eur_usd", "--capital", "10000",
		"--entry", "1.0850", "--sl", "1.0830", "--tp", "1.0890")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Symbol:     EUR/USD")
	assert.Contains(t, out, "Lots:       0.50")
	assert.Contains(t, out, "R:R:        2.00")

	_, err = execute(t, "size", "--entry", "1.0850", "--sl", "1.0850")
	assert.Error(t, err)
}
