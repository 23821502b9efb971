package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/asset-tracker/cmd/root"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args against the data file and returns stdout.
// Flag values live in package variables, so every flag a test relies on is
// passed explicitly.
func run(t *testing.T, data string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetErr(&out)
	root.Cmd.SetArgs(append([]string{"--data", data, "--log-level", "error", "--format", "text", "--currency", "USD", "--group-by", "category"}, args...))
	err := root.Cmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	chdir(t, dir)
	return filepath.Join(dir, "data.json")
}

func TestCLI_ManualHousehold(t *testing.T) {
	data := isolate(t)

	_, err := run(t, data, "owner", "add", "--name", "John")
	require.NoError(t, err)
	_, err = run(t, data, "account", "add", "--name", "Chase Checking", "--owner", "John", "--category", models.CategoryCash, "--account-currency", "USD")
	require.NoError(t, err)
	_, err = run(t, data, "account", "add", "--name", "Car Loan", "--owner", "john", "--category", models.CategoryLiability, "--account-currency", "USD")
	require.NoError(t, err)

	_, err = run(t, data, "record", "add", "--account", "Chase Checking", "--amount", "8,000.00", "--date", "2024-01-15", "--note", "")
	require.NoError(t, err)
	_, err = run(t, data, "record", "add", "--account", "Car Loan", "--amount", "18000", "--date", "2024-01-15", "--note", "")
	require.NoError(t, err)
	_, err = run(t, data, "record", "add", "--account", "Chase Checking", "--amount", "8400", "--date", "2024-03-15", "--note", "raise")
	require.NoError(t, err)

	out, err := run(t, data, "summary", "--month", "")
	require.NoError(t, err)
	assert.Contains(t, out, "-$9,600.00")
	assert.Contains(t, out, models.CategoryLiability)

	out, err = run(t, data, "summary", "--month", "2024-02")
	require.NoError(t, err)
	assert.Contains(t, out, "-$10,000.00")

	out, err = run(t, data, "--format", "json", "history", "--range", "all", "--fill-gaps=true")
	require.NoError(t, err)
	var hv report.HistoryView
	require.NoError(t, json.Unmarshal([]byte(out), &hv))
	require.Len(t, hv.Months, 3)
	assert.Equal(t, "2024-02", hv.Months[1].Month.String())

	out, err = run(t, data, "record", "list", "--account", "", "--category", "", "--owner", "")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "2024-03-15")

	_, err = run(t, data, "account", "delete", "Car Loan")
	assert.Error(t, err, "account with records cannot be deleted")

	_, err = run(t, data, "record", "add", "--account", "Chase Checking", "--amount", "-5", "--date", "2024-04-01", "--note", "")
	assert.Error(t, err)
}

func TestCLI_DemoExportImport(t *testing.T) {
	data := isolate(t)

	out, err := run(t, data, "demo", "--seed", "7", "--force=false")
	require.NoError(t, err)
	assert.Contains(t, out, "84 records for 7 accounts")

	_, err = run(t, data, "demo", "--seed", "7", "--force=false")
	assert.Error(t, err, "demo refuses to overwrite data")

	backup := filepath.Join(filepath.Dir(data), "backup.json")
	_, err = run(t, data, "export", "--as", "json", "--output", backup)
	require.NoError(t, err)

	csvOut, err := run(t, data, "export", "--as", "csv", "--output", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(csvOut, "Date,Account Name,Owner,Category,Amount,Currency,Note,ID"))

	restored := filepath.Join(filepath.Dir(data), "restored.json")
	out, err = run(t, restored, "import", backup, "--force=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 84 records and 7 accounts")

	raw, err := os.ReadFile(restored)
	require.NoError(t, err)
	var doc models.Backup
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc.Records, 84)
	assert.Len(t, doc.Owners, 3)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
