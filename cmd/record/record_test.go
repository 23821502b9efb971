package record_test

import (
	"testing"

	"fjacquet/asset-tracker/cmd/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCommand_Metadata(t *testing.T) {
	assert.Equal(t, "record", record.Cmd.Use)
	assert.Contains(t, record.Cmd.Short, "balance records")
	assert.Contains(t, record.Cmd.Long, "absolute balance")
}

func TestRecordCommand_SubCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range record.Cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"add", "edit", "delete", "list"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRecordCommand_AddFlags(t *testing.T) {
	add, _, err := record.Cmd.Find([]string{"add"})
	require.NoError(t, err)

	for _, name := range []string{"account", "amount", "date", "note"} {
		assert.NotNil(t, add.Flags().Lookup(name), name)
	}
	assert.Equal(t, "a", add.Flags().Lookup("account").Shorthand)
	assert.Nil(t, add.Flags().Lookup("keep-timestamp"))

	edit, _, err := record.Cmd.Find([]string{"edit"})
	require.NoError(t, err)
	assert.NotNil(t, edit.Flags().Lookup("keep-timestamp"))
}
