package category_test

import (
	"testing"

	"fjacquet/asset-tracker/cmd/category"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "category", category.Cmd.Use)
	assert.NotEmpty(t, category.Cmd.Short)
	assert.NotEmpty(t, category.Cmd.Long)
}

func TestCommand_SubCommands(t *testing.T) {
	for _, name := range []string{"add", "delete", "list"} {
		sub, _, err := category.Cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
		assert.NotNil(t, sub.RunE)
	}

	add, _, err := category.Cmd.Find([]string{"add"})
	require.NoError(t, err)
	nameFlag := add.Flags().Lookup("name")
	require.NotNil(t, nameFlag)
	assert.Equal(t, "n", nameFlag.Shorthand)
}
