// Package importcmd handles the import command
package importcmd

import (
	"fmt"

	"fjacquet/asset-tracker/cmd/root"
	"fjacquet/asset-tracker/internal/logging"

	"github.com/spf13/cobra"
)

// Force replaces existing data without asking
var Force bool

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a JSON backup or a legacy record list",
	Long: `Replace the stored dataset with the content of a JSON full backup, or of an
older flat list of records whose accounts, owners and categories are given by
name. Existing data is only replaced with --force.`,
	Args: cobra.ExactArgs(1),
	RunE: importFunc,
}

func init() {
	Cmd.Flags().BoolVar(&Force, "force", false, "Replace existing data")
}

func importFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	ds, format, err := c.GetImporter().ImportFile(args[0])
	if err != nil {
		return err
	}

	current, err := root.LoadDataset(cmd.Context())
	if err != nil {
		return err
	}
	if !current.IsEmpty() && !Force {
		return fmt.Errorf("data store already holds %d records and %d accounts; use --force to replace them",
			len(current.Records), len(current.Accounts))
	}

	if err := c.GetStore().Save(cmd.Context(), ds); err != nil {
		return fmt.Errorf("error saving data: %w", err)
	}
	root.Log.Info("Import completed",
		logging.Field{Key: logging.FieldInputFile, Value: args[0]},
		logging.Field{Key: logging.FieldFormat, Value: string(format)},
		logging.Field{Key: logging.FieldCount, Value: len(ds.Records)})
	fmt.Fprintf(root.Out(cmd), "Imported %d records and %d accounts\n", len(ds.Records), len(ds.Accounts))
	return nil
}
