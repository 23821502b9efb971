// Package export handles the export command
package export

import (
	"path/filepath"

	"fjacquet/asset-tracker/cmd/root"
	"fjacquet/asset-tracker/internal/exporter"
	"fjacquet/asset-tracker/internal/validation"

	"github.com/spf13/cobra"
)

var (
	// Output is the file written; default is a dated name in the current directory
	Output string
	// Format is csv or json
	Format string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history as CSV or a full JSON backup",
	Long: `Export every record as a CSV history (Date, Account Name, Owner, Category,
Amount, Currency, Note, ID) or the complete dataset as a JSON backup that the
import command restores.`,
	Args: cobra.NoArgs,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Output, "output", "o", "", "Output file")
	Cmd.Flags().StringVar(&Format, "as", exporter.FormatCSV, "Export format: csv or json")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(Format, exporter.Formats...); err != nil {
		return err
	}
	ds, err := root.LoadDataset(cmd.Context())
	if err != nil {
		return err
	}

	c := root.GetContainer()
	if Output == "-" {
		return c.GetExporter().Write(root.Out(cmd), ds, Format)
	}
	path := Output
	if path == "" {
		path = filepath.Join(".", exporter.DefaultFileName(Format, c.Now()))
	}
	return c.GetExporter().WriteFile(path, ds, Format)
}
