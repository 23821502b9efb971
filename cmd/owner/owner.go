// Package owner handles the owner management commands
package owner

import (
	"fmt"

	"fjacquet/asset-tracker/cmd/root"
	"fjacquet/asset-tracker/internal/ledger"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"

	"github.com/spf13/cobra"
)

// Name of the owner
var Name string

// Cmd represents the owner command
var Cmd = &cobra.Command{
	Use:   "owner",
	Short: "Manage owners",
	Long:  `Owners are the people, or joint designations, accounts belong to.`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an owner",
	Args:  cobra.NoArgs,
	RunE:  addFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete an owner without accounts",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List owners",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

func init() {
	addCmd.Flags().StringVarP(&Name, "name", "n", "", "Owner name")
	addCmd.MarkFlagRequired("name")

	Cmd.AddCommand(addCmd, deleteCmd, listCmd)
}

func addFunc(cmd *cobra.Command, args []string) error {
	var added models.Owner
	_, err := root.Mutate(cmd.Context(), func(l *ledger.Ledger) error {
		var err error
		added, err = l.AddOwner(models.Owner{Name: Name})
		return err
	})
	if err != nil {
		return err
	}
	root.Log.Info("Owner added", logging.Field{Key: logging.FieldEntityID, Value: added.ID})
	fmt.Fprintln(root.Out(cmd), added.ID)
	return nil
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	_, err := root.Mutate(cmd.Context(), func(l *ledger.Ledger) error {
		o, err := l.ResolveOwner(args[0])
		if err != nil {
			return err
		}
		return l.DeleteOwner(o.ID)
	})
	if err != nil {
		return err
	}
	root.Log.Info("Owner deleted", logging.Field{Key: logging.FieldEntityID, Value: args[0]})
	return nil
}

func listFunc(cmd *cobra.Command, args []string) error {
	renderer, err := root.Renderer()
	if err != nil {
		return err
	}
	ds, err := root.LoadDataset(cmd.Context())
	if err != nil {
		return err
	}
	return renderer.Owners(root.Out(cmd), ds)
}
