// Package category handles the category management commands
package category

import (
	"fmt"

	"fjacquet/asset-tracker/cmd/root"
	"fjacquet/asset-tracker/internal/ledger"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"

	"github.com/spf13/cobra"
)

var (
	// Name of the category
	Name string
	// Type is ASSET or LIABILITY
	Type string
	// Color is a display color, e.g. #3b82f6
	Color string
)

// Cmd represents the category command
var Cmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
	Long: `Categories group accounts and decide their sign: accounts in a LIABILITY
category reduce net worth. The default set is created on first use.`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a category",
	Args:  cobra.NoArgs,
	RunE:  addFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete a category no account uses",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

func init() {
	addCmd.Flags().StringVarP(&Name, "name", "n", "", "Category name")
	addCmd.Flags().StringVar(&Type, "type", string(models.Asset), "ASSET or LIABILITY")
	addCmd.Flags().StringVar(&Color, "color", "", "Display color")
	addCmd.MarkFlagRequired("name")

	Cmd.AddCommand(addCmd, deleteCmd, listCmd)
}

func addFunc(cmd *cobra.Command, args []string) error {
	ct, err := models.ParseCategoryType(Type)
	if err != nil {
		return err
	}
	var added models.Category
	_, err = root.Mutate(cmd.Context(), func(l *ledger.Ledger) error {
		l.EnsureDefaultCategories()
		var addErr error
		added, addErr = l.AddCategory(models.Category{Name: Name, Type: ct, Color: Color})
		return addErr
	})
	if err != nil {
		return err
	}
	root.Log.Info("Category added", logging.Field{Key: logging.FieldEntityID, Value: added.ID})
	fmt.Fprintln(root.Out(cmd), added.ID)
	return nil
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	_, err := root.Mutate(cmd.Context(), func(l *ledger.Ledger) error {
		c, err := l.ResolveCategory(args[0])
		if err != nil {
			return err
		}
		return l.DeleteCategory(c.ID)
	})
	if err != nil {
		return err
	}
	root.Log.Info("Category deleted", logging.Field{Key: logging.FieldEntityID, Value: args[0]})
	return nil
}

func listFunc(cmd *cobra.Command, args []string) error {
	renderer, err := root.Renderer()
	if err != nil {
		return err
	}
	ds, err := root.Mutate(cmd.Context(), func(l *ledger.Ledger) error {
		l.EnsureDefaultCategories()
		return nil
	})
	if err != nil {
		return err
	}
	return renderer.Categories(root.Out(cmd), ds)
}
