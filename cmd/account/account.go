// Package account handles the account management commands
package account

import (
	"fmt"

	"fjacquet/asset-tracker/cmd/root"
	"fjacquet/asset-tracker/internal/ledger"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"

	"github.com/spf13/cobra"
)

var (
	// Name of the account
	Name string
	// Currency the account is denominated in
	Currency string
	// Category id or name
	Category string
	// Owner id or name
	Owner string
)

// Cmd represents the account command
var Cmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
	Long: `Accounts hold value in a single currency. Each belongs to one category, which
decides whether it counts as an asset or a liability, and to one owner.`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE:  addFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete an account without records",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

func init() {
	addCmd.Flags().StringVarP(&Name, "name", "n", "", "Account name")
	addCmd.Flags().StringVar(&Currency, "account-currency", string(models.USD), "Currency of the account")
	addCmd.Flags().StringVar(&Category, "category", models.CategoryOther, "Category id or name")
	addCmd.Flags().StringVar(&Owner, "owner", "", "Owner id or name")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("owner")

	Cmd.AddCommand(addCmd, deleteCmd, listCmd)
}

func addFunc(cmd *cobra.Command, args []string) error {
	currency, err := models.ParseCurrency(Currency)
	if err != nil {
		return err
	}
	var added models.Account
	_, err = root.Mutate(cmd.Context(), func(l *ledger.Ledger) error {
		l.EnsureDefaultCategories()
		cat, err := l.ResolveCategory(Category)
		if err != nil {
			return err
		}
		owner, err := l.ResolveOwner(Owner)
		if err != nil {
			return err
		}
		added, err = l.AddAccount(models.Account{Name: Name, Currency: currency, CategoryID: cat.ID, OwnerID: owner.ID})
		return err
	})
	if err != nil {
		return err
	}
	root.Log.Info("Account added", logging.Field{Key: logging.FieldEntityID, Value: added.ID})
	fmt.Fprintln(root.Out(cmd), added.ID)
	return nil
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	_, err := root.Mutate(cmd.Context(), func(l *ledger.Ledger) error {
		acc, err := l.ResolveAccount(args[0])
		if err != nil {
			return err
		}
		return l.DeleteAccount(acc.ID)
	})
	if err != nil {
		return err
	}
	root.Log.Info("Account deleted", logging.Field{Key: logging.FieldEntityID, Value: args[0]})
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
	return renderer.Accounts(root.Out(cmd), ds)
}
