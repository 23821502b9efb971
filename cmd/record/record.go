// Package record handles the balance record commands
package record

import (
	"fmt"
	"strings"

	"fjacquet/asset-tracker/cmd/root"
	"fjacquet/asset-tracker/internal/apperrors"
	"fjacquet/asset-tracker/internal/currencyutils"
	"fjacquet/asset-tracker/internal/ledger"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"

	"github.com/spf13/cobra"
)

var (
	// Account is an account id or name
	Account string
	// Amount is the balance, e.g. 1234.50 or 1'234.50
	Amount string
	// Date is the observation date, YYYY-MM-DD
	Date string
	// Note is a free text note
	Note string
	// KeepTimestamp preserves the creation timestamp on edit
	KeepTimestamp bool

	// Filters for list
	FilterAccount  string
	FilterCategory string
	FilterOwner    string
)

// Cmd represents the record command
var Cmd = &cobra.Command{
	Use:   "record",
	Short: "Add, edit, delete and list balance records",
	Long: `A record states the absolute balance of one account on one date, in the
account currency. A later record for the same account replaces the earlier
balance from its date on.`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record the balance of an account",
	Args:  cobra.NoArgs,
	RunE:  addFunc,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an existing record",
	Args:  cobra.ExactArgs(1),
	RunE:  editFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List records, newest first",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

func init() {
	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringVarP(&Account, "account", "a", "", "Account id or name")
		c.Flags().StringVar(&Amount, "amount", "", "Balance in the account currency")
		c.Flags().StringVarP(&Date, "date", "t", "", "Date of the balance, YYYY-MM-DD (default today)")
		c.Flags().StringVarP(&Note, "note", "n", "", "Note")
	}
	addCmd.MarkFlagRequired("account")
	addCmd.MarkFlagRequired("amount")
	editCmd.Flags().BoolVar(&KeepTimestamp, "keep-timestamp", false, "Keep the original creation timestamp")

	listCmd.Flags().StringVarP(&FilterAccount, "account", "a", "", "Only this account (id or name)")
	listCmd.Flags().StringVar(&FilterCategory, "category", "", "Only accounts of this category (id or name)")
	listCmd.Flags().StringVar(&FilterOwner, "owner", "", "Only accounts of this owner (id or name)")

	Cmd.AddCommand(addCmd, editCmd, deleteCmd, listCmd)
}

func addFunc(cmd *cobra.Command, args []string) error {
	amount, err := currencyutils.ParseAmount(Amount)
	if err != nil {
		return err
	}
	date := models.DateOf(root.GetContainer().Now())
	if Date != "" {
		if date, err = models.ParseDate(Date); err != nil {
			return err
		}
	}

	var added models.Record
	_, err = root.Mutate(cmd.Context(), func(l *ledger.Ledger) error {
		acc, err := l.ResolveAccount(Account)
		if err != nil {
			return err
		}
		added, err = l.AddRecord(models.Record{Date: date, AccountID: acc.ID, Amount: amount, Note: Note})
		return err
	})
	if err != nil {
		return err
	}
	root.Log.Info("Record added",
		logging.Field{Key: logging.FieldEntityID, Value: added.ID},
		logging.Field{Key: logging.FieldAccountID, Value: added.AccountID})
	fmt.Fprintln(root.Out(cmd), added.ID)
	return nil
}

func editFunc(cmd *cobra.Command, args []string) error {
	id := args[0]
	_, err := root.Mutate(cmd.Context(), func(l *ledger.Ledger) error {
		rec, ok := l.Dataset().Record(id)
		if !ok {
			return &apperrors.NotFoundError{Entity: "record", ID: id}
		}
		flags := cmd.Flags()
		if flags.Changed("account") {
			acc, err := l.ResolveAccount(Account)
			if err != nil {
				return err
			}
			rec.AccountID = acc.ID
		}
		if flags.Changed("amount") {
			amount, err := currencyutils.ParseAmount(Amount)
			if err != nil {
				return err
			}
			rec.Amount = amount
		}
		if flags.Changed("date") {
			d, err := models.ParseDate(Date)
			if err != nil {
				return err
			}
			rec.Date = d
		}
		if flags.Changed("note") {
			rec.Note = Note
		}
		_, err := l.UpdateRecord(rec, KeepTimestamp)
		return err
	})
	if err != nil {
		return err
	}
	root.Log.Info("Record updated", logging.Field{Key: logging.FieldEntityID, Value: id})
	return nil
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	_, err := root.Mutate(cmd.Context(), func(l *ledger.Ledger) error {
		return l.DeleteRecord(args[0])
	})
	if err != nil {
		return err
	}
	root.Log.Info("Record deleted", logging.Field{Key: logging.FieldEntityID, Value: args[0]})
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
	l := root.GetContainer().NewLedger(ds)

	var filter ledger.RecordFilter
	if s := strings.TrimSpace(FilterAccount); s != "" {
		acc, err := l.ResolveAccount(s)
		if err != nil {
			return err
		}
		filter.AccountID = acc.ID
	}
	if s := strings.TrimSpace(FilterCategory); s != "" {
		cat, err := l.ResolveCategory(s)
		if err != nil {
			return err
		}
		filter.CategoryID = cat.ID
	}
	if s := strings.TrimSpace(FilterOwner); s != "" {
		owner, err := l.ResolveOwner(s)
		if err != nil {
			return err
		}
		filter.OwnerID = owner.ID
	}
	return renderer.Records(root.Out(cmd), ds, l.Records(filter))
}
