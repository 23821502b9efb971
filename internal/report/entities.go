package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/asset-tracker/internal/currencyutils"
	"fjacquet/asset-tracker/internal/models"
)

// Records renders a record listing, in the order given.
func (r *Renderer) Records(w io.Writer, ds *models.Dataset, records []models.Record) error {
	if r.format == FormatJSON {
		return writeJSON(w, records)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tACCOUNT\tAMOUNT\tNOTE\tID")
	for _, rec := range records {
		amount := rec.Amount.String()
		if a, ok := ds.Account(rec.AccountID); ok {
			b := a.Balance(rec)
			amount = currencyutils.FormatAmount(b.Amount, b.Currency)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", rec.Date,
			ds.Label(models.GroupKey{Kind: models.GroupAccount, ID: rec.AccountID}),
			amount, rec.Note, rec.ID)
	}
	return tw.Flush()
}

// Accounts renders the account list with owner and category labels.
func (r *Renderer) Accounts(w io.Writer, ds *models.Dataset) error {
	if r.format == FormatJSON {
		return writeJSON(w, ds.Accounts)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCURRENCY\tCATEGORY\tOWNER\tRECORDS\tID")
	for _, a := range ds.Accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", a.Name, a.Currency,
			ds.Label(models.GroupKey{Kind: models.GroupCategory, ID: a.CategoryID}),
			ds.Label(models.GroupKey{Kind: models.GroupOwner, ID: a.OwnerID}),
			ds.RecordsForAccount(a.ID), a.ID)
	}
	return tw.Flush()
}

// Categories renders the category list.
func (r *Renderer) Categories(w io.Writer, ds *models.Dataset) error {
	if r.format == FormatJSON {
		return writeJSON(w, ds.Categories)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tACCOUNTS\tID")
	for _, c := range ds.Categories {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.Name, c.Type, ds.AccountsForCategory(c.ID), c.ID)
	}
	return tw.Flush()
}

// Owners renders the owner list.
func (r *Renderer) Owners(w io.Writer, ds *models.Dataset) error {
	if r.format == FormatJSON {
		return writeJSON(w, ds.Owners)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tACCOUNTS\tID")
	for _, o := range ds.Owners {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", o.Name, ds.AccountsForOwner(o.ID), o.ID)
	}
	return tw.Flush()
}
