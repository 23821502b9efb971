// Package summary handles the current net worth command
package summary

import (
	"fjacquet/asset-tracker/cmd/root"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/valuation"

	"github.com/spf13/cobra"
)

// Month restricts the valuation to the end of a past month, YYYY-MM
var Month string

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Show current net worth and its breakdown",
	Long: `Show total assets, total liabilities and net worth in the reporting currency,
using the latest balance of every account, with a breakdown by category,
account or owner. Use --month to value the household as of a past month.`,
	RunE: summaryFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Month, "month", "m", "", "Value as of the end of this month (YYYY-MM)")
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	currency, err := root.ReportingCurrency()
	if err != nil {
		return err
	}
	groupBy, err := root.GroupBy()
	if err != nil {
		return err
	}
	renderer, err := root.Renderer()
	if err != nil {
		return err
	}
	ds, err := root.LoadDataset(cmd.Context())
	if err != nil {
		return err
	}

	engine := root.GetContainer().GetEngine()
	var (
		agg   valuation.Aggregate
		label string
	)
	if Month != "" {
		m, err := models.ParseMonth(Month)
		if err != nil {
			return err
		}
		label = m.String()
		agg, err = engine.AsOf(ds, currency, groupBy, m)
		if err != nil {
			return err
		}
	} else {
		agg, err = engine.Current(ds, currency, groupBy)
		if err != nil {
			return err
		}
	}
	return renderer.Summary(root.Out(cmd), ds, agg, label)
}
