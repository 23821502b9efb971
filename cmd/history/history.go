// Package history handles the net worth history command
package history

import (
	"fjacquet/asset-tracker/cmd/root"
	"fjacquet/asset-tracker/internal/valuation"

	"github.com/spf13/cobra"
)

var (
	// Range selects the months shown: 12m, all or a year
	Range string
	// FillGaps emits every calendar month between the first and last record
	FillGaps bool
)

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Show net worth month by month",
	Long: `Show total assets, total liabilities and net worth at the end of each month
that has records. Balances carry forward until an account is updated again.
Use --range 12m, all or a year such as 2024.`,
	RunE: historyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Range, "range", "r", "", "Months to show: 12m, all or a year (default from config)")
	Cmd.Flags().BoolVar(&FillGaps, "fill-gaps", false, "Include months without records")
}

func historyFunc(cmd *cobra.Command, args []string) error {
	currency, err := root.ReportingCurrency()
	if err != nil {
		return err
	}
	groupBy, err := root.GroupBy()
	if err != nil {
		return err
	}
	rng := root.GetConfig().Range()
	if Range != "" {
		if rng, err = valuation.ParseRange(Range); err != nil {
			return err
		}
	}
	renderer, err := root.Renderer()
	if err != nil {
		return err
	}
	ds, err := root.LoadDataset(cmd.Context())
	if err != nil {
		return err
	}

	series, err := root.GetContainer().GetEngine().Build(ds, valuation.SeriesOptions{
		Currency: currency,
		GroupBy:  groupBy,
		FillGaps: FillGaps,
	})
	if err != nil {
		return err
	}
	return renderer.History(root.Out(cmd), series.Filter(rng), rng.String())
}
