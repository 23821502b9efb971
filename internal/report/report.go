// Package report renders valuation results for people (aligned text tables)
// and for programs (JSON). Group keys are turned into display labels here,
// at the last moment.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/asset-tracker/internal/currencyutils"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/valuation"

	"github.com/shopspring/decimal"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON}

// BucketView is a breakdown bucket with its label resolved. Share is the
// bucket's percentage of its own side: asset buckets split the asset
// magnitudes, liability buckets the liability magnitudes, so an allocation
// does not move when unrelated debt changes.
type BucketView struct {
	Label       string              `json:"label"`
	Kind        models.GroupKind    `json:"kind"`
	ID          string              `json:"id"`
	Type        models.CategoryType `json:"type"`
	SignedValue decimal.Decimal     `json:"signedValue"`
	Magnitude   decimal.Decimal     `json:"magnitude"`
	Share       decimal.Decimal     `json:"share"`
}

// SummaryView is an aggregate ready for display.
type SummaryView struct {
	Month            string          `json:"month,omitempty"`
	Currency         models.Currency `json:"currency"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetWorth         decimal.Decimal `json:"netWorth"`
	Accounts         int             `json:"accounts"`
	Breakdown        []BucketView    `json:"breakdown"`
	Warnings         []string        `json:"warnings,omitempty"`
}

// NewSummaryView labels agg against ds. month may be empty.
func NewSummaryView(ds *models.Dataset, agg valuation.Aggregate, month string) SummaryView {
	sides := make(map[models.CategoryType]decimal.Decimal, 2)
	for _, b := range agg.Breakdown {
		sides[b.Type] = sides[b.Type].Add(b.Magnitude)
	}

	v := SummaryView{
		Month:            month,
		Currency:         agg.Currency,
		TotalAssets:      agg.TotalAssets,
		TotalLiabilities: agg.TotalLiabilities,
		NetWorth:         agg.NetWorth,
		Accounts:         agg.Accounts,
		Breakdown:        make([]BucketView, 0, len(agg.Breakdown)),
	}
	for _, b := range agg.Breakdown {
		share := decimal.Zero
		if total := sides[b.Type]; total.IsPositive() {
			share = b.Magnitude.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
		}
		v.Breakdown = append(v.Breakdown, BucketView{
			Label:       ds.Label(b.Key),
			Kind:        b.Key.Kind,
			ID:          b.Key.ID,
			Type:        b.Type,
			SignedValue: b.SignedValue,
			Magnitude:   b.Magnitude,
			Share:       share,
		})
	}
	for _, w := range agg.Warnings {
		v.Warnings = append(v.Warnings, w.Error())
	}
	return v
}

// Renderer writes reports in one format.
type Renderer struct {
	format string
}

// New returns a Renderer for format, text or json.
func New(format string) (*Renderer, error) {
	switch format {
	case FormatText, FormatJSON:
		return &Renderer{format: format}, nil
	case "":
		return &Renderer{format: FormatText}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Summary renders an aggregate: the totals, then the breakdown sorted as
// the aggregator sorted it.
func (r *Renderer) Summary(w io.Writer, ds *models.Dataset, agg valuation.Aggregate, month string) error {
	v := NewSummaryView(ds, agg, month)
	if r.format == FormatJSON {
		return writeJSON(w, v)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if v.Month != "" {
		fmt.Fprintf(tw, "As of\t%s\n", v.Month)
	}
	fmt.Fprintf(tw, "Net worth\t%s\n", currencyutils.FormatSigned(v.NetWorth, v.Currency))
	fmt.Fprintf(tw, "Total assets\t%s\n", currencyutils.FormatAmount(v.TotalAssets, v.Currency))
	fmt.Fprintf(tw, "Total liabilities\t%s\n", currencyutils.FormatAmount(v.TotalLiabilities, v.Currency))
	fmt.Fprintf(tw, "Accounts\t%d\n", v.Accounts)
	if len(v.Breakdown) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "GROUP\tTYPE\tVALUE\tSHARE")
		for _, b := range v.Breakdown {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s%%\n", b.Label, b.Type,
				currencyutils.FormatSigned(b.SignedValue, v.Currency), b.Share.StringFixed(1))
		}
	}
	return tw.Flush()
}

// HistoryRow is one month of the net worth trend.
type HistoryRow struct {
	Month       models.Month    `json:"month"`
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	NetWorth    decimal.Decimal `json:"netWorth"`
	Accounts    int             `json:"accounts"`
}

// HistoryView is a series ready for display.
type HistoryView struct {
	Currency       models.Currency `json:"currency"`
	Range          string          `json:"range,omitempty"`
	AvailableYears []string        `json:"availableYears"`
	Months         []HistoryRow    `json:"months"`
}

// NewHistoryView projects s onto its trend.
func NewHistoryView(s *valuation.Series, rng string) HistoryView {
	v := HistoryView{
		Currency:       s.Currency,
		Range:          rng,
		AvailableYears: s.AvailableYears,
		Months:         make([]HistoryRow, 0, s.Len()),
	}
	for _, ma := range s.Months {
		v.Months = append(v.Months, HistoryRow{
			Month:       ma.Month,
			Assets:      ma.TotalAssets,
			Liabilities: ma.TotalLiabilities,
			NetWorth:    ma.NetWorth,
			Accounts:    ma.Accounts,
		})
	}
	return v
}

// History renders the monthly trend of a series.
func (r *Renderer) History(w io.Writer, s *valuation.Series, rng string) error {
	v := NewHistoryView(s, rng)
	if r.format == FormatJSON {
		return writeJSON(w, v)
	}
	if len(v.Months) == 0 {
		_, err := fmt.Fprintln(w, "No records yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MONTH\tASSETS\tLIABILITIES\tNET WORTH\tACCOUNTS\t")
	for _, m := range v.Months {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t\n", m.Month,
			currencyutils.FormatAmount(m.Assets, v.Currency),
			currencyutils.FormatAmount(m.Liabilities, v.Currency),
			currencyutils.FormatSigned(m.NetWorth, v.Currency),
			m.Accounts)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
