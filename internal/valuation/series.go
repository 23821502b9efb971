package valuation

import (
	"strconv"

	"fjacquet/asset-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// MonthAggregate is the aggregate of the snapshot as of the end of Month.
type MonthAggregate struct {
	Month models.Month `json:"month"`
	Aggregate
}

// Series is the chronological sequence of monthly aggregates, one per month
// in which at least one observation exists.
type Series struct {
	Currency       models.Currency  `json:"currency"`
	GroupBy        GroupBy          `json:"groupBy"`
	Months         []MonthAggregate `json:"months"`
	AvailableYears []string         `json:"availableYears"`
}

// TrendPoint is the net worth chart datum for one month.
type TrendPoint struct {
	Month       models.Month    `json:"month"`
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	NetWorth    decimal.Decimal `json:"netWorth"`
}

// Len returns the number of months in the series.
func (s *Series) Len() int { return len(s.Months) }

// Latest returns the most recent month of the series.
func (s *Series) Latest() (MonthAggregate, bool) {
	if len(s.Months) == 0 {
		return MonthAggregate{}, false
	}
	return s.Months[len(s.Months)-1], true
}

// At returns the aggregate for month m, if m is part of the series.
func (s *Series) At(m models.Month) (MonthAggregate, bool) {
	for _, ma := range s.Months {
		if ma.Month == m {
			return ma, true
		}
	}
	return MonthAggregate{}, false
}

// Trend projects the series onto assets, liabilities and net worth.
func (s *Series) Trend() []TrendPoint {
	out := make([]TrendPoint, 0, len(s.Months))
	for _, ma := range s.Months {
		out = append(out, TrendPoint{
			Month:       ma.Month,
			Assets:      ma.TotalAssets,
			Liabilities: ma.TotalLiabilities,
			NetWorth:    ma.NetWorth,
		})
	}
	return out
}

func yearsOf(months []MonthAggregate) []string {
	years := []string{}
	for _, ma := range months {
		y := strconv.Itoa(ma.Month.Year())
		if len(years) == 0 || years[len(years)-1] != y {
			years = append(years, y)
		}
	}
	return years
}
