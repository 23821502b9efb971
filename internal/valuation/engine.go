package valuation

import (
	"fjacquet/asset-tracker/internal/currencyutils"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"
)

// Engine builds net worth series from datasets. It holds no per-call state,
// so one Engine may serve concurrent callers as long as each passes its own
// dataset.
type Engine struct {
	rates  currencyutils.RateTable
	logger logging.Logger
}

// NewEngine creates an Engine converting with the given rate table.
func NewEngine(rates currencyutils.RateTable, logger logging.Logger) *Engine {
	return &Engine{rates: rates.Clone(), logger: logger}
}

// Rates returns a copy of the rate table used by the engine.
func (e *Engine) Rates() currencyutils.RateTable {
	return e.rates.Clone()
}

// SeriesOptions controls how a series is built.
type SeriesOptions struct {
	Currency models.Currency
	GroupBy  GroupBy
	// FillGaps emits every calendar month between the first and the last
	// observation, carrying balances through months without activity. By
	// default only months holding at least one observation are emitted.
	FillGaps bool
}

// BuildSeries computes one aggregate per month present in the dataset's
// records, in chronological order. An empty dataset yields an empty series,
// not an error.
func (e *Engine) BuildSeries(ds *models.Dataset, reporting models.Currency, groupBy GroupBy) (*Series, error) {
	return e.Build(ds, SeriesOptions{Currency: reporting, GroupBy: groupBy})
}

// Build computes a series with a single sort and a single forward sweep over
// the records.
func (e *Engine) Build(ds *models.Dataset, opts SeriesOptions) (*Series, error) {
	if ds == nil {
		ds = models.NewDataset()
	}
	agg, err := NewAggregator(ds, e.rates, opts.Currency, e.logger)
	if err != nil {
		return nil, err
	}

	recon := NewReconstructor(ds.Records)
	months := recon.Months()
	if opts.FillGaps && len(months) > 0 {
		months = monthsBetween(months[0], months[len(months)-1])
	}

	series := &Series{
		Currency: opts.Currency,
		GroupBy:  opts.GroupBy,
		Months:   make([]MonthAggregate, 0, len(months)),
	}
	recon.Sweep(months, func(m models.Month, s Snapshot) bool {
		series.Months = append(series.Months, MonthAggregate{Month: m, Aggregate: agg.Aggregate(s, opts.GroupBy)})
		return true
	})
	series.AvailableYears = yearsOf(series.Months)

	if e.logger != nil {
		e.logger.Debug("Built net worth series",
			logging.Field{Key: logging.FieldCount, Value: len(series.Months)},
			logging.Field{Key: logging.FieldCurrency, Value: string(opts.Currency)},
			logging.Field{Key: logging.FieldGroupBy, Value: string(opts.GroupBy)})
	}
	return series, nil
}

func monthsBetween(first, last models.Month) []models.Month {
	out := make([]models.Month, 0, int(last-first)+1)
	for m := first; m <= last; m = m.AddMonths(1) {
		out = append(out, m)
	}
	return out
}

// Current values the latest known observation of every account. It is the
// aggregate of the most recent month in history, or an empty aggregate when
// there are no records.
func (e *Engine) Current(ds *models.Dataset, reporting models.Currency, groupBy GroupBy) (Aggregate, error) {
	if ds == nil {
		ds = models.NewDataset()
	}
	agg, err := NewAggregator(ds, e.rates, reporting, e.logger)
	if err != nil {
		return Aggregate{}, err
	}

	recon := NewReconstructor(ds.Records)
	months := recon.Months()
	if len(months) == 0 {
		return agg.Aggregate(Snapshot{}, groupBy), nil
	}
	return agg.Aggregate(recon.Reconstruct(months[len(months)-1]), groupBy), nil
}

// AsOf values the dataset as it stood at the end of month m.
func (e *Engine) AsOf(ds *models.Dataset, reporting models.Currency, groupBy GroupBy, m models.Month) (Aggregate, error) {
	if ds == nil {
		ds = models.NewDataset()
	}
	agg, err := NewAggregator(ds, e.rates, reporting, e.logger)
	if err != nil {
		return Aggregate{}, err
	}
	return agg.Aggregate(NewReconstructor(ds.Records).Reconstruct(m), groupBy), nil
}
