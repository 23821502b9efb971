package valuation

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/asset-tracker/internal/apperrors"
	"fjacquet/asset-tracker/internal/currencyutils"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// GroupBy selects the dimension of an aggregate breakdown.
type GroupBy string

const (
	GroupByCategory GroupBy = "category"
	GroupByAccount  GroupBy = "account"
	GroupByOwner    GroupBy = "owner"
)

// ParseGroupBy parses a breakdown dimension, ignoring case.
func ParseGroupBy(s string) (GroupBy, error) {
	switch g := GroupBy(strings.ToLower(strings.TrimSpace(s))); g {
	case GroupByCategory, GroupByAccount, GroupByOwner:
		return g, nil
	default:
		return "", fmt.Errorf("unknown group-by %q: expected category, account or owner", s)
	}
}

func (g GroupBy) kind() models.GroupKind {
	switch g {
	case GroupByAccount:
		return models.GroupAccount
	case GroupByOwner:
		return models.GroupOwner
	default:
		return models.GroupCategory
	}
}

// NoiseThreshold is the smallest bucket magnitude kept in a breakdown.
var NoiseThreshold = decimal.RequireFromString("0.01")

// Bucket is one slice of a breakdown. SignedValue is negative for liabilities
// and suits signed charts; Magnitude is always non-negative and suits
// distribution charts.
type Bucket struct {
	Key         models.GroupKey     `json:"key"`
	Type        models.CategoryType `json:"type"`
	SignedValue decimal.Decimal     `json:"signedValue"`
	Magnitude   decimal.Decimal     `json:"magnitude"`
}

// Aggregate is the valuation of one snapshot in the reporting currency.
type Aggregate struct {
	Currency         models.Currency                       `json:"currency"`
	TotalAssets      decimal.Decimal                       `json:"totalAssets"`
	TotalLiabilities decimal.Decimal                       `json:"totalLiabilities"`
	NetWorth         decimal.Decimal                       `json:"netWorth"`
	Accounts         int                                   `json:"accounts"`
	Breakdown        []Bucket                              `json:"breakdown"`
	Warnings         []*apperrors.DanglingReferenceWarning `json:"-"`
}

// Aggregator values snapshots of a dataset in a single reporting currency.
// Lookups are built once, so one Aggregator serves every month of a series.
type Aggregator struct {
	accounts   map[string]models.Account
	categories map[string]models.Category
	owners     map[string]models.Owner
	rates      currencyutils.RateTable
	reporting  models.Currency
	logger     logging.Logger
	warned     map[string]bool
}

// NewAggregator indexes the dataset and checks that the rate table covers
// the reporting currency and every account currency. A gap in the table is a
// ConfigurationError.
func NewAggregator(ds *models.Dataset, rates currencyutils.RateTable, reporting models.Currency, logger logging.Logger) (*Aggregator, error) {
	if ds == nil {
		ds = models.NewDataset()
	}

	a := &Aggregator{
		accounts:   make(map[string]models.Account, len(ds.Accounts)),
		categories: make(map[string]models.Category, len(ds.Categories)),
		owners:     make(map[string]models.Owner, len(ds.Owners)),
		rates:      rates,
		reporting:  reporting,
		logger:     logger,
		warned:     make(map[string]bool),
	}

	required := []models.Currency{reporting}
	for _, acc := range ds.Accounts {
		a.accounts[acc.ID] = acc
		required = append(required, acc.Currency)
	}
	for _, c := range ds.Categories {
		a.categories[c.ID] = c
	}
	for _, o := range ds.Owners {
		a.owners[o.ID] = o
	}

	if err := rates.Validate(required...); err != nil {
		return nil, err
	}
	return a, nil
}

// Aggregate converts every observation of the snapshot into the reporting
// currency, splits it into assets and liabilities and groups it. Buckets are
// ordered by magnitude descending then key; buckets below NoiseThreshold are
// dropped. Dangling references never abort the computation.
func (a *Aggregator) Aggregate(s Snapshot, groupBy GroupBy) Aggregate {
	out := Aggregate{
		Currency:         a.reporting,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		NetWorth:         decimal.Zero,
		Breakdown:        []Bucket{},
	}

	buckets := make(map[models.GroupKey]*Bucket)
	kind := groupBy.kind()

	for _, accountID := range s.AccountIDs() {
		rec, _ := s.Get(accountID)
		value, liability, key := a.resolve(rec, kind, &out)

		signed := value
		if liability {
			out.TotalLiabilities = out.TotalLiabilities.Add(value)
			signed = value.Neg()
		} else {
			out.TotalAssets = out.TotalAssets.Add(value)
		}
		out.Accounts++

		b, ok := buckets[key]
		if !ok {
			b = &Bucket{Key: key, Type: models.Asset, SignedValue: decimal.Zero}
			if liability {
				b.Type = models.Liability
			}
			buckets[key] = b
		}
		b.SignedValue = b.SignedValue.Add(signed)
	}

	out.NetWorth = out.TotalAssets.Sub(out.TotalLiabilities)

	for _, b := range buckets {
		b.Magnitude = b.SignedValue.Abs()
		// owner buckets mix both sides; their type follows the net sign
		if kind == models.GroupOwner {
			b.Type = models.Asset
			if b.SignedValue.IsNegative() {
				b.Type = models.Liability
			}
		}
		if b.Magnitude.LessThan(NoiseThreshold) {
			continue
		}
		out.Breakdown = append(out.Breakdown, *b)
	}
	sort.Slice(out.Breakdown, func(i, j int) bool {
		if c := out.Breakdown[i].Magnitude.Cmp(out.Breakdown[j].Magnitude); c != 0 {
			return c > 0
		}
		return out.Breakdown[i].Key.String() < out.Breakdown[j].Key.String()
	})

	return out
}

// resolve returns the observation's value in the reporting currency, whether
// it is a liability, and its group key, recording dangling references on out.
func (a *Aggregator) resolve(rec models.Record, kind models.GroupKind, out *Aggregate) (decimal.Decimal, bool, models.GroupKey) {
	acc, ok := a.accounts[rec.AccountID]
	if !ok {
		a.dangling(out, "record", rec.ID, "account", rec.AccountID)
		key := models.GroupKey{Kind: kind}
		if kind == models.GroupAccount {
			key.ID = rec.AccountID
		}
		return rec.Amount, false, key
	}

	value := currencyutils.MustConvert(rec.Amount, acc.Currency, a.reporting, a.rates)

	cat, catOK := a.categories[acc.CategoryID]
	if !catOK {
		a.dangling(out, "account", acc.ID, "category", acc.CategoryID)
	}

	// every missing category or owner shares the one empty-id Unknown bucket
	key := models.GroupKey{Kind: kind}
	switch kind {
	case models.GroupAccount:
		key.ID = acc.ID
	case models.GroupOwner:
		if _, ok := a.owners[acc.OwnerID]; ok {
			key.ID = acc.OwnerID
		} else {
			a.dangling(out, "account", acc.ID, "owner", acc.OwnerID)
		}
	default:
		if catOK {
			key.ID = acc.CategoryID
		}
	}

	return value, catOK && cat.IsLiability(), key
}

func (a *Aggregator) dangling(out *Aggregate, entity, entityID, reference, missingID string) {
	w := &apperrors.DanglingReferenceWarning{
		Entity:    entity,
		EntityID:  entityID,
		Reference: reference,
		MissingID: missingID,
	}
	out.Warnings = append(out.Warnings, w)

	id := w.Error()
	if a.warned[id] || a.logger == nil {
		return
	}
	a.warned[id] = true
	a.logger.Warn("Dangling reference, valuing as Unknown",
		logging.Field{Key: logging.FieldEntity, Value: entity},
		logging.Field{Key: logging.FieldEntityID, Value: entityID},
		logging.Field{Key: logging.FieldReference, Value: reference},
		logging.Field{Key: logging.FieldMissingID, Value: missingID})
}
