// Package valuation reconstructs per-account balances at any month from sparse
// balance observations and aggregates them into net worth figures and
// monthly series.
package valuation

import (
	"sort"

	"fjacquet/asset-tracker/internal/models"
)

// Snapshot is a read-only view of the latest observation per account as of a
// given month. An account missing from the snapshot has no data for that
// month, which is different from an observation of zero.
type Snapshot struct {
	latest map[string]models.Record
}

// Get returns the observation carried for the account.
func (s Snapshot) Get(accountID string) (models.Record, bool) {
	r, ok := s.latest[accountID]
	return r, ok
}

// Len returns the number of accounts with data.
func (s Snapshot) Len() int { return len(s.latest) }

// AccountIDs returns the ids of the accounts with data, sorted.
func (s Snapshot) AccountIDs() []string {
	ids := make([]string, 0, len(s.latest))
	for id := range s.latest {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a snapshot detached from the sweep that produced it.
func (s Snapshot) Clone() Snapshot {
	out := make(map[string]models.Record, len(s.latest))
	for k, v := range s.latest {
		out[k] = v
	}
	return Snapshot{latest: out}
}

// Reconstructor answers "what was each account worth at month M" using last
// observation carried forward. Records are sorted once on construction.
type Reconstructor struct {
	records []models.Record
	months  []models.Month
}

// NewReconstructor copies records and stable-sorts them by (date, timestamp).
// Among records with equal date and timestamp the one appearing later in the
// input wins.
func NewReconstructor(records []models.Record) *Reconstructor {
	sorted := make([]models.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := sorted[i].Date.Compare(sorted[j].Date); c != 0 {
			return c < 0
		}
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	var months []models.Month
	for _, r := range sorted {
		m := r.Date.CalendarMonth()
		if len(months) == 0 || months[len(months)-1] != m {
			months = append(months, m)
		}
	}

	return &Reconstructor{records: sorted, months: months}
}

// Months returns the distinct calendar months present in the records,
// ascending. Months without any observation are not included.
func (r *Reconstructor) Months() []models.Month {
	out := make([]models.Month, len(r.months))
	copy(out, r.months)
	return out
}

// Reconstruct returns the latest observation per account whose date falls in
// asOf or earlier.
func (r *Reconstructor) Reconstruct(asOf models.Month) Snapshot {
	var out Snapshot
	r.Sweep([]models.Month{asOf}, func(_ models.Month, s Snapshot) bool {
		out = s.Clone()
		return false
	})
	return out
}

// Sweep walks the sorted records once and calls visit after crossing each of
// the requested months, in ascending order, with the state as of that month.
// The snapshot handed to visit is only valid during the call; use Clone to
// keep it. Sweep stops early when visit returns false.
func (r *Reconstructor) Sweep(months []models.Month, visit func(models.Month, Snapshot) bool) {
	checkpoints := make([]models.Month, len(months))
	copy(checkpoints, months)
	sort.Slice(checkpoints, func(i, j int) bool { return checkpoints[i] < checkpoints[j] })

	latest := make(map[string]models.Record)
	next := 0
	for _, m := range checkpoints {
		for next < len(r.records) && r.records[next].Date.CalendarMonth() <= m {
			rec := r.records[next]
			latest[rec.AccountID] = rec
			next++
		}
		if !visit(m, Snapshot{latest: latest}) {
			return
		}
	}
}
