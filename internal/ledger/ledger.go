// Package ledger applies create, update and delete operations to a dataset
// while keeping it referentially sound: inputs are validated and entities
// still referenced by others cannot be deleted.
package ledger

import (
	"sort"
	"strings"
	"time"

	"fjacquet/asset-tracker/internal/apperrors"
	"fjacquet/asset-tracker/internal/ids"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/validation"
)

// Ledger mutates a dataset in place. It is not safe for concurrent use; the
// HTTP server serializes access to it.
type Ledger struct {
	ds  *models.Dataset
	ids ids.Generator
	now func() time.Time
}

// New returns a Ledger over ds. A nil ds starts an empty dataset; a nil now
// uses time.Now.
func New(ds *models.Dataset, gen ids.Generator, now func() time.Time) *Ledger {
	if ds == nil {
		ds = models.NewDataset()
	}
	if gen == nil {
		gen = ids.UUID()
	}
	if now == nil {
		now = time.Now
	}
	return &Ledger{ds: ds, ids: gen, now: now}
}

// Dataset returns the dataset being edited.
func (l *Ledger) Dataset() *models.Dataset { return l.ds }

// RecordFilter narrows the history listing. Empty fields match everything.
type RecordFilter struct {
	AccountID  string
	CategoryID string
	OwnerID    string
}

// Records lists records newest first: by date descending, then by creation
// timestamp descending.
func (l *Ledger) Records(f RecordFilter) []models.Record {
	out := make([]models.Record, 0, len(l.ds.Records))
	for _, r := range l.ds.Records {
		if f.AccountID != "" && r.AccountID != f.AccountID {
			continue
		}
		if f.CategoryID != "" || f.OwnerID != "" {
			acc, ok := l.ds.Account(r.AccountID)
			if !ok {
				continue
			}
			if f.CategoryID != "" && acc.CategoryID != f.CategoryID {
				continue
			}
			if f.OwnerID != "" && acc.OwnerID != f.OwnerID {
				continue
			}
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Supersedes(out[j])
	})
	return out
}

// AddRecord validates r, assigns it a new id and the current creation
// timestamp, and appends it.
func (l *Ledger) AddRecord(r models.Record) (models.Record, error) {
	r.Note = strings.TrimSpace(r.Note)
	if err := validation.Record(l.ds, r); err != nil {
		return models.Record{}, err
	}
	r.ID = l.ids.NewID()
	r.Timestamp = l.now().UnixMilli()
	l.ds.Records = append(l.ds.Records, r)
	return r, nil
}

// UpdateRecord replaces the record with r.ID. With keepTimestamp the original
// creation timestamp is preserved, so the edit does not change which record
// wins a same-day tie; otherwise the record is stamped now.
func (l *Ledger) UpdateRecord(r models.Record, keepTimestamp bool) (models.Record, error) {
	idx := l.indexOfRecord(r.ID)
	if idx < 0 {
		return models.Record{}, &apperrors.NotFoundError{Entity: "record", ID: r.ID}
	}
	r.Note = strings.TrimSpace(r.Note)
	if err := validation.Record(l.ds, r); err != nil {
		return models.Record{}, err
	}
	if keepTimestamp {
		r.Timestamp = l.ds.Records[idx].Timestamp
	} else {
		r.Timestamp = l.now().UnixMilli()
	}
	l.ds.Records[idx] = r
	return r, nil
}

// DeleteRecord removes the record with the given id.
func (l *Ledger) DeleteRecord(id string) error {
	idx := l.indexOfRecord(id)
	if idx < 0 {
		return &apperrors.NotFoundError{Entity: "record", ID: id}
	}
	l.ds.Records = append(l.ds.Records[:idx], l.ds.Records[idx+1:]...)
	return nil
}

func (l *Ledger) indexOfRecord(id string) int {
	for i, r := range l.ds.Records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Reset removes every entity.
func (l *Ledger) Reset() {
	*l.ds = *models.NewDataset()
}
